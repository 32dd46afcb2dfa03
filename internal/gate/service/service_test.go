package service

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"log/slog"
	"testing"
	"time"

	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
	"github.com/aussiebroadwan/talentgate/internal/gate/store"
	"github.com/aussiebroadwan/talentgate/internal/gate/store/drivers/sqlite"
	"github.com/aussiebroadwan/talentgate/pkg/cryptox"
	"github.com/aussiebroadwan/talentgate/pkg/jwtx"
	"github.com/aussiebroadwan/talentgate/pkg/slogx"
	"github.com/stretchr/testify/require"
)

type harness struct {
	store    *sqlite.Store
	sessions *SessionService
	identity *IdentityService
	mfa      *MFAService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cryptox.SetPepper("test-pepper")

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	signer, err := jwtx.NewSigner(priv, "talentgate")
	require.NoError(t, err)

	sealer, err := cryptox.NewSealer([]byte("test-sealer-key"))
	require.NoError(t, err)

	sessions := &SessionService{Store: st, Signer: signer, TTL: time.Hour}
	return &harness{
		store:    st,
		sessions: sessions,
		identity: &IdentityService{Store: st, Sessions: sessions},
		mfa:      &MFAService{Store: st, Sealer: sealer, Issuer: "Talentgate"},
	}
}

func (h *harness) signup(t *testing.T, email string, role domain.Role) (string, domain.User) {
	t.Helper()
	token, u, err := h.identity.Signup(context.Background(), SignupRequest{
		Email:    email,
		Password: "correct horse battery",
		FullName: "Test User",
		Role:     role,
	})
	require.NoError(t, err)
	return token, u
}

// seedUser inserts a user directly, for roles signup cannot produce.
func (h *harness) seedUser(t *testing.T, email string, role domain.Role) domain.User {
	t.Helper()
	hash, err := cryptox.HashPassword("correct horse battery")
	require.NoError(t, err)
	u := domain.User{ID: "u-" + email, Email: email, FullName: "Seeded", PasswordHash: hash, Role: role, Approved: true}
	require.NoError(t, h.store.Users().CreateUser(context.Background(), u))
	return u
}

func testContext() context.Context {
	return slogx.WithContext(context.Background(), slogx.Discard())
}

func discardLogger() *slog.Logger { return slogx.Discard() }

func TestHousekeepingCleanup(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	u := h.seedUser(t, "old@example.com", domain.RoleCandidate)

	now := time.Now()
	require.NoError(t, h.store.Sessions().CreateSession(ctx, domain.Session{
		ID: "expired", UserID: u.ID, AAL: domain.AAL1, ExpiresAt: now.Add(-time.Hour), CreatedAt: now.Add(-2 * time.Hour),
	}))
	require.NoError(t, h.store.Sessions().CreateSession(ctx, domain.Session{
		ID: "live", UserID: u.ID, AAL: domain.AAL1, ExpiresAt: now.Add(time.Hour), CreatedAt: now,
	}))

	hk := NewHousekeepingService(h.store, discardLogger(), 0)
	require.Equal(t, time.Hour, hk.Interval)
	require.Equal(t, int64(1), hk.Cleanup(ctx, now))

	_, err := h.store.Sessions().GetSession(ctx, "expired")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = h.store.Sessions().GetSession(ctx, "live")
	require.NoError(t, err)
}

func TestHousekeepingStartStop(t *testing.T) {
	h := newHarness(t)
	hk := NewHousekeepingService(h.store, discardLogger(), time.Millisecond)
	hk.Start()
	time.Sleep(5 * time.Millisecond)
	hk.Stop()
}

func TestBootstrapSeedsAdminOnce(t *testing.T) {
	ctx := testContext()
	h := newHarness(t)
	b := &BootstrapService{Store: h.store}

	u, err := b.SeedAdmin(ctx, "Root@Example.com", "long enough password", "Root")
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, u.Role)
	require.Equal(t, "root@example.com", u.Email)

	_, err = b.SeedAdmin(ctx, "second@example.com", "long enough password", "Second")
	require.ErrorIs(t, err, ErrBootstrapAlready)

	_, logged, err := h.identity.Login(ctx, "root@example.com", "long enough password")
	require.NoError(t, err)
	require.Equal(t, u.ID, logged.ID)
}
