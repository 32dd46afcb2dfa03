package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
	"github.com/aussiebroadwan/talentgate/internal/gate/store"
	"github.com/aussiebroadwan/talentgate/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedUser(t *testing.T, s *Store, role domain.Role) domain.User {
	t.Helper()
	u := domain.User{
		ID:       idx.New().String(),
		Email:    idx.New().String() + "@example.com",
		FullName: "Test User",
		Role:     role,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func TestMigrationsAreIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	empty, err := s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	u := domain.User{ID: "u1", Email: "Alice@Example.com", FullName: "Alice", PasswordHash: "hash", Role: domain.RoleCandidate}
	require.NoError(t, s.Users().CreateUser(ctx, u))

	got, err := s.Users().GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, "u1", got.ID)
	require.Equal(t, domain.RoleCandidate, got.Role)
	require.Equal(t, "hash", got.PasswordHash)

	err = s.Users().CreateUser(ctx, domain.User{ID: "u2", Email: "ALICE@example.com"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = s.Users().GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSetRoleIfUnset(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := seedUser(t, s, domain.RoleUnset)

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleUnset, got.Role)

	require.NoError(t, s.Users().SetRoleIfUnset(ctx, u.ID, domain.RoleRecruiter))
	require.ErrorIs(t, s.Users().SetRoleIfUnset(ctx, u.ID, domain.RoleCandidate), store.ErrConflict)
	require.ErrorIs(t, s.Users().SetRoleIfUnset(ctx, "missing", domain.RoleCandidate), store.ErrNotFound)

	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleRecruiter, got.Role)
}

func TestUnknownStoredRoleIsPreserved(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := seedUser(t, s, domain.RoleCandidate)

	_, err := s.db.ExecContext(ctx, `UPDATE users SET role = 'superuser' WHERE id = ?`, u.ID)
	require.NoError(t, err)

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, got.Role.Known())
}

func TestRecruiterApproval(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	r1 := seedUser(t, s, domain.RoleRecruiter)
	seedUser(t, s, domain.RoleRecruiter)
	c := seedUser(t, s, domain.RoleCandidate)

	n, err := s.Users().CountPendingRecruiters(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	require.NoError(t, s.Users().SetApproved(ctx, r1.ID))
	require.ErrorIs(t, s.Users().SetApproved(ctx, c.ID), store.ErrNotFound)

	n, err = s.Users().CountPendingRecruiters(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := seedUser(t, s, domain.RoleAdmin)

	now := time.Now()
	sess := domain.Session{ID: "s1", UserID: u.ID, AMR: []string{domain.AMRPassword}, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, s.Sessions().CreateSession(ctx, sess))

	got, err := s.Sessions().GetSession(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, domain.AAL1, got.AAL)
	require.Equal(t, []string{"pwd"}, got.AMR)
	require.True(t, got.Active(now))
	require.WithinDuration(t, sess.ExpiresAt, got.ExpiresAt, time.Millisecond)

	up := got.Elevate()
	require.NoError(t, s.Sessions().ElevateSession(ctx, "s1", up.AAL, up.AMR))
	got, err = s.Sessions().GetSession(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, domain.AAL2, got.AAL)
	require.Equal(t, []string{"pwd", "otp", "mfa"}, got.AMR)

	require.NoError(t, s.Sessions().RevokeSession(ctx, "s1"))
	got, err = s.Sessions().GetSession(ctx, "s1")
	require.NoError(t, err)
	require.False(t, got.Active(time.Now()))
	require.ErrorIs(t, s.Sessions().ElevateSession(ctx, "s1", domain.AAL2, nil), store.ErrNotFound)

	require.NoError(t, s.Sessions().CreateSession(ctx, domain.Session{ID: "s2", UserID: u.ID, ExpiresAt: now.Add(-time.Minute)}))
	n, err := s.Sessions().DeleteExpiredSessions(ctx, time.Now().Add(time.Second))
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
}

func TestFactorsAndChallenges(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := seedUser(t, s, domain.RoleAdmin)
	require.NoError(t, s.Sessions().CreateSession(ctx, domain.Session{ID: "s1", UserID: u.ID, ExpiresAt: time.Now().Add(time.Hour)}))

	f := domain.Factor{ID: "f1", UserID: u.ID, Secret: "sealed", Status: domain.FactorUnverified}
	require.NoError(t, s.Factors().CreateFactor(ctx, f))

	fs, err := s.Factors().ListFactors(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, fs, 1)
	require.False(t, domain.Enrolled(fs))

	require.NoError(t, s.Factors().MarkFactorVerified(ctx, "f1", time.Now()))
	require.ErrorIs(t, s.Factors().MarkFactorVerified(ctx, "f1", time.Now()), store.ErrNotFound)

	got, err := s.Factors().GetFactor(ctx, "f1")
	require.NoError(t, err)
	require.Equal(t, domain.FactorVerified, got.Status)
	require.NotNil(t, got.VerifiedAt)

	c := domain.Challenge{ID: "c1", FactorID: "f1", UserID: u.ID, SessionID: "s1", ExpiresAt: time.Now().Add(5 * time.Minute)}
	require.NoError(t, s.Challenges().CreateChallenge(ctx, c))

	for i := 1; i <= 3; i++ {
		c, err = s.Challenges().IncrementChallengeAttempts(ctx, "c1")
		require.NoError(t, err)
		require.Equal(t, i, c.Attempts)
	}
	_, err = s.Challenges().IncrementChallengeAttempts(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	n, err := s.Challenges().DeleteExpiredChallenges(ctx, time.Now())
	require.NoError(t, err)
	require.Zero(t, n)

	// deleting the factor cascades to its challenges
	require.NoError(t, s.Factors().DeleteFactor(ctx, "f1"))
	_, err = s.Challenges().GetChallenge(ctx, "c1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestStaleUnverifiedFactors(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := seedUser(t, s, domain.RoleAdmin)

	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, s.Factors().CreateFactor(ctx, domain.Factor{ID: "old", UserID: u.ID, Secret: "x", Status: domain.FactorUnverified, CreatedAt: old}))
	require.NoError(t, s.Factors().CreateFactor(ctx, domain.Factor{ID: "new", UserID: u.ID, Secret: "x", Status: domain.FactorUnverified}))
	require.NoError(t, s.Factors().CreateFactor(ctx, domain.Factor{ID: "kept", UserID: u.ID, Secret: "x", Status: domain.FactorVerified, CreatedAt: old}))

	n, err := s.Factors().DeleteStaleUnverifiedFactors(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	n, err = s.Factors().DeleteUnverifiedFactors(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	fs, err := s.Factors().ListFactors(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, fs, 1)
	require.Equal(t, "kept", fs[0].ID)
}

func TestSchoolsAndPreferences(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := seedUser(t, s, domain.RoleSchoolAdmin)

	_, err := s.Schools().GetSchoolProfile(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Schools().UpsertSchoolProfile(ctx, domain.SchoolProfile{UserID: u.ID, SchoolName: "North"}))
	require.NoError(t, s.Schools().UpsertSchoolProfile(ctx, domain.SchoolProfile{UserID: u.ID, SchoolName: "South", Website: "https://south.example"}))
	sp, err := s.Schools().GetSchoolProfile(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "South", sp.SchoolName)

	_, err = s.Preferences().GetPreference(ctx, u.ID, domain.PrefMFABannerDismissed)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Preferences().SetPreference(ctx, domain.Preference{UserID: u.ID, Key: domain.PrefMFABannerDismissed, Value: "true"}))
	p, err := s.Preferences().GetPreference(ctx, u.ID, domain.PrefMFABannerDismissed)
	require.NoError(t, err)
	require.Equal(t, "true", p.Value)
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Users().CreateUser(ctx, domain.User{ID: "u1", Email: "a@example.com"}))
		return store.ErrConflict
	})
	require.ErrorIs(t, err, store.ErrConflict)

	empty, err := s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().CreateUser(ctx, domain.User{ID: "u1", Email: "a@example.com"})
	}))
	empty, err = s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.False(t, empty)
}
