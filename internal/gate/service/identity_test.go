package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
	"github.com/aussiebroadwan/talentgate/internal/gate/notify"
	"github.com/aussiebroadwan/talentgate/internal/gate/oidc"
	"github.com/aussiebroadwan/talentgate/internal/gate/store"
	"github.com/aussiebroadwan/talentgate/internal/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSignupAndLogin(t *testing.T) {
	ctx := testContext()
	h := newHarness(t)

	token, u := h.signup(t, " Alice@Example.com ", domain.RoleCandidate)
	require.Equal(t, "alice@example.com", u.Email)
	require.True(t, u.Approved)

	sess, err := h.sessions.Authenticate(ctx, token)
	require.NoError(t, err)
	require.Equal(t, u.ID, sess.UserID)
	require.Equal(t, domain.AAL1, sess.AAL)
	require.Equal(t, []string{domain.AMRPassword}, sess.AMR)

	_, logged, err := h.identity.Login(ctx, "ALICE@example.com", "correct horse battery")
	require.NoError(t, err)
	require.Equal(t, u.ID, logged.ID)

	_, _, err = h.identity.Login(ctx, "alice@example.com", "wrong password!!")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = h.identity.Login(ctx, "nobody@example.com", "correct horse battery")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignupValidation(t *testing.T) {
	ctx := testContext()
	h := newHarness(t)
	h.signup(t, "taken@example.com", domain.RoleCandidate)

	tests := []struct {
		name string
		req  SignupRequest
		want error
	}{
		{"bad email", SignupRequest{Email: "not-an-email", Password: "long enough pw", Role: domain.RoleCandidate}, ErrInvalidEmail},
		{"short password", SignupRequest{Email: "a@example.com", Password: "short", Role: domain.RoleCandidate}, ErrWeakPassword},
		{"admin self-select", SignupRequest{Email: "a@example.com", Password: "long enough pw", Role: domain.RoleAdmin}, ErrRoleNotSelectable},
		{"school self-select", SignupRequest{Email: "a@example.com", Password: "long enough pw", Role: domain.RoleSchoolAdmin}, ErrRoleNotSelectable},
		{"duplicate", SignupRequest{Email: "Taken@example.com", Password: "long enough pw", Role: domain.RoleRecruiter}, ErrEmailTaken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := h.identity.Signup(ctx, tt.req)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRecruiterApproval(t *testing.T) {
	ctx := testContext()
	h := newHarness(t)

	ctrl := gomock.NewController(t)
	sender := mocks.NewMockSender(ctrl)
	h.identity.Notifier = sender

	_, rec := h.signup(t, "rec@example.com", domain.RoleRecruiter)
	require.False(t, rec.Approved)

	n, err := h.store.Users().CountPendingRecruiters(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	sender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg notify.Message) error {
			require.Equal(t, "rec@example.com", msg.To)
			return nil
		})
	require.NoError(t, h.identity.ApproveRecruiter(ctx, rec.ID))

	got, err := h.store.Users().GetUserByID(ctx, rec.ID)
	require.NoError(t, err)
	require.True(t, got.Approved)

	_, cand := h.signup(t, "cand@example.com", domain.RoleCandidate)
	require.ErrorIs(t, h.identity.ApproveRecruiter(ctx, cand.ID), ErrUserNotFound)
}

func TestFederatedLoginCompletesProfile(t *testing.T) {
	ctx := testContext()
	h := newHarness(t)

	id := oidc.Identity{Issuer: "https://idp.example", Subject: "sub-1", Email: "Fed@Example.com", EmailVerified: true, Name: "Fed"}
	token, u, err := h.identity.LoginWithIdentity(ctx, id)
	require.NoError(t, err)
	require.Equal(t, domain.RoleUnset, u.Role)

	sess, err := h.sessions.Authenticate(ctx, token)
	require.NoError(t, err)
	require.Equal(t, []string{domain.AMROIDC}, sess.AMR)

	// Second sign-in finds the same account.
	_, again, err := h.identity.LoginWithIdentity(ctx, id)
	require.NoError(t, err)
	require.Equal(t, u.ID, again.ID)

	// Federated accounts cannot use the password form.
	_, _, err = h.identity.Login(ctx, "fed@example.com", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	require.ErrorIs(t, h.identity.CompleteProfile(ctx, u.ID, domain.RoleAdmin), ErrRoleNotSelectable)
	require.NoError(t, h.identity.CompleteProfile(ctx, u.ID, domain.RoleRecruiter))
	require.ErrorIs(t, h.identity.CompleteProfile(ctx, u.ID, domain.RoleCandidate), ErrRoleAlreadySet)
	require.ErrorIs(t, h.identity.CompleteProfile(ctx, "missing", domain.RoleCandidate), ErrUserNotFound)
}

func TestFederatedLoginRequiresVerifiedEmail(t *testing.T) {
	ctx := testContext()
	h := newHarness(t)
	admin := h.seedUser(t, "root@example.com", domain.RoleAdmin)

	// An unverified claim to an existing admin's address must not sign in.
	_, _, err := h.identity.LoginWithIdentity(ctx, oidc.Identity{
		Issuer: "https://idp.example", Subject: "attacker", Email: admin.Email,
	})
	require.ErrorIs(t, err, ErrUnverifiedIdentity)

	// Nor may it create a fresh account.
	_, _, err = h.identity.LoginWithIdentity(ctx, oidc.Identity{
		Issuer: "https://idp.example", Subject: "new", Email: "new@example.com",
	})
	require.ErrorIs(t, err, ErrUnverifiedIdentity)
	_, err = h.store.Users().GetUserByEmail(ctx, "new@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, _, err = h.identity.LoginWithIdentity(ctx, oidc.Identity{Email: "x@example.com", EmailVerified: true})
	require.ErrorIs(t, err, ErrUnverifiedIdentity)
}

func TestFederatedLoginMatchesOnSubject(t *testing.T) {
	ctx := testContext()
	h := newHarness(t)
	_, cand := h.signup(t, "cand@example.com", domain.RoleCandidate)

	first := oidc.Identity{Issuer: "https://idp.example", Subject: "sub-cand", Email: "cand@example.com", EmailVerified: true}
	_, u, err := h.identity.LoginWithIdentity(ctx, first)
	require.NoError(t, err)
	require.Equal(t, cand.ID, u.ID)

	// Once linked, the subject is what counts: a changed or unverified
	// email at the IdP still lands on the same account.
	moved := first
	moved.Email, moved.EmailVerified = "renamed@example.com", false
	_, u, err = h.identity.LoginWithIdentity(ctx, moved)
	require.NoError(t, err)
	require.Equal(t, cand.ID, u.ID)

	// A second subject at the same issuer cannot claim the linked account.
	other := first
	other.Subject = "sub-other"
	_, _, err = h.identity.LoginWithIdentity(ctx, other)
	require.ErrorIs(t, err, ErrIdentityConflict)

	// The same subject at another issuer is a different identity.
	elsewhere := first
	elsewhere.Issuer = "https://other-idp.example"
	_, u, err = h.identity.LoginWithIdentity(ctx, elsewhere)
	require.NoError(t, err)
	require.Equal(t, cand.ID, u.ID)
}

func TestSignOutRevokesSession(t *testing.T) {
	ctx := testContext()
	h := newHarness(t)
	token, _ := h.signup(t, "out@example.com", domain.RoleCandidate)

	sess, err := h.sessions.Authenticate(ctx, token)
	require.NoError(t, err)
	require.NoError(t, h.sessions.SignOut(ctx, sess.ID))

	_, err = h.sessions.Authenticate(ctx, token)
	require.ErrorIs(t, err, ErrSessionInvalid)

	_, err = h.sessions.Authenticate(ctx, "")
	require.ErrorIs(t, err, ErrSessionInvalid)
	_, err = h.sessions.Authenticate(ctx, "garbage")
	require.ErrorIs(t, err, ErrSessionInvalid)
}
