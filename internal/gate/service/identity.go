package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
	"github.com/aussiebroadwan/talentgate/internal/gate/notify"
	"github.com/aussiebroadwan/talentgate/internal/gate/oidc"
	"github.com/aussiebroadwan/talentgate/internal/gate/store"
	"github.com/aussiebroadwan/talentgate/pkg/cryptox"
	"github.com/aussiebroadwan/talentgate/pkg/idx"
	"github.com/aussiebroadwan/talentgate/pkg/slogx"
)

const minPasswordLength = 10

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password too short")
	ErrRoleNotSelectable  = errors.New("role cannot be self-selected")
	ErrRoleAlreadySet     = errors.New("role already set")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnverifiedIdentity = errors.New("identity provider did not verify the email address")
	ErrIdentityConflict   = errors.New("account already linked to another identity at this provider")
)

// IdentityService owns account creation and sign-in. Every successful path
// ends in SessionService.Issue.
type IdentityService struct {
	Store    store.Store
	Sessions *SessionService
	Notifier notify.Sender
}

type SignupRequest struct {
	Email    string
	Password string
	FullName string
	Role     domain.Role
}

// Login checks a password and opens an aal1 session.
func (s *IdentityService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	u, err := s.Store.Users().GetUserByEmail(ctx, normaliseEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return "", domain.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", domain.User{}, fmt.Errorf("failed to load user: %w", err)
	}

	// Federated accounts have no password to check.
	if u.PasswordHash == "" {
		return "", domain.User{}, ErrInvalidCredentials
	}
	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return "", domain.User{}, ErrInvalidCredentials
		}
		return "", domain.User{}, fmt.Errorf("failed to verify password: %w", err)
	}

	token, _, err := s.Sessions.Issue(ctx, u.ID, []string{domain.AMRPassword})
	if err != nil {
		return "", domain.User{}, err
	}
	return token, u, nil
}

// Signup creates a password account with a self-selected role. Recruiters
// start unapproved.
func (s *IdentityService) Signup(ctx context.Context, req SignupRequest) (string, domain.User, error) {
	email := normaliseEmail(req.Email)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return "", domain.User{}, ErrInvalidEmail
	}
	if len(req.Password) < minPasswordLength {
		return "", domain.User{}, ErrWeakPassword
	}
	if !req.Role.SelfSelectable() {
		return "", domain.User{}, ErrRoleNotSelectable
	}

	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		return "", domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: hash,
		Role:         req.Role,
		Approved:     req.Role != domain.RoleRecruiter,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return "", domain.User{}, ErrEmailTaken
		}
		return "", domain.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	token, _, err := s.Sessions.Issue(ctx, u.ID, []string{domain.AMRPassword})
	if err != nil {
		return "", domain.User{}, err
	}
	return token, u, nil
}

// LoginWithIdentity signs in a federated user. A returning user is matched on
// the IdP's (issuer, subject) pair. On first sight the IdP must vouch for the
// email: the identity is then linked to the account holding that email, or to
// a new account with an unset role.
func (s *IdentityService) LoginWithIdentity(ctx context.Context, id oidc.Identity) (string, domain.User, error) {
	if id.Issuer == "" || id.Subject == "" {
		return "", domain.User{}, ErrUnverifiedIdentity
	}

	u, err := s.Store.Users().GetUserByIdentity(ctx, id.Issuer, id.Subject)
	switch {
	case errors.Is(err, store.ErrNotFound):
		if !id.EmailVerified {
			return "", domain.User{}, ErrUnverifiedIdentity
		}
		if u, err = s.linkIdentity(ctx, id); err != nil {
			return "", domain.User{}, err
		}
	case err != nil:
		return "", domain.User{}, fmt.Errorf("failed to load user: %w", err)
	}

	token, _, err := s.Sessions.Issue(ctx, u.ID, []string{domain.AMROIDC})
	if err != nil {
		return "", domain.User{}, err
	}
	return token, u, nil
}

func (s *IdentityService) linkIdentity(ctx context.Context, id oidc.Identity) (domain.User, error) {
	log := slogx.FromContext(ctx)
	email := normaliseEmail(id.Email)

	var (
		u       domain.User
		created bool
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		existing, err := tx.Users().GetUserByEmail(ctx, email)
		switch {
		case err == nil:
			u = existing
		case errors.Is(err, store.ErrNotFound):
			u = domain.User{
				ID:            idx.New().String(),
				Email:         email,
				FullName:      id.Name,
				Role:          domain.RoleUnset,
				EmailVerified: true,
			}
			if err := tx.Users().CreateUser(ctx, u); err != nil {
				return err
			}
			created = true
		default:
			return err
		}
		return tx.Users().LinkIdentity(ctx, domain.FederatedIdentity{
			Issuer:  id.Issuer,
			Subject: id.Subject,
			UserID:  u.ID,
		})
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		log.Warn("federated identity conflicts with existing link", slog.String("issuer", id.Issuer))
		return domain.User{}, ErrIdentityConflict
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to link federated identity: %w", err)
	}

	if created {
		log.Info("federated user created", slog.String("user_id", u.ID))
	} else {
		log.Info("federated identity linked", slog.String("user_id", u.ID), slog.String("issuer", id.Issuer))
	}
	return u, nil
}

// CompleteProfile assigns the first role for a user whose role is unset.
func (s *IdentityService) CompleteProfile(ctx context.Context, userID string, role domain.Role) error {
	if !role.SelfSelectable() {
		return ErrRoleNotSelectable
	}
	err := s.Store.Users().SetRoleIfUnset(ctx, userID, role)
	switch {
	case errors.Is(err, store.ErrConflict):
		return ErrRoleAlreadySet
	case errors.Is(err, store.ErrNotFound):
		return ErrUserNotFound
	case err != nil:
		return fmt.Errorf("failed to set role: %w", err)
	}
	return nil
}

// ApproveRecruiter flips the approval flag and tells the recruiter.
func (s *IdentityService) ApproveRecruiter(ctx context.Context, userID string) error {
	if err := s.Store.Users().SetApproved(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to approve recruiter: %w", err)
	}

	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load recruiter: %w", err)
	}
	notifyBestEffort(ctx, s.Notifier, notify.RecruiterApproved(u.Email, u.FullName))
	return nil
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// notifyBestEffort logs delivery failures instead of failing the caller.
func notifyBestEffort(ctx context.Context, n notify.Sender, msg notify.Message) {
	if n == nil {
		return
	}
	if err := n.Send(ctx, msg); err != nil {
		slogx.FromContext(ctx).Warn("failed to send email", slog.String("subject", msg.Subject), slog.Any("error", err))
	}
}
