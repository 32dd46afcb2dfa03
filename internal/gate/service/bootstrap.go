package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
	"github.com/aussiebroadwan/talentgate/internal/gate/store"
	"github.com/aussiebroadwan/talentgate/pkg/cryptox"
	"github.com/aussiebroadwan/talentgate/pkg/idx"
	"github.com/aussiebroadwan/talentgate/pkg/slogx"
)

var ErrBootstrapAlready = errors.New("system already bootstrapped")

type BootstrapService struct {
	Store store.Store
}

// SeedAdmin creates the first admin account on an empty database. The admin
// must still enrol MFA before the admin section opens.
func (s *BootstrapService) SeedAdmin(ctx context.Context, email, password, name string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to check users: %w", err)
	}
	if !empty {
		return domain.User{}, ErrBootstrapAlready
	}

	email = normaliseEmail(email)
	if email == "" {
		return domain.User{}, ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return domain.User{}, ErrWeakPassword
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash admin password: %w", err)
	}

	u := domain.User{
		ID:            idx.New().String(),
		Email:         email,
		FullName:      name,
		PasswordHash:  hash,
		Role:          domain.RoleAdmin,
		Approved:      true,
		EmailVerified: true,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		return domain.User{}, fmt.Errorf("failed to create admin: %w", err)
	}

	l.Info("bootstrap admin created", slog.String("user_id", u.ID))
	return u, nil
}
