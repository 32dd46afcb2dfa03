package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
	"github.com/aussiebroadwan/talentgate/internal/gate/store"
)

var ErrUnknownPreference = errors.New("unknown preference")

// PreferenceService reads and writes per-user flags. Prefs is either the
// relational store's repo or the redis driver.
type PreferenceService struct {
	Prefs store.Preferences

	now func() time.Time
}

// Get returns the stored value, or an empty preference when none is set.
func (s *PreferenceService) Get(ctx context.Context, userID, key string) (domain.Preference, error) {
	if !domain.KnownPreference(key) {
		return domain.Preference{}, ErrUnknownPreference
	}
	p, err := s.Prefs.GetPreference(ctx, userID, key)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Preference{UserID: userID, Key: key}, nil
	}
	if err != nil {
		return domain.Preference{}, fmt.Errorf("failed to load preference: %w", err)
	}
	return p, nil
}

func (s *PreferenceService) Set(ctx context.Context, userID, key, value string) (domain.Preference, error) {
	if !domain.KnownPreference(key) {
		return domain.Preference{}, ErrUnknownPreference
	}
	now := time.Now()
	if s.now != nil {
		now = s.now()
	}
	p := domain.Preference{UserID: userID, Key: key, Value: value, UpdatedAt: now}
	if err := s.Prefs.SetPreference(ctx, p); err != nil {
		return domain.Preference{}, fmt.Errorf("failed to save preference: %w", err)
	}
	return p, nil
}

// BannerDismissed reports whether the MFA banner was dismissed.
func (s *PreferenceService) BannerDismissed(ctx context.Context, userID string) (bool, error) {
	p, err := s.Get(ctx, userID, domain.PrefMFABannerDismissed)
	if err != nil {
		return false, err
	}
	return p.Value == "true", nil
}
