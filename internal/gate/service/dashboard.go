package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/talentgate/internal/gate/access"
	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
	"github.com/aussiebroadwan/talentgate/internal/gate/store"
	"golang.org/x/sync/errgroup"
)

// SectionData is what a guarded section shell renders besides the profile.
type SectionData struct {
	Section          access.Section        `json:"section"`
	Profile          domain.Profile        `json:"profile"`
	PendingApprovals *int                  `json:"pending_approvals,omitempty"`
	School           *domain.SchoolProfile `json:"school,omitempty"`
	Approved         *bool                 `json:"approved,omitempty"`
	ShowMFABanner    bool                  `json:"show_mfa_banner"`
}

type DashboardService struct {
	Store       store.Store
	Preferences *PreferenceService
}

// Section loads the supplementary data for section. The lookups are
// independent and run concurrently; the first failure cancels the rest.
func (s *DashboardService) Section(ctx context.Context, section access.Section, p domain.Profile, enrolled bool) (SectionData, error) {
	data := SectionData{Section: section, Profile: p}

	g, gctx := errgroup.WithContext(ctx)

	switch section {
	case access.SectionAdmin:
		g.Go(func() error {
			n, err := s.Store.Users().CountPendingRecruiters(gctx)
			if err != nil {
				return fmt.Errorf("failed to count pending recruiters: %w", err)
			}
			data.PendingApprovals = &n
			return nil
		})
	case access.SectionSchool:
		g.Go(func() error {
			sp, err := s.Store.Schools().GetSchoolProfile(gctx, p.UserID)
			if errors.Is(err, store.ErrNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to load school profile: %w", err)
			}
			data.School = &sp
			return nil
		})
	case access.SectionRecruiter:
		approved := p.Approved
		data.Approved = &approved
	}

	if !enrolled && s.Preferences != nil {
		g.Go(func() error {
			dismissed, err := s.Preferences.BannerDismissed(gctx, p.UserID)
			if err != nil {
				return err
			}
			data.ShowMFABanner = !dismissed
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return SectionData{}, err
	}
	return data, nil
}
