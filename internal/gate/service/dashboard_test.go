package service

import (
	"testing"

	"github.com/aussiebroadwan/talentgate/internal/gate/access"
	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
	"github.com/stretchr/testify/require"
)

func TestDashboardSectionData(t *testing.T) {
	ctx := testContext()
	h := newHarness(t)
	prefs := &PreferenceService{Prefs: h.store.Preferences()}
	d := &DashboardService{Store: h.store, Preferences: prefs}

	h.signup(t, "r1@example.com", domain.RoleRecruiter)
	h.signup(t, "r2@example.com", domain.RoleRecruiter)
	admin := h.seedUser(t, "admin@example.com", domain.RoleAdmin)

	t.Run("admin sees pending approvals", func(t *testing.T) {
		data, err := d.Section(ctx, access.SectionAdmin, admin.Profile(), true)
		require.NoError(t, err)
		require.NotNil(t, data.PendingApprovals)
		require.Equal(t, 2, *data.PendingApprovals)
		require.False(t, data.ShowMFABanner)
	})

	t.Run("recruiter sees approval status", func(t *testing.T) {
		_, rec := h.signup(t, "r3@example.com", domain.RoleRecruiter)
		data, err := d.Section(ctx, access.SectionRecruiter, rec.Profile(), false)
		require.NoError(t, err)
		require.NotNil(t, data.Approved)
		require.False(t, *data.Approved)
		require.True(t, data.ShowMFABanner)
	})

	t.Run("school profile", func(t *testing.T) {
		school := h.seedUser(t, "school@example.com", domain.RoleSchoolAdmin)
		data, err := d.Section(ctx, access.SectionSchool, school.Profile(), false)
		require.NoError(t, err)
		require.Nil(t, data.School)

		require.NoError(t, h.store.Schools().UpsertSchoolProfile(ctx, domain.SchoolProfile{
			UserID: school.ID, SchoolName: "Harbour Business School",
		}))
		data, err = d.Section(ctx, access.SectionSchool, school.Profile(), false)
		require.NoError(t, err)
		require.NotNil(t, data.School)
		require.Equal(t, "Harbour Business School", data.School.SchoolName)
	})

	t.Run("dismissed banner stays hidden", func(t *testing.T) {
		_, cand := h.signup(t, "c@example.com", domain.RoleCandidate)
		_, err := prefs.Set(ctx, cand.ID, domain.PrefMFABannerDismissed, "true")
		require.NoError(t, err)

		data, err := d.Section(ctx, access.SectionCandidate, cand.Profile(), false)
		require.NoError(t, err)
		require.False(t, data.ShowMFABanner)
		require.Equal(t, cand.ID, data.Profile.UserID)
	})
}

func TestPreferenceService(t *testing.T) {
	ctx := testContext()
	h := newHarness(t)
	prefs := &PreferenceService{Prefs: h.store.Preferences()}
	u := h.seedUser(t, "p@example.com", domain.RoleCandidate)

	p, err := prefs.Get(ctx, u.ID, domain.PrefMFABannerDismissed)
	require.NoError(t, err)
	require.Empty(t, p.Value)

	dismissed, err := prefs.BannerDismissed(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, dismissed)

	_, err = prefs.Set(ctx, u.ID, domain.PrefMFABannerDismissed, "true")
	require.NoError(t, err)
	dismissed, err = prefs.BannerDismissed(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, dismissed)

	_, err = prefs.Set(ctx, u.ID, "theme", "dark")
	require.ErrorIs(t, err, ErrUnknownPreference)
	_, err = prefs.Get(ctx, u.ID, "theme")
	require.ErrorIs(t, err, ErrUnknownPreference)
}
