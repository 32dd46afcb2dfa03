package access

import (
	"testing"

	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := map[string]Capability{
		"/":                   CapPublic,
		"/candidate":          CapCandidate,
		"/candidate/profile":  CapCandidate,
		"/candidates":         CapPublic,
		"/recruiter/jobs":     CapRecruiter,
		"/school":             CapSchool,
		"/schools":            CapPublic,
		"/admin":              CapAdmin,
		"/admin/mfa-required": CapAdmin,
		"/administrator":      CapPublic,
		"/login":              CapAuthPage,
		"/login/extra":        CapPublic,
		"/signup":             CapAuthPage,
		"/signup/recruiter":   CapAuthPage,
		"/signup-school":      CapAuthPage,
		"/mfa-verify":         CapMFAChallenge,
		"/complete-profile":   CapPublic,
		"/dashboard":          CapPublic,
	}
	for path, want := range cases {
		require.Equal(t, want, Classify(path), path)
	}
}

func TestHome(t *testing.T) {
	home, ok := Home(domain.RoleSchoolAdmin)
	require.True(t, ok)
	require.Equal(t, "/school", home)

	home, ok = Home(domain.RoleUnset)
	require.True(t, ok)
	require.Equal(t, "/complete-profile", home)

	_, ok = Home("superuser")
	require.False(t, ok)
}

func TestChallengeURL(t *testing.T) {
	require.Equal(t, "/mfa-verify", ChallengeURL(""))
	require.Equal(t, "/mfa-verify?redirect=/admin", ChallengeURL("/admin"))
}
