package access

import (
	"strings"

	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
)

// Well known paths.
const (
	PathLogin           = "/login"
	PathSignup          = "/signup"
	PathCompleteProfile = "/complete-profile"
	PathMFAVerify       = "/mfa-verify"
	PathMFARequired     = "/admin/mfa-required"
	PathDashboard       = "/dashboard"
)

// Capability is what a path requires from the caller.
type Capability int

const (
	CapPublic Capability = iota
	CapCandidate
	CapRecruiter
	CapSchool
	CapAdmin
	CapAuthPage
	CapMFAChallenge
)

func (c Capability) String() string {
	switch c {
	case CapCandidate:
		return "candidate"
	case CapRecruiter:
		return "recruiter"
	case CapSchool:
		return "school"
	case CapAdmin:
		return "admin"
	case CapAuthPage:
		return "auth-page"
	case CapMFAChallenge:
		return "mfa-challenge"
	default:
		return "public"
	}
}

// Protected reports whether the capability needs a session at the edge.
func (c Capability) Protected() bool {
	switch c {
	case CapCandidate, CapRecruiter, CapSchool, CapAdmin:
		return true
	default:
		return false
	}
}

var sectionPrefixes = []struct {
	prefix string
	cap    Capability
}{
	{"/candidate", CapCandidate},
	{"/recruiter", CapRecruiter},
	{"/school", CapSchool},
	{"/admin", CapAdmin},
}

// Classify maps a request path to its capability. Section prefixes match on
// whole segments so /administrator is public; /signup matches any suffix so
// /signup, /signup/recruiter and /signup-school are all auth pages.
func Classify(path string) Capability {
	for _, sp := range sectionPrefixes {
		if hasSegmentPrefix(path, sp.prefix) {
			return sp.cap
		}
	}
	switch {
	case path == PathLogin:
		return CapAuthPage
	case strings.HasPrefix(path, PathSignup):
		return CapAuthPage
	case path == PathMFAVerify:
		return CapMFAChallenge
	}
	return CapPublic
}

func hasSegmentPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	rest := path[len(prefix):]
	return rest == "" || rest[0] == '/'
}

// Section is a page-guarded area of the product.
type Section string

const (
	SectionCandidate Section = "candidate"
	SectionRecruiter Section = "recruiter"
	SectionSchool    Section = "school"
	SectionAdmin     Section = "admin"
	SectionDashboard Section = "dashboard"
)

// Home is the landing path for role. RoleUnset lands on profile completion;
// unknown roles have no home.
func Home(role domain.Role) (string, bool) {
	switch role {
	case domain.RoleCandidate:
		return "/candidate", true
	case domain.RoleRecruiter:
		return "/recruiter", true
	case domain.RoleSchoolAdmin:
		return "/school", true
	case domain.RoleAdmin:
		return "/admin", true
	case domain.RoleUnset:
		return PathCompleteProfile, true
	default:
		return "", false
	}
}

// owns reports whether role is the expected occupant of section.
func owns(section Section, role domain.Role) bool {
	switch section {
	case SectionCandidate:
		return role == domain.RoleCandidate
	case SectionRecruiter:
		return role == domain.RoleRecruiter
	case SectionSchool:
		return role == domain.RoleSchoolAdmin
	case SectionAdmin:
		return role == domain.RoleAdmin
	case SectionDashboard:
		switch role {
		case domain.RoleCandidate, domain.RoleRecruiter, domain.RoleSchoolAdmin, domain.RoleAdmin:
			return true
		}
	}
	return false
}
