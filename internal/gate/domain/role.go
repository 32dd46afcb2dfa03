package domain

import "fmt"

// Role is the single role a profile holds. RoleUnset is a real state: the
// account exists but onboarding has not picked a role yet.
type Role string

const (
	RoleUnset       Role = ""
	RoleCandidate   Role = "candidate"
	RoleRecruiter   Role = "recruiter"
	RoleSchoolAdmin Role = "school_admin"
	RoleAdmin       Role = "admin"
)

// ParseRole maps a stored value to a Role. Unknown values are returned with an
// error so callers can treat them as unrecognised rather than as a valid role.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleUnset, RoleCandidate, RoleRecruiter, RoleSchoolAdmin, RoleAdmin:
		return r, nil
	default:
		return Role(s), fmt.Errorf("domain: unknown role %q", s)
	}
}

// Known reports whether r is one of the closed set, including RoleUnset.
func (r Role) Known() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// SelfSelectable reports whether a user may pick r during signup or profile
// completion. Admin and school_admin are only granted out of band.
func (r Role) SelfSelectable() bool {
	switch r {
	case RoleCandidate, RoleRecruiter:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	if r == RoleUnset {
		return "unset"
	}
	return string(r)
}
