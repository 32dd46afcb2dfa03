package access

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
)

// Decision is the outcome of evaluating a request. Rule names the branch that
// decided, for logs. Err carries the collaborator failure that forced a fail
// closed redirect, if any.
type Decision struct {
	Allow  bool
	Target string
	Rule   string
	Err    error
}

func allow(rule string) Decision { return Decision{Allow: true, Rule: rule} }

func redirect(rule, target string) Decision {
	return Decision{Target: target, Rule: rule}
}

func failClosed(rule string, err error) Decision {
	return Decision{Target: PathLogin, Rule: rule, Err: err}
}

// Policy is the single decision table shared by the edge gate and the page
// guards. It never writes and holds no state.
type Policy struct{}

// Gate evaluates the edge rules for u in order, returning the first match.
func (Policy) Gate(ctx context.Context, u *url.URL, s Subject) Decision {
	path := u.Path
	c := Classify(path)

	if c.Protected() {
		if _, err := s.Session(ctx); err != nil {
			return sessionFailure("gate.unauthenticated", err)
		}
	}

	switch c {
	case CapAdmin:
		if path == PathMFARequired {
			return allow("gate.admin.mfa_required_page")
		}
		p, err := s.Profile(ctx)
		if err != nil {
			return profileFailure("gate.admin.profile", err)
		}
		if p.Role != domain.RoleAdmin {
			d := roleMismatch(SectionAdmin, p.Role)
			d.Rule = "gate.admin.deny"
			return d
		}
		return adminAssurance(ctx, s, requestURI(u), "gate.admin")

	case CapCandidate, CapRecruiter, CapSchool:
		return allow("gate.section")

	case CapAuthPage:
		if _, err := s.Session(ctx); err != nil {
			return allow("gate.auth_page.anonymous")
		}
		p, err := s.Profile(ctx)
		if err != nil {
			// Showing the login page to a caller we cannot classify is safe.
			return Decision{Allow: true, Rule: "gate.auth_page.unresolved", Err: ignoreNoProfile(err)}
		}
		if home, ok := Home(p.Role); ok {
			return redirect("gate.auth_page.home", home)
		}
		return allow("gate.auth_page.unknown_role")

	case CapMFAChallenge:
		if _, err := s.Session(ctx); err != nil {
			return sessionFailure("gate.mfa_challenge.unauthenticated", err)
		}
		return allow("gate.mfa_challenge")
	}

	return allow("gate.public")
}

// Guard evaluates the page guard for section. requestURI is the original
// path and query, used when the admin guard has to send the caller through a
// challenge.
func (Policy) Guard(ctx context.Context, section Section, requestURI string, s Subject) Decision {
	if _, err := s.Session(ctx); err != nil {
		return sessionFailure("guard.unauthenticated", err)
	}

	p, err := s.Profile(ctx)
	if err != nil {
		return profileFailure("guard.profile", err)
	}

	if !owns(section, p.Role) {
		d := roleMismatch(section, p.Role)
		d.Rule = "guard." + string(section) + ".mismatch"
		return d
	}

	if section == SectionAdmin {
		return adminAssurance(ctx, s, requestURI, "guard.admin")
	}
	return allow("guard." + string(section))
}

// roleMismatch picks where a role that does not own section is sent.
func roleMismatch(section Section, role domain.Role) Decision {
	if role == domain.RoleUnset {
		return redirect("", PathCompleteProfile)
	}
	if home, ok := Home(role); ok {
		return redirect("", home)
	}
	return redirect("", PathLogin)
}

// adminAssurance enforces enrolled MFA and an aal2 session for admin content.
func adminAssurance(ctx context.Context, s Subject, requestURI, rule string) Decision {
	factors, err := s.Factors(ctx)
	if err != nil {
		return failClosed(rule+".factors", err)
	}
	if !domain.Enrolled(factors) {
		return redirect(rule+".not_enrolled", PathMFARequired)
	}

	a, err := s.Assurance(ctx)
	if err != nil {
		return failClosed(rule+".assurance", err)
	}
	if a.Current != domain.AAL2 {
		return redirect(rule+".step_up", ChallengeURL(requestURI))
	}
	return allow(rule)
}

// ChallengeURL is the step-up page that returns to requestURI once satisfied.
func ChallengeURL(requestURI string) string {
	if requestURI == "" {
		return PathMFAVerify
	}
	// '/' is legal in a query value; keeping it makes the target readable.
	return PathMFAVerify + "?redirect=" + strings.ReplaceAll(url.QueryEscape(requestURI), "%2F", "/")
}

func requestURI(u *url.URL) string {
	if u.RawQuery == "" {
		return u.Path
	}
	return u.Path + "?" + u.RawQuery
}

func sessionFailure(rule string, err error) Decision {
	if errors.Is(err, ErrNoSession) {
		return redirect(rule, PathLogin)
	}
	return failClosed(rule, err)
}

func profileFailure(rule string, err error) Decision {
	if errors.Is(err, ErrNoProfile) {
		return redirect(rule+".missing", PathLogin)
	}
	return failClosed(rule, err)
}

func ignoreNoProfile(err error) error {
	if errors.Is(err, ErrNoProfile) {
		return nil
	}
	return err
}
