package domain

import (
	"slices"
	"time"
)

// Authenticator Assurance Level of a session.
type AAL string

const (
	AAL1 AAL = "aal1"
	AAL2 AAL = "aal2"

	// AALNone is only ever a NextLevel: nothing further can be reached.
	AALNone AAL = "none"
)

// Authentication Method References recorded on a session.
const (
	AMRPassword = "pwd"
	AMROIDC     = "oidc"
	AMRTOTP     = "otp"
	AMRMFA      = "mfa"
)

type Session struct {
	ID        string
	UserID    string
	AAL       AAL
	AMR       []string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// Active reports whether the session can still authenticate requests at now.
func (s Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// Elevate returns s raised to aal2 with the otp/mfa methods appended once.
func (s Session) Elevate() Session {
	s.AAL = AAL2
	amr := slices.Clone(s.AMR)
	for _, m := range []string{AMRTOTP, AMRMFA} {
		if !slices.Contains(amr, m) {
			amr = append(amr, m)
		}
	}
	s.AMR = amr
	return s
}
