package domain

import "time"

type FactorStatus string

const (
	FactorUnverified FactorStatus = "unverified"
	FactorVerified   FactorStatus = "verified"
)

const FactorTypeTOTP = "totp"

// Factor is a TOTP authenticator bound to a user. Secret is sealed at rest.
type Factor struct {
	ID           string
	UserID       string
	Type         string
	Secret       string
	Status       FactorStatus
	FriendlyName string
	CreatedAt    time.Time
	VerifiedAt   *time.Time
}

// Challenge is a pending step-up for one session against one factor.
type Challenge struct {
	ID        string
	FactorID  string
	UserID    string
	SessionID string
	Attempts  int // max 5
	ExpiresAt time.Time
	CreatedAt time.Time
}

// MaxChallengeAttempts bounds failed codes per challenge.
const MaxChallengeAttempts = 5

// Per-user bound on failed codes across every challenge and session. The
// count restarts once MFALockoutWindow passes without a failure.
const (
	MaxMFAFailures   = 10
	MFALockoutWindow = 15 * time.Minute
)

// MFAFailures counts a user's recent wrong codes.
type MFAFailures struct {
	UserID        string
	Count         int
	LastFailureAt time.Time
}

// Locked reports whether code checks are refused at now.
func (f MFAFailures) Locked(now time.Time) bool {
	return f.Count >= MaxMFAFailures && now.Sub(f.LastFailureAt) < MFALockoutWindow
}

// Assurance is the session's current and reachable level.
type Assurance struct {
	Current AAL `json:"current_level"`
	Next    AAL `json:"next_level"`
}

// ElevationPending reports a session that must complete a challenge.
func (a Assurance) ElevationPending() bool {
	return a.Current == AAL1 && a.Next == AAL2
}

// MFAState is what the access layer needs to know about a user's factors.
type MFAState struct {
	Enrolled  bool      `json:"enrolled"`
	Assurance Assurance `json:"assurance"`
}

// MFAEnrollment is returned when a TOTP enrollment starts.
type MFAEnrollment struct {
	FactorID string `json:"factor_id"`
	Secret   string `json:"secret"`  // base32
	QRCode   string `json:"qr_code"` // otpauth:// URL
	Issuer   string `json:"issuer"`
	Account  string `json:"account"`
}

// Enrolled reports whether any factor in fs is verified.
func Enrolled(fs []Factor) bool {
	for _, f := range fs {
		if f.Status == FactorVerified {
			return true
		}
	}
	return false
}

// AssuranceOf derives the assurance pair for s. The next level is aal2 once
// any factor is verified, otherwise aal1.
func AssuranceOf(s Session, factors []Factor) Assurance {
	cur := s.AAL
	if cur == "" {
		cur = AAL1
	}
	next := AAL1
	if Enrolled(factors) {
		next = AAL2
	}
	return Assurance{Current: cur, Next: next}
}
