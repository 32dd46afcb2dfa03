package gatesdk

import "time"

// LoginRequest is accepted as JSON or as a form post.
type LoginRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"correct horse battery"`
	Redirect string `json:"redirect,omitempty" example:"/candidate/jobs"`
}

type SignupRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"correct horse battery"`
	FullName string `json:"full_name" example:"Alice Example"`
}

type CompleteProfileRequest struct {
	Role string `json:"role" example:"candidate" enums:"candidate,recruiter"`
}

// PageResponse describes a form page and what it accepts.
type PageResponse struct {
	Page    string   `json:"page" example:"login"`
	Actions []string `json:"actions,omitempty"`
	Choices []string `json:"choices,omitempty"`
}

// Assurance mirrors the session's assurance pair.
type Assurance struct {
	Current string `json:"current_level" example:"aal1"`
	Next    string `json:"next_level" example:"aal2"`
}

type MFAStateResponse struct {
	Enrolled  bool      `json:"enrolled"`
	Assurance Assurance `json:"assurance"`
	Role      string    `json:"role,omitempty" example:"admin"`
}

// TOTPEnrollResponse carries the secret once; it is never shown again.
type TOTPEnrollResponse struct {
	FactorID string `json:"factor_id"`
	Secret   string `json:"secret" example:"JBSWY3DPEHPK3PXP"`
	QRCode   string `json:"qr_code" example:"otpauth://totp/Talentgate:alice@example.com?secret=JBSWY3DPEHPK3PXP&issuer=Talentgate"`
	Issuer   string `json:"issuer" example:"Talentgate"`
	Account  string `json:"account" example:"alice@example.com"`
}

type TOTPCodeRequest struct {
	Code string `json:"code" example:"123456"`
}

// ChallengeResponse is returned by GET /mfa-verify.
type ChallengeResponse struct {
	ChallengeID string    `json:"challenge_id"`
	ExpiresAt   time.Time `json:"expires_at"`
	Redirect    string    `json:"redirect,omitempty" example:"/admin"`
}

// ChallengeVerifyRequest is accepted as JSON or as a form post.
type ChallengeVerifyRequest struct {
	ChallengeID string `json:"challenge_id"`
	Code        string `json:"code" example:"123456"`
	Redirect    string `json:"redirect,omitempty" example:"/admin"`
}

type PreferenceRequest struct {
	Value string `json:"value" example:"true"`
}

type PreferenceResponse struct {
	Key       string     `json:"key" example:"mfa_banner_dismissed"`
	Value     string     `json:"value" example:"true"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type Profile struct {
	UserID        string `json:"user_id"`
	Email         string `json:"email"`
	FullName      string `json:"full_name"`
	Role          string `json:"role"`
	Approved      bool   `json:"approved"`
	EmailVerified bool   `json:"email_verified"`
}

type SchoolProfile struct {
	SchoolName string `json:"school_name"`
	Website    string `json:"website,omitempty"`
}

// SectionResponse is the shell of a guarded section.
type SectionResponse struct {
	Section          string         `json:"section" example:"admin"`
	Profile          Profile        `json:"profile"`
	PendingApprovals *int           `json:"pending_approvals,omitempty"`
	School           *SchoolProfile `json:"school,omitempty"`
	Approved         *bool          `json:"approved,omitempty"`
	ShowMFABanner    bool           `json:"show_mfa_banner"`
}

type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime" example:"1h2m3s"`
	Version string        `json:"version" example:"0.1.0"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database    string `json:"database" example:"ok"`
	Signer      string `json:"signer" example:"ok"`
	Preferences string `json:"preferences,omitempty" example:"ok"`
}
