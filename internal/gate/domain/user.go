package domain

import "time"

type User struct {
	ID            string
	Email         string
	FullName      string
	PasswordHash  string // argon2 encoded; empty for federated accounts
	Role          Role
	Approved      bool // recruiters need an admin to approve them
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FederatedIdentity links an IdP subject to a local user. A user has at most
// one subject per issuer.
type FederatedIdentity struct {
	Issuer    string
	Subject   string
	UserID    string
	CreatedAt time.Time
}

// Profile is the read model the access layer consumes.
type Profile struct {
	UserID        string `json:"user_id"`
	Email         string `json:"email"`
	FullName      string `json:"full_name"`
	Role          Role   `json:"role"`
	Approved      bool   `json:"approved"`
	EmailVerified bool   `json:"email_verified"`
}

func (u User) Profile() Profile {
	return Profile{
		UserID:        u.ID,
		Email:         u.Email,
		FullName:      u.FullName,
		Role:          u.Role,
		Approved:      u.Approved,
		EmailVerified: u.EmailVerified,
	}
}

type SchoolProfile struct {
	UserID     string    `json:"user_id"`
	SchoolName string    `json:"school_name"`
	Website    string    `json:"website,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}
