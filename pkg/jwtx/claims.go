package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL bounds the session cookie's lifetime.
const DefaultSessionTTL = 12 * time.Hour

// Claims are carried in the session cookie. They only identify the session;
// assurance level, methods, and revocation live server side on the session
// row so step-up does not require a new cookie.
type Claims struct {
	jwt.RegisteredClaims

	// Session ID
	SID string `json:"sid"`
}

// NewClaims builds claims for subject bound to session sid.
func NewClaims(issuer, subject, sid string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{issuer},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        sid,
		},
		SID: sid,
	}
}
