package jwtx

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrUnknownKID = errors.New("jwtx: unknown kid")
	ErrExpired    = errors.New("jwtx: token expired")
	ErrInvalid    = errors.New("jwtx: invalid token")
)

// Signer issues and verifies EdDSA session tokens with one Ed25519 key.
type Signer struct {
	kid    string
	key    ed25519.PrivateKey
	pub    ed25519.PublicKey
	issuer string
	leeway time.Duration
}

// NewSigner wraps key. The kid is derived from the public key so restarting
// with the same key keeps existing cookies valid.
func NewSigner(key ed25519.PrivateKey, issuer string) (*Signer, error) {
	if len(key) != ed25519.PrivateKeySize {
		return nil, errors.New("jwtx: invalid Ed25519 private key size")
	}
	if issuer == "" {
		return nil, errors.New("jwtx: issuer required")
	}

	pub := key.Public().(ed25519.PublicKey)
	sum := sha256.Sum256(pub)

	return &Signer{
		kid:    base64.RawURLEncoding.EncodeToString(sum[:8]),
		key:    key,
		pub:    pub,
		issuer: issuer,
		leeway: 30 * time.Second,
	}, nil
}

func (s *Signer) KID() string    { return s.kid }
func (s *Signer) Issuer() string { return s.issuer }

// Sign serialises claims with the kid header set.
func (s *Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}

// Verify checks signature, algorithm, issuer, audience, and expiry.
func (s *Signer) Verify(raw string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(s.leeway),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid != s.kid {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKID, kid)
		}
		return s.pub, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenMalformed):
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return Claims{}, ErrExpired
	default:
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if claims.SID == "" || claims.Subject == "" {
		return Claims{}, fmt.Errorf("%w: missing sid or sub", ErrInvalid)
	}
	return claims, nil
}
