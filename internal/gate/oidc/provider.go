// Package oidc exchanges authorization codes from an external identity
// provider for a verified identity.
package oidc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

var (
	ErrInvalidNonce    = errors.New("oidc: nonce mismatch")
	ErrSubjectMismatch = errors.New("oidc: userinfo subject does not match id_token")
)

// Identity is what the gate learns about a federated user.
type Identity struct {
	Issuer        string
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}

// Provider is the external IdP as the callback handler sees it.
type Provider interface {
	// AuthCodeURL builds the redirect to the IdP's consent page.
	AuthCodeURL(state, nonce string) string

	// Exchange trades code for a verified identity, checking nonce.
	Exchange(ctx context.Context, code, nonce string) (Identity, error)
}

type Config struct {
	IssuerURL    string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
	HTTPClient   *http.Client // defaults to a 30s client
}

// provider is the go-oidc backed implementation.
type provider struct {
	config     *oauth2.Config
	verifier   *gooidc.IDTokenVerifier
	op         *gooidc.Provider
	httpClient *http.Client
}

// NewProvider runs discovery against cfg.IssuerURL.
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	switch {
	case cfg.IssuerURL == "":
		return nil, errors.New("oidc: issuer URL is required")
	case cfg.ClientID == "":
		return nil, errors.New("oidc: client ID is required")
	case cfg.ClientSecret == "":
		return nil, errors.New("oidc: client secret is required")
	case cfg.RedirectURL == "":
		return nil, errors.New("oidc: redirect URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	ctx = gooidc.ClientContext(ctx, httpClient)

	issuer := strings.TrimSuffix(cfg.IssuerURL, "/.well-known/openid-configuration")
	op, err := gooidc.NewProvider(ctx, strings.TrimSuffix(issuer, "/"))
	if err != nil {
		return nil, fmt.Errorf("oidc: discovery: %w", err)
	}

	scopes := cfg.Scopes
	if !slices.Contains(scopes, gooidc.ScopeOpenID) {
		scopes = append([]string{gooidc.ScopeOpenID}, scopes...)
	}

	return &provider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint:     op.Endpoint(),
		},
		verifier:   op.Verifier(&gooidc.Config{ClientID: cfg.ClientID}),
		op:         op,
		httpClient: httpClient,
	}, nil
}

func (p *provider) AuthCodeURL(state, nonce string) string {
	return p.config.AuthCodeURL(state, gooidc.Nonce(nonce))
}

type idClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
}

func (p *provider) Exchange(ctx context.Context, code, nonce string) (Identity, error) {
	if code == "" {
		return Identity{}, errors.New("oidc: authorization code is required")
	}
	ctx = gooidc.ClientContext(ctx, p.httpClient)

	tok, err := p.config.Exchange(ctx, code)
	if err != nil {
		return Identity{}, fmt.Errorf("oidc: exchange code: %w", err)
	}

	rawID, ok := tok.Extra("id_token").(string)
	if !ok || rawID == "" {
		return Identity{}, errors.New("oidc: missing id_token in token response")
	}

	idTok, err := p.verifier.Verify(ctx, rawID)
	if err != nil {
		return Identity{}, fmt.Errorf("oidc: verify id_token: %w", err)
	}
	if nonce == "" || idTok.Nonce != nonce {
		return Identity{}, ErrInvalidNonce
	}

	var c idClaims
	if err := idTok.Claims(&c); err != nil {
		return Identity{}, fmt.Errorf("oidc: decode claims: %w", err)
	}

	if c.Email == "" {
		// Some IdPs only release email through userinfo.
		ui, err := p.op.UserInfo(ctx, oauth2.StaticTokenSource(tok))
		if err != nil {
			return Identity{}, fmt.Errorf("oidc: userinfo: %w", err)
		}
		if ui.Subject != idTok.Subject {
			return Identity{}, ErrSubjectMismatch
		}
		c.Email, c.EmailVerified = ui.Email, ui.EmailVerified
	}
	if c.Email == "" {
		return Identity{}, errors.New("oidc: identity has no email")
	}

	name := c.Name
	if name == "" {
		name = strings.TrimSpace(c.GivenName + " " + c.FamilyName)
	}

	return Identity{
		Issuer:        idTok.Issuer,
		Subject:       idTok.Subject,
		Email:         strings.ToLower(c.Email),
		EmailVerified: c.EmailVerified,
		Name:          name,
	}, nil
}
