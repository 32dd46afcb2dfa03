// Package mocks holds gomock doubles for the gate's collaborator contracts.
//
// Regenerate after interface changes with:
//
//	go generate ./internal/mocks
package mocks

// Subject is the per-request caller the access policy evaluates:
// Session, Profile, Factors, Assurance
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=subject_mock.go github.com/aussiebroadwan/talentgate/internal/gate/access Subject

// Provider is the external identity provider used by the OIDC callback:
// AuthCodeURL, Exchange
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=provider_mock.go github.com/aussiebroadwan/talentgate/internal/gate/oidc Provider

// Sender delivers transactional email:
// Send
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=sender_mock.go github.com/aussiebroadwan/talentgate/internal/gate/notify Sender
