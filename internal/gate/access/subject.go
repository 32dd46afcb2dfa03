package access

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
)

var (
	// ErrNoSession means the request carries no usable session.
	ErrNoSession = errors.New("access: no session")

	// ErrNoProfile means the session's user has no profile row.
	ErrNoProfile = errors.New("access: no profile")
)

// Subject is the caller of one request. Implementations resolve lazily and
// memoise per request; the policy only asks for what the current rule needs.
// Any error other than the sentinels above is a collaborator failure.
type Subject interface {
	// Session returns ErrNoSession when the caller is anonymous.
	Session(ctx context.Context) (domain.Session, error)

	// Profile returns ErrNoProfile when the user has no profile row.
	Profile(ctx context.Context) (domain.Profile, error)

	// Factors lists the user's MFA factors, verified or not.
	Factors(ctx context.Context) ([]domain.Factor, error)

	// Assurance reports the session's current and next assurance levels.
	Assurance(ctx context.Context) (domain.Assurance, error)
}
