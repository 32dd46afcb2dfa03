package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrConflict is returned when a conditional update finds the row in an
	// unexpected state (e.g. a role that is already set).
	ErrConflict = errors.New("store: conflicting state")
)

// Store is the root data access interface. Sub-repositories are methods so a
// Tx-scoped Store can hand out repos bound to the transaction, and so nested
// transactions are impossible to start by accident.
type Store interface {
	Users() Users
	Sessions() Sessions
	Factors() Factors
	Challenges() Challenges
	Schools() Schools
	Preferences() Preferences

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail matches case-insensitively.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByIdentity resolves a linked IdP subject.
	GetUserByIdentity(ctx context.Context, issuer, subject string) (domain.User, error)

	// LinkIdentity records id. Returns ErrAlreadyExists when the subject is
	// already linked or the user already has a subject at that issuer.
	LinkIdentity(ctx context.Context, id domain.FederatedIdentity) error

	// SetRoleIfUnset assigns role only while the stored role is unset.
	// Returns ErrConflict if a role was already present.
	SetRoleIfUnset(ctx context.Context, userID string, role domain.Role) error

	// SetApproved marks a recruiter approved. Returns ErrNotFound when the
	// user does not exist or is not a recruiter.
	SetApproved(ctx context.Context, userID string) error

	// CountPendingRecruiters counts recruiters awaiting approval.
	CountPendingRecruiters(ctx context.Context) (int, error)

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Sessions interface {
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSession returns the row regardless of expiry; callers check Active.
	GetSession(ctx context.Context, id string) (domain.Session, error)

	// ElevateSession sets aal and amr on an unrevoked session.
	ElevateSession(ctx context.Context, id string, aal domain.AAL, amr []string) error

	RevokeSession(ctx context.Context, id string) error

	// DeleteExpiredSessions removes sessions expired or revoked before t.
	DeleteExpiredSessions(ctx context.Context, t time.Time) (int64, error)
}

type Factors interface {
	CreateFactor(ctx context.Context, f domain.Factor) error
	GetFactor(ctx context.Context, id string) (domain.Factor, error)

	// ListFactors returns every factor for userID, oldest first.
	ListFactors(ctx context.Context, userID string) ([]domain.Factor, error)

	MarkFactorVerified(ctx context.Context, id string, at time.Time) error
	DeleteFactor(ctx context.Context, id string) error

	// DeleteUnverifiedFactors drops pending enrollments for userID.
	DeleteUnverifiedFactors(ctx context.Context, userID string) (int64, error)

	// DeleteStaleUnverifiedFactors drops pending enrollments created before t.
	DeleteStaleUnverifiedFactors(ctx context.Context, t time.Time) (int64, error)

	// GetMFAFailures returns a zero count when the user has none recorded.
	GetMFAFailures(ctx context.Context, userID string) (domain.MFAFailures, error)

	// RecordMFAFailure bumps the user's counter, restarting it at one when
	// the previous failure is older than resetBefore.
	RecordMFAFailure(ctx context.Context, userID string, at, resetBefore time.Time) (domain.MFAFailures, error)

	ResetMFAFailures(ctx context.Context, userID string) error

	// DeleteStaleMFAFailures drops counters last bumped before t.
	DeleteStaleMFAFailures(ctx context.Context, t time.Time) (int64, error)
}

type Challenges interface {
	CreateChallenge(ctx context.Context, c domain.Challenge) error
	GetChallenge(ctx context.Context, id string) (domain.Challenge, error)

	// IncrementChallengeAttempts bumps the failure counter and returns the
	// updated row.
	IncrementChallengeAttempts(ctx context.Context, id string) (domain.Challenge, error)

	DeleteChallenge(ctx context.Context, id string) error

	// DeleteSessionChallenges drops every challenge bound to sessionID.
	DeleteSessionChallenges(ctx context.Context, sessionID string) error

	DeleteExpiredChallenges(ctx context.Context, t time.Time) (int64, error)
}

type Schools interface {
	GetSchoolProfile(ctx context.Context, userID string) (domain.SchoolProfile, error)
	UpsertSchoolProfile(ctx context.Context, p domain.SchoolProfile) error
}

// Preferences is small per-user key/value state. It has its own interface
// so a non-relational backend can serve it.
type Preferences interface {
	GetPreference(ctx context.Context, userID, key string) (domain.Preference, error)
	SetPreference(ctx context.Context, p domain.Preference) error
}
