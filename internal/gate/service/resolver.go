package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/talentgate/internal/gate/access"
	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
	"github.com/aussiebroadwan/talentgate/internal/gate/store"
	"github.com/sony/gobreaker"
)

const defaultLookupTimeout = 2 * time.Second

// SubjectResolver builds per-request access subjects. Every lookup runs
// under its own timeout and through a shared circuit breaker, so a slow or
// failing store turns into an error the policy fails closed on.
type SubjectResolver struct {
	Sessions *SessionService
	Store    store.Store
	Timeout  time.Duration

	breaker *gobreaker.CircuitBreaker
}

func NewSubjectResolver(sessions *SessionService, st store.Store, timeout time.Duration, logger *slog.Logger) *SubjectResolver {
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}
	return &SubjectResolver{
		Sessions: sessions,
		Store:    st,
		Timeout:  timeout,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "gate-store",
			MaxRequests: 100,
			Interval:    5 * time.Second,
			Timeout:     3 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				ratio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && ratio >= 0.6
			},
			// Absent rows are answers, not store failures.
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, store.ErrNotFound) || errors.Is(err, ErrSessionInvalid)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				if logger != nil {
					logger.Warn("circuit breaker state changed",
						slog.String("name", name), slog.String("from", from.String()), slog.String("to", to.String()))
				}
			},
		}),
	}
}

// For returns the subject presenting rawToken. An empty token is anonymous.
func (r *SubjectResolver) For(rawToken string) *Subject {
	return &Subject{r: r, token: rawToken}
}

func (r *SubjectResolver) lookup(ctx context.Context, fn func(ctx context.Context) (any, error)) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()
	if r.breaker == nil {
		return fn(ctx)
	}
	return r.breaker.Execute(func() (any, error) { return fn(ctx) })
}

type memo[T any] struct {
	once sync.Once
	v    T
	err  error
}

func (m *memo[T]) get(fn func() (T, error)) (T, error) {
	m.once.Do(func() { m.v, m.err = fn() })
	return m.v, m.err
}

// Subject is one request's caller. Each lookup runs at most once.
type Subject struct {
	r     *SubjectResolver
	token string

	session memo[domain.Session]
	user    memo[domain.User]
	factors memo[[]domain.Factor]
}

var _ access.Subject = (*Subject)(nil)

func (s *Subject) Session(ctx context.Context) (domain.Session, error) {
	return s.session.get(func() (domain.Session, error) {
		if s.token == "" {
			return domain.Session{}, access.ErrNoSession
		}
		v, err := s.r.lookup(ctx, func(ctx context.Context) (any, error) {
			return s.r.Sessions.Authenticate(ctx, s.token)
		})
		if errors.Is(err, ErrSessionInvalid) {
			return domain.Session{}, access.ErrNoSession
		}
		if err != nil {
			return domain.Session{}, err
		}
		return v.(domain.Session), nil
	})
}

// User is the full account behind the session.
func (s *Subject) User(ctx context.Context) (domain.User, error) {
	return s.user.get(func() (domain.User, error) {
		sess, err := s.Session(ctx)
		if err != nil {
			return domain.User{}, err
		}
		v, err := s.r.lookup(ctx, func(ctx context.Context) (any, error) {
			return s.r.Store.Users().GetUserByID(ctx, sess.UserID)
		})
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, access.ErrNoProfile
		}
		if err != nil {
			return domain.User{}, err
		}
		return v.(domain.User), nil
	})
}

func (s *Subject) Profile(ctx context.Context) (domain.Profile, error) {
	u, err := s.User(ctx)
	if err != nil {
		return domain.Profile{}, err
	}
	return u.Profile(), nil
}

func (s *Subject) Factors(ctx context.Context) ([]domain.Factor, error) {
	return s.factors.get(func() ([]domain.Factor, error) {
		sess, err := s.Session(ctx)
		if err != nil {
			return nil, err
		}
		v, err := s.r.lookup(ctx, func(ctx context.Context) (any, error) {
			return s.r.Store.Factors().ListFactors(ctx, sess.UserID)
		})
		if err != nil {
			return nil, err
		}
		return v.([]domain.Factor), nil
	})
}

func (s *Subject) Assurance(ctx context.Context) (domain.Assurance, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return domain.Assurance{}, err
	}
	factors, err := s.Factors(ctx)
	if err != nil {
		return domain.Assurance{}, err
	}
	return domain.AssuranceOf(sess, factors), nil
}
