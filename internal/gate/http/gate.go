package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/talentgate/internal/gate/access"
	"github.com/aussiebroadwan/talentgate/internal/gate/service"
	"github.com/aussiebroadwan/talentgate/pkg/gatesdk"
	"github.com/aussiebroadwan/talentgate/pkg/httpx"
	"github.com/aussiebroadwan/talentgate/pkg/slogx"
)

type ctxKey string

const ctxKeySubject ctxKey = "subject"

func withSubject(ctx context.Context, s *service.Subject) context.Context {
	return context.WithValue(ctx, ctxKeySubject, s)
}

func subjectFrom(ctx context.Context) *service.Subject {
	s, _ := ctx.Value(ctxKeySubject).(*service.Subject)
	return s
}

// GateMiddleware resolves the caller from the session cookie and applies the
// edge policy before any handler runs. The resolved subject is placed in the
// context so handlers and guards reuse the same memoised lookups.
func GateMiddleware(policy access.Policy, resolver *service.SubjectResolver, cookies CookieConfig) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject := resolver.For(cookies.read(r))
			ctx := withSubject(r.Context(), subject)

			d := policy.Gate(ctx, r.URL, subject)
			logDecision(ctx, d)
			if !d.Allow {
				httpx.SeeOther(w, r, d.Target)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func logDecision(ctx context.Context, d access.Decision) {
	log := slogx.FromContext(ctx)
	if d.Err != nil {
		log.Warn("access lookup failed", slog.String("rule", d.Rule), slog.String("target", d.Target), slog.Any("err", d.Err))
		return
	}
	if !d.Allow {
		log.Debug("access redirect", slog.String("rule", d.Rule), slog.String("target", d.Target))
	}
}

// RequireSession rejects API calls without an active session and records the
// session and user ids for rate limiting and logs.
func RequireSession() httpx.Middleware {
	return requireSession(func(w http.ResponseWriter, _ *http.Request) {
		gatesdk.ErrUnauthenticated.WriteError(w)
	})
}

// RequirePageSession is RequireSession for pages: anonymous callers are sent
// to the login page like everywhere else.
func RequirePageSession() httpx.Middleware {
	return requireSession(func(w http.ResponseWriter, r *http.Request) {
		httpx.SeeOther(w, r, access.PathLogin)
	})
}

func requireSession(reject http.HandlerFunc) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			subject := subjectFrom(ctx)
			if subject == nil {
				reject(w, r)
				return
			}

			sess, err := subject.Session(ctx)
			if err != nil {
				if !errors.Is(err, access.ErrNoSession) {
					slogx.FromContext(ctx).Warn("session lookup failed", slog.Any("err", err))
				}
				reject(w, r)
				return
			}

			ctx = httpx.WithSessionID(ctx, sess.ID)
			ctx = httpx.WithUserID(ctx, sess.UserID)
			ctx = slogx.With(ctx, slog.String("user_id", sess.UserID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
