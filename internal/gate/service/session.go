package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
	"github.com/aussiebroadwan/talentgate/internal/gate/store"
	"github.com/aussiebroadwan/talentgate/pkg/idx"
	"github.com/aussiebroadwan/talentgate/pkg/jwtx"
)

// ErrSessionInvalid covers every reason a presented token cannot
// authenticate: bad signature, expiry, revocation, or a missing row.
var ErrSessionInvalid = errors.New("session invalid")

type SessionService struct {
	Store  store.Store
	Signer *jwtx.Signer
	TTL    time.Duration

	now func() time.Time
}

func (s *SessionService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL <= 0 {
		return jwtx.DefaultSessionTTL
	}
	return s.TTL
}

// Issue opens an aal1 session for userID and returns its signed token.
func (s *SessionService) Issue(ctx context.Context, userID string, amr []string) (string, domain.Session, error) {
	now := s.clock()
	sess := domain.Session{
		ID:        idx.New().String(),
		UserID:    userID,
		AAL:       domain.AAL1,
		AMR:       amr,
		ExpiresAt: now.Add(s.ttl()),
		CreatedAt: now,
	}
	if err := s.Store.Sessions().CreateSession(ctx, sess); err != nil {
		return "", domain.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.Signer.Sign(jwtx.NewClaims(s.Signer.Issuer(), userID, sess.ID, s.ttl(), now))
	if err != nil {
		return "", domain.Session{}, fmt.Errorf("failed to sign session: %w", err)
	}
	return token, sess, nil
}

// Authenticate resolves raw to an active session. Token problems and
// missing/inactive rows return ErrSessionInvalid; store failures are
// returned as-is so callers can fail closed.
func (s *SessionService) Authenticate(ctx context.Context, raw string) (domain.Session, error) {
	if raw == "" {
		return domain.Session{}, ErrSessionInvalid
	}
	claims, err := s.Signer.Verify(raw)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", ErrSessionInvalid, err)
	}

	sess, err := s.Store.Sessions().GetSession(ctx, claims.SID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Session{}, ErrSessionInvalid
	}
	if err != nil {
		return domain.Session{}, err
	}

	if sess.UserID != claims.Subject || !sess.Active(s.clock()) {
		return domain.Session{}, ErrSessionInvalid
	}
	return sess, nil
}

// SignOut revokes the session and any challenge pending on it.
func (s *SessionService) SignOut(ctx context.Context, sessionID string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Challenges().DeleteSessionChallenges(ctx, sessionID); err != nil {
			return err
		}
		return tx.Sessions().RevokeSession(ctx, sessionID)
	})
}
