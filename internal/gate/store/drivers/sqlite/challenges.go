package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
)

type challengesRepo struct {
	db dbtx
}

const challengeColumns = `id, factor_id, user_id, session_id, attempts, expires_at, created_at`

func scanChallenge(row interface{ Scan(...any) error }) (domain.Challenge, error) {
	var (
		c                    domain.Challenge
		expiresAt, createdAt int64
	)
	if err := row.Scan(&c.ID, &c.FactorID, &c.UserID, &c.SessionID, &c.Attempts, &expiresAt, &createdAt); err != nil {
		return domain.Challenge{}, mapNotFound(err)
	}
	c.ExpiresAt = fromMillis(expiresAt)
	c.CreatedAt = fromMillis(createdAt)
	return c, nil
}

func (r *challengesRepo) CreateChallenge(ctx context.Context, c domain.Challenge) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO mfa_challenges (`+challengeColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.FactorID, c.UserID, c.SessionID, c.Attempts, toMillis(c.ExpiresAt), toMillis(c.CreatedAt),
	)
	return mapWriteErr(err)
}

func (r *challengesRepo) GetChallenge(ctx context.Context, id string) (domain.Challenge, error) {
	return scanChallenge(r.db.QueryRowContext(ctx, `SELECT `+challengeColumns+` FROM mfa_challenges WHERE id = ?`, id))
}

func (r *challengesRepo) IncrementChallengeAttempts(ctx context.Context, id string) (domain.Challenge, error) {
	return scanChallenge(r.db.QueryRowContext(ctx,
		`UPDATE mfa_challenges SET attempts = attempts + 1 WHERE id = ? RETURNING `+challengeColumns, id,
	))
}

func (r *challengesRepo) DeleteChallenge(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM mfa_challenges WHERE id = ?`, id)
	return err
}

func (r *challengesRepo) DeleteSessionChallenges(ctx context.Context, sessionID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM mfa_challenges WHERE session_id = ?`, sessionID)
	return err
}

func (r *challengesRepo) DeleteExpiredChallenges(ctx context.Context, t time.Time) (int64, error) {
	return rowsAffected(r.db.ExecContext(ctx, `DELETE FROM mfa_challenges WHERE expires_at < ?`, toMillis(t)))
}
