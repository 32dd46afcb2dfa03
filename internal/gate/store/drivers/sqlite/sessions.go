package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
)

type sessionsRepo struct {
	db dbtx
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	if s.AAL == "" {
		s.AAL = domain.AAL1
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, aal, amr, expires_at, revoked_at, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.UserID, string(s.AAL), strings.Join(s.AMR, " "),
		toMillis(s.ExpiresAt), mapOptionalMillis(s.RevokedAt), toMillis(s.CreatedAt),
	)
	return mapWriteErr(err)
}

func (r *sessionsRepo) GetSession(ctx context.Context, id string) (domain.Session, error) {
	var (
		s                    domain.Session
		aal, amr             string
		expiresAt, createdAt int64
		revokedAt            sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, aal, amr, expires_at, revoked_at, created_at FROM sessions WHERE id = ?`, id,
	).Scan(&s.ID, &s.UserID, &aal, &amr, &expiresAt, &revokedAt, &createdAt)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}

	s.AAL = domain.AAL(aal)
	s.AMR = splitFields(amr)
	s.ExpiresAt = fromMillis(expiresAt)
	s.RevokedAt = mapNullMillis(revokedAt)
	s.CreatedAt = fromMillis(createdAt)
	return s, nil
}

func (r *sessionsRepo) ElevateSession(ctx context.Context, id string, aal domain.AAL, amr []string) error {
	return requireOne(r.db.ExecContext(ctx,
		`UPDATE sessions SET aal = ?, amr = ? WHERE id = ? AND revoked_at IS NULL`,
		string(aal), strings.Join(amr, " "), id,
	))
}

func (r *sessionsRepo) RevokeSession(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET revoked_at = ? WHERE id = ? AND revoked_at IS NULL`,
		toMillis(time.Now()), id,
	)
	return err
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context, t time.Time) (int64, error) {
	ms := toMillis(t)
	return rowsAffected(r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ? OR (revoked_at IS NOT NULL AND revoked_at < ?)`, ms, ms,
	))
}
