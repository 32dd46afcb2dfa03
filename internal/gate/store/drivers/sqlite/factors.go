package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
)

type factorsRepo struct {
	db dbtx
}

const factorColumns = `id, user_id, type, secret, status, friendly_name, created_at, verified_at`

func scanFactor(row interface{ Scan(...any) error }) (domain.Factor, error) {
	var (
		f          domain.Factor
		status     string
		createdAt  int64
		verifiedAt sql.NullInt64
	)
	if err := row.Scan(&f.ID, &f.UserID, &f.Type, &f.Secret, &status, &f.FriendlyName, &createdAt, &verifiedAt); err != nil {
		return domain.Factor{}, mapNotFound(err)
	}
	f.Status = domain.FactorStatus(status)
	f.CreatedAt = fromMillis(createdAt)
	f.VerifiedAt = mapNullMillis(verifiedAt)
	return f, nil
}

func (r *factorsRepo) CreateFactor(ctx context.Context, f domain.Factor) error {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
	if f.Type == "" {
		f.Type = domain.FactorTypeTOTP
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO mfa_factors (`+factorColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.UserID, f.Type, f.Secret, string(f.Status), f.FriendlyName,
		toMillis(f.CreatedAt), mapOptionalMillis(f.VerifiedAt),
	)
	return mapWriteErr(err)
}

func (r *factorsRepo) GetFactor(ctx context.Context, id string) (domain.Factor, error) {
	return scanFactor(r.db.QueryRowContext(ctx, `SELECT `+factorColumns+` FROM mfa_factors WHERE id = ?`, id))
}

func (r *factorsRepo) ListFactors(ctx context.Context, userID string) ([]domain.Factor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+factorColumns+` FROM mfa_factors WHERE user_id = ? ORDER BY created_at, id`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Factor
	for rows.Next() {
		f, err := scanFactor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *factorsRepo) MarkFactorVerified(ctx context.Context, id string, at time.Time) error {
	return requireOne(r.db.ExecContext(ctx,
		`UPDATE mfa_factors SET status = ?, verified_at = ? WHERE id = ? AND status = ?`,
		string(domain.FactorVerified), toMillis(at), id, string(domain.FactorUnverified),
	))
}

func (r *factorsRepo) DeleteFactor(ctx context.Context, id string) error {
	return requireOne(r.db.ExecContext(ctx, `DELETE FROM mfa_factors WHERE id = ?`, id))
}

func (r *factorsRepo) DeleteUnverifiedFactors(ctx context.Context, userID string) (int64, error) {
	return rowsAffected(r.db.ExecContext(ctx,
		`DELETE FROM mfa_factors WHERE user_id = ? AND status = ?`, userID, string(domain.FactorUnverified),
	))
}

func (r *factorsRepo) DeleteStaleUnverifiedFactors(ctx context.Context, t time.Time) (int64, error) {
	return rowsAffected(r.db.ExecContext(ctx,
		`DELETE FROM mfa_factors WHERE status = ? AND created_at < ?`, string(domain.FactorUnverified), toMillis(t),
	))
}

func (r *factorsRepo) GetMFAFailures(ctx context.Context, userID string) (domain.MFAFailures, error) {
	out := domain.MFAFailures{UserID: userID}
	var last int64
	err := r.db.QueryRowContext(ctx,
		`SELECT failures, last_failure_at FROM mfa_failures WHERE user_id = ?`, userID,
	).Scan(&out.Count, &last)
	if errors.Is(err, sql.ErrNoRows) {
		return out, nil
	}
	if err != nil {
		return domain.MFAFailures{}, err
	}
	out.LastFailureAt = fromMillis(last)
	return out, nil
}

func (r *factorsRepo) RecordMFAFailure(ctx context.Context, userID string, at, resetBefore time.Time) (domain.MFAFailures, error) {
	out := domain.MFAFailures{UserID: userID}
	var last int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO mfa_failures (user_id, failures, last_failure_at) VALUES (?, 1, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
		     failures = CASE WHEN mfa_failures.last_failure_at < ? THEN 1 ELSE mfa_failures.failures + 1 END,
		     last_failure_at = excluded.last_failure_at
		 RETURNING failures, last_failure_at`,
		userID, toMillis(at), toMillis(resetBefore),
	).Scan(&out.Count, &last)
	if err != nil {
		return domain.MFAFailures{}, err
	}
	out.LastFailureAt = fromMillis(last)
	return out, nil
}

func (r *factorsRepo) ResetMFAFailures(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM mfa_failures WHERE user_id = ?`, userID)
	return err
}

func (r *factorsRepo) DeleteStaleMFAFailures(ctx context.Context, t time.Time) (int64, error) {
	return rowsAffected(r.db.ExecContext(ctx, `DELETE FROM mfa_failures WHERE last_failure_at < ?`, toMillis(t)))
}
