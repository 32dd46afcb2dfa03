package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
)

type preferencesRepo struct {
	db dbtx
}

func (r *preferencesRepo) GetPreference(ctx context.Context, userID, key string) (domain.Preference, error) {
	p := domain.Preference{UserID: userID, Key: key}
	var updatedAt int64
	err := r.db.QueryRowContext(ctx,
		`SELECT value, updated_at FROM preferences WHERE user_id = ? AND key = ?`, userID, key,
	).Scan(&p.Value, &updatedAt)
	if err != nil {
		return domain.Preference{}, mapNotFound(err)
	}
	p.UpdatedAt = fromMillis(updatedAt)
	return p, nil
}

func (r *preferencesRepo) SetPreference(ctx context.Context, p domain.Preference) error {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO preferences (user_id, key, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		p.UserID, p.Key, p.Value, toMillis(p.UpdatedAt),
	)
	return err
}
