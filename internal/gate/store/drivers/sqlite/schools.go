package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
)

type schoolsRepo struct {
	db dbtx
}

func (r *schoolsRepo) GetSchoolProfile(ctx context.Context, userID string) (domain.SchoolProfile, error) {
	var (
		p         domain.SchoolProfile
		updatedAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, school_name, website, updated_at FROM school_profiles WHERE user_id = ?`, userID,
	).Scan(&p.UserID, &p.SchoolName, &p.Website, &updatedAt)
	if err != nil {
		return domain.SchoolProfile{}, mapNotFound(err)
	}
	p.UpdatedAt = fromMillis(updatedAt)
	return p, nil
}

func (r *schoolsRepo) UpsertSchoolProfile(ctx context.Context, p domain.SchoolProfile) error {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO school_profiles (user_id, school_name, website, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			school_name = excluded.school_name,
			website = excluded.website,
			updated_at = excluded.updated_at`,
		p.UserID, p.SchoolName, p.Website, toMillis(p.UpdatedAt),
	)
	return err
}
