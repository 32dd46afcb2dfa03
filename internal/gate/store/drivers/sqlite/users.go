package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
	"github.com/aussiebroadwan/talentgate/internal/gate/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, email, full_name, password_hash, role, approved, email_verified, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var (
		u                    domain.User
		hash, role           sql.NullString
		createdAt, updatedAt int64
	)
	if err := row.Scan(&u.ID, &u.Email, &u.FullName, &hash, &role, &u.Approved, &u.EmailVerified, &createdAt, &updatedAt); err != nil {
		return domain.User{}, mapNotFound(err)
	}

	// Unknown stored roles are kept verbatim so the access layer can reject them.
	u.Role, _ = domain.ParseRole(mapNullString(role))
	u.PasswordHash = mapNullString(hash)
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.FullName, mapStringNull(u.PasswordHash), mapStringNull(string(u.Role)),
		u.Approved, u.EmailVerified, toMillis(u.CreatedAt), toMillis(u.UpdatedAt),
	)
	return mapWriteErr(err)
}

func (r *usersRepo) GetUserByIdentity(ctx context.Context, issuer, subject string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+prefixed("u.", userColumns)+` FROM users u
		 JOIN federated_identities fi ON fi.user_id = u.id
		 WHERE fi.issuer = ? AND fi.subject = ?`,
		issuer, subject,
	))
}

func (r *usersRepo) LinkIdentity(ctx context.Context, id domain.FederatedIdentity) error {
	if id.CreatedAt.IsZero() {
		id.CreatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO federated_identities (issuer, subject, user_id, created_at) VALUES (?, ?, ?, ?)`,
		id.Issuer, id.Subject, id.UserID, toMillis(id.CreatedAt),
	)
	return mapWriteErr(err)
}

func (r *usersRepo) SetRoleIfUnset(ctx context.Context, userID string, role domain.Role) error {
	err := requireOne(r.db.ExecContext(ctx,
		`UPDATE users SET role = ?, updated_at = ? WHERE id = ? AND (role IS NULL OR role = '')`,
		string(role), toMillis(time.Now()), userID,
	))
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	// Distinguish a missing user from one whose role is already set.
	if _, getErr := r.GetUserByID(ctx, userID); getErr != nil {
		return getErr
	}
	return store.ErrConflict
}

func (r *usersRepo) SetApproved(ctx context.Context, userID string) error {
	return requireOne(r.db.ExecContext(ctx,
		`UPDATE users SET approved = 1, updated_at = ? WHERE id = ? AND role = ?`,
		toMillis(time.Now()), userID, string(domain.RoleRecruiter),
	))
}

func (r *usersRepo) CountPendingRecruiters(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE role = ? AND approved = 0`, string(domain.RoleRecruiter),
	).Scan(&n)
	return n, err
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users)`).Scan(&exists); err != nil {
		return false, err
	}
	return !exists, nil
}

// prefixed qualifies each column in a comma-separated list.
func prefixed(prefix, columns string) string {
	cols := strings.Split(columns, ", ")
	for i, c := range cols {
		cols[i] = prefix + c
	}
	return strings.Join(cols, ", ")
}
