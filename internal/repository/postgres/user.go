package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/user"
)

// UserRepo implements user.Repository against PostgreSQL.
type UserRepo struct{ db *sql.DB }

// NewUserRepo creates a Postgres-backed user repository.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = `u.id, u.organization_id, u.role_id, r.name,
	       u.full_name, u.email, COALESCE(u.phone,''), u.password_hash,
	       u.status, COALESCE(u.jti,''), u.deleted_at, u.created_at, u.updated_at`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(
		&u.ID, &u.OrganizationID, &u.RoleID, &u.RoleName,
		&u.FullName, &u.Email, &u.Phone, &u.PasswordHash,
		&u.Status, &u.JTI, &u.DeletedAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepo) Get(ctx context.Context, id string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.id = $1 AND u.deleted_at IS NULL
	`, id))
	if err == sql.ErrNoRows {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE lower(u.email) = lower($1) AND u.deleted_at IS NULL
	`, email))
	if err == sql.ErrNoRows {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (r *UserRepo) List(ctx context.Context, orgID string) ([]domain.User, error) {
	return r.list(ctx, orgID, "")
}

func (r *UserRepo) ListByRole(ctx context.Context, orgID string, roleName string) ([]domain.User, error) {
	return r.list(ctx, orgID, roleName)
}

func (r *UserRepo) list(ctx context.Context, orgID, roleName string) ([]domain.User, error) {
	q := `
		SELECT ` + userColumns + `
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.organization_id = $1 AND u.deleted_at IS NULL`
	args := []any{orgID}
	if roleName != "" {
		q += ` AND r.name = $2`
		args = append(args, roleName)
	}
	q += ` ORDER BY u.created_at`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email string, excludeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE lower(email) = lower($1) AND deleted_at IS NULL AND id <> $2
		)
	`, email, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("user email check: %w", err)
	}
	return exists, nil
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) (string, error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users
			(id, organization_id, role_id, full_name, email, phone,
			 password_hash, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`, u.ID, u.OrganizationID, u.RoleID, u.FullName, u.Email, u.Phone,
		u.PasswordHash, u.Status)
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	return u.ID, nil
}

func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET full_name = $1, phone = $2, role_id = $3, updated_at = NOW()
		WHERE id = $4 AND deleted_at IS NULL
	`, u.FullName, u.Phone, u.RoleID, u.ID)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return ensureAffected(res, user.ErrNotFound)
}

func (r *UserRepo) UpdateJTI(ctx context.Context, id, jti string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET jti = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
	`, jti, id)
	if err != nil {
		return fmt.Errorf("update user jti: %w", err)
	}
	return ensureAffected(res, user.ErrNotFound)
}

func (r *UserRepo) SoftDelete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return ensureAffected(res, user.ErrNotFound)
}

func (r *UserRepo) RoleByName(ctx context.Context, name string) (*domain.Role, error) {
	role := &domain.Role{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name FROM roles WHERE name = $1
	`, name).Scan(&role.ID, &role.Name)
	if err == sql.ErrNoRows {
		return nil, user.ErrInvalidRole
	}
	if err != nil {
		return nil, fmt.Errorf("get role: %w", err)
	}
	return role, nil
}
