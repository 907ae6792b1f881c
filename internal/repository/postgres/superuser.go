package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/user"
)

// SuperUserRepo implements user.SuperRepository against PostgreSQL.
type SuperUserRepo struct{ db *sql.DB }

// NewSuperUserRepo creates a Postgres-backed super user repository.
func NewSuperUserRepo(db *sql.DB) *SuperUserRepo { return &SuperUserRepo{db: db} }

func (r *SuperUserRepo) Get(ctx context.Context, id string) (*domain.SuperUser, error) {
	su := &domain.SuperUser{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, COALESCE(jti,''), created_at, updated_at
		FROM super_users WHERE id = $1
	`, id).Scan(&su.ID, &su.Email, &su.PasswordHash, &su.JTI, &su.CreatedAt, &su.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get super user: %w", err)
	}
	return su, nil
}

func (r *SuperUserRepo) GetByEmail(ctx context.Context, email string) (*domain.SuperUser, error) {
	su := &domain.SuperUser{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, COALESCE(jti,''), created_at, updated_at
		FROM super_users WHERE lower(email) = lower($1)
	`, email).Scan(&su.ID, &su.Email, &su.PasswordHash, &su.JTI, &su.CreatedAt, &su.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get super user by email: %w", err)
	}
	return su, nil
}

func (r *SuperUserRepo) UpdateJTI(ctx context.Context, id, jti string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE super_users SET jti = $1, updated_at = NOW() WHERE id = $2
	`, jti, id)
	if err != nil {
		return fmt.Errorf("update super user jti: %w", err)
	}
	return ensureAffected(res, user.ErrNotFound)
}
