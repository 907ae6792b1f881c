package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/organization"
)

// OrganizationRepo implements organization.Repository against PostgreSQL.
type OrganizationRepo struct{ db *sql.DB }

// NewOrganizationRepo creates a Postgres-backed organization repository.
func NewOrganizationRepo(db *sql.DB) *OrganizationRepo { return &OrganizationRepo{db: db} }

const orgColumns = `id, name, COALESCE(description,''), deleted_at, created_at, updated_at`

func scanOrg(row interface{ Scan(...any) error }) (*domain.Organization, error) {
	o := &domain.Organization{}
	err := row.Scan(&o.ID, &o.Name, &o.Description, &o.DeletedAt, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrganizationRepo) Get(ctx context.Context, id string) (*domain.Organization, error) {
	o, err := scanOrg(r.db.QueryRowContext(ctx, `
		SELECT `+orgColumns+`
		FROM organizations
		WHERE id = $1 AND deleted_at IS NULL
	`, id))
	if err == sql.ErrNoRows {
		return nil, organization.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return o, nil
}

func (r *OrganizationRepo) GetAny(ctx context.Context, id string) (*domain.Organization, error) {
	o, err := scanOrg(r.db.QueryRowContext(ctx, `
		SELECT `+orgColumns+`
		FROM organizations
		WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, organization.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return o, nil
}

func (r *OrganizationRepo) List(ctx context.Context, includeDeleted bool) ([]domain.Organization, error) {
	q := `SELECT ` + orgColumns + ` FROM organizations`
	if !includeDeleted {
		q += ` WHERE deleted_at IS NULL`
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()

	var out []domain.Organization
	for rows.Next() {
		o, err := scanOrg(rows)
		if err != nil {
			return nil, fmt.Errorf("scan organization: %w", err)
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *OrganizationRepo) ExistsByName(ctx context.Context, name string, excludeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM organizations
			WHERE lower(name) = lower($1) AND deleted_at IS NULL AND id <> $2
		)
	`, name, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("organization name check: %w", err)
	}
	return exists, nil
}

func (r *OrganizationRepo) Create(ctx context.Context, o *domain.Organization) (string, error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO organizations (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`, o.ID, o.Name, o.Description)
	if err != nil {
		return "", fmt.Errorf("create organization: %w", err)
	}
	return o.ID, nil
}

func (r *OrganizationRepo) Update(ctx context.Context, o *domain.Organization) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE organizations
		SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3 AND deleted_at IS NULL
	`, o.Name, o.Description, o.ID)
	if err != nil {
		return fmt.Errorf("update organization: %w", err)
	}
	return ensureAffected(res, organization.ErrNotFound)
}

func (r *OrganizationRepo) SoftDelete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE organizations
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return fmt.Errorf("delete organization: %w", err)
	}
	return ensureAffected(res, organization.ErrNotFound)
}

func (r *OrganizationRepo) Restore(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE organizations
		SET deleted_at = NULL, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NOT NULL
	`, id)
	if err != nil {
		return fmt.Errorf("restore organization: %w", err)
	}
	return ensureAffected(res, organization.ErrNotDeleted)
}

// ensureAffected converts a zero-row UPDATE into the given sentinel.
func ensureAffected(res sql.Result, sentinel error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sentinel
	}
	return nil
}
