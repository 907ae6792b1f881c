package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/audience"
)

// AudienceRepo implements audience.Repository against PostgreSQL.
type AudienceRepo struct{ db *sql.DB }

// NewAudienceRepo creates a Postgres-backed audience repository.
func NewAudienceRepo(db *sql.DB) *AudienceRepo { return &AudienceRepo{db: db} }

const audienceColumns = `id, organization_id, name, bhk_type_id, furnishing_type_id,
	       location_id, property_type_id, power_backup_type_id,
	       deleted_at, created_at, updated_at`

func scanAudience(row interface{ Scan(...any) error }) (*domain.Audience, error) {
	a := &domain.Audience{}
	err := row.Scan(
		&a.ID, &a.OrganizationID, &a.Name, &a.BhkTypeID, &a.FurnishingTypeID,
		&a.LocationID, &a.PropertyTypeID, &a.PowerBackupTypeID,
		&a.DeletedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AudienceRepo) Get(ctx context.Context, orgID, id string) (*domain.Audience, error) {
	a, err := scanAudience(r.db.QueryRowContext(ctx, `
		SELECT `+audienceColumns+`
		FROM audiences
		WHERE id = $1 AND organization_id = $2 AND deleted_at IS NULL
	`, id, orgID))
	if err == sql.ErrNoRows {
		return nil, audience.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get audience: %w", err)
	}
	return a, nil
}

func (r *AudienceRepo) GetAny(ctx context.Context, orgID, id string) (*domain.Audience, error) {
	a, err := scanAudience(r.db.QueryRowContext(ctx, `
		SELECT `+audienceColumns+`
		FROM audiences
		WHERE id = $1 AND organization_id = $2
	`, id, orgID))
	if err == sql.ErrNoRows {
		return nil, audience.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get audience: %w", err)
	}
	return a, nil
}

func (r *AudienceRepo) List(ctx context.Context, orgID string) ([]domain.Audience, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+audienceColumns+`
		FROM audiences
		WHERE organization_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list audiences: %w", err)
	}
	defer rows.Close()

	var out []domain.Audience
	for rows.Next() {
		a, err := scanAudience(rows)
		if err != nil {
			return nil, fmt.Errorf("scan audience: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *AudienceRepo) Create(ctx context.Context, a *domain.Audience) (string, error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audiences
			(id, organization_id, name, bhk_type_id, furnishing_type_id,
			 location_id, property_type_id, power_backup_type_id,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`, a.ID, a.OrganizationID, a.Name, a.BhkTypeID, a.FurnishingTypeID,
		a.LocationID, a.PropertyTypeID, a.PowerBackupTypeID)
	if err != nil {
		return "", fmt.Errorf("create audience: %w", err)
	}
	return a.ID, nil
}

func (r *AudienceRepo) Update(ctx context.Context, a *domain.Audience) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE audiences
		SET name = $1, bhk_type_id = $2, furnishing_type_id = $3,
		    location_id = $4, property_type_id = $5, power_backup_type_id = $6,
		    updated_at = NOW()
		WHERE id = $7 AND organization_id = $8 AND deleted_at IS NULL
	`, a.Name, a.BhkTypeID, a.FurnishingTypeID,
		a.LocationID, a.PropertyTypeID, a.PowerBackupTypeID,
		a.ID, a.OrganizationID)
	if err != nil {
		return fmt.Errorf("update audience: %w", err)
	}
	return ensureAffected(res, audience.ErrNotFound)
}

func (r *AudienceRepo) SoftDelete(ctx context.Context, orgID, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE audiences SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND organization_id = $2 AND deleted_at IS NULL
	`, id, orgID)
	if err != nil {
		return fmt.Errorf("delete audience: %w", err)
	}
	return ensureAffected(res, audience.ErrNotFound)
}

func (r *AudienceRepo) Restore(ctx context.Context, orgID, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE audiences SET deleted_at = NULL, updated_at = NOW()
		WHERE id = $1 AND organization_id = $2 AND deleted_at IS NOT NULL
	`, id, orgID)
	if err != nil {
		return fmt.Errorf("restore audience: %w", err)
	}
	return ensureAffected(res, audience.ErrNotDeleted)
}

func (r *AudienceRepo) MatchingContacts(ctx context.Context, orgID string, f domain.PreferenceFilter) ([]domain.Contact, error) {
	where, args := matchClause(orgID, f)
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.organization_id, c.first_name, COALESCE(c.last_name,''),
		       c.email, COALESCE(c.phone,'')
		FROM contacts c
		JOIN preferences p ON p.contact_id = c.id
		`+where+`
		ORDER BY c.created_at
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("match contacts: %w", err)
	}
	defer rows.Close()

	var out []domain.Contact
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.ID, &c.OrganizationID, &c.FirstName, &c.LastName, &c.Email, &c.Phone); err != nil {
			return nil, fmt.Errorf("scan matched contact: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *AudienceRepo) CountMatching(ctx context.Context, orgID string, f domain.PreferenceFilter) (int, error) {
	where, args := matchClause(orgID, f)
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM contacts c
		JOIN preferences p ON p.contact_id = c.id
		`+where, args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count matched contacts: %w", err)
	}
	return n, nil
}

// matchClause builds the parameterized WHERE for audience matching. A
// contact matches when its preference equals ANY populated filter
// dimension; the dimension predicates are ORed together and ANDed with
// the tenant filter. No populated dimension means every contact of the
// organization matches.
func matchClause(orgID string, f domain.PreferenceFilter) (string, []any) {
	args := []any{orgID}
	var ors []string
	add := func(column string, id *int64) {
		if id == nil {
			return
		}
		args = append(args, *id)
		ors = append(ors, fmt.Sprintf("p.%s = $%d", column, len(args)))
	}
	add("bhk_type_id", f.BhkTypeID)
	add("furnishing_type_id", f.FurnishingTypeID)
	add("location_id", f.LocationID)
	add("property_type_id", f.PropertyTypeID)
	add("power_backup_type_id", f.PowerBackupTypeID)

	where := `WHERE c.organization_id = $1`
	if len(ors) > 0 {
		where += ` AND (` + strings.Join(ors, " OR ") + `)`
	}
	return where, args
}
