package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/contact"
)

// ContactRepo implements contact.Repository against PostgreSQL. A contact
// and its preference row are written in one transaction.
type ContactRepo struct{ db *sql.DB }

// NewContactRepo creates a Postgres-backed contact repository.
func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{db: db} }

const contactColumns = `c.id, c.organization_id, c.first_name, COALESCE(c.last_name,''),
	       c.email, COALESCE(c.phone,''), c.created_at, c.updated_at,
	       p.id, p.bhk_type_id, p.furnishing_type_id, p.location_id,
	       p.property_type_id, p.power_backup_type_id`

func scanContact(row interface{ Scan(...any) error }) (*domain.Contact, error) {
	c := &domain.Contact{}
	p := &domain.Preference{}
	var prefID sql.NullString
	err := row.Scan(
		&c.ID, &c.OrganizationID, &c.FirstName, &c.LastName,
		&c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt,
		&prefID, &p.BhkTypeID, &p.FurnishingTypeID, &p.LocationID,
		&p.PropertyTypeID, &p.PowerBackupTypeID,
	)
	if err != nil {
		return nil, err
	}
	if prefID.Valid {
		p.ID = prefID.String
		p.ContactID = c.ID
		c.Preference = p
	}
	return c, nil
}

func (r *ContactRepo) Get(ctx context.Context, orgID, id string) (*domain.Contact, error) {
	c, err := scanContact(r.db.QueryRowContext(ctx, `
		SELECT `+contactColumns+`
		FROM contacts c
		LEFT JOIN preferences p ON p.contact_id = c.id
		WHERE c.id = $1 AND c.organization_id = $2
	`, id, orgID))
	if err == sql.ErrNoRows {
		return nil, contact.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

func (r *ContactRepo) List(ctx context.Context, orgID string, f contact.ListFilter) ([]domain.Contact, int, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}

	countQ := `SELECT COUNT(*) FROM contacts WHERE organization_id = $1`
	countArgs := []any{orgID}
	if f.Search != "" {
		countQ += ` AND (first_name ILIKE $2 OR last_name ILIKE $2 OR email ILIKE $2)`
		countArgs = append(countArgs, "%"+f.Search+"%")
	}
	var total int
	if err := r.db.QueryRowContext(ctx, countQ, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}

	q := `
		SELECT ` + contactColumns + `
		FROM contacts c
		LEFT JOIN preferences p ON p.contact_id = c.id
		WHERE c.organization_id = $1`
	args := []any{orgID}
	idx := 2
	if f.Search != "" {
		q += fmt.Sprintf(` AND (c.first_name ILIKE $%d OR c.last_name ILIKE $%d OR c.email ILIKE $%d)`, idx, idx, idx)
		args = append(args, "%"+f.Search+"%")
		idx++
	}
	q += fmt.Sprintf(` ORDER BY c.created_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var out []domain.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan contact: %w", err)
		}
		out = append(out, *c)
	}
	return out, total, rows.Err()
}

func (r *ContactRepo) ExistsByEmail(ctx context.Context, orgID, email string, excludeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM contacts
			WHERE organization_id = $1 AND lower(email) = lower($2) AND id <> $3
		)
	`, orgID, email, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("contact email check: %w", err)
	}
	return exists, nil
}

func (r *ContactRepo) Create(ctx context.Context, c *domain.Contact) (string, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin create contact: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO contacts
			(id, organization_id, first_name, last_name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`, c.ID, c.OrganizationID, c.FirstName, c.LastName, c.Email, c.Phone)
	if err != nil {
		return "", fmt.Errorf("create contact: %w", err)
	}

	if c.Preference != nil {
		p := c.Preference
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO preferences
				(id, contact_id, bhk_type_id, furnishing_type_id, location_id,
				 property_type_id, power_backup_type_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, p.ID, c.ID, p.BhkTypeID, p.FurnishingTypeID, p.LocationID,
			p.PropertyTypeID, p.PowerBackupTypeID)
		if err != nil {
			return "", fmt.Errorf("create preference: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit create contact: %w", err)
	}
	return c.ID, nil
}

func (r *ContactRepo) Update(ctx context.Context, c *domain.Contact) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update contact: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE contacts
		SET first_name = $1, last_name = $2, email = $3, phone = $4, updated_at = NOW()
		WHERE id = $5 AND organization_id = $6
	`, c.FirstName, c.LastName, c.Email, c.Phone, c.ID, c.OrganizationID)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	if err := ensureAffected(res, contact.ErrNotFound); err != nil {
		return err
	}

	if c.Preference != nil {
		p := c.Preference
		_, err = tx.ExecContext(ctx, `
			UPDATE preferences
			SET bhk_type_id = $1, furnishing_type_id = $2, location_id = $3,
			    property_type_id = $4, power_backup_type_id = $5
			WHERE contact_id = $6
		`, p.BhkTypeID, p.FurnishingTypeID, p.LocationID,
			p.PropertyTypeID, p.PowerBackupTypeID, c.ID)
		if err != nil {
			return fmt.Errorf("update preference: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update contact: %w", err)
	}
	return nil
}

func (r *ContactRepo) Delete(ctx context.Context, orgID, id string) error {
	// preferences has ON DELETE CASCADE on contact_id.
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM contacts WHERE id = $1 AND organization_id = $2
	`, id, orgID)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return ensureAffected(res, contact.ErrNotFound)
}
