package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/template"
)

// TemplateRepo implements template.Repository against PostgreSQL.
type TemplateRepo struct{ db *sql.DB }

// NewTemplateRepo creates a Postgres-backed template repository.
func NewTemplateRepo(db *sql.DB) *TemplateRepo { return &TemplateRepo{db: db} }

func (r *TemplateRepo) GetType(ctx context.Context, orgID, id string) (*domain.EmailType, error) {
	t := &domain.EmailType{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, organization_id, name, created_at, updated_at
		FROM email_types
		WHERE id = $1 AND organization_id = $2
	`, id, orgID).Scan(&t.ID, &t.OrganizationID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, template.ErrTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get email type: %w", err)
	}
	return t, nil
}

func (r *TemplateRepo) ListTypes(ctx context.Context, orgID string) ([]domain.EmailType, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, organization_id, name, created_at, updated_at
		FROM email_types
		WHERE organization_id = $1
		ORDER BY name
	`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list email types: %w", err)
	}
	defer rows.Close()

	var out []domain.EmailType
	for rows.Next() {
		var t domain.EmailType
		if err := rows.Scan(&t.ID, &t.OrganizationID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan email type: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TemplateRepo) CreateType(ctx context.Context, t *domain.EmailType) (string, error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO email_types (id, organization_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`, t.ID, t.OrganizationID, t.Name)
	if err != nil {
		return "", fmt.Errorf("create email type: %w", err)
	}
	return t.ID, nil
}

func (r *TemplateRepo) UpdateType(ctx context.Context, t *domain.EmailType) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE email_types SET name = $1, updated_at = NOW()
		WHERE id = $2 AND organization_id = $3
	`, t.Name, t.ID, t.OrganizationID)
	if err != nil {
		return fmt.Errorf("update email type: %w", err)
	}
	return ensureAffected(res, template.ErrTypeNotFound)
}

func (r *TemplateRepo) DeleteType(ctx context.Context, orgID, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM email_types WHERE id = $1 AND organization_id = $2
	`, id, orgID)
	if err != nil {
		// 23503 = foreign_key_violation: templates still reference it.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return template.ErrTypeInUse
		}
		return fmt.Errorf("delete email type: %w", err)
	}
	return ensureAffected(res, template.ErrTypeNotFound)
}

const templateColumns = `id, organization_id, COALESCE(email_type_id,''), name, subject,
	       COALESCE(preheader,''), COALESCE(from_name,''), from_email,
	       COALESCE(reply_to,''), html_body, COALESCE(text_body,''),
	       created_at, updated_at`

func scanTemplate(row interface{ Scan(...any) error }) (*domain.EmailTemplate, error) {
	t := &domain.EmailTemplate{}
	err := row.Scan(
		&t.ID, &t.OrganizationID, &t.EmailTypeID, &t.Name, &t.Subject,
		&t.Preheader, &t.FromName, &t.FromEmail,
		&t.ReplyTo, &t.HTMLBody, &t.TextBody,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TemplateRepo) Get(ctx context.Context, orgID, id string) (*domain.EmailTemplate, error) {
	t, err := scanTemplate(r.db.QueryRowContext(ctx, `
		SELECT `+templateColumns+`
		FROM email_templates
		WHERE id = $1 AND organization_id = $2
	`, id, orgID))
	if err == sql.ErrNoRows {
		return nil, template.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get email template: %w", err)
	}
	return t, nil
}

func (r *TemplateRepo) List(ctx context.Context, orgID string) ([]domain.EmailTemplate, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+templateColumns+`
		FROM email_templates
		WHERE organization_id = $1
		ORDER BY created_at DESC
	`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list email templates: %w", err)
	}
	defer rows.Close()

	var out []domain.EmailTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan email template: %w", err)
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (r *TemplateRepo) Create(ctx context.Context, t *domain.EmailTemplate) (string, error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO email_templates
			(id, organization_id, email_type_id, name, subject, preheader,
			 from_name, from_email, reply_to, html_body, text_body,
			 created_at, updated_at)
		VALUES ($1, $2, NULLIF($3,''), $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
	`, t.ID, t.OrganizationID, t.EmailTypeID, t.Name, t.Subject, t.Preheader,
		t.FromName, t.FromEmail, t.ReplyTo, t.HTMLBody, t.TextBody)
	if err != nil {
		return "", fmt.Errorf("create email template: %w", err)
	}
	return t.ID, nil
}

func (r *TemplateRepo) Update(ctx context.Context, t *domain.EmailTemplate) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE email_templates
		SET email_type_id = NULLIF($1,''), name = $2, subject = $3, preheader = $4,
		    from_name = $5, from_email = $6, reply_to = $7,
		    html_body = $8, text_body = $9, updated_at = NOW()
		WHERE id = $10 AND organization_id = $11
	`, t.EmailTypeID, t.Name, t.Subject, t.Preheader,
		t.FromName, t.FromEmail, t.ReplyTo,
		t.HTMLBody, t.TextBody, t.ID, t.OrganizationID)
	if err != nil {
		return fmt.Errorf("update email template: %w", err)
	}
	return ensureAffected(res, template.ErrNotFound)
}

func (r *TemplateRepo) Delete(ctx context.Context, orgID, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM email_templates WHERE id = $1 AND organization_id = $2
	`, id, orgID)
	if err != nil {
		return fmt.Errorf("delete email template: %w", err)
	}
	return ensureAffected(res, template.ErrNotFound)
}
