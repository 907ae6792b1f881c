package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/campaign"
)

// CampaignRepo implements campaign.Repository against PostgreSQL. Status
// transitions that can race with workers use conditional UPDATEs; the
// affected-row count tells the caller whether it won.
type CampaignRepo struct{ db *sql.DB }

// NewCampaignRepo creates a Postgres-backed campaign repository.
func NewCampaignRepo(db *sql.DB) *CampaignRepo { return &CampaignRepo{db: db} }

const campaignColumns = `c.id, c.organization_id, c.email_template_id, c.schedule_type_id,
	       st.name, c.name, c.status, c.scheduled_at, COALESCE(c.cron_expression,''),
	       c.end_date, c.last_run_at, c.created_at, c.updated_at`

func scanCampaign(row interface{ Scan(...any) error }) (*domain.Campaign, error) {
	c := &domain.Campaign{}
	err := row.Scan(
		&c.ID, &c.OrganizationID, &c.EmailTemplateID, &c.ScheduleTypeID,
		&c.ScheduleTypeName, &c.Name, &c.Status, &c.ScheduledAt, &c.CronExpression,
		&c.EndDate, &c.LastRunAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CampaignRepo) Get(ctx context.Context, orgID, id string) (*domain.Campaign, error) {
	c, err := scanCampaign(r.db.QueryRowContext(ctx, `
		SELECT `+campaignColumns+`
		FROM campaigns c
		JOIN schedule_types st ON st.id = c.schedule_type_id
		WHERE c.id = $1 AND c.organization_id = $2
	`, id, orgID))
	if err == sql.ErrNoRows {
		return nil, campaign.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	if err := r.loadAudienceIDs(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CampaignRepo) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	c, err := scanCampaign(r.db.QueryRowContext(ctx, `
		SELECT `+campaignColumns+`
		FROM campaigns c
		JOIN schedule_types st ON st.id = c.schedule_type_id
		WHERE c.id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, campaign.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	if err := r.loadAudienceIDs(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CampaignRepo) loadAudienceIDs(ctx context.Context, c *domain.Campaign) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT audience_id FROM campaign_audiences WHERE campaign_id = $1 ORDER BY position
	`, c.ID)
	if err != nil {
		return fmt.Errorf("load campaign audiences: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan campaign audience: %w", err)
		}
		c.AudienceIDs = append(c.AudienceIDs, id)
	}
	return rows.Err()
}

func (r *CampaignRepo) List(ctx context.Context, orgID string, f campaign.ListFilter) ([]domain.Campaign, int, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}

	countQ := `SELECT COUNT(*) FROM campaigns WHERE organization_id = $1`
	countArgs := []any{orgID}
	if f.Status != "" {
		countQ += ` AND status = $2`
		countArgs = append(countArgs, f.Status)
	}
	var total int
	if err := r.db.QueryRowContext(ctx, countQ, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count campaigns: %w", err)
	}

	q := `
		SELECT ` + campaignColumns + `
		FROM campaigns c
		JOIN schedule_types st ON st.id = c.schedule_type_id
		WHERE c.organization_id = $1`
	args := []any{orgID}
	idx := 2
	if f.Status != "" {
		q += fmt.Sprintf(` AND c.status = $%d`, idx)
		args = append(args, f.Status)
		idx++
	}
	q += fmt.Sprintf(` ORDER BY c.created_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	var out []domain.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan campaign: %w", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for i := range out {
		if err := r.loadAudienceIDs(ctx, &out[i]); err != nil {
			return nil, 0, err
		}
	}
	return out, total, nil
}

func (r *CampaignRepo) CreateWithAudiences(ctx context.Context, c *domain.Campaign) (string, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin create campaign: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO campaigns
			(id, organization_id, email_template_id, schedule_type_id, name,
			 status, scheduled_at, cron_expression, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8,''), $9, NOW(), NOW())
	`, c.ID, c.OrganizationID, c.EmailTemplateID, c.ScheduleTypeID, c.Name,
		c.Status, c.ScheduledAt, c.CronExpression, c.EndDate)
	if err != nil {
		return "", fmt.Errorf("create campaign: %w", err)
	}

	for i, audienceID := range c.AudienceIDs {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO campaign_audiences (campaign_id, audience_id, position)
			VALUES ($1, $2, $3)
		`, c.ID, audienceID, i)
		if err != nil {
			return "", fmt.Errorf("link campaign audience: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit create campaign: %w", err)
	}
	return c.ID, nil
}

func (r *CampaignRepo) ScheduleTypeByName(ctx context.Context, name string) (*domain.ScheduleType, error) {
	st := &domain.ScheduleType{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name FROM schedule_types WHERE name = $1
	`, name).Scan(&st.ID, &st.Name)
	if err == sql.ErrNoRows {
		return nil, campaign.ErrInvalidSchedule
	}
	if err != nil {
		return nil, fmt.Errorf("get schedule type: %w", err)
	}
	return st, nil
}

func (r *CampaignRepo) MarkRunningIfScheduled(ctx context.Context, id string) (bool, error) {
	return r.conditionalStatus(ctx, `
		UPDATE campaigns SET status = 'running', updated_at = NOW()
		WHERE id = $1 AND status = 'scheduled'
	`, id)
}

func (r *CampaignRepo) UpdateStatus(ctx context.Context, id string, status domain.CampaignStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE campaigns SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("update campaign status: %w", err)
	}
	return ensureAffected(res, campaign.ErrNotFound)
}

func (r *CampaignRepo) PauseIfPausable(ctx context.Context, orgID, id string) (bool, error) {
	return r.conditionalStatus(ctx, `
		UPDATE campaigns SET status = 'paused', updated_at = NOW()
		WHERE id = $1 AND organization_id = $2 AND status IN ('scheduled','running')
	`, id, orgID)
}

func (r *CampaignRepo) ResumeIfPaused(ctx context.Context, orgID, id string) (bool, error) {
	return r.conditionalStatus(ctx, `
		UPDATE campaigns SET status = 'scheduled', updated_at = NOW()
		WHERE id = $1 AND organization_id = $2 AND status = 'paused'
	`, id, orgID)
}

func (r *CampaignRepo) CancelIfCancellable(ctx context.Context, orgID, id string) (bool, error) {
	return r.conditionalStatus(ctx, `
		UPDATE campaigns SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND organization_id = $2 AND status NOT IN ('completed','cancelled')
	`, id, orgID)
}

func (r *CampaignRepo) conditionalStatus(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("campaign status transition: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *CampaignRepo) SetLastRunAt(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE campaigns SET last_run_at = $1, updated_at = NOW() WHERE id = $2
	`, at, id)
	if err != nil {
		return fmt.Errorf("set campaign last_run_at: %w", err)
	}
	return ensureAffected(res, campaign.ErrNotFound)
}

func (r *CampaignRepo) ListRecurringActive(ctx context.Context) ([]domain.Campaign, error) {
	return r.listBy(ctx, `
		SELECT `+campaignColumns+`
		FROM campaigns c
		JOIN schedule_types st ON st.id = c.schedule_type_id
		WHERE st.name = $1 AND c.status = 'scheduled'
	`, domain.ScheduleRecurring)
}

func (r *CampaignRepo) ListRunningOneTime(ctx context.Context) ([]domain.Campaign, error) {
	return r.listBy(ctx, `
		SELECT `+campaignColumns+`
		FROM campaigns c
		JOIN schedule_types st ON st.id = c.schedule_type_id
		WHERE st.name = $1 AND c.status = 'running'
	`, domain.ScheduleOneTime)
}

func (r *CampaignRepo) listBy(ctx context.Context, query string, args ...any) ([]domain.Campaign, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	var out []domain.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.loadAudienceIDs(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *CampaignRepo) Stats(ctx context.Context, orgID, id string) (*domain.CampaignStats, error) {
	stats := &domain.CampaignStats{CampaignID: id}
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE s.status = $1),
		       COUNT(*) FILTER (WHERE s.status = $2),
		       COUNT(*) FILTER (WHERE s.status = $3)
		FROM campaign_sends s
		JOIN campaigns c ON c.id = s.campaign_id
		WHERE s.campaign_id = $4 AND c.organization_id = $5
	`, domain.SendQueued, domain.SendSent, domain.SendFailed, id, orgID).Scan(
		&stats.Total, &stats.Queued, &stats.Sent, &stats.Failed,
	)
	if err != nil {
		return nil, fmt.Errorf("campaign stats: %w", err)
	}
	return stats, nil
}
