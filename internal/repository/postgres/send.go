package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/campaign"
)

// SendRepo implements campaign.SendRepository against PostgreSQL. The
// campaign_sends table is the send queue: ClaimBatch stamps claimed_at
// under FOR UPDATE SKIP LOCKED so concurrent workers never double-send,
// and stale claims from crashed workers are reclaimed by age.
type SendRepo struct{ db *sql.DB }

// NewSendRepo creates a Postgres-backed send repository.
func NewSendRepo(db *sql.DB) *SendRepo { return &SendRepo{db: db} }

func (r *SendRepo) BulkCreate(ctx context.Context, sends []domain.CampaignSend) (int, error) {
	if len(sends) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin bulk create sends: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO campaign_sends (id, campaign_id, contact_id, email, status, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare bulk create sends: %w", err)
	}
	defer stmt.Close()

	for i := range sends {
		s := &sends[i]
		if s.ID == "" {
			s.ID = uuid.New().String()
		}
		if s.Status == "" {
			s.Status = domain.SendQueued
		}
		if _, err := stmt.ExecContext(ctx, s.ID, s.CampaignID, s.ContactID, s.Email, s.Status); err != nil {
			return 0, fmt.Errorf("insert send: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit bulk create sends: %w", err)
	}
	return len(sends), nil
}

func (r *SendRepo) ClaimBatch(ctx context.Context, limit int, staleAge time.Duration) ([]domain.SendItem, error) {
	// Claim queued rows (or re-claim ones whose worker died) first, then
	// join the render data for the claimed IDs.
	rows, err := r.db.QueryContext(ctx, `
		UPDATE campaign_sends
		SET claimed_at = NOW()
		WHERE id IN (
			SELECT id FROM campaign_sends
			WHERE status = $1
			  AND (claimed_at IS NULL OR claimed_at < NOW() - ($2 * interval '1 second'))
			ORDER BY created_at
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id
	`, domain.SendQueued, int64(staleAge.Seconds()), limit)
	if err != nil {
		return nil, fmt.Errorf("claim sends: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan claimed send: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	itemRows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.campaign_id, s.attempts,
		       ct.id, ct.first_name, COALESCE(ct.last_name,''), s.email, COALESCE(ct.phone,''),
		       t.subject, COALESCE(t.preheader,''), COALESCE(t.from_name,''), t.from_email,
		       COALESCE(t.reply_to,''), t.html_body, COALESCE(t.text_body,'')
		FROM campaign_sends s
		JOIN campaigns c ON c.id = s.campaign_id
		JOIN email_templates t ON t.id = c.email_template_id
		JOIN contacts ct ON ct.id = s.contact_id
		WHERE s.id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("load claimed sends: %w", err)
	}
	defer itemRows.Close()

	var out []domain.SendItem
	for itemRows.Next() {
		var it domain.SendItem
		if err := itemRows.Scan(
			&it.SendID, &it.CampaignID, &it.Attempts,
			&it.ContactID, &it.FirstName, &it.LastName, &it.Email, &it.Phone,
			&it.Subject, &it.Preheader, &it.FromName, &it.FromEmail,
			&it.ReplyTo, &it.HTMLBody, &it.TextBody,
		); err != nil {
			return nil, fmt.Errorf("scan send item: %w", err)
		}
		out = append(out, it)
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	// A contact deleted between enqueue and claim leaves its row behind;
	// fail those outright so they don't spin forever.
	if len(out) < len(ids) {
		present := make(map[string]bool, len(out))
		for _, it := range out {
			present[it.SendID] = true
		}
		for _, id := range ids {
			if !present[id] {
				if err := r.MarkFailed(ctx, id, "recipient no longer exists"); err != nil {
					return nil, err
				}
			}
		}
	}
	return out, nil
}

func (r *SendRepo) MarkSent(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE campaign_sends
		SET status = $1, sent_at = NOW(), attempts = attempts + 1, claimed_at = NULL
		WHERE id = $2
	`, domain.SendSent, id)
	if err != nil {
		return fmt.Errorf("mark send sent: %w", err)
	}
	return ensureAffected(res, campaign.ErrNotFound)
}

func (r *SendRepo) MarkFailed(ctx context.Context, id, reason string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE campaign_sends
		SET status = $1, error_message = $2, attempts = attempts + 1, claimed_at = NULL
		WHERE id = $3
	`, domain.SendFailed, truncate(reason, 500), id)
	if err != nil {
		return fmt.Errorf("mark send failed: %w", err)
	}
	return ensureAffected(res, campaign.ErrNotFound)
}

func (r *SendRepo) Requeue(ctx context.Context, id, reason string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE campaign_sends
		SET status = $1, error_message = $2, attempts = attempts + 1, claimed_at = NULL
		WHERE id = $3
	`, domain.SendQueued, truncate(reason, 500), id)
	if err != nil {
		return fmt.Errorf("requeue send: %w", err)
	}
	return ensureAffected(res, campaign.ErrNotFound)
}

func (r *SendRepo) CountPending(ctx context.Context, campaignID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM campaign_sends WHERE campaign_id = $1 AND status = $2
	`, campaignID, domain.SendQueued).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count pending sends: %w", err)
	}
	return n, nil
}

func (r *SendRepo) ListByCampaign(ctx context.Context, orgID, campaignID string, limit, offset int) ([]domain.CampaignSend, int, error) {
	if limit <= 0 {
		limit = 50
	}

	var total int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM campaign_sends s
		JOIN campaigns c ON c.id = s.campaign_id
		WHERE s.campaign_id = $1 AND c.organization_id = $2
	`, campaignID, orgID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count sends: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.campaign_id, s.contact_id, s.email, s.status,
		       s.attempts, s.sent_at, COALESCE(s.error_message,''), s.created_at
		FROM campaign_sends s
		JOIN campaigns c ON c.id = s.campaign_id
		WHERE s.campaign_id = $1 AND c.organization_id = $2
		ORDER BY s.created_at
		LIMIT $3 OFFSET $4
	`, campaignID, orgID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list sends: %w", err)
	}
	defer rows.Close()

	var out []domain.CampaignSend
	for rows.Next() {
		var s domain.CampaignSend
		if err := rows.Scan(
			&s.ID, &s.CampaignID, &s.ContactID, &s.Email, &s.Status,
			&s.Attempts, &s.SentAt, &s.ErrorMessage, &s.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan send: %w", err)
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
