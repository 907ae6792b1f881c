package campaign

import (
	"context"
	"time"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
)

// Repository defines the data access contract for campaigns.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Get returns a campaign with its audience IDs. Returns ErrNotFound
	// if it doesn't exist in the organization.
	Get(ctx context.Context, orgID, id string) (*domain.Campaign, error)

	// GetByID returns a campaign without tenant scoping, for workers.
	GetByID(ctx context.Context, id string) (*domain.Campaign, error)

	// List returns campaigns of one organization, newest first.
	List(ctx context.Context, orgID string, f ListFilter) ([]domain.Campaign, int, error)

	// CreateWithAudiences inserts the campaign and its audience links in
	// one transaction and returns the campaign ID.
	CreateWithAudiences(ctx context.Context, c *domain.Campaign) (string, error)

	// ScheduleTypeByName resolves a schedule_types row.
	ScheduleTypeByName(ctx context.Context, name string) (*domain.ScheduleType, error)

	// MarkRunningIfScheduled flips scheduled -> running atomically.
	// Returns false when the campaign was not in scheduled state, which
	// means another worker won the race or the campaign was paused or
	// cancelled in the meantime.
	MarkRunningIfScheduled(ctx context.Context, id string) (bool, error)

	// UpdateStatus sets the status unconditionally, stamping last_run_at
	// when the new status is running.
	UpdateStatus(ctx context.Context, id string, status domain.CampaignStatus) error

	// PauseIfPausable flips scheduled|running -> paused atomically.
	PauseIfPausable(ctx context.Context, orgID, id string) (bool, error)

	// ResumeIfPaused flips paused -> scheduled atomically.
	ResumeIfPaused(ctx context.Context, orgID, id string) (bool, error)

	// CancelIfCancellable flips any non-terminal state -> cancelled
	// atomically.
	CancelIfCancellable(ctx context.Context, orgID, id string) (bool, error)

	// SetLastRunAt stamps the start of the latest execution.
	SetLastRunAt(ctx context.Context, id string, at time.Time) error

	// ListRecurringActive returns recurring campaigns in scheduled state,
	// for the recurring scheduler tick.
	ListRecurringActive(ctx context.Context) ([]domain.Campaign, error)

	// ListRunningOneTime returns one-time campaigns stuck in running,
	// for the completion sweep.
	ListRunningOneTime(ctx context.Context) ([]domain.Campaign, error)

	// Stats aggregates send counts for one campaign.
	Stats(ctx context.Context, orgID, id string) (*domain.CampaignStats, error)
}

// SendRepository defines data access for per-recipient send rows. The
// campaign_sends table doubles as the send queue.
type SendRepository interface {
	// BulkCreate inserts queued send rows for a run. Recipients sharing
	// an email across audiences each get their own row.
	BulkCreate(ctx context.Context, sends []domain.CampaignSend) (int, error)

	// ClaimBatch atomically claims up to limit queued sends using
	// FOR UPDATE SKIP LOCKED, returning render-ready items. Claims older
	// than staleAge are reclaimed from crashed workers.
	ClaimBatch(ctx context.Context, limit int, staleAge time.Duration) ([]domain.SendItem, error)

	// MarkSent finishes a send successfully.
	MarkSent(ctx context.Context, id string) error

	// MarkFailed fails a send terminally with the given reason.
	MarkFailed(ctx context.Context, id, reason string) error

	// Requeue returns a claimed send to the queue after a transient
	// failure, bumping attempts.
	Requeue(ctx context.Context, id, reason string) error

	// CountPending returns the number of unresolved (queued or claimed)
	// sends for a campaign.
	CountPending(ctx context.Context, campaignID string) (int, error)

	// ListByCampaign returns the send rows of a campaign, for the API.
	ListByCampaign(ctx context.Context, orgID, campaignID string, limit, offset int) ([]domain.CampaignSend, int, error)
}

// ListFilter controls pagination and filtering for campaign lists.
type ListFilter struct {
	Status string
	Limit  int
	Offset int
}
