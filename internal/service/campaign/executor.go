package campaign

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/distlock"
	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/logger"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/audience"
)

// ErrLocked means another worker holds the execution lock for the
// campaign. The job should be retried, not failed.
var ErrLocked = errors.New("campaign execution is locked by another worker")

// LockFactory builds a distributed lock for a key. Wired to
// distlock.NewLock in main.
type LockFactory func(key string) distlock.DistLock

// Executor materializes a campaign run into campaign_sends rows.
type Executor struct {
	repo      Repository
	sends     SendRepository
	audiences audience.Repository
	lockFor   LockFactory
}

// NewExecutor creates a campaign executor.
func NewExecutor(repo Repository, sends SendRepository, audiences audience.Repository, lockFor LockFactory) *Executor {
	return &Executor{repo: repo, sends: sends, audiences: audiences, lockFor: lockFor}
}

// Execute runs one campaign execution end to end:
//
//  1. take the per-campaign distributed lock
//  2. flip scheduled -> running with a conditional update; losing the
//     race (or a pause/cancel in between) aborts with ErrNotExecutable
//  3. resolve every linked audience to its matching contacts; a contact
//     matching several audiences gets one send row per match
//  4. insert queued send rows for the send worker to drain
//
// Zero recipients complete the campaign immediately. Recurring campaigns
// revert to scheduled after enqueueing so the next cron tick fires again;
// one-time campaigns stay running until the completion sweep resolves
// them. Any failure after step 2 marks the campaign failed and returns
// the error so the job is retried.
func (e *Executor) Execute(ctx context.Context, campaignID string) error {
	c, err := e.repo.GetByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%w: campaign %s does not exist", ErrNotExecutable, campaignID)
		}
		return err
	}
	if len(c.AudienceIDs) == 0 {
		return fmt.Errorf("%w: campaign %s has no audiences", ErrNotExecutable, campaignID)
	}

	lock := e.lockFor("campaign:execute:" + campaignID)
	ok, err := lock.Acquire(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return ErrLocked
	}
	defer func() {
		if err := lock.Release(context.Background()); err != nil {
			logger.Warn("execution lock release failed", "campaign_id", campaignID, "error", err.Error())
		}
	}()

	ok, err = e.repo.MarkRunningIfScheduled(ctx, campaignID)
	if err != nil {
		return err
	}
	if !ok {
		// Paused, cancelled, already running elsewhere, or completed.
		return fmt.Errorf("%w: campaign %s is not scheduled", ErrNotExecutable, campaignID)
	}

	now := time.Now()
	if err := e.repo.SetLastRunAt(ctx, campaignID, now); err != nil {
		return e.fail(ctx, c, err)
	}

	sends, err := e.collectRecipients(ctx, c)
	if err != nil {
		return e.fail(ctx, c, err)
	}

	if len(sends) == 0 {
		logger.Info("campaign matched no recipients", "campaign_id", campaignID)
		if err := e.repo.UpdateStatus(ctx, campaignID, domain.CampaignCompleted); err != nil {
			return e.fail(ctx, c, err)
		}
		return nil
	}

	n, err := e.sends.BulkCreate(ctx, sends)
	if err != nil {
		return e.fail(ctx, c, err)
	}
	logger.Info("campaign sends enqueued",
		"campaign_id", campaignID,
		"recipients", n)

	if c.Recurring() {
		// Back to scheduled so the next cron tick can fire.
		if err := e.repo.UpdateStatus(ctx, campaignID, domain.CampaignScheduled); err != nil {
			return e.fail(ctx, c, err)
		}
	}
	return nil
}

// collectRecipients expands the campaign's audiences into send rows,
// preserving one row per audience match.
func (e *Executor) collectRecipients(ctx context.Context, c *domain.Campaign) ([]domain.CampaignSend, error) {
	var sends []domain.CampaignSend
	for _, audienceID := range c.AudienceIDs {
		a, err := e.audiences.GetAny(ctx, c.OrganizationID, audienceID)
		if err != nil {
			return nil, fmt.Errorf("resolve audience %s: %w", audienceID, err)
		}
		contacts, err := e.audiences.MatchingContacts(ctx, c.OrganizationID, a.PreferenceFilter)
		if err != nil {
			return nil, fmt.Errorf("match audience %s: %w", audienceID, err)
		}
		for _, ct := range contacts {
			sends = append(sends, domain.CampaignSend{
				CampaignID: c.ID,
				ContactID:  ct.ID,
				Email:      ct.Email,
				Status:     domain.SendQueued,
			})
		}
	}
	return sends, nil
}

// fail marks the campaign failed and propagates the original error so
// the job layer can retry.
func (e *Executor) fail(ctx context.Context, c *domain.Campaign, cause error) error {
	logger.Error("campaign execution failed",
		"campaign_id", c.ID,
		"error", cause.Error())
	if err := e.repo.UpdateStatus(ctx, c.ID, domain.CampaignFailed); err != nil {
		logger.Error("campaign status update failed", "campaign_id", c.ID, "error", err.Error())
	}
	return cause
}
