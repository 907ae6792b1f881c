package worker

import (
	"context"
	"time"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/logger"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/campaign"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/job"
)

// RecurringScheduler ticks over active recurring campaigns and enqueues
// an execution job for each one whose cron schedule has fired since its
// last run. A campaign that has never run is due immediately. Campaigns
// past their end date are completed. One campaign's error never blocks
// the rest of the tick.
type RecurringScheduler struct {
	campaigns campaign.Repository
	jobs      job.Repository
	interval  time.Duration

	// now is swappable for tests.
	now func() time.Time
}

// NewRecurringScheduler creates the recurring campaign scheduler.
func NewRecurringScheduler(campaigns campaign.Repository, jobs job.Repository, interval time.Duration) *RecurringScheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &RecurringScheduler{
		campaigns: campaigns,
		jobs:      jobs,
		interval:  interval,
		now:       time.Now,
	}
}

// Run ticks until the context is cancelled.
func (s *RecurringScheduler) Run(ctx context.Context) {
	logger.Info("recurring scheduler started", "interval", s.interval.String())
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("recurring scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *RecurringScheduler) tick(ctx context.Context) {
	active, err := s.campaigns.ListRecurringActive(ctx)
	if err != nil {
		logger.Error("recurring list failed", "error", err.Error())
		return
	}
	for _, c := range active {
		if err := s.consider(ctx, c); err != nil {
			logger.Error("recurring campaign check failed",
				"campaign_id", c.ID,
				"error", err.Error())
		}
	}
}

// consider decides whether one recurring campaign is due and acts on it.
func (s *RecurringScheduler) consider(ctx context.Context, c domain.Campaign) error {
	now := s.now()

	if c.EndDate != nil && now.After(*c.EndDate) {
		logger.Info("recurring campaign past end date", "campaign_id", c.ID)
		return s.campaigns.UpdateStatus(ctx, c.ID, domain.CampaignCompleted)
	}

	// A campaign that has never fired runs right away; the cron only
	// spaces out runs after the first one.
	if c.LastRunAt != nil {
		next, err := campaign.NextRun(c.CronExpression, *c.LastRunAt)
		if err != nil {
			return err
		}
		if next.After(now) {
			return nil
		}
	}

	payload := domain.ExecutionPayload{CampaignID: c.ID}
	if _, err := s.jobs.Enqueue(ctx, domain.JobCampaignExecution, payload, now); err != nil {
		return err
	}
	logger.Info("recurring campaign due", "campaign_id", c.ID)
	return nil
}
