package worker

import (
	"context"
	"time"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/logger"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/campaign"
)

// CompletionSweep resolves one-time campaigns stuck in running: once no
// queued sends remain the campaign is completed. Recurring campaigns
// never enter this sweep because the executor reverts them to scheduled.
type CompletionSweep struct {
	campaigns campaign.Repository
	sends     campaign.SendRepository
	interval  time.Duration
}

// NewCompletionSweep creates the completion sweep.
func NewCompletionSweep(campaigns campaign.Repository, sends campaign.SendRepository, interval time.Duration) *CompletionSweep {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CompletionSweep{campaigns: campaigns, sends: sends, interval: interval}
}

// Run sweeps until the context is cancelled.
func (s *CompletionSweep) Run(ctx context.Context) {
	logger.Info("completion sweep started", "interval", s.interval.String())
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("completion sweep stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *CompletionSweep) tick(ctx context.Context) {
	running, err := s.campaigns.ListRunningOneTime(ctx)
	if err != nil {
		logger.Error("completion list failed", "error", err.Error())
		return
	}
	for _, c := range running {
		pending, err := s.sends.CountPending(ctx, c.ID)
		if err != nil {
			logger.Error("pending count failed", "campaign_id", c.ID, "error", err.Error())
			continue
		}
		if pending > 0 {
			continue
		}
		if err := s.campaigns.UpdateStatus(ctx, c.ID, domain.CampaignCompleted); err != nil {
			logger.Error("campaign completion failed", "campaign_id", c.ID, "error", err.Error())
			continue
		}
		logger.Info("campaign completed", "campaign_id", c.ID)
	}
}
