package worker

import (
	"context"
	"sync"
	"time"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
	"github.com/irfanmohammad01/real-estate-marketing/internal/mailer"
	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/logger"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/campaign"
)

// SendWorker drains the campaign_sends queue: claim a batch, render each
// message, deliver it, and record the outcome. Multiple workers share the
// queue safely because claiming uses SKIP LOCKED.
type SendWorker struct {
	sends    campaign.SendRepository
	renderer *mailer.Renderer
	sender   mailer.Sender

	workers     int
	batchSize   int
	interval    time.Duration
	staleAge    time.Duration
	maxAttempts int
}

// SendWorkerConfig tunes the pool.
type SendWorkerConfig struct {
	Workers     int
	BatchSize   int
	Interval    time.Duration
	StaleAge    time.Duration
	MaxAttempts int
}

// NewSendWorker creates a send worker pool.
func NewSendWorker(sends campaign.SendRepository, renderer *mailer.Renderer, sender mailer.Sender, cfg SendWorkerConfig) *SendWorker {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Second
	}
	if cfg.StaleAge <= 0 {
		cfg.StaleAge = 10 * time.Minute
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = domain.MaxJobAttempts
	}
	return &SendWorker{
		sends:       sends,
		renderer:    renderer,
		sender:      sender,
		workers:     cfg.Workers,
		batchSize:   cfg.BatchSize,
		interval:    cfg.Interval,
		staleAge:    cfg.StaleAge,
		maxAttempts: cfg.MaxAttempts,
	}
}

// Run polls until the context is cancelled.
func (w *SendWorker) Run(ctx context.Context) {
	logger.Info("send worker started", "workers", w.workers, "batch_size", w.batchSize)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("send worker stopped")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

// tick claims one batch and fans it out over the worker pool.
func (w *SendWorker) tick(ctx context.Context) {
	items, err := w.sends.ClaimBatch(ctx, w.batchSize, w.staleAge)
	if err != nil {
		logger.Error("send claim failed", "error", err.Error())
		return
	}
	if len(items) == 0 {
		return
	}

	ch := make(chan domain.SendItem)
	var wg sync.WaitGroup
	for i := 0; i < w.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range ch {
				w.process(ctx, item)
			}
		}()
	}
	for _, item := range items {
		ch <- item
	}
	close(ch)
	wg.Wait()
}

// process renders and delivers one send, then records the outcome.
// Permanent failures burn the send; transient ones requeue it until the
// attempt budget runs out.
func (w *SendWorker) process(ctx context.Context, item domain.SendItem) {
	msg, err := w.renderer.Render(item)
	if err != nil {
		// A template that doesn't render won't render on retry either.
		w.recordFailure(ctx, item, mailer.Permanent(err))
		return
	}

	if err := w.sender.Send(ctx, msg); err != nil {
		w.recordFailure(ctx, item, err)
		return
	}

	if err := w.sends.MarkSent(ctx, item.SendID); err != nil {
		logger.Error("mark sent failed", "send_id", item.SendID, "error", err.Error())
	}
}

func (w *SendWorker) recordFailure(ctx context.Context, item domain.SendItem, sendErr error) {
	permanent := mailer.IsPermanent(sendErr)
	outOfAttempts := item.Attempts+1 >= w.maxAttempts

	logger.Warn("send failed",
		"send_id", item.SendID,
		"campaign_id", item.CampaignID,
		"to", item.Email,
		"attempt", item.Attempts+1,
		"permanent", permanent,
		"error", sendErr.Error())

	var err error
	if permanent || outOfAttempts {
		err = w.sends.MarkFailed(ctx, item.SendID, sendErr.Error())
	} else {
		err = w.sends.Requeue(ctx, item.SendID, sendErr.Error())
	}
	if err != nil {
		logger.Error("send outcome not recorded", "send_id", item.SendID, "error", err.Error())
	}
}
