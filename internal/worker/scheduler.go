package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/logger"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/campaign"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/contact"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/job"
)

// retryDelay is how long a failed job waits before its next attempt.
const retryDelay = time.Minute

// Scheduler polls the jobs table and dispatches each claimed job to its
// handler. Handler errors requeue the job until its attempt budget is
// spent; jobs that can never succeed are marked done with a warning so
// they don't churn.
type Scheduler struct {
	jobs     job.Repository
	executor *campaign.Executor
	importer *contact.Importer

	interval  time.Duration
	staleAge  time.Duration
	batchSize int
}

// NewScheduler creates the job scheduler.
func NewScheduler(jobs job.Repository, executor *campaign.Executor, importer *contact.Importer, interval, staleAge time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if staleAge <= 0 {
		staleAge = 10 * time.Minute
	}
	return &Scheduler{
		jobs:      jobs,
		executor:  executor,
		importer:  importer,
		interval:  interval,
		staleAge:  staleAge,
		batchSize: 10,
	}
}

// Run polls until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	logger.Info("job scheduler started", "interval", s.interval.String())
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("job scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	claimed, err := s.jobs.ClaimDue(ctx, s.batchSize, s.staleAge)
	if err != nil {
		logger.Error("job claim failed", "error", err.Error())
		return
	}
	for _, j := range claimed {
		s.dispatch(ctx, j)
	}
}

func (s *Scheduler) dispatch(ctx context.Context, j domain.Job) {
	logger.Debug("job dispatched", "job_id", j.ID, "kind", j.Kind, "attempt", j.Attempts+1)

	var err error
	switch j.Kind {
	case domain.JobCampaignExecution:
		err = s.runExecution(ctx, j)
	case domain.JobContactImport:
		err = s.runImport(ctx, j)
	default:
		err = fmt.Errorf("unknown job kind %q", j.Kind)
	}

	switch {
	case err == nil:
		if err := s.jobs.MarkDone(ctx, j.ID); err != nil {
			logger.Error("job not marked done", "job_id", j.ID, "error", err.Error())
		}
	case errors.Is(err, campaign.ErrNotExecutable):
		// The campaign was paused, cancelled or already picked up.
		// Retrying can never succeed, so close the job out.
		logger.Warn("execution skipped", "job_id", j.ID, "reason", err.Error())
		if err := s.jobs.MarkDone(ctx, j.ID); err != nil {
			logger.Error("job not marked done", "job_id", j.ID, "error", err.Error())
		}
	default:
		logger.Error("job failed", "job_id", j.ID, "kind", j.Kind, "error", err.Error())
		if err := s.jobs.MarkFailedOrRetry(ctx, j.ID, err, retryDelay); err != nil {
			logger.Error("job failure not recorded", "job_id", j.ID, "error", err.Error())
		}
	}
}

func (s *Scheduler) runExecution(ctx context.Context, j domain.Job) error {
	var payload domain.ExecutionPayload
	if err := job.DecodePayload(j, &payload); err != nil {
		return fmt.Errorf("%w: bad execution payload: %v", campaign.ErrNotExecutable, err)
	}
	return s.executor.Execute(ctx, payload.CampaignID)
}

func (s *Scheduler) runImport(ctx context.Context, j domain.Job) error {
	var payload domain.ImportPayload
	if err := job.DecodePayload(j, &payload); err != nil {
		return fmt.Errorf("bad import payload: %w", err)
	}
	result, err := s.importer.Run(ctx, payload.OrganizationID, payload.Path)
	if err != nil {
		return err
	}
	if len(result.Errors) > 0 {
		logger.Warn("import finished with row errors",
			"org_id", payload.OrganizationID,
			"imported", result.Imported,
			"skipped", result.Skipped)
	}
	return nil
}
