package campaign

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/logger"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/audience"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/job"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/template"
)

// cronParser accepts standard 5-field cron expressions.
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Service implements campaign business logic.
type Service struct {
	repo      Repository
	sends     SendRepository
	audiences audience.Repository
	templates template.Repository
	jobs      job.Repository
}

// NewService creates a campaign service.
func NewService(repo Repository, sends SendRepository, audiences audience.Repository, templates template.Repository, jobs job.Repository) *Service {
	return &Service{repo: repo, sends: sends, audiences: audiences, templates: templates, jobs: jobs}
}

// Get returns a campaign.
func (s *Service) Get(ctx context.Context, orgID, id string) (*domain.Campaign, error) {
	return s.repo.Get(ctx, orgID, id)
}

// List returns a page of campaigns.
func (s *Service) List(ctx context.Context, orgID string, f ListFilter) ([]domain.Campaign, int, error) {
	return s.repo.List(ctx, orgID, f)
}

// Input holds the fields for creating a campaign.
type Input struct {
	Name            string
	EmailTemplateID string
	AudienceIDs     []string
	ScheduleType    string
	ScheduledAt     *time.Time
	CronExpression  string
	EndDate         *time.Time
}

// Create validates references and schedule, inserts the campaign in
// scheduled state, and for one-time campaigns due immediately enqueues an
// execution job. A failed enqueue is logged, not fatal: the recurring
// scheduler or a manual requeue picks the campaign up from its state.
func (s *Service) Create(ctx context.Context, orgID string, in Input) (*domain.Campaign, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > domain.MaxNameLen {
		return nil, fmt.Errorf("%w: name is required and must be at most %d characters", ErrValidation, domain.MaxNameLen)
	}

	if _, err := s.templates.Get(ctx, orgID, in.EmailTemplateID); err != nil {
		return nil, ErrTemplateNotFound
	}
	if len(in.AudienceIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one audience is required", ErrValidation)
	}
	seen := map[string]bool{}
	for _, aid := range in.AudienceIDs {
		if seen[aid] {
			return nil, fmt.Errorf("%w: duplicate audience %s", ErrValidation, aid)
		}
		seen[aid] = true
		if _, err := s.audiences.Get(ctx, orgID, aid); err != nil {
			return nil, ErrAudienceNotFound
		}
	}

	st, err := s.repo.ScheduleTypeByName(ctx, in.ScheduleType)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown schedule type %q", ErrInvalidSchedule, in.ScheduleType)
	}

	c := &domain.Campaign{
		OrganizationID:   orgID,
		EmailTemplateID:  in.EmailTemplateID,
		ScheduleTypeID:   st.ID,
		ScheduleTypeName: st.Name,
		Name:             name,
		Status:           domain.CampaignScheduled,
		ScheduledAt:      in.ScheduledAt,
		CronExpression:   strings.TrimSpace(in.CronExpression),
		EndDate:          in.EndDate,
		AudienceIDs:      in.AudienceIDs,
	}
	if err := validateSchedule(c); err != nil {
		return nil, err
	}

	id, err := s.repo.CreateWithAudiences(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ID = id
	logger.Info("campaign created",
		"campaign_id", id,
		"org_id", orgID,
		"schedule_type", st.Name)

	if c.OneTime() {
		runAt := time.Now()
		if c.ScheduledAt != nil && c.ScheduledAt.After(runAt) {
			runAt = *c.ScheduledAt
		}
		payload := domain.ExecutionPayload{CampaignID: id}
		if _, err := s.jobs.Enqueue(ctx, domain.JobCampaignExecution, payload, runAt); err != nil {
			logger.Error("campaign execution enqueue failed",
				"campaign_id", id,
				"error", err.Error())
		}
	}
	return c, nil
}

// Pause moves a scheduled or running campaign to paused.
func (s *Service) Pause(ctx context.Context, orgID, id string) (*domain.Campaign, error) {
	if _, err := s.repo.Get(ctx, orgID, id); err != nil {
		return nil, err
	}
	ok, err := s.repo.PauseIfPausable(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidTransition
	}
	logger.Info("campaign paused", "campaign_id", id, "org_id", orgID)
	return s.repo.Get(ctx, orgID, id)
}

// Resume moves a paused campaign back to scheduled. One-time campaigns
// get a fresh execution job; recurring ones are picked up by the
// scheduler tick.
func (s *Service) Resume(ctx context.Context, orgID, id string) (*domain.Campaign, error) {
	c, err := s.repo.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	ok, err := s.repo.ResumeIfPaused(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidTransition
	}
	logger.Info("campaign resumed", "campaign_id", id, "org_id", orgID)

	if c.OneTime() {
		runAt := time.Now()
		if c.ScheduledAt != nil && c.ScheduledAt.After(runAt) {
			runAt = *c.ScheduledAt
		}
		payload := domain.ExecutionPayload{CampaignID: id}
		if _, err := s.jobs.Enqueue(ctx, domain.JobCampaignExecution, payload, runAt); err != nil {
			logger.Error("campaign execution enqueue failed",
				"campaign_id", id,
				"error", err.Error())
		}
	}
	return s.repo.Get(ctx, orgID, id)
}

// Cancel terminally cancels a campaign. Already-queued sends for a
// running execution still drain; cancellation stops future runs.
func (s *Service) Cancel(ctx context.Context, orgID, id string) (*domain.Campaign, error) {
	if _, err := s.repo.Get(ctx, orgID, id); err != nil {
		return nil, err
	}
	ok, err := s.repo.CancelIfCancellable(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidTransition
	}
	logger.Info("campaign cancelled", "campaign_id", id, "org_id", orgID)
	return s.repo.Get(ctx, orgID, id)
}

// Stats returns aggregated send counts for a campaign.
func (s *Service) Stats(ctx context.Context, orgID, id string) (*domain.CampaignStats, error) {
	if _, err := s.repo.Get(ctx, orgID, id); err != nil {
		return nil, err
	}
	return s.repo.Stats(ctx, orgID, id)
}

// Sends returns a page of per-recipient send rows for a campaign.
func (s *Service) Sends(ctx context.Context, orgID, id string, limit, offset int) ([]domain.CampaignSend, int, error) {
	if _, err := s.repo.Get(ctx, orgID, id); err != nil {
		return nil, 0, err
	}
	return s.sends.ListByCampaign(ctx, orgID, id, limit, offset)
}

// validateSchedule enforces the schedule-type specific fields.
func validateSchedule(c *domain.Campaign) error {
	switch {
	case c.OneTime():
		if c.ScheduledAt == nil {
			return fmt.Errorf("%w: one-time campaigns require scheduled_at", ErrInvalidSchedule)
		}
		if c.CronExpression != "" {
			return fmt.Errorf("%w: one-time campaigns cannot carry a cron expression", ErrInvalidSchedule)
		}
		if !c.ScheduledAt.After(time.Now()) {
			return fmt.Errorf("%w: scheduled_at must be in the future", ErrInvalidSchedule)
		}
		if c.EndDate != nil && !c.EndDate.After(*c.ScheduledAt) {
			return fmt.Errorf("%w: end_date must be after scheduled_at", ErrInvalidSchedule)
		}
	case c.Recurring():
		if c.CronExpression == "" {
			return fmt.Errorf("%w: recurring campaigns require a cron expression", ErrInvalidSchedule)
		}
		if _, err := cronParser.Parse(c.CronExpression); err != nil {
			return fmt.Errorf("%w: bad cron expression: %v", ErrInvalidSchedule, err)
		}
		if c.EndDate != nil && c.EndDate.Before(time.Now()) {
			return fmt.Errorf("%w: end_date is in the past", ErrInvalidSchedule)
		}
	default:
		return fmt.Errorf("%w: unknown schedule type %q", ErrInvalidSchedule, c.ScheduleTypeName)
	}
	return nil
}

// NextRun computes the next recurring fire time after the given instant.
func NextRun(cronExpr string, after time.Time) (time.Time, error) {
	sched, err := cronParser.Parse(cronExpr)
	if err != nil {
		return time.Time{}, err
	}
	return sched.Next(after), nil
}
