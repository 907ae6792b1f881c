package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/campaign"
)

type stubCampaignRepo struct {
	mu        sync.Mutex
	recurring []domain.Campaign
	running   []domain.Campaign
	statuses  map[string]domain.CampaignStatus
}

func newStubCampaignRepo() *stubCampaignRepo {
	return &stubCampaignRepo{statuses: map[string]domain.CampaignStatus{}}
}

func (r *stubCampaignRepo) ListRecurringActive(_ context.Context) ([]domain.Campaign, error) {
	return r.recurring, nil
}

func (r *stubCampaignRepo) ListRunningOneTime(_ context.Context) ([]domain.Campaign, error) {
	return r.running, nil
}

func (r *stubCampaignRepo) UpdateStatus(_ context.Context, id string, status domain.CampaignStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses[id] = status
	return nil
}

func (r *stubCampaignRepo) Get(_ context.Context, orgID, id string) (*domain.Campaign, error) {
	return nil, nil
}
func (r *stubCampaignRepo) GetByID(_ context.Context, id string) (*domain.Campaign, error) {
	return nil, nil
}
func (r *stubCampaignRepo) List(_ context.Context, orgID string, f campaign.ListFilter) ([]domain.Campaign, int, error) {
	return nil, 0, nil
}
func (r *stubCampaignRepo) CreateWithAudiences(_ context.Context, c *domain.Campaign) (string, error) {
	return "", nil
}
func (r *stubCampaignRepo) ScheduleTypeByName(_ context.Context, name string) (*domain.ScheduleType, error) {
	return nil, nil
}
func (r *stubCampaignRepo) MarkRunningIfScheduled(_ context.Context, id string) (bool, error) {
	return false, nil
}
func (r *stubCampaignRepo) PauseIfPausable(_ context.Context, orgID, id string) (bool, error) {
	return false, nil
}
func (r *stubCampaignRepo) ResumeIfPaused(_ context.Context, orgID, id string) (bool, error) {
	return false, nil
}
func (r *stubCampaignRepo) CancelIfCancellable(_ context.Context, orgID, id string) (bool, error) {
	return false, nil
}
func (r *stubCampaignRepo) SetLastRunAt(_ context.Context, id string, at time.Time) error { return nil }
func (r *stubCampaignRepo) Stats(_ context.Context, orgID, id string) (*domain.CampaignStats, error) {
	return nil, nil
}

type stubJobRepo struct {
	mu       sync.Mutex
	enqueued []string // campaign/job kinds enqueued
}

func (r *stubJobRepo) Enqueue(_ context.Context, kind string, payload any, runAt time.Time) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enqueued = append(r.enqueued, kind)
	return "job-1", nil
}

func (r *stubJobRepo) ClaimDue(_ context.Context, limit int, staleAge time.Duration) ([]domain.Job, error) {
	return nil, nil
}
func (r *stubJobRepo) MarkDone(_ context.Context, id string) error                 { return nil }
func (r *stubJobRepo) MarkFailedOrRetry(_ context.Context, id string, jobErr error, retryDelay time.Duration) error {
	return nil
}

func timePtr(t time.Time) *time.Time { return &t }

func recurringCampaign(id, cron string, lastRun *time.Time, endDate *time.Time) domain.Campaign {
	return domain.Campaign{
		ID:               id,
		OrganizationID:   "org-1",
		ScheduleTypeName: domain.ScheduleRecurring,
		Status:           domain.CampaignScheduled,
		CronExpression:   cron,
		LastRunAt:        lastRun,
		EndDate:          endDate,
		CreatedAt:        time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestRecurringEnqueuesDueCampaign(t *testing.T) {
	repo := newStubCampaignRepo()
	jobs := &stubJobRepo{}
	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)

	// Daily at 09:00; last ran yesterday, so the 09:00 fire is overdue.
	repo.recurring = []domain.Campaign{
		recurringCampaign("c1", "0 9 * * *", timePtr(now.Add(-24*time.Hour)), nil),
	}

	s := NewRecurringScheduler(repo, jobs, time.Minute)
	s.now = func() time.Time { return now }
	s.tick(context.Background())

	require.Len(t, jobs.enqueued, 1)
	assert.Equal(t, domain.JobCampaignExecution, jobs.enqueued[0])
}

func TestRecurringSkipsNotYetDue(t *testing.T) {
	repo := newStubCampaignRepo()
	jobs := &stubJobRepo{}
	now := time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC)

	// Daily at 09:00; last ran at 09:00 yesterday, next fire is an hour away.
	repo.recurring = []domain.Campaign{
		recurringCampaign("c1", "0 9 * * *", timePtr(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)), nil),
	}

	s := NewRecurringScheduler(repo, jobs, time.Minute)
	s.now = func() time.Time { return now }
	s.tick(context.Background())

	assert.Empty(t, jobs.enqueued)
}

func TestRecurringNeverRunIsDueImmediately(t *testing.T) {
	repo := newStubCampaignRepo()
	jobs := &stubJobRepo{}
	// Created at midnight, never ran; half past midnight is well before
	// the first 09:00 cron fire, but a never-run campaign executes now.
	now := time.Date(2026, 1, 1, 0, 30, 0, 0, time.UTC)

	repo.recurring = []domain.Campaign{
		recurringCampaign("c1", "0 9 * * *", nil, nil),
	}

	s := NewRecurringScheduler(repo, jobs, time.Minute)
	s.now = func() time.Time { return now }
	s.tick(context.Background())

	assert.Len(t, jobs.enqueued, 1)
}

func TestRecurringCompletesPastEndDate(t *testing.T) {
	repo := newStubCampaignRepo()
	jobs := &stubJobRepo{}
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	repo.recurring = []domain.Campaign{
		recurringCampaign("c1", "0 9 * * *", nil, timePtr(now.Add(-time.Hour))),
	}

	s := NewRecurringScheduler(repo, jobs, time.Minute)
	s.now = func() time.Time { return now }
	s.tick(context.Background())

	assert.Empty(t, jobs.enqueued)
	assert.Equal(t, domain.CampaignCompleted, repo.statuses["c1"])
}

func TestRecurringBadCronDoesNotBlockOthers(t *testing.T) {
	repo := newStubCampaignRepo()
	jobs := &stubJobRepo{}
	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)

	repo.recurring = []domain.Campaign{
		recurringCampaign("broken", "not a cron", timePtr(now.Add(-24*time.Hour)), nil),
		recurringCampaign("ok", "0 9 * * *", timePtr(now.Add(-24*time.Hour)), nil),
	}

	s := NewRecurringScheduler(repo, jobs, time.Minute)
	s.now = func() time.Time { return now }
	s.tick(context.Background())

	assert.Len(t, jobs.enqueued, 1)
}
