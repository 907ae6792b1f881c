package campaign

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/distlock"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/audience"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/template"
)

type fakeRepo struct {
	mu        sync.Mutex
	campaigns map[string]*domain.Campaign
	nextID    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{campaigns: map[string]*domain.Campaign{}}
}

func (r *fakeRepo) add(c *domain.Campaign) *domain.Campaign {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.campaigns[c.ID] = &cp
	return &cp
}

func (r *fakeRepo) Get(_ context.Context, orgID, id string) (*domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[id]
	if !ok || c.OrganizationID != orgID {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeRepo) List(_ context.Context, orgID string, f ListFilter) ([]domain.Campaign, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Campaign
	for _, c := range r.campaigns {
		if c.OrganizationID == orgID && (f.Status == "" || string(c.Status) == f.Status) {
			out = append(out, *c)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepo) CreateWithAudiences(_ context.Context, c *domain.Campaign) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = fmt.Sprintf("campaign-%d", r.nextID)
	c.CreatedAt = time.Now()
	cp := *c
	r.campaigns[c.ID] = &cp
	return c.ID, nil
}

func (r *fakeRepo) ScheduleTypeByName(_ context.Context, name string) (*domain.ScheduleType, error) {
	switch name {
	case domain.ScheduleOneTime:
		return &domain.ScheduleType{ID: 1, Name: name}, nil
	case domain.ScheduleRecurring:
		return &domain.ScheduleType{ID: 2, Name: name}, nil
	}
	return nil, ErrInvalidSchedule
}

func (r *fakeRepo) transition(id string, to domain.CampaignStatus, from ...domain.CampaignStatus) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[id]
	if !ok {
		return false
	}
	for _, s := range from {
		if c.Status == s {
			c.Status = to
			return true
		}
	}
	return false
}

func (r *fakeRepo) MarkRunningIfScheduled(_ context.Context, id string) (bool, error) {
	return r.transition(id, domain.CampaignRunning, domain.CampaignScheduled), nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id string, status domain.CampaignStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[id]
	if !ok {
		return ErrNotFound
	}
	c.Status = status
	return nil
}

func (r *fakeRepo) PauseIfPausable(_ context.Context, orgID, id string) (bool, error) {
	return r.transition(id, domain.CampaignPaused, domain.CampaignScheduled, domain.CampaignRunning), nil
}

func (r *fakeRepo) ResumeIfPaused(_ context.Context, orgID, id string) (bool, error) {
	return r.transition(id, domain.CampaignScheduled, domain.CampaignPaused), nil
}

func (r *fakeRepo) CancelIfCancellable(_ context.Context, orgID, id string) (bool, error) {
	return r.transition(id, domain.CampaignCancelled,
		domain.CampaignScheduled, domain.CampaignRunning, domain.CampaignPaused, domain.CampaignFailed), nil
}

func (r *fakeRepo) SetLastRunAt(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[id]
	if !ok {
		return ErrNotFound
	}
	c.LastRunAt = &at
	return nil
}

func (r *fakeRepo) ListRecurringActive(_ context.Context) ([]domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Campaign
	for _, c := range r.campaigns {
		if c.Recurring() && c.Status == domain.CampaignScheduled {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListRunningOneTime(_ context.Context) ([]domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Campaign
	for _, c := range r.campaigns {
		if c.OneTime() && c.Status == domain.CampaignRunning {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeRepo) Stats(_ context.Context, orgID, id string) (*domain.CampaignStats, error) {
	return &domain.CampaignStats{CampaignID: id}, nil
}

func (r *fakeRepo) status(id string) domain.CampaignStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.campaigns[id].Status
}

type fakeSendRepo struct {
	mu      sync.Mutex
	created []domain.CampaignSend
	pending map[string]int
	failErr error
}

func newFakeSendRepo() *fakeSendRepo {
	return &fakeSendRepo{pending: map[string]int{}}
}

func (r *fakeSendRepo) BulkCreate(_ context.Context, sends []domain.CampaignSend) (int, error) {
	if r.failErr != nil {
		return 0, r.failErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, sends...)
	return len(sends), nil
}

func (r *fakeSendRepo) ClaimBatch(_ context.Context, limit int, staleAge time.Duration) ([]domain.SendItem, error) {
	return nil, nil
}

func (r *fakeSendRepo) MarkSent(_ context.Context, id string) error          { return nil }
func (r *fakeSendRepo) MarkFailed(_ context.Context, id, reason string) error { return nil }
func (r *fakeSendRepo) Requeue(_ context.Context, id, reason string) error    { return nil }

func (r *fakeSendRepo) CountPending(_ context.Context, campaignID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending[campaignID], nil
}

func (r *fakeSendRepo) ListByCampaign(_ context.Context, orgID, campaignID string, limit, offset int) ([]domain.CampaignSend, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.CampaignSend
	for _, s := range r.created {
		if s.CampaignID == campaignID {
			out = append(out, s)
		}
	}
	return out, len(out), nil
}

type fakeAudienceRepo struct {
	audiences map[string]*domain.Audience
	contacts  map[string][]domain.Contact // audience ID -> matches
	matchErr  error
}

func newFakeAudienceRepo() *fakeAudienceRepo {
	return &fakeAudienceRepo{
		audiences: map[string]*domain.Audience{},
		contacts:  map[string][]domain.Contact{},
	}
}

func (r *fakeAudienceRepo) add(a *domain.Audience, matches []domain.Contact) {
	r.audiences[a.ID] = a
	r.contacts[a.ID] = matches
}

func (r *fakeAudienceRepo) Get(_ context.Context, orgID, id string) (*domain.Audience, error) {
	a, ok := r.audiences[id]
	if !ok || a.OrganizationID != orgID || a.DeletedAt != nil {
		return nil, audience.ErrNotFound
	}
	return a, nil
}

func (r *fakeAudienceRepo) GetAny(_ context.Context, orgID, id string) (*domain.Audience, error) {
	a, ok := r.audiences[id]
	if !ok || a.OrganizationID != orgID {
		return nil, audience.ErrNotFound
	}
	return a, nil
}

func (r *fakeAudienceRepo) List(_ context.Context, orgID string) ([]domain.Audience, error) {
	return nil, nil
}

func (r *fakeAudienceRepo) Create(_ context.Context, a *domain.Audience) (string, error) {
	return a.ID, nil
}

func (r *fakeAudienceRepo) Update(_ context.Context, a *domain.Audience) error    { return nil }
func (r *fakeAudienceRepo) SoftDelete(_ context.Context, orgID, id string) error  { return nil }
func (r *fakeAudienceRepo) Restore(_ context.Context, orgID, id string) error     { return nil }

func (r *fakeAudienceRepo) MatchingContacts(_ context.Context, orgID string, f domain.PreferenceFilter) ([]domain.Contact, error) {
	if r.matchErr != nil {
		return nil, r.matchErr
	}
	for id, a := range r.audiences {
		if reflect.DeepEqual(a.PreferenceFilter, f) {
			return r.contacts[id], nil
		}
	}
	return nil, nil
}

func (r *fakeAudienceRepo) CountMatching(_ context.Context, orgID string, f domain.PreferenceFilter) (int, error) {
	matches, err := r.MatchingContacts(context.Background(), orgID, f)
	return len(matches), err
}

type fakeTemplateRepo struct {
	templates map[string]*domain.EmailTemplate
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: map[string]*domain.EmailTemplate{}}
}

func (r *fakeTemplateRepo) Get(_ context.Context, orgID, id string) (*domain.EmailTemplate, error) {
	t, ok := r.templates[id]
	if !ok || t.OrganizationID != orgID {
		return nil, template.ErrNotFound
	}
	return t, nil
}

func (r *fakeTemplateRepo) GetType(_ context.Context, orgID, id string) (*domain.EmailType, error) {
	return nil, template.ErrTypeNotFound
}

func (r *fakeTemplateRepo) ListTypes(_ context.Context, orgID string) ([]domain.EmailType, error) {
	return nil, nil
}

func (r *fakeTemplateRepo) CreateType(_ context.Context, t *domain.EmailType) (string, error) {
	return "", nil
}

func (r *fakeTemplateRepo) UpdateType(_ context.Context, t *domain.EmailType) error   { return nil }
func (r *fakeTemplateRepo) DeleteType(_ context.Context, orgID, id string) error      { return nil }
func (r *fakeTemplateRepo) List(_ context.Context, orgID string) ([]domain.EmailTemplate, error) {
	return nil, nil
}
func (r *fakeTemplateRepo) Create(_ context.Context, t *domain.EmailTemplate) (string, error) {
	return "", nil
}
func (r *fakeTemplateRepo) Update(_ context.Context, t *domain.EmailTemplate) error { return nil }
func (r *fakeTemplateRepo) Delete(_ context.Context, orgID, id string) error        { return nil }

type fakeJobRepo struct {
	mu       sync.Mutex
	enqueued []fakeJob
}

type fakeJob struct {
	kind    string
	payload any
	runAt   time.Time
}

func (r *fakeJobRepo) Enqueue(_ context.Context, kind string, payload any, runAt time.Time) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enqueued = append(r.enqueued, fakeJob{kind: kind, payload: payload, runAt: runAt})
	return "job-1", nil
}

func (r *fakeJobRepo) ClaimDue(_ context.Context, limit int, staleAge time.Duration) ([]domain.Job, error) {
	return nil, nil
}
func (r *fakeJobRepo) MarkDone(_ context.Context, id string) error                 { return nil }
func (r *fakeJobRepo) MarkFailedOrRetry(_ context.Context, id string, jobErr error, retryDelay time.Duration) error {
	return nil
}

type fakeLock struct {
	available bool
	released  bool
}

func (l *fakeLock) Acquire(_ context.Context) (bool, error) { return l.available, nil }
func (l *fakeLock) Release(_ context.Context) error {
	l.released = true
	return nil
}

func lockFactory(l *fakeLock) LockFactory {
	return func(string) distlock.DistLock { return l }
}

func int64Ptr(v int64) *int64 { return &v }
