package campaign

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
)

func seedExecCampaign(repo *fakeRepo, scheduleType string, audienceIDs ...string) *domain.Campaign {
	return repo.add(&domain.Campaign{
		ID:               "c1",
		OrganizationID:   testOrg,
		EmailTemplateID:  "tpl-1",
		ScheduleTypeName: scheduleType,
		Status:           domain.CampaignScheduled,
		AudienceIDs:      audienceIDs,
		CreatedAt:        time.Now(),
	})
}

func TestExecuteUnknownCampaign(t *testing.T) {
	repo := newFakeRepo()
	exec := NewExecutor(repo, newFakeSendRepo(), newFakeAudienceRepo(), lockFactory(&fakeLock{available: true}))

	err := exec.Execute(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotExecutable)
}

func TestExecuteNoAudiencesNotExecutable(t *testing.T) {
	repo := newFakeRepo()
	seedExecCampaign(repo, domain.ScheduleOneTime)
	exec := NewExecutor(repo, newFakeSendRepo(), newFakeAudienceRepo(), lockFactory(&fakeLock{available: true}))

	err := exec.Execute(context.Background(), "c1")
	assert.ErrorIs(t, err, ErrNotExecutable)
	assert.Equal(t, domain.CampaignScheduled, repo.status("c1"))
}

func TestExecuteLocked(t *testing.T) {
	repo := newFakeRepo()
	seedExecCampaign(repo, domain.ScheduleOneTime, "aud-1")
	exec := NewExecutor(repo, newFakeSendRepo(), newFakeAudienceRepo(), lockFactory(&fakeLock{available: false}))

	err := exec.Execute(context.Background(), "c1")
	assert.ErrorIs(t, err, ErrLocked)
	assert.Equal(t, domain.CampaignScheduled, repo.status("c1"), "losing the lock must not touch state")
}

func TestExecuteLosesStatusRace(t *testing.T) {
	repo := newFakeRepo()
	c := seedExecCampaign(repo, domain.ScheduleOneTime, "aud-1")
	require.NoError(t, repo.UpdateStatus(context.Background(), c.ID, domain.CampaignPaused))

	exec := NewExecutor(repo, newFakeSendRepo(), newFakeAudienceRepo(), lockFactory(&fakeLock{available: true}))
	err := exec.Execute(context.Background(), c.ID)
	assert.ErrorIs(t, err, ErrNotExecutable)
	assert.Equal(t, domain.CampaignPaused, repo.status(c.ID))
}

func TestExecuteZeroRecipientsCompletes(t *testing.T) {
	repo := newFakeRepo()
	seedExecCampaign(repo, domain.ScheduleOneTime, "aud-1")
	audiences := newFakeAudienceRepo()
	audiences.add(&domain.Audience{
		ID:               "aud-1",
		OrganizationID:   testOrg,
		PreferenceFilter: domain.PreferenceFilter{LocationID: int64Ptr(1)},
	}, nil)
	sends := newFakeSendRepo()

	exec := NewExecutor(repo, sends, audiences, lockFactory(&fakeLock{available: true}))
	require.NoError(t, exec.Execute(context.Background(), "c1"))
	assert.Equal(t, domain.CampaignCompleted, repo.status("c1"))
	assert.Empty(t, sends.created)
}

func TestExecuteEnqueuesSendsPerAudienceMatch(t *testing.T) {
	repo := newFakeRepo()
	seedExecCampaign(repo, domain.ScheduleOneTime, "aud-1", "aud-2")

	shared := domain.Contact{ID: "ct-1", Email: "ravi@example.com"}
	audiences := newFakeAudienceRepo()
	audiences.add(&domain.Audience{
		ID:               "aud-1",
		OrganizationID:   testOrg,
		PreferenceFilter: domain.PreferenceFilter{LocationID: int64Ptr(1)},
	}, []domain.Contact{shared, {ID: "ct-2", Email: "asha@example.com"}})
	audiences.add(&domain.Audience{
		ID:               "aud-2",
		OrganizationID:   testOrg,
		PreferenceFilter: domain.PreferenceFilter{BhkTypeID: int64Ptr(2)},
	}, []domain.Contact{shared})
	sends := newFakeSendRepo()

	exec := NewExecutor(repo, sends, audiences, lockFactory(&fakeLock{available: true}))
	require.NoError(t, exec.Execute(context.Background(), "c1"))

	// The contact matching both audiences gets a row per match.
	require.Len(t, sends.created, 3)
	byContact := map[string]int{}
	for _, s := range sends.created {
		assert.Equal(t, "c1", s.CampaignID)
		assert.Equal(t, domain.SendQueued, s.Status)
		byContact[s.ContactID]++
	}
	assert.Equal(t, 2, byContact["ct-1"])
	assert.Equal(t, 1, byContact["ct-2"])

	// One-time campaigns stay running until the completion sweep.
	assert.Equal(t, domain.CampaignRunning, repo.status("c1"))
}

func TestExecuteSoftDeletedAudienceStillMatches(t *testing.T) {
	repo := newFakeRepo()
	seedExecCampaign(repo, domain.ScheduleOneTime, "aud-1")

	deleted := time.Now()
	audiences := newFakeAudienceRepo()
	audiences.add(&domain.Audience{
		ID:               "aud-1",
		OrganizationID:   testOrg,
		DeletedAt:        &deleted,
		PreferenceFilter: domain.PreferenceFilter{LocationID: int64Ptr(1)},
	}, []domain.Contact{{ID: "ct-1", Email: "ravi@example.com"}})
	sends := newFakeSendRepo()

	exec := NewExecutor(repo, sends, audiences, lockFactory(&fakeLock{available: true}))
	require.NoError(t, exec.Execute(context.Background(), "c1"))
	assert.Len(t, sends.created, 1)
}

func TestExecuteRecurringRevertsToScheduled(t *testing.T) {
	repo := newFakeRepo()
	c := seedExecCampaign(repo, domain.ScheduleRecurring, "aud-1")
	audiences := newFakeAudienceRepo()
	audiences.add(&domain.Audience{
		ID:               "aud-1",
		OrganizationID:   testOrg,
		PreferenceFilter: domain.PreferenceFilter{LocationID: int64Ptr(1)},
	}, []domain.Contact{{ID: "ct-1", Email: "ravi@example.com"}})
	sends := newFakeSendRepo()

	exec := NewExecutor(repo, sends, audiences, lockFactory(&fakeLock{available: true}))
	require.NoError(t, exec.Execute(context.Background(), c.ID))
	assert.Equal(t, domain.CampaignScheduled, repo.status(c.ID))
	assert.NotNil(t, repo.campaigns[c.ID].LastRunAt)
}

func TestExecuteMatchFailureMarksFailed(t *testing.T) {
	repo := newFakeRepo()
	seedExecCampaign(repo, domain.ScheduleOneTime, "aud-1")
	audiences := newFakeAudienceRepo()
	audiences.add(&domain.Audience{
		ID:               "aud-1",
		OrganizationID:   testOrg,
		PreferenceFilter: domain.PreferenceFilter{LocationID: int64Ptr(1)},
	}, nil)
	audiences.matchErr = errors.New("db down")

	exec := NewExecutor(repo, newFakeSendRepo(), audiences, lockFactory(&fakeLock{available: true}))
	err := exec.Execute(context.Background(), "c1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotExecutable, "infrastructure failures must stay retryable")
	assert.Equal(t, domain.CampaignFailed, repo.status("c1"))
}

func TestExecuteReleasesLock(t *testing.T) {
	repo := newFakeRepo()
	seedExecCampaign(repo, domain.ScheduleOneTime, "aud-1")
	audiences := newFakeAudienceRepo()
	audiences.add(&domain.Audience{
		ID:               "aud-1",
		OrganizationID:   testOrg,
		PreferenceFilter: domain.PreferenceFilter{LocationID: int64Ptr(1)},
	}, nil)
	lock := &fakeLock{available: true}

	exec := NewExecutor(repo, newFakeSendRepo(), audiences, lockFactory(lock))
	require.NoError(t, exec.Execute(context.Background(), "c1"))
	assert.True(t, lock.released)
}
