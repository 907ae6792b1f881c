package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
)

type stubSendRepo struct {
	pending map[string]int
}

func (r *stubSendRepo) CountPending(_ context.Context, campaignID string) (int, error) {
	return r.pending[campaignID], nil
}

func (r *stubSendRepo) BulkCreate(_ context.Context, sends []domain.CampaignSend) (int, error) {
	return 0, nil
}
func (r *stubSendRepo) ClaimBatch(_ context.Context, limit int, staleAge time.Duration) ([]domain.SendItem, error) {
	return nil, nil
}
func (r *stubSendRepo) MarkSent(_ context.Context, id string) error           { return nil }
func (r *stubSendRepo) MarkFailed(_ context.Context, id, reason string) error { return nil }
func (r *stubSendRepo) Requeue(_ context.Context, id, reason string) error    { return nil }
func (r *stubSendRepo) ListByCampaign(_ context.Context, orgID, campaignID string, limit, offset int) ([]domain.CampaignSend, int, error) {
	return nil, 0, nil
}

func TestCompletionSweep(t *testing.T) {
	repo := newStubCampaignRepo()
	repo.running = []domain.Campaign{
		{ID: "drained", ScheduleTypeName: domain.ScheduleOneTime, Status: domain.CampaignRunning},
		{ID: "busy", ScheduleTypeName: domain.ScheduleOneTime, Status: domain.CampaignRunning},
	}
	sends := &stubSendRepo{pending: map[string]int{"drained": 0, "busy": 7}}

	sweep := NewCompletionSweep(repo, sends, time.Minute)
	sweep.tick(context.Background())

	assert.Equal(t, domain.CampaignCompleted, repo.statuses["drained"])
	_, touched := repo.statuses["busy"]
	assert.False(t, touched, "campaigns with queued sends stay running")
}
