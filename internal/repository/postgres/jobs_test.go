package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
)

func TestClaimDueReclaimsStaleRunningJobs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewJobRepo(db)

	rows := sqlmock.NewRows([]string{"id", "kind", "payload", "status", "run_at", "attempts", "last_error", "created_at"}).
		AddRow("job-1", domain.JobCampaignExecution, []byte(`{"campaign_id":"c1"}`), domain.JobRunning, time.Now(), 1, "", time.Now())

	// Queued-and-due jobs and stale running claims are both up for grabs.
	mock.ExpectQuery(`claimed_at < NOW\(\) - \(\$3 \* interval '1 second'\)`).
		WithArgs(string(domain.JobRunning), string(domain.JobQueued), int64(600), 10).
		WillReturnRows(rows)

	claimed, err := repo.ClaimDue(context.Background(), 10, 10*time.Minute)
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	assert.Equal(t, "job-1", claimed[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
