package job

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
)

// ErrNotFound is returned for lookups of missing jobs.
var ErrNotFound = errors.New("job not found")

// Repository defines the data access contract for the job queue.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Enqueue inserts a job to run at the given time and returns its ID.
	Enqueue(ctx context.Context, kind string, payload any, runAt time.Time) (string, error)

	// ClaimDue atomically claims up to limit due jobs, marking them
	// running. A claimed job is invisible to other pollers. Jobs left
	// running for more than staleAge are reclaimed from crashed
	// schedulers.
	ClaimDue(ctx context.Context, limit int, staleAge time.Duration) ([]domain.Job, error)

	// MarkDone finishes a job successfully.
	MarkDone(ctx context.Context, id string) error

	// MarkFailedOrRetry records a failure. The job returns to the queue
	// with a delay while attempts remain; otherwise it is failed
	// terminally.
	MarkFailedOrRetry(ctx context.Context, id string, jobErr error, retryDelay time.Duration) error
}

// DecodePayload unmarshals a job payload into dst.
func DecodePayload(j domain.Job, dst any) error {
	return json.Unmarshal(j.Payload, dst)
}
