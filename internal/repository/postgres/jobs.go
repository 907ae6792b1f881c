package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/job"
)

// JobRepo implements job.Repository against PostgreSQL. Due jobs are
// claimed with FOR UPDATE SKIP LOCKED so multiple scheduler processes can
// poll concurrently.
type JobRepo struct{ db *sql.DB }

// NewJobRepo creates a Postgres-backed job repository.
func NewJobRepo(db *sql.DB) *JobRepo { return &JobRepo{db: db} }

func (r *JobRepo) Enqueue(ctx context.Context, kind string, payload any, runAt time.Time) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal job payload: %w", err)
	}
	id := uuid.New().String()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO jobs (id, kind, payload, status, run_at, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`, id, kind, data, domain.JobQueued, runAt)
	if err != nil {
		return "", fmt.Errorf("enqueue job: %w", err)
	}
	return id, nil
}

func (r *JobRepo) ClaimDue(ctx context.Context, limit int, staleAge time.Duration) ([]domain.Job, error) {
	// Running jobs whose claim is older than staleAge belong to a crashed
	// scheduler and go back up for grabs.
	rows, err := r.db.QueryContext(ctx, `
		UPDATE jobs
		SET status = $1, claimed_at = NOW()
		WHERE id IN (
			SELECT id FROM jobs
			WHERE (status = $2 AND run_at <= NOW())
			   OR (status = $1 AND claimed_at < NOW() - ($3 * interval '1 second'))
			ORDER BY run_at
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, kind, payload, status, run_at, attempts, COALESCE(last_error,''), created_at
	`, domain.JobRunning, domain.JobQueued, int64(staleAge.Seconds()), limit)
	if err != nil {
		return nil, fmt.Errorf("claim jobs: %w", err)
	}
	defer rows.Close()

	var out []domain.Job
	for rows.Next() {
		var j domain.Job
		if err := rows.Scan(&j.ID, &j.Kind, &j.Payload, &j.Status, &j.RunAt, &j.Attempts, &j.LastError, &j.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (r *JobRepo) MarkDone(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE jobs SET status = $1, attempts = attempts + 1 WHERE id = $2
	`, domain.JobDone, id)
	if err != nil {
		return fmt.Errorf("mark job done: %w", err)
	}
	return ensureAffected(res, job.ErrNotFound)
}

func (r *JobRepo) MarkFailedOrRetry(ctx context.Context, id string, jobErr error, retryDelay time.Duration) error {
	// One statement decides retry vs terminal failure off the stored
	// attempt count, so concurrent sweeps can't double-count.
	res, err := r.db.ExecContext(ctx, `
		UPDATE jobs
		SET attempts = attempts + 1,
		    last_error = $1,
		    status = CASE WHEN attempts + 1 >= $2 THEN $3 ELSE $4 END,
		    run_at = CASE WHEN attempts + 1 >= $2 THEN run_at ELSE NOW() + ($5 * interval '1 second') END
		WHERE id = $6
	`, truncate(jobErr.Error(), 500), domain.MaxJobAttempts,
		domain.JobFailed, domain.JobQueued, int64(retryDelay.Seconds()), id)
	if err != nil {
		return fmt.Errorf("mark job failed: %w", err)
	}
	return ensureAffected(res, job.ErrNotFound)
}
