package domain

import "time"

// Job kinds processed by the background job runner.
const (
	JobCampaignExecution = "campaign_execution"
	JobContactImport     = "contact_import"
)

// JobStatus enumerates queue states for background jobs.
type JobStatus string

const (
	JobQueued  JobStatus = "queued"
	JobRunning JobStatus = "running"
	JobDone    JobStatus = "done"
	JobFailed  JobStatus = "failed"
)

// MaxJobAttempts is the fixed retry budget for every job kind. A job that
// fails MaxJobAttempts times is marked failed and left for inspection.
const MaxJobAttempts = 3

// Job is one unit of deferred work: a campaign execution or a CSV contact
// import. RunAt supports deferred one-time campaign executions; the payload
// is kind-specific JSON.
type Job struct {
	ID        string    `json:"id" db:"id"`
	Kind      string    `json:"kind" db:"kind"`
	Payload   []byte    `json:"payload" db:"payload"`
	Status    JobStatus `json:"status" db:"status"`
	RunAt     time.Time `json:"run_at" db:"run_at"`
	Attempts  int       `json:"attempts" db:"attempts"`
	LastError string    `json:"last_error,omitempty" db:"last_error"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ExecutionPayload is the payload for campaign_execution jobs.
type ExecutionPayload struct {
	CampaignID string `json:"campaign_id"`
}

// ImportPayload is the payload for contact_import jobs. Path is a
// server-side temp file that the worker removes when done.
type ImportPayload struct {
	OrganizationID string `json:"organization_id"`
	Path           string `json:"path"`
}
