package domain

import "time"

// Schedule type names. One-time campaigns require scheduled_at; recurring
// campaigns require a cron expression.
const (
	ScheduleOneTime   = "one_time"
	ScheduleRecurring = "recurring"
)

// ScheduleType is a row of the schedule_types lookup table.
type ScheduleType struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// CampaignStatus enumerates the lifecycle states of a campaign.
type CampaignStatus string

const (
	CampaignScheduled CampaignStatus = "scheduled"
	CampaignRunning   CampaignStatus = "running"
	CampaignPaused    CampaignStatus = "paused"
	CampaignCompleted CampaignStatus = "completed"
	CampaignCancelled CampaignStatus = "cancelled"
	CampaignFailed    CampaignStatus = "failed"
)

// Campaign references one email template and one or more audiences and
// drives email dispatch on a one-time or recurring schedule.
type Campaign struct {
	ID               string         `json:"id" db:"id"`
	OrganizationID   string         `json:"organization_id" db:"organization_id"`
	EmailTemplateID  string         `json:"email_template_id" db:"email_template_id"`
	ScheduleTypeID   int64          `json:"schedule_type_id" db:"schedule_type_id"`
	ScheduleTypeName string         `json:"schedule_type" db:"schedule_type_name"`
	Name             string         `json:"name" db:"name"`
	Status           CampaignStatus `json:"status" db:"status"`
	ScheduledAt      *time.Time     `json:"scheduled_at" db:"scheduled_at"`
	CronExpression   string         `json:"cron_expression" db:"cron_expression"`
	EndDate          *time.Time     `json:"end_date" db:"end_date"`
	LastRunAt        *time.Time     `json:"last_run_at" db:"last_run_at"`
	CreatedAt        time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at" db:"updated_at"`

	// AudienceIDs is populated on reads that join the campaign_audiences rows.
	AudienceIDs []string `json:"audience_ids" db:"-"`
}

// OneTime reports whether the campaign runs once at scheduled_at.
func (c *Campaign) OneTime() bool { return c.ScheduleTypeName == ScheduleOneTime }

// Recurring reports whether the campaign runs on a cron schedule.
func (c *Campaign) Recurring() bool { return c.ScheduleTypeName == ScheduleRecurring }

// IsTerminal reports whether the campaign is in a final state. Terminal
// campaigns never transition again.
func (c *Campaign) IsTerminal() bool {
	return c.Status == CampaignCompleted || c.Status == CampaignCancelled
}

// CanPause reports whether a pause request is valid from the current state.
func (c *Campaign) CanPause() bool {
	return c.Status == CampaignScheduled || c.Status == CampaignRunning
}

// CanResume reports whether a resume request is valid from the current state.
func (c *Campaign) CanResume() bool { return c.Status == CampaignPaused }

// CanCancel reports whether a cancel request is valid from the current state.
func (c *Campaign) CanCancel() bool { return !c.IsTerminal() }

// CampaignStats aggregates per-send delivery counts for one campaign.
type CampaignStats struct {
	CampaignID string `json:"campaign_id"`
	Total      int    `json:"total"`
	Queued     int    `json:"queued"`
	Sent       int    `json:"sent"`
	Failed     int    `json:"failed"`
}
