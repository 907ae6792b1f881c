package domain

import "time"

// SendStatus enumerates the lifecycle of a single recipient delivery.
// Rows are created queued and terminally mutated once; they are never
// deleted.
type SendStatus string

const (
	SendQueued SendStatus = "queued"
	SendSent   SendStatus = "sent"
	SendFailed SendStatus = "failed"
)

// CampaignSend tracks one email delivery to one contact for one campaign
// execution. A contact matching multiple audiences of the same campaign gets
// one row per match; duplicates are intentional. The campaign_sends table
// doubles as the send queue: workers claim queued rows with
// FOR UPDATE SKIP LOCKED.
type CampaignSend struct {
	ID           string     `json:"id" db:"id"`
	CampaignID   string     `json:"campaign_id" db:"campaign_id"`
	ContactID    string     `json:"contact_id" db:"contact_id"`
	Email        string     `json:"email" db:"email"`
	Status       SendStatus `json:"status" db:"status"`
	Attempts     int        `json:"attempts" db:"attempts"`
	SentAt       *time.Time `json:"sent_at" db:"sent_at"`
	ErrorMessage string     `json:"error_message,omitempty" db:"error_message"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// SendItem is a claimed send joined with everything a worker needs to
// render and dispatch the email without further lookups.
type SendItem struct {
	SendID     string
	CampaignID string
	Attempts   int

	// Recipient merge-tag values.
	ContactID string
	FirstName string
	LastName  string
	Email     string
	Phone     string

	// Template fields, rendered per recipient.
	Subject   string
	Preheader string
	FromName  string
	FromEmail string
	ReplyTo   string
	HTMLBody  string
	TextBody  string
}
