package domain

import "time"

// EmailType categorizes templates within an organization (newsletter,
// promotion, transactional, ...).
type EmailType struct {
	ID             string    `json:"id" db:"id"`
	OrganizationID string    `json:"organization_id" db:"organization_id"`
	Name           string    `json:"name" db:"name"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// EmailTemplate is reusable message content. Bodies may reference the
// contact merge tags {{first_name}}, {{last_name}}, {{email}} and {{phone}},
// substituted per recipient at send time.
type EmailTemplate struct {
	ID             string    `json:"id" db:"id"`
	OrganizationID string    `json:"organization_id" db:"organization_id"`
	EmailTypeID    string    `json:"email_type_id" db:"email_type_id"`
	Name           string    `json:"name" db:"name"`
	Subject        string    `json:"subject" db:"subject"`
	Preheader      string    `json:"preheader" db:"preheader"`
	FromName       string    `json:"from_name" db:"from_name"`
	FromEmail      string    `json:"from_email" db:"from_email"`
	ReplyTo        string    `json:"reply_to" db:"reply_to"`
	HTMLBody       string    `json:"html_body" db:"html_body"`
	TextBody       string    `json:"text_body" db:"text_body"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
