package domain

import "time"

// Contact is one marketing recipient belonging to an organization.
// Email is stored lowercased and is unique per organization.
type Contact struct {
	ID             string    `json:"id" db:"id"`
	OrganizationID string    `json:"organization_id" db:"organization_id"`
	FirstName      string    `json:"first_name" db:"first_name"`
	LastName       string    `json:"last_name" db:"last_name"`
	Email          string    `json:"email" db:"email"`
	Phone          string    `json:"phone" db:"phone"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`

	// Preference is populated on reads that join the preference row.
	Preference *Preference `json:"preference,omitempty" db:"-"`
}

// ValidPhone reports whether s is exactly ten ASCII digits. Phone fields
// are optional; callers skip the check for empty values.
func ValidPhone(s string) bool {
	if len(s) != 10 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Preference is the single row of taxonomy attributes attached to a contact.
// Audience matching compares these against the audience's filter.
type Preference struct {
	ID        string `json:"id" db:"id"`
	ContactID string `json:"contact_id" db:"contact_id"`
	PreferenceFilter

	// Names carries the display names for the filter IDs on API reads.
	Names PreferenceNames `json:"values"`
}
