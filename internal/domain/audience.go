package domain

import "time"

// Audience is a saved contact filter scoped to an organization. Each set
// taxonomy dimension is an equality constraint; an audience with no
// dimensions set matches every contact in the organization.
type Audience struct {
	ID             string `json:"id" db:"id"`
	OrganizationID string `json:"organization_id" db:"organization_id"`
	Name           string `json:"name" db:"name"`
	PreferenceFilter
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`

	// Names carries taxonomy labels for API responses.
	Names PreferenceNames `json:"filters" db:"-"`
}
