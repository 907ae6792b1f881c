package domain

import "time"

// Organization is the tenant: the unit of data isolation. Every
// tenant-scoped table carries an organization_id foreign key, and every
// repository method on those tables takes the caller's organization ID.
type Organization struct {
	ID          string     `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// MaxNameLen is the upper bound on organization, audience, and campaign names.
const MaxNameLen = 150
