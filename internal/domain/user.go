package domain

import "time"

// Role names recognized by the authorization layer. SUPER_USER is the
// platform realm; ORG_ADMIN and ORG_USER are tenant realms.
const (
	RoleSuperUser = "SUPER_USER"
	RoleOrgAdmin  = "ORG_ADMIN"
	RoleOrgUser   = "ORG_USER"
)

// Role is a row of the roles lookup table.
type Role struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// UserStatusActive is the default status for newly created users.
const UserStatusActive = "active"

// User is a tenant account. Email is unique across all live users because
// login does not name an organization; phone is exactly ten digits. JTI is
// the session-revocation token: every issued JWT
// embeds it, and a token is only honored while its jti claim matches this
// stored value.
type User struct {
	ID             string     `json:"id" db:"id"`
	OrganizationID string     `json:"organization_id" db:"organization_id"`
	RoleID         int64      `json:"role_id" db:"role_id"`
	RoleName       string     `json:"role" db:"role_name"`
	FullName       string     `json:"full_name" db:"full_name"`
	Email          string     `json:"email" db:"email"`
	Phone          string     `json:"phone" db:"phone"`
	PasswordHash   string     `json:"-" db:"password_hash"`
	Status         string     `json:"status" db:"status"`
	JTI            string     `json:"-" db:"jti"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// SuperUser is a platform-level account with no organization. Super users
// manage organizations and seed each tenant's first admin.
type SuperUser struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	JTI          string    `json:"-" db:"jti"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
