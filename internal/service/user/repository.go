package user

import (
	"context"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
)

// Repository defines the data access contract for organization users.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Get returns a live user by ID. Returns ErrNotFound otherwise.
	Get(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail returns a live user by email, across organizations.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns live users of one organization ordered by created_at.
	List(ctx context.Context, orgID string) ([]domain.User, error)

	// ListByRole returns live users of one organization holding a role.
	ListByRole(ctx context.Context, orgID string, roleName string) ([]domain.User, error)

	// ExistsByEmail reports whether a live user already uses the email.
	ExistsByEmail(ctx context.Context, email string, excludeID string) (bool, error)

	// Create inserts a new user and returns its ID.
	Create(ctx context.Context, u *domain.User) (string, error)

	// Update modifies profile fields (full name, phone, role).
	Update(ctx context.Context, u *domain.User) error

	// UpdateJTI stores the current token identifier for revocation checks.
	UpdateJTI(ctx context.Context, id, jti string) error

	// SoftDelete stamps deleted_at.
	SoftDelete(ctx context.Context, id string) error

	// RoleByName resolves a role record by its name.
	RoleByName(ctx context.Context, name string) (*domain.Role, error)
}

// SuperRepository defines data access for super users.
type SuperRepository interface {
	// Get returns a super user by ID. Returns ErrNotFound otherwise.
	Get(ctx context.Context, id string) (*domain.SuperUser, error)

	// GetByEmail returns a super user by email.
	GetByEmail(ctx context.Context, email string) (*domain.SuperUser, error)

	// UpdateJTI stores the current token identifier.
	UpdateJTI(ctx context.Context, id, jti string) error
}
