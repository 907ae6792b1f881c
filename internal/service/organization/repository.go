package organization

import (
	"context"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
)

// Repository defines the data access contract for organizations.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Get returns a live organization. Returns ErrNotFound if it doesn't
	// exist or is soft-deleted.
	Get(ctx context.Context, id string) (*domain.Organization, error)

	// GetAny returns an organization regardless of deletion state.
	GetAny(ctx context.Context, id string) (*domain.Organization, error)

	// List returns organizations ordered by created_at DESC. Deleted
	// tenants are included only when includeDeleted is set.
	List(ctx context.Context, includeDeleted bool) ([]domain.Organization, error)

	// ExistsByName reports whether a live organization already uses the
	// given name.
	ExistsByName(ctx context.Context, name string, excludeID string) (bool, error)

	// Create inserts a new organization and returns its ID.
	Create(ctx context.Context, o *domain.Organization) (string, error)

	// Update modifies name and description.
	Update(ctx context.Context, o *domain.Organization) error

	// SoftDelete stamps deleted_at. Returns ErrNotFound for missing or
	// already-deleted rows.
	SoftDelete(ctx context.Context, id string) error

	// Restore clears deleted_at. Returns ErrNotDeleted when the row is
	// not soft-deleted.
	Restore(ctx context.Context, id string) error
}
