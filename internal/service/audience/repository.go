package audience

import (
	"context"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
)

// Repository defines the data access contract for audiences.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Get returns a live audience. Returns ErrNotFound otherwise.
	Get(ctx context.Context, orgID, id string) (*domain.Audience, error)

	// GetAny returns an audience regardless of deletion state. Campaigns
	// referencing a soft-deleted audience keep executing against it.
	GetAny(ctx context.Context, orgID, id string) (*domain.Audience, error)

	// List returns live audiences of one organization.
	List(ctx context.Context, orgID string) ([]domain.Audience, error)

	// Create inserts an audience and returns its ID.
	Create(ctx context.Context, a *domain.Audience) (string, error)

	// Update modifies name and filters.
	Update(ctx context.Context, a *domain.Audience) error

	// SoftDelete stamps deleted_at.
	SoftDelete(ctx context.Context, orgID, id string) error

	// Restore clears deleted_at. Returns ErrNotDeleted when the row is
	// not soft-deleted.
	Restore(ctx context.Context, orgID, id string) error

	// MatchingContacts returns the contacts whose preference matches the
	// audience's filters. With no filters set, every contact of the
	// organization matches.
	MatchingContacts(ctx context.Context, orgID string, f domain.PreferenceFilter) ([]domain.Contact, error)

	// CountMatching returns the size of the matched set without loading it.
	CountMatching(ctx context.Context, orgID string, f domain.PreferenceFilter) (int, error)
}
