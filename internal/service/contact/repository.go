package contact

import (
	"context"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
)

// Repository defines the data access contract for contacts and their
// preferences. Implementations must be safe for concurrent use.
type Repository interface {
	// Get returns a contact with its preference. Returns ErrNotFound if
	// the contact doesn't exist in the organization.
	Get(ctx context.Context, orgID, id string) (*domain.Contact, error)

	// List returns contacts of one organization ordered by created_at
	// DESC, with the total count for pagination.
	List(ctx context.Context, orgID string, f ListFilter) ([]domain.Contact, int, error)

	// ExistsByEmail reports whether the organization already has a
	// contact with this email.
	ExistsByEmail(ctx context.Context, orgID, email string, excludeID string) (bool, error)

	// Create inserts a contact and its preference row in one transaction
	// and returns the contact ID.
	Create(ctx context.Context, c *domain.Contact) (string, error)

	// Update modifies a contact and its preference.
	Update(ctx context.Context, c *domain.Contact) error

	// Delete removes a contact and its preference.
	Delete(ctx context.Context, orgID, id string) error
}

// TaxonomyRepository resolves preference lookup values.
type TaxonomyRepository interface {
	// All returns the full taxonomy for building filter UIs.
	All(ctx context.Context) (*domain.Taxonomy, error)

	// ResolveFilter maps preference value names to their IDs. Unknown
	// names yield ErrUnknownValue.
	ResolveFilter(ctx context.Context, names domain.PreferenceNames) (domain.PreferenceFilter, error)

	// NamesFor maps a filter's IDs back to display names.
	NamesFor(ctx context.Context, f domain.PreferenceFilter) (domain.PreferenceNames, error)
}

// ListFilter controls pagination and search for contact lists.
type ListFilter struct {
	Search string
	Limit  int
	Offset int
}
