package template

import (
	"context"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
)

// Repository defines the data access contract for email types and
// templates. Implementations must be safe for concurrent use.
type Repository interface {
	// GetType returns an email type. Returns ErrTypeNotFound otherwise.
	GetType(ctx context.Context, orgID, id string) (*domain.EmailType, error)

	// ListTypes returns all email types of an organization.
	ListTypes(ctx context.Context, orgID string) ([]domain.EmailType, error)

	// CreateType inserts an email type and returns its ID.
	CreateType(ctx context.Context, t *domain.EmailType) (string, error)

	// UpdateType renames an email type.
	UpdateType(ctx context.Context, t *domain.EmailType) error

	// DeleteType removes an email type. Returns ErrTypeInUse while
	// templates still reference it.
	DeleteType(ctx context.Context, orgID, id string) error

	// Get returns a template. Returns ErrNotFound otherwise.
	Get(ctx context.Context, orgID, id string) (*domain.EmailTemplate, error)

	// List returns templates of an organization, newest first.
	List(ctx context.Context, orgID string) ([]domain.EmailTemplate, error)

	// Create inserts a template and returns its ID.
	Create(ctx context.Context, t *domain.EmailTemplate) (string, error)

	// Update modifies a template.
	Update(ctx context.Context, t *domain.EmailTemplate) error

	// Delete removes a template.
	Delete(ctx context.Context, orgID, id string) error
}
