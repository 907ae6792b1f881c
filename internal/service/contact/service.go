package contact

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/logger"
)

// Service implements contact business logic.
type Service struct {
	repo     Repository
	taxonomy TaxonomyRepository
}

// NewService creates a contact service.
func NewService(repo Repository, taxonomy TaxonomyRepository) *Service {
	return &Service{repo: repo, taxonomy: taxonomy}
}

// Get returns a contact with resolved preference names.
func (s *Service) Get(ctx context.Context, orgID, id string) (*domain.Contact, error) {
	c, err := s.repo.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachNames(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns a page of contacts with resolved preference names.
func (s *Service) List(ctx context.Context, orgID string, f ListFilter) ([]domain.Contact, int, error) {
	contacts, total, err := s.repo.List(ctx, orgID, f)
	if err != nil {
		return nil, 0, err
	}
	for i := range contacts {
		if err := s.attachNames(ctx, &contacts[i]); err != nil {
			return nil, 0, err
		}
	}
	return contacts, total, nil
}

// Input holds the fields for creating or updating a contact. Preference
// values come in as display names and are resolved against the taxonomy.
type Input struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Preferences domain.PreferenceNames
}

// Create validates and inserts a contact with its preference.
func (s *Service) Create(ctx context.Context, orgID string, in Input) (*domain.Contact, error) {
	c, err := s.build(ctx, orgID, in)
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByEmail(ctx, orgID, c.Email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	id, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ID = id
	if c.Preference != nil {
		c.Preference.ContactID = id
	}
	logger.Info("contact created", "contact_id", id, "org_id", orgID)
	if err := s.attachNames(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces a contact's fields and preference.
func (s *Service) Update(ctx context.Context, orgID, id string, in Input) (*domain.Contact, error) {
	existing, err := s.repo.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	c, err := s.build(ctx, orgID, in)
	if err != nil {
		return nil, err
	}
	c.ID = existing.ID
	if c.Preference != nil && existing.Preference != nil {
		c.Preference.ID = existing.Preference.ID
		c.Preference.ContactID = existing.ID
	}

	taken, err := s.repo.ExistsByEmail(ctx, orgID, c.Email, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return s.Get(ctx, orgID, id)
}

// Delete removes a contact.
func (s *Service) Delete(ctx context.Context, orgID, id string) error {
	if err := s.repo.Delete(ctx, orgID, id); err != nil {
		return err
	}
	logger.Info("contact deleted", "contact_id", id, "org_id", orgID)
	return nil
}

// Taxonomy returns all preference lookup values.
func (s *Service) Taxonomy(ctx context.Context) (*domain.Taxonomy, error) {
	return s.taxonomy.All(ctx)
}

// build validates the input and assembles a domain.Contact.
func (s *Service) build(ctx context.Context, orgID string, in Input) (*domain.Contact, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.FirstName) == "" {
		return nil, fmt.Errorf("%w: first name is required", ErrValidation)
	}
	phone := strings.TrimSpace(in.Phone)
	if phone != "" && !domain.ValidPhone(phone) {
		return nil, fmt.Errorf("%w: phone must be exactly 10 digits", ErrValidation)
	}

	filter, err := s.taxonomy.ResolveFilter(ctx, in.Preferences)
	if err != nil {
		return nil, err
	}

	return &domain.Contact{
		OrganizationID: orgID,
		FirstName:      strings.TrimSpace(in.FirstName),
		LastName:       strings.TrimSpace(in.LastName),
		Email:          email,
		Phone:          phone,
		Preference:     &domain.Preference{PreferenceFilter: filter},
	}, nil
}

// attachNames resolves the preference IDs to display names for API output.
func (s *Service) attachNames(ctx context.Context, c *domain.Contact) error {
	if c.Preference == nil {
		return nil
	}
	names, err := s.taxonomy.NamesFor(ctx, c.Preference.PreferenceFilter)
	if err != nil {
		return err
	}
	c.Preference.Names = names
	return nil
}

// ValidateEmail checks that the address parses per RFC 5322.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email %q", ErrValidation, email)
	}
	return nil
}
