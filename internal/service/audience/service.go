package audience

import (
	"context"
	"fmt"
	"strings"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/logger"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/contact"
)

// Service implements audience business logic.
type Service struct {
	repo     Repository
	taxonomy contact.TaxonomyRepository
}

// NewService creates an audience service.
func NewService(repo Repository, taxonomy contact.TaxonomyRepository) *Service {
	return &Service{repo: repo, taxonomy: taxonomy}
}

// Get returns an audience with resolved filter names and its current
// matched-contact count.
func (s *Service) Get(ctx context.Context, orgID, id string) (*domain.Audience, int, error) {
	a, err := s.repo.Get(ctx, orgID, id)
	if err != nil {
		return nil, 0, err
	}
	if err := s.attachNames(ctx, a); err != nil {
		return nil, 0, err
	}
	count, err := s.repo.CountMatching(ctx, orgID, a.PreferenceFilter)
	if err != nil {
		return nil, 0, err
	}
	return a, count, nil
}

// List returns the live audiences of an organization.
func (s *Service) List(ctx context.Context, orgID string) ([]domain.Audience, error) {
	audiences, err := s.repo.List(ctx, orgID)
	if err != nil {
		return nil, err
	}
	for i := range audiences {
		if err := s.attachNames(ctx, &audiences[i]); err != nil {
			return nil, err
		}
	}
	return audiences, nil
}

// Input holds the fields for creating or updating an audience. Filter
// values arrive as display names.
type Input struct {
	Name    string
	Filters domain.PreferenceNames
}

// Create validates and inserts an audience.
func (s *Service) Create(ctx context.Context, orgID string, in Input) (*domain.Audience, error) {
	a, err := s.build(ctx, orgID, in)
	if err != nil {
		return nil, err
	}
	id, err := s.repo.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	a.ID = id
	logger.Info("audience created", "audience_id", id, "org_id", orgID)
	if err := s.attachNames(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update replaces an audience's name and filters.
func (s *Service) Update(ctx context.Context, orgID, id string, in Input) (*domain.Audience, error) {
	if _, err := s.repo.Get(ctx, orgID, id); err != nil {
		return nil, err
	}
	a, err := s.build(ctx, orgID, in)
	if err != nil {
		return nil, err
	}
	a.ID = id
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	if err := s.attachNames(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete soft-deletes an audience. Campaigns already holding a reference
// keep working; the audience just stops being listable.
func (s *Service) Delete(ctx context.Context, orgID, id string) error {
	if err := s.repo.SoftDelete(ctx, orgID, id); err != nil {
		return err
	}
	logger.Info("audience deleted", "audience_id", id, "org_id", orgID)
	return nil
}

// Restore brings a soft-deleted audience back.
func (s *Service) Restore(ctx context.Context, orgID, id string) (*domain.Audience, error) {
	if err := s.repo.Restore(ctx, orgID, id); err != nil {
		return nil, err
	}
	a, err := s.repo.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachNames(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Contacts returns the contacts currently matching an audience.
func (s *Service) Contacts(ctx context.Context, orgID, id string) ([]domain.Contact, error) {
	a, err := s.repo.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	return s.repo.MatchingContacts(ctx, orgID, a.PreferenceFilter)
}

func (s *Service) build(ctx context.Context, orgID string, in Input) (*domain.Audience, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > domain.MaxNameLen {
		return nil, fmt.Errorf("%w: name is required and must be at most %d characters", ErrValidation, domain.MaxNameLen)
	}
	filter, err := s.taxonomy.ResolveFilter(ctx, in.Filters)
	if err != nil {
		return nil, err
	}
	return &domain.Audience{
		OrganizationID:   orgID,
		Name:             name,
		PreferenceFilter: filter,
	}, nil
}

func (s *Service) attachNames(ctx context.Context, a *domain.Audience) error {
	names, err := s.taxonomy.NamesFor(ctx, a.PreferenceFilter)
	if err != nil {
		return err
	}
	a.Names = names
	return nil
}
