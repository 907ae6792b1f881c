package organization

import (
	"context"
	"strings"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/logger"
)

// Service implements organization business logic.
type Service struct {
	repo Repository
}

// NewService creates an organization service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns a live organization.
func (s *Service) Get(ctx context.Context, id string) (*domain.Organization, error) {
	return s.repo.Get(ctx, id)
}

// List returns all organizations visible to super users.
func (s *Service) List(ctx context.Context, includeDeleted bool) ([]domain.Organization, error) {
	return s.repo.List(ctx, includeDeleted)
}

// Create validates and inserts a new organization.
func (s *Service) Create(ctx context.Context, name, description string) (*domain.Organization, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	taken, err := s.repo.ExistsByName(ctx, name, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrNameTaken
	}

	o := &domain.Organization{Name: name, Description: description}
	id, err := s.repo.Create(ctx, o)
	if err != nil {
		return nil, err
	}
	o.ID = id
	logger.Info("organization created", "org_id", id, "name", name)
	return o, nil
}

// Update changes the name and description of a live organization.
func (s *Service) Update(ctx context.Context, id, name, description string) (*domain.Organization, error) {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	taken, err := s.repo.ExistsByName(ctx, name, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrNameTaken
	}

	o.Name = name
	o.Description = description
	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Delete soft-deletes an organization. Its users can no longer
// authenticate but the data stays recoverable.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	logger.Info("organization deleted", "org_id", id)
	return nil
}

// Restore brings a soft-deleted organization back.
func (s *Service) Restore(ctx context.Context, id string) (*domain.Organization, error) {
	if err := s.repo.Restore(ctx, id); err != nil {
		return nil, err
	}
	logger.Info("organization restored", "org_id", id)
	return s.repo.Get(ctx, id)
}

func validateName(name string) error {
	if name == "" || len(name) > domain.MaxNameLen {
		return ErrInvalidName
	}
	return nil
}
