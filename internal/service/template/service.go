package template

import (
	"context"
	"fmt"
	"strings"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/logger"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/contact"
)

// Service implements email type and template business logic.
type Service struct {
	repo Repository
}

// NewService creates a template service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateType adds an email type to an organization.
func (s *Service) CreateType(ctx context.Context, orgID, name string) (*domain.EmailType, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > domain.MaxNameLen {
		return nil, fmt.Errorf("%w: name is required and must be at most %d characters", ErrValidation, domain.MaxNameLen)
	}
	t := &domain.EmailType{OrganizationID: orgID, Name: name}
	id, err := s.repo.CreateType(ctx, t)
	if err != nil {
		return nil, err
	}
	t.ID = id
	return t, nil
}

// ListTypes returns all email types of an organization.
func (s *Service) ListTypes(ctx context.Context, orgID string) ([]domain.EmailType, error) {
	return s.repo.ListTypes(ctx, orgID)
}

// UpdateType renames an email type.
func (s *Service) UpdateType(ctx context.Context, orgID, id, name string) (*domain.EmailType, error) {
	t, err := s.repo.GetType(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" || len(name) > domain.MaxNameLen {
		return nil, fmt.Errorf("%w: name is required and must be at most %d characters", ErrValidation, domain.MaxNameLen)
	}
	t.Name = name
	if err := s.repo.UpdateType(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteType removes an unused email type.
func (s *Service) DeleteType(ctx context.Context, orgID, id string) error {
	return s.repo.DeleteType(ctx, orgID, id)
}

// Input holds the fields for creating or updating a template.
type Input struct {
	EmailTypeID string
	Name        string
	Subject     string
	Preheader   string
	FromName    string
	FromEmail   string
	ReplyTo     string
	HTMLBody    string
	TextBody    string
}

// Get returns a template.
func (s *Service) Get(ctx context.Context, orgID, id string) (*domain.EmailTemplate, error) {
	return s.repo.Get(ctx, orgID, id)
}

// List returns the templates of an organization.
func (s *Service) List(ctx context.Context, orgID string) ([]domain.EmailTemplate, error) {
	return s.repo.List(ctx, orgID)
}

// Create validates and inserts a template.
func (s *Service) Create(ctx context.Context, orgID string, in Input) (*domain.EmailTemplate, error) {
	t, err := s.build(ctx, orgID, in)
	if err != nil {
		return nil, err
	}
	id, err := s.repo.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	t.ID = id
	logger.Info("email template created", "template_id", id, "org_id", orgID)
	return t, nil
}

// Update replaces a template's fields.
func (s *Service) Update(ctx context.Context, orgID, id string, in Input) (*domain.EmailTemplate, error) {
	if _, err := s.repo.Get(ctx, orgID, id); err != nil {
		return nil, err
	}
	t, err := s.build(ctx, orgID, in)
	if err != nil {
		return nil, err
	}
	t.ID = id
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes a template.
func (s *Service) Delete(ctx context.Context, orgID, id string) error {
	return s.repo.Delete(ctx, orgID, id)
}

func (s *Service) build(ctx context.Context, orgID string, in Input) (*domain.EmailTemplate, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(in.Subject) == "" {
		return nil, fmt.Errorf("%w: subject is required", ErrValidation)
	}
	if strings.TrimSpace(in.HTMLBody) == "" {
		return nil, fmt.Errorf("%w: html body is required", ErrValidation)
	}
	if err := contact.ValidateEmail(strings.ToLower(strings.TrimSpace(in.FromEmail))); err != nil {
		return nil, fmt.Errorf("%w: from_email is invalid", ErrValidation)
	}
	// reply_to is optional but must parse when present.
	if replyTo := strings.ToLower(strings.TrimSpace(in.ReplyTo)); replyTo != "" {
		if err := contact.ValidateEmail(replyTo); err != nil {
			return nil, fmt.Errorf("%w: reply_to is invalid", ErrValidation)
		}
	}
	if in.EmailTypeID != "" {
		if _, err := s.repo.GetType(ctx, orgID, in.EmailTypeID); err != nil {
			return nil, err
		}
	}
	return &domain.EmailTemplate{
		OrganizationID: orgID,
		EmailTypeID:    in.EmailTypeID,
		Name:           strings.TrimSpace(in.Name),
		Subject:        in.Subject,
		Preheader:      in.Preheader,
		FromName:       strings.TrimSpace(in.FromName),
		FromEmail:      strings.ToLower(strings.TrimSpace(in.FromEmail)),
		ReplyTo:        strings.ToLower(strings.TrimSpace(in.ReplyTo)),
		HTMLBody:       in.HTMLBody,
		TextBody:       in.TextBody,
	}, nil
}
