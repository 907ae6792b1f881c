package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/irfanmohammad01/real-estate-marketing/internal/auth"
	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/logger"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/organization"
)

// Service implements user management for both realms.
type Service struct {
	repo   Repository
	supers SuperRepository
	orgs   organization.Repository
}

// NewService creates a user service.
func NewService(repo Repository, supers SuperRepository, orgs organization.Repository) *Service {
	return &Service{repo: repo, supers: supers, orgs: orgs}
}

// LookupUser satisfies auth.PrincipalStore.
func (s *Service) LookupUser(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.Get(ctx, id)
}

// LookupSuperUser satisfies auth.PrincipalStore.
func (s *Service) LookupSuperUser(ctx context.Context, id string) (*domain.SuperUser, error) {
	return s.supers.Get(ctx, id)
}

// Get returns a user scoped to the given organization.
func (s *Service) Get(ctx context.Context, orgID, id string) (*domain.User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.OrganizationID != orgID {
		return nil, ErrNotFound
	}
	return u, nil
}

// List returns the live users of an organization.
func (s *Service) List(ctx context.Context, orgID string) ([]domain.User, error) {
	return s.repo.List(ctx, orgID)
}

// CreateInput holds the fields for creating an organization user.
type CreateInput struct {
	FullName string
	Email    string
	Phone    string
	Password string
	RoleName string
}

// Create adds a user to an organization. The password must satisfy the
// complexity policy.
func (s *Service) Create(ctx context.Context, orgID string, in CreateInput) (*domain.User, error) {
	if _, err := s.orgs.Get(ctx, orgID); err != nil {
		return nil, ErrOrgNotFound
	}

	email := normalizeEmail(in.Email)
	if email == "" || strings.TrimSpace(in.FullName) == "" {
		return nil, fmt.Errorf("%w: full name and email are required", ErrValidation)
	}
	if err := auth.ValidateComplexity(in.Password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	phone := strings.TrimSpace(in.Phone)
	if phone != "" && !domain.ValidPhone(phone) {
		return nil, fmt.Errorf("%w: phone must be exactly 10 digits", ErrValidation)
	}

	roleName := in.RoleName
	if roleName == "" {
		roleName = domain.RoleOrgUser
	}
	role, err := s.repo.RoleByName(ctx, roleName)
	if err != nil {
		return nil, ErrInvalidRole
	}

	taken, err := s.repo.ExistsByEmail(ctx, email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		OrganizationID: orgID,
		RoleID:         role.ID,
		RoleName:       role.Name,
		FullName:       strings.TrimSpace(in.FullName),
		Email:          email,
		Phone:          phone,
		PasswordHash:   hash,
		Status:         domain.UserStatusActive,
	}
	id, err := s.repo.Create(ctx, u)
	if err != nil {
		return nil, err
	}
	u.ID = id
	logger.Info("user created", "user_id", id, "org_id", orgID, "role", role.Name)
	return u, nil
}

// CreateOrgAdmin provisions an ORG_ADMIN with a generated password. The
// plaintext is returned exactly once so the operator can hand it over; it
// is never stored or logged.
func (s *Service) CreateOrgAdmin(ctx context.Context, orgID, fullName, email, phone string) (*domain.User, string, error) {
	password, err := auth.GeneratePassword(12)
	if err != nil {
		return nil, "", err
	}
	u, err := s.Create(ctx, orgID, CreateInput{
		FullName: fullName,
		Email:    email,
		Phone:    phone,
		Password: password,
		RoleName: domain.RoleOrgAdmin,
	})
	if err != nil {
		return nil, "", err
	}
	return u, password, nil
}

// UpdateInput holds the mutable profile fields.
type UpdateInput struct {
	FullName *string
	Phone    *string
	RoleName *string
}

// Update changes a user's profile within its organization.
func (s *Service) Update(ctx context.Context, orgID, id string, in UpdateInput) (*domain.User, error) {
	u, err := s.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if in.FullName != nil {
		if strings.TrimSpace(*in.FullName) == "" {
			return nil, fmt.Errorf("%w: full name cannot be blank", ErrValidation)
		}
		u.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Phone != nil {
		phone := strings.TrimSpace(*in.Phone)
		if phone != "" && !domain.ValidPhone(phone) {
			return nil, fmt.Errorf("%w: phone must be exactly 10 digits", ErrValidation)
		}
		u.Phone = phone
	}
	if in.RoleName != nil {
		role, err := s.repo.RoleByName(ctx, *in.RoleName)
		if err != nil {
			return nil, ErrInvalidRole
		}
		u.RoleID = role.ID
		u.RoleName = role.Name
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete soft-deletes a user. Their outstanding tokens die with the row
// because jti lookups fail from then on.
func (s *Service) Delete(ctx context.Context, orgID, id string) error {
	if _, err := s.Get(ctx, orgID, id); err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	logger.Info("user deleted", "user_id", id, "org_id", orgID)
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
