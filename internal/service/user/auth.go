package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/irfanmohammad01/real-estate-marketing/internal/auth"
	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/logger"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/organization"
)

// Authenticator implements the login/logout flows for both realms.
type Authenticator struct {
	repo   Repository
	supers SuperRepository
	orgs   organization.Repository
	tokens *auth.Manager
}

// LoginResult is what a successful login returns to the handler.
type LoginResult struct {
	Token string
	User  *domain.User
}

// SuperLoginResult is the super-user variant of LoginResult.
type SuperLoginResult struct {
	Token string
	Super *domain.SuperUser
}

// NewAuthenticator creates the authentication flows.
func NewAuthenticator(repo Repository, supers SuperRepository, orgs organization.Repository, tokens *auth.Manager) *Authenticator {
	return &Authenticator{repo: repo, supers: supers, orgs: orgs, tokens: tokens}
}

// Login authenticates an organization user and issues a token. The fresh
// jti is stored on the user row, superseding any previous token.
func (a *Authenticator) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := a.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		// Same error as a wrong password so login probes can't
		// enumerate accounts.
		return nil, ErrInvalidCredentials
	}
	if u.Status != domain.UserStatusActive || !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	// Users of a deleted tenant cannot log in.
	if _, err := a.orgs.Get(ctx, u.OrganizationID); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, jti, err := a.tokens.Issue(auth.KindUser, u.ID, u.OrganizationID, u.RoleName)
	if err != nil {
		return nil, err
	}
	if err := a.repo.UpdateJTI(ctx, u.ID, jti); err != nil {
		return nil, err
	}
	u.JTI = jti
	logger.Info("user login", "user_id", u.ID, "org_id", u.OrganizationID)
	return &LoginResult{Token: token, User: u}, nil
}

// SuperLogin authenticates a super user and issues a super-realm token.
func (a *Authenticator) SuperLogin(ctx context.Context, email, password string) (*SuperLoginResult, error) {
	su, err := a.supers.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !auth.CheckPassword(su.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, jti, err := a.tokens.Issue(auth.KindSuper, su.ID, "", "")
	if err != nil {
		return nil, err
	}
	if err := a.supers.UpdateJTI(ctx, su.ID, jti); err != nil {
		return nil, err
	}
	su.JTI = jti
	logger.Info("super user login", "super_id", su.ID)
	return &SuperLoginResult{Token: token, Super: su}, nil
}

// Logout rotates the principal's jti, revoking every outstanding token.
func (a *Authenticator) Logout(ctx context.Context, p auth.Principal) error {
	jti := uuid.New().String()
	var err error
	if p.IsSuper() {
		err = a.supers.UpdateJTI(ctx, p.ID, jti)
	} else {
		err = a.repo.UpdateJTI(ctx, p.ID, jti)
	}
	if err != nil {
		return err
	}
	logger.Info("logout", "principal_id", p.ID, "kind", p.Kind)
	return nil
}
