package user

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfanmohammad01/real-estate-marketing/internal/auth"
	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/organization"
)

type memUserRepo struct {
	users map[string]*domain.User
}

func (r *memUserRepo) Get(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) && u.DeletedAt == nil {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memUserRepo) List(_ context.Context, orgID string) ([]domain.User, error) { return nil, nil }
func (r *memUserRepo) ListByRole(_ context.Context, orgID, roleName string) ([]domain.User, error) {
	return nil, nil
}
func (r *memUserRepo) ExistsByEmail(_ context.Context, email, excludeID string) (bool, error) {
	return false, nil
}
func (r *memUserRepo) Create(_ context.Context, u *domain.User) (string, error) { return u.ID, nil }
func (r *memUserRepo) Update(_ context.Context, u *domain.User) error           { return nil }

func (r *memUserRepo) UpdateJTI(_ context.Context, id, jti string) error {
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.JTI = jti
	return nil
}

func (r *memUserRepo) SoftDelete(_ context.Context, id string) error { return nil }
func (r *memUserRepo) RoleByName(_ context.Context, name string) (*domain.Role, error) {
	switch name {
	case domain.RoleOrgAdmin:
		return &domain.Role{ID: 2, Name: name}, nil
	case domain.RoleOrgUser:
		return &domain.Role{ID: 3, Name: name}, nil
	}
	return nil, ErrInvalidRole
}

type memSuperRepo struct {
	supers map[string]*domain.SuperUser
}

func (r *memSuperRepo) Get(_ context.Context, id string) (*domain.SuperUser, error) {
	su, ok := r.supers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return su, nil
}

func (r *memSuperRepo) GetByEmail(_ context.Context, email string) (*domain.SuperUser, error) {
	for _, su := range r.supers {
		if strings.EqualFold(su.Email, email) {
			return su, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memSuperRepo) UpdateJTI(_ context.Context, id, jti string) error {
	su, ok := r.supers[id]
	if !ok {
		return ErrNotFound
	}
	su.JTI = jti
	return nil
}

type memOrgRepo struct {
	orgs map[string]*domain.Organization
}

func (r *memOrgRepo) Get(_ context.Context, id string) (*domain.Organization, error) {
	o, ok := r.orgs[id]
	if !ok || o.DeletedAt != nil {
		return nil, organization.ErrNotFound
	}
	return o, nil
}

func (r *memOrgRepo) GetAny(_ context.Context, id string) (*domain.Organization, error) {
	o, ok := r.orgs[id]
	if !ok {
		return nil, organization.ErrNotFound
	}
	return o, nil
}

func (r *memOrgRepo) List(_ context.Context, includeDeleted bool) ([]domain.Organization, error) {
	return nil, nil
}
func (r *memOrgRepo) ExistsByName(_ context.Context, name, excludeID string) (bool, error) {
	return false, nil
}
func (r *memOrgRepo) Create(_ context.Context, o *domain.Organization) (string, error) {
	return o.ID, nil
}
func (r *memOrgRepo) Update(_ context.Context, o *domain.Organization) error { return nil }
func (r *memOrgRepo) SoftDelete(_ context.Context, id string) error          { return nil }
func (r *memOrgRepo) Restore(_ context.Context, id string) error             { return nil }

const testPassword = "Str0ng!pass"

func newTestAuthenticator(t *testing.T) (*Authenticator, *memUserRepo, *memSuperRepo, *memOrgRepo) {
	t.Helper()
	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)

	users := &memUserRepo{users: map[string]*domain.User{
		"u1": {
			ID:             "u1",
			OrganizationID: "org-1",
			RoleName:       domain.RoleOrgAdmin,
			Email:          "admin@acme.example",
			PasswordHash:   hash,
			Status:         domain.UserStatusActive,
		},
	}}
	supers := &memSuperRepo{supers: map[string]*domain.SuperUser{
		"s1": {ID: "s1", Email: "root@platform.example", PasswordHash: hash},
	}}
	orgs := &memOrgRepo{orgs: map[string]*domain.Organization{
		"org-1": {ID: "org-1", Name: "Acme"},
	}}
	tokens := auth.NewManager("test-secret", time.Hour)
	return NewAuthenticator(users, supers, orgs, tokens), users, supers, orgs
}

func TestLogin(t *testing.T) {
	a, users, _, _ := newTestAuthenticator(t)

	res, err := a.Login(context.Background(), "Admin@Acme.example", testPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "u1", res.User.ID)
	assert.NotEmpty(t, users.users["u1"].JTI, "login must persist the issued jti")
}

func TestLoginRejections(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*memUserRepo, *memOrgRepo)
		email string
	}{
		{"unknown email", func(*memUserRepo, *memOrgRepo) {}, "nobody@acme.example"},
		{"inactive user", func(u *memUserRepo, _ *memOrgRepo) {
			u.users["u1"].Status = "disabled"
		}, "admin@acme.example"},
		{"deleted organization", func(_ *memUserRepo, o *memOrgRepo) {
			now := time.Now()
			o.orgs["org-1"].DeletedAt = &now
		}, "admin@acme.example"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, users, _, orgs := newTestAuthenticator(t)
			tt.setup(users, orgs)
			_, err := a.Login(context.Background(), tt.email, testPassword)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}

	t.Run("wrong password", func(t *testing.T) {
		a, _, _, _ := newTestAuthenticator(t)
		_, err := a.Login(context.Background(), "admin@acme.example", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestLoginRotatesJTI(t *testing.T) {
	a, users, _, _ := newTestAuthenticator(t)
	ctx := context.Background()

	_, err := a.Login(ctx, "admin@acme.example", testPassword)
	require.NoError(t, err)
	first := users.users["u1"].JTI

	_, err = a.Login(ctx, "admin@acme.example", testPassword)
	require.NoError(t, err)
	assert.NotEqual(t, first, users.users["u1"].JTI, "each login supersedes older tokens")
}

func TestSuperLogin(t *testing.T) {
	a, _, supers, _ := newTestAuthenticator(t)

	res, err := a.SuperLogin(context.Background(), "root@platform.example", testPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.NotEmpty(t, supers.supers["s1"].JTI)

	_, err = a.SuperLogin(context.Background(), "root@platform.example", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutRevokesTokens(t *testing.T) {
	a, users, supers, _ := newTestAuthenticator(t)
	ctx := context.Background()

	_, err := a.Login(ctx, "admin@acme.example", testPassword)
	require.NoError(t, err)
	loginJTI := users.users["u1"].JTI

	require.NoError(t, a.Logout(ctx, auth.Principal{Kind: auth.KindUser, ID: "u1"}))
	assert.NotEqual(t, loginJTI, users.users["u1"].JTI)

	require.NoError(t, a.Logout(ctx, auth.Principal{Kind: auth.KindSuper, ID: "s1"}))
	assert.NotEmpty(t, supers.supers["s1"].JTI)
}
