package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
)

func newUserService(t *testing.T) (*Service, *memUserRepo) {
	t.Helper()
	_, users, supers, orgs := newTestAuthenticator(t)
	return NewService(users, supers, orgs), users
}

func TestCreateUser(t *testing.T) {
	svc, _ := newUserService(t)

	u, err := svc.Create(context.Background(), "org-1", CreateInput{
		FullName: "Ravi Kumar",
		Email:    "ravi@acme.example",
		Phone:    "9876543210",
		Password: testPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOrgUser, u.RoleName, "role defaults to ORG_USER")
	assert.Equal(t, "9876543210", u.Phone)
	assert.Equal(t, domain.UserStatusActive, u.Status)
}

func TestCreateUserRejectsBadPhone(t *testing.T) {
	svc, _ := newUserService(t)

	for _, phone := range []string{"abc", "123", "12345678901234", "12-34-5678"} {
		_, err := svc.Create(context.Background(), "org-1", CreateInput{
			FullName: "Ravi Kumar",
			Email:    "ravi@acme.example",
			Phone:    phone,
			Password: testPassword,
		})
		assert.ErrorIs(t, err, ErrValidation, "phone %q must be rejected", phone)
	}
}

func TestCreateUserEmptyPhoneAllowed(t *testing.T) {
	svc, _ := newUserService(t)

	u, err := svc.Create(context.Background(), "org-1", CreateInput{
		FullName: "Ravi Kumar",
		Email:    "ravi@acme.example",
		Password: testPassword,
	})
	require.NoError(t, err)
	assert.Empty(t, u.Phone)
}

func TestUpdateUserRejectsBadPhone(t *testing.T) {
	svc, _ := newUserService(t)

	bad := "12-34-5678"
	_, err := svc.Update(context.Background(), "org-1", "u1", UpdateInput{Phone: &bad})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateUserUnknownOrg(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.Create(context.Background(), "missing", CreateInput{
		FullName: "Ravi Kumar",
		Email:    "ravi@acme.example",
		Password: testPassword,
	})
	assert.ErrorIs(t, err, ErrOrgNotFound)
}
