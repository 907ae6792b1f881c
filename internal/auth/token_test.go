package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, jti, err := m.Issue(KindUser, "user-1", "org-1", "ORG_ADMIN")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, jti)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, KindUser, claims.Kind)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "org-1", claims.OrgID)
	assert.Equal(t, "ORG_ADMIN", claims.Role)
	assert.Equal(t, jti, claims.JTI)
}

func TestParseSuperToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, _, err := m.Issue(KindSuper, "super-1", "", "")
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, KindSuper, claims.Kind)
	assert.Empty(t, claims.OrgID)
}

func TestParseExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	token, _, err := m.Issue(KindUser, "user-1", "org-1", "ORG_USER")
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestParseWrongSecret(t *testing.T) {
	m := NewManager("secret-a", time.Hour)
	token, _, err := m.Issue(KindUser, "user-1", "org-1", "ORG_USER")
	require.NoError(t, err)

	other := NewManager("secret-b", time.Hour)
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseGarbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	_, err := m.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestEachIssueGetsFreshJTI(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	_, jti1, err := m.Issue(KindUser, "user-1", "org-1", "ORG_USER")
	require.NoError(t, err)
	_, jti2, err := m.Issue(KindUser, "user-1", "org-1", "ORG_USER")
	require.NoError(t, err)
	assert.NotEqual(t, jti1, jti2)
}
