package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Secr3t!pass")
	require.NoError(t, err)
	assert.NotEqual(t, "Secr3t!pass", hash)

	assert.True(t, CheckPassword(hash, "Secr3t!pass"))
	assert.False(t, CheckPassword(hash, "wrong-password"))
}

func TestValidateComplexity(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Abcdef1!", false},
		{"valid long", "Str0ng&Secure#2024", false},
		{"too short", "Ab1!xyz", true},
		{"no uppercase", "abcdef1!", true},
		{"no lowercase", "ABCDEF1!", true},
		{"no digit", "Abcdefg!", true},
		{"no symbol", "Abcdefg1", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateComplexity(tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrWeakPassword)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGeneratePassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		pw, err := GeneratePassword(12)
		require.NoError(t, err)
		assert.Len(t, pw, 12)
		assert.NoError(t, ValidateComplexity(pw))
		assert.False(t, seen[pw], "generated passwords should not repeat")
		seen[pw] = true
	}
}

func TestGeneratePasswordMinimumLength(t *testing.T) {
	pw, err := GeneratePassword(4)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(pw), 8)
}
