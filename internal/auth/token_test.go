package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aistudio/ide-backend/internal/user"
)

const (
	testAccessSecret  = "test-access-secret"
	testRefreshSecret = "test-refresh-secret"
)

func TestIssueAndParseAccessToken(t *testing.T) {
	token, err := IssueAccessToken(42, "test@example.com", user.RoleUser, testAccessSecret, 15*time.Minute, time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token, testAccessSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, user.RoleUser, claims.Role)
}

func TestIssueAndParseRefreshToken(t *testing.T) {
	token, err := IssueRefreshToken(7, "admin@example.com", user.RoleAdmin, testRefreshSecret, 7*24*time.Hour, time.Now())
	require.NoError(t, err)

	claims, err := ParseToken(token, testRefreshSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, user.RoleAdmin, claims.Role)
}

func TestParseToken_Expired(t *testing.T) {
	// Issued in the past with a zero lifetime: the validity window has
	// already elapsed when the token is checked.
	issued := time.Now().Add(-time.Minute)
	token, err := IssueAccessToken(1, "a@x.com", user.RoleUser, testAccessSecret, 0, issued)
	require.NoError(t, err)

	_, err = ParseToken(token, testAccessSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.NotErrorIs(t, err, ErrTokenInvalid)
}

func TestParseToken_WrongSecret(t *testing.T) {
	accessToken, err := IssueAccessToken(1, "a@x.com", user.RoleUser, testAccessSecret, 15*time.Minute, time.Now())
	require.NoError(t, err)
	refreshToken, err := IssueRefreshToken(1, "a@x.com", user.RoleUser, testRefreshSecret, time.Hour, time.Now())
	require.NoError(t, err)

	// Each token family fails verification against the other family's secret.
	_, err = ParseToken(accessToken, testRefreshSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = ParseToken(refreshToken, testAccessSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseToken_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-jwt"},
		{name: "truncated", token: "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxIn0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.token, testAccessSecret)
			assert.ErrorIs(t, err, ErrTokenInvalid)
			assert.NotErrorIs(t, err, ErrTokenExpired)
		})
	}
}
