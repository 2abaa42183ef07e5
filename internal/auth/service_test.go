package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aistudio/ide-backend/internal/user"
)

func newTestService(t *testing.T, now func() time.Time) Service {
	t.Helper()
	db := newTestDB(t)
	logger := zap.NewNop()
	users := user.NewService(user.NewRepository(db), logger)
	return NewService(
		users,
		NewRecordRepository(db),
		logger,
		testAccessSecret,
		15*time.Minute,
		testRefreshSecret,
		7*24*time.Hour,
		now,
	)
}

func TestService_RegisterThenLogin(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	u, access, refresh, err := svc.Register(ctx, "a@x.com", "pw123", "A")
	require.NoError(t, err)
	assert.Equal(t, user.RoleUser, u.Role)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	claims, err := ParseToken(access, testAccessSecret)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)

	_, _, _, err = svc.Login(ctx, "a@x.com", "pw123")
	require.NoError(t, err)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "a@x.com", "pw123", "A")
	require.NoError(t, err)

	_, _, _, err = svc.Register(ctx, "a@x.com", "other-password", "B")
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
}

func TestService_Login_NoExistenceOracle(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "a@x.com", "pw123", "A")
	require.NoError(t, err)

	// Wrong password on an existing account and an unknown email must be
	// indistinguishable to the caller.
	_, _, _, wrongPassword := svc.Login(ctx, "a@x.com", "bad-password")
	_, _, _, unknownEmail := svc.Login(ctx, "nobody@x.com", "pw123")
	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
}

func TestService_Refresh_IssuesAccessOnly(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	_, _, refresh, err := svc.Register(ctx, "a@x.com", "pw123", "A")
	require.NoError(t, err)

	access, err := svc.Refresh(ctx, refresh)
	require.NoError(t, err)

	claims, err := ParseToken(access, testAccessSecret)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)

	// No rotation: the same refresh token keeps working.
	_, err = svc.Refresh(ctx, refresh)
	require.NoError(t, err)
}

func TestService_Refresh_RejectsAccessToken(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	_, access, _, err := svc.Register(ctx, "a@x.com", "pw123", "A")
	require.NoError(t, err)

	// An access token is signed with the other secret and must not pass.
	_, err = svc.Refresh(ctx, access)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestService_Refresh_UnknownToken(t *testing.T) {
	svc := newTestService(t, nil)

	token, err := IssueRefreshToken(99, "ghost@x.com", user.RoleUser, testRefreshSecret, time.Hour, time.Now())
	require.NoError(t, err)

	// Verifies fine but was never persisted.
	_, err = svc.Refresh(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestService_Refresh_ExpiredStoreRecord(t *testing.T) {
	db := newTestDB(t)
	logger := zap.NewNop()
	users := user.NewService(user.NewRepository(db), logger)
	records := NewRecordRepository(db)
	svc := NewService(users, records, logger,
		testAccessSecret, 15*time.Minute,
		testRefreshSecret, 7*24*time.Hour,
		nil,
	)
	ctx := context.Background()

	// The token itself still verifies, but its store record has already
	// passed its expiry: the store's answer wins.
	token, err := IssueRefreshToken(1, "a@x.com", user.RoleUser, testRefreshSecret, 7*24*time.Hour, time.Now())
	require.NoError(t, err)
	require.NoError(t, records.Save(ctx, 1, token, time.Now().Add(-time.Minute)))

	_, err = svc.Refresh(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestService_ExpiredClock_TokensUnusable(t *testing.T) {
	// Clock frozen eight days in the past: every token issued through the
	// service is already expired by real time.
	past := time.Now().Add(-8 * 24 * time.Hour)
	svc := newTestService(t, func() time.Time { return past })
	ctx := context.Background()

	_, access, refresh, err := svc.Register(ctx, "a@x.com", "pw123", "A")
	require.NoError(t, err)

	_, err = ParseToken(access, testAccessSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)

	_, err = svc.Refresh(ctx, refresh)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestService_LogoutRevokesRefresh(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	_, _, refresh, err := svc.Register(ctx, "a@x.com", "pw123", "A")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, refresh))

	_, err = svc.Refresh(ctx, refresh)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	// Logging out twice with the same token is still a success.
	assert.NoError(t, svc.Logout(ctx, refresh))
}

func TestService_Logout_EmptyToken(t *testing.T) {
	svc := newTestService(t, nil)
	assert.NoError(t, svc.Logout(context.Background(), ""))
}
