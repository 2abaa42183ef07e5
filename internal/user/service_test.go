package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	return NewService(NewRepository(newTestDB(t)), zap.NewNop())
}

func TestService_CreateUser(t *testing.T) {
	svc := newTestService(t)

	u, err := svc.CreateUser(context.Background(), "a@x.com", "hashed", "A")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, u.Role)
	assert.Equal(t, "hashed", u.Password)
}

func TestService_CreateUser_InvalidEmail(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name  string
		email string
	}{
		{name: "no at sign", email: "ax.com"},
		{name: "empty", email: ""},
		{name: "missing domain", email: "a@"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateUser(context.Background(), tt.email, "hashed", "A")
			assert.ErrorIs(t, err, ErrInvalidEmailFormat)
		})
	}
}

func TestService_UpdatePassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, "a@x.com", "old-hash", "A")
	require.NoError(t, err)

	require.NoError(t, svc.UpdatePassword(ctx, u.ID, "new-hash"))

	reloaded, err := svc.ReadUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", reloaded.Password)
}

func TestService_UpdatePassword_UnknownUser(t *testing.T) {
	svc := newTestService(t)
	err := svc.UpdatePassword(context.Background(), 999, "new-hash")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
