package auth

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/aistudio/ide-backend/internal/user"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrRegistrationFailed  = errors.New("registration failed")
	ErrLoginFailed         = errors.New("login failed")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// Service orchestrates the session lifecycle: register, login, refresh and
// logout. It owns no session state beyond the refresh token store; access
// token validity is re-derived per request from the token verifier.
type Service interface {
	Register(ctx context.Context, email, password, name string) (*user.User, string, string, error)
	Login(ctx context.Context, email, password string) (*user.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
}

type service struct {
	users         user.Service
	records       RecordRepository
	logger        *zap.Logger
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// NewService wires the auth orchestration. The clock is injected so expiry
// logic stays deterministic under test.
func NewService(
	users user.Service,
	records RecordRepository,
	logger *zap.Logger,
	accessSecret string,
	accessTTL time.Duration,
	refreshSecret string,
	refreshTTL time.Duration,
	now func() time.Time,
) Service {
	if now == nil {
		now = time.Now
	}
	return &service{
		users:         users,
		records:       records,
		logger:        logger,
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           now,
	}
}

func (s *service) Register(ctx context.Context, email, password, name string) (*user.User, string, string, error) {
	hashed, err := HashPassword(password)
	if err != nil {
		return nil, "", "", ErrRegistrationFailed
	}

	u, err := s.users.CreateUser(ctx, email, hashed, name)
	if err != nil {
		if errors.Is(err, user.ErrEmailAlreadyExists) || errors.Is(err, user.ErrInvalidEmailFormat) {
			return nil, "", "", err
		}
		s.logger.Error("failed to create user", zap.Error(err))
		return nil, "", "", ErrRegistrationFailed
	}
	s.logger.Info("new user registered", zap.String("email", u.Email), zap.Uint("id", u.ID))

	access, refresh, err := s.issuePair(ctx, u)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*user.User, string, string, error) {
	u, err := s.users.ReadUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// Same error as a wrong password: no user-existence oracle.
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", ErrLoginFailed
	}
	if !CheckPassword(password, u.Password) {
		s.logger.Warn("failed login attempt", zap.String("email", email))
		return nil, "", "", ErrInvalidCredentials
	}

	access, refresh, err := s.issuePair(ctx, u)
	if err != nil {
		return nil, "", "", err
	}
	s.logger.Info("successful login", zap.String("email", u.Email), zap.Uint("id", u.ID))
	return u, access, refresh, nil
}

// Refresh exchanges a still-valid refresh token for a new access token. The
// refresh token itself is not rotated: it stays valid until its own expiry or
// an explicit logout.
func (s *service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := ParseToken(refreshToken, s.refreshSecret)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	valid, err := s.records.IsValid(ctx, refreshToken, claims.UserID)
	if err != nil {
		s.logger.Error("refresh token lookup failed", zap.Error(err))
		return "", ErrInvalidRefreshToken
	}
	if !valid {
		return "", ErrInvalidRefreshToken
	}

	access, err := IssueAccessToken(claims.UserID, claims.Email, claims.Role, s.accessSecret, s.accessTTL, s.now())
	if err != nil {
		s.logger.Error("failed to issue access token", zap.Error(err))
		return "", err
	}
	return access, nil
}

// Logout revokes the presented refresh token. Revocation failures are logged
// and returned, but callers are expected to discard them: logout always
// succeeds from the client's perspective.
func (s *service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.records.Revoke(ctx, refreshToken); err != nil {
		s.logger.Warn("refresh token revocation failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *service) issuePair(ctx context.Context, u *user.User) (string, string, error) {
	now := s.now()

	access, err := IssueAccessToken(u.ID, u.Email, u.Role, s.accessSecret, s.accessTTL, now)
	if err != nil {
		s.logger.Error("failed to issue access token", zap.Error(err))
		return "", "", err
	}

	refresh, err := IssueRefreshToken(u.ID, u.Email, u.Role, s.refreshSecret, s.refreshTTL, now)
	if err != nil {
		s.logger.Error("failed to issue refresh token", zap.Error(err))
		return "", "", err
	}

	if err := s.records.Save(ctx, u.ID, refresh, now.Add(s.refreshTTL)); err != nil {
		s.logger.Error("failed to persist refresh token", zap.Error(err))
		return "", "", err
	}
	return access, refresh, nil
}
