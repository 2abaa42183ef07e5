package user

import (
	"context"
	"errors"
	"net/mail"

	"go.uber.org/zap"
)

var ErrInvalidEmailFormat = errors.New("invalid email format")

// Service exposes account lookups and mutations. Password hashing is the
// caller's concern; every password crossing this boundary is already a hash.
type Service interface {
	CreateUser(ctx context.Context, email, passwordHash, name string) (*User, error)
	ReadUserByEmail(ctx context.Context, email string) (*User, error)
	ReadUserByID(ctx context.Context, id uint) (*User, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

func (s *service) CreateUser(ctx context.Context, email, passwordHash, name string) (*User, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		s.logger.Warn("invalid email format", zap.String("email", email))
		return nil, ErrInvalidEmailFormat
	}

	user := NewUser(email, passwordHash, name)
	if err := s.repo.Create(ctx, user); err != nil {
		if !errors.Is(err, ErrEmailAlreadyExists) {
			s.logger.Error("failed to create user in repository", zap.Error(err))
		}
		return nil, err
	}
	return user, nil
}

func (s *service) ReadUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.ReadByEmail(ctx, email)
}

func (s *service) ReadUserByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.ReadByID(ctx, id)
}

func (s *service) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	user, err := s.repo.ReadByID(ctx, id)
	if err != nil {
		return err
	}
	user.Password = passwordHash
	if err := s.repo.Update(ctx, user); err != nil {
		s.logger.Error("failed to update password", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}
