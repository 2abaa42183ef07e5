package sandbox

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrSandboxNotFound      = errors.New("sandbox not found")
	ErrUnresponsiveDatabase = errors.New("error occurred during writing to sandboxes table")
)

type Repository interface {
	Create(ctx context.Context, sandbox *Sandbox) error
	ReadByID(ctx context.Context, id uint) (*Sandbox, error)
	Update(ctx context.Context, sandbox *Sandbox) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, sandbox *Sandbox) error {
	if err := r.db.WithContext(ctx).Create(sandbox).Error; err != nil {
		return ErrUnresponsiveDatabase
	}
	return nil
}

func (r *repository) ReadByID(ctx context.Context, id uint) (*Sandbox, error) {
	var sandbox Sandbox
	err := r.db.WithContext(ctx).First(&sandbox, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSandboxNotFound
	}
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return &sandbox, nil
}

func (r *repository) Update(ctx context.Context, sandbox *Sandbox) error {
	if err := r.db.WithContext(ctx).Save(sandbox).Error; err != nil {
		return ErrUnresponsiveDatabase
	}
	return nil
}
