package project

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrUnresponsiveDatabase = errors.New("error occurred during writing to projects table")
)

type Repository interface {
	Create(ctx context.Context, project *Project) error
	ReadByUserID(ctx context.Context, userID uint) ([]Project, error)
	ReadByID(ctx context.Context, id uint) (*Project, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, project *Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return ErrUnresponsiveDatabase
	}
	return nil
}

// ReadByUserID returns all projects owned by the user, sandboxes included.
func (r *repository) ReadByUserID(ctx context.Context, userID uint) ([]Project, error) {
	var projects []Project
	err := r.db.WithContext(ctx).
		Preload("Sandboxes").
		Where("user_id = ?", userID).
		Find(&projects).
		Error
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return projects, nil
}

func (r *repository) ReadByID(ctx context.Context, id uint) (*Project, error) {
	var project Project
	err := r.db.WithContext(ctx).
		Preload("Sandboxes").
		First(&project, id).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return &project, nil
}
