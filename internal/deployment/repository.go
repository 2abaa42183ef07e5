package deployment

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrModelNotFound        = errors.New("model not found")
	ErrDeploymentNotFound   = errors.New("deployment not found")
	ErrUnresponsiveDatabase = errors.New("error occurred during writing to deployments table")
)

type Repository interface {
	ListModels(ctx context.Context) ([]Model, error)
	ReadModelByID(ctx context.Context, id uint) (*Model, error)
	ListDeployments(ctx context.Context) ([]Deployment, error)
	ReadDeploymentByID(ctx context.Context, id uint) (*Deployment, error)
	CreateDeployment(ctx context.Context, deployment *Deployment) error
	DeleteDeployment(ctx context.Context, id uint) error
	DeleteAllDeployments(ctx context.Context) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListModels(ctx context.Context) ([]Model, error) {
	var models []Model
	if err := r.db.WithContext(ctx).Order("name asc").Find(&models).Error; err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return models, nil
}

func (r *repository) ReadModelByID(ctx context.Context, id uint) (*Model, error) {
	var model Model
	err := r.db.WithContext(ctx).First(&model, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrModelNotFound
	}
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return &model, nil
}

func (r *repository) ListDeployments(ctx context.Context) ([]Deployment, error) {
	var deployments []Deployment
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&deployments).Error; err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return deployments, nil
}

func (r *repository) ReadDeploymentByID(ctx context.Context, id uint) (*Deployment, error) {
	var deployment Deployment
	err := r.db.WithContext(ctx).First(&deployment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDeploymentNotFound
	}
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return &deployment, nil
}

func (r *repository) CreateDeployment(ctx context.Context, deployment *Deployment) error {
	if err := r.db.WithContext(ctx).Create(deployment).Error; err != nil {
		return ErrUnresponsiveDatabase
	}
	return nil
}

func (r *repository) DeleteDeployment(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Deployment{}, id)
	if res.Error != nil {
		return ErrUnresponsiveDatabase
	}
	if res.RowsAffected == 0 {
		return ErrDeploymentNotFound
	}
	return nil
}

func (r *repository) DeleteAllDeployments(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&Deployment{}).Error; err != nil {
		return ErrUnresponsiveDatabase
	}
	return nil
}
