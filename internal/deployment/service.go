package deployment

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DeployConfig describes where a model should be deployed.
type DeployConfig struct {
	ModelID      uint
	Platform     string
	ResourceType string
}

// InferenceResult is a simulated prediction. Latency and confidence are
// randomly generated; no model server sits behind the endpoint.
type InferenceResult struct {
	Prediction   int     `json:"prediction"`
	Confidence   float64 `json:"confidence"`
	Latency      string  `json:"latency"`
	Timestamp    string  `json:"timestamp"`
	DeploymentID uint    `json:"deploymentId"`
	ModelID      uint    `json:"model"`
}

// ExportResult describes a simulated model export artifact.
type ExportResult struct {
	ModelID   uint   `json:"modelId"`
	Format    string `json:"format"`
	ExportURL string `json:"exportUrl"`
	ExpiresAt string `json:"expiresAt"`
}

// Service simulates the deployment pipeline: endpoints are synthesized URLs
// and inference returns random numbers in plausible ranges.
type Service interface {
	DeployModel(ctx context.Context, config DeployConfig) (*Deployment, error)
	DeleteDeployment(ctx context.Context, id uint) error
	ClearAllDeployments(ctx context.Context) error
	TestInference(ctx context.Context, deploymentID uint) (*InferenceResult, error)
	ExportModel(ctx context.Context, modelID uint, format string) (*ExportResult, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) DeployModel(ctx context.Context, config DeployConfig) (*Deployment, error) {
	model, err := s.repo.ReadModelByID(ctx, config.ModelID)
	if err != nil {
		return nil, err
	}

	deploymentID := uuid.NewString()
	endpoint := fmt.Sprintf("https://api.ai-studio.io/v1/models/%s-%s", slugify(model.Name), deploymentID[:8])

	s.logger.Info("deploying model",
		zap.String("model", model.Name),
		zap.String("platform", config.Platform),
		zap.String("endpoint", endpoint),
	)

	deployment := &Deployment{
		ModelID:      config.ModelID,
		Status:       "ACTIVE",
		Endpoint:     endpoint,
		Platform:     config.Platform,
		ResourceType: config.ResourceType,
	}
	if err := s.repo.CreateDeployment(ctx, deployment); err != nil {
		return nil, err
	}
	return deployment, nil
}

func (s *service) DeleteDeployment(ctx context.Context, id uint) error {
	return s.repo.DeleteDeployment(ctx, id)
}

func (s *service) ClearAllDeployments(ctx context.Context) error {
	return s.repo.DeleteAllDeployments(ctx)
}

func (s *service) TestInference(ctx context.Context, deploymentID uint) (*InferenceResult, error) {
	deployment, err := s.repo.ReadDeploymentByID(ctx, deploymentID)
	if err != nil {
		return nil, err
	}

	// 10-60ms latency, 0.85-0.99 confidence, a random digit as prediction.
	latency := rand.Intn(50) + 10

	return &InferenceResult{
		Prediction:   rand.Intn(10),
		Confidence:   0.85 + rand.Float64()*0.14,
		Latency:      fmt.Sprintf("%dms", latency),
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		DeploymentID: deployment.ID,
		ModelID:      deployment.ModelID,
	}, nil
}

func (s *service) ExportModel(ctx context.Context, modelID uint, format string) (*ExportResult, error) {
	model, err := s.repo.ReadModelByID(ctx, modelID)
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		ModelID:   model.ID,
		Format:    format,
		ExportURL: fmt.Sprintf("https://storage.ai-studio.io/exports/%d.%s", model.ID, format),
		ExpiresAt: time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339),
	}, nil
}

func slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
