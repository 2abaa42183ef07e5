package sandbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var ErrSandboxNotRunning = errors.New("sandbox not found or not running")

// SandboxConfig describes the requested execution environment.
type SandboxConfig struct {
	Runtime     string
	CPULimit    int
	MemoryLimit string
}

// ExecutionResult is the simulated output of a code run.
type ExecutionResult struct {
	Stdout        string `json:"stdout"`
	Stderr        string `json:"stderr"`
	ExecutionTime string `json:"executionTime"`
}

// Service simulates sandbox provisioning and code execution. In a real cloud
// environment CreateSandbox would call a container API; here the container id
// is synthesized and runs return canned output.
type Service interface {
	CreateSandbox(ctx context.Context, projectID uint, config SandboxConfig) (*Sandbox, error)
	ExecuteCode(ctx context.Context, sandboxID uint, code string) (*ExecutionResult, error)
	StopSandbox(ctx context.Context, sandboxID uint) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) CreateSandbox(ctx context.Context, projectID uint, config SandboxConfig) (*Sandbox, error) {
	limit, err := json.Marshal(map[string]interface{}{
		"cpu":    config.CPULimit,
		"memory": config.MemoryLimit,
	})
	if err != nil {
		return nil, err
	}

	sandbox := &Sandbox{
		ProjectID:     projectID,
		Runtime:       config.Runtime,
		Status:        StatusStarting,
		ResourceLimit: string(limit),
	}
	if err := s.repo.Create(ctx, sandbox); err != nil {
		return nil, err
	}

	sandbox.ContainerID = fmt.Sprintf("sandbox-%d", sandbox.ID)
	sandbox.Status = StatusRunning
	if err := s.repo.Update(ctx, sandbox); err != nil {
		sandbox.Status = StatusFailed
		if updateErr := s.repo.Update(ctx, sandbox); updateErr != nil {
			s.logger.Error("failed to mark sandbox as failed", zap.Uint("id", sandbox.ID), zap.Error(updateErr))
		}
		return nil, err
	}

	s.logger.Info("sandbox started",
		zap.Uint("id", sandbox.ID),
		zap.String("runtime", sandbox.Runtime),
		zap.String("containerId", sandbox.ContainerID),
	)
	return sandbox, nil
}

func (s *service) ExecuteCode(ctx context.Context, sandboxID uint, code string) (*ExecutionResult, error) {
	sandbox, err := s.repo.ReadByID(ctx, sandboxID)
	if err != nil || sandbox.Status != StatusRunning {
		return nil, ErrSandboxNotRunning
	}

	s.logger.Info("executing code",
		zap.String("runtime", sandbox.Runtime),
		zap.String("containerId", sandbox.ContainerID),
		zap.Int("codeLength", len(code)),
	)

	return &ExecutionResult{
		Stdout:        fmt.Sprintf("Mock output for %s execution", sandbox.Runtime),
		Stderr:        "",
		ExecutionTime: "120ms",
	}, nil
}

func (s *service) StopSandbox(ctx context.Context, sandboxID uint) error {
	sandbox, err := s.repo.ReadByID(ctx, sandboxID)
	if err != nil {
		return err
	}
	sandbox.Status = StatusStopped
	return s.repo.Update(ctx, sandbox)
}
