package sandbox

import (
	"gorm.io/gorm"
)

// Status is the sandbox lifecycle state.
type Status string

const (
	StatusStarting Status = "STARTING"
	StatusRunning  Status = "RUNNING"
	StatusStopped  Status = "STOPPED"
	StatusFailed   Status = "FAILED"
)

// Sandbox is a simulated execution environment attached to a project. No real
// container runs behind it; ContainerID is a synthesized handle.
type Sandbox struct {
	gorm.Model
	ProjectID     uint   `json:"projectId" gorm:"index;not null"`
	Runtime       string `json:"runtime" gorm:"not null"`
	Status        Status `json:"status" gorm:"type:text;not null"`
	ContainerID   string `json:"containerId"`
	ResourceLimit string `json:"resourceLimit"`
}
