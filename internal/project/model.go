package project

import (
	"gorm.io/gorm"

	"github.com/aistudio/ide-backend/internal/sandbox"
)

// Project groups a user's studio resources: sandboxes, models and their
// deployments hang off a project.
type Project struct {
	gorm.Model
	Name        string            `json:"name" gorm:"not null"`
	Description string            `json:"description"`
	UserID      uint              `json:"userId" gorm:"index;not null"`
	Sandboxes   []sandbox.Sandbox `json:"sandboxes" gorm:"foreignKey:ProjectID"`
}
