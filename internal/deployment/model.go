package deployment

import (
	"gorm.io/gorm"
)

// Model is a trained ML artifact registered with the studio. Metrics hold a
// JSON blob of training results.
type Model struct {
	gorm.Model
	Name      string `json:"name" gorm:"not null"`
	Version   string `json:"version"`
	Framework string `json:"framework"`
	Path      string `json:"path"`
	Metrics   string `json:"metrics"`
	ProjectID uint   `json:"projectId" gorm:"index"`
}

// Deployment is a simulated serving endpoint for a model.
type Deployment struct {
	gorm.Model
	ModelID      uint   `json:"modelId" gorm:"index;not null"`
	Status       string `json:"status" gorm:"type:text;not null"`
	Endpoint     string `json:"endpoint"`
	Platform     string `json:"platform"`
	ResourceType string `json:"resourceType"`
}
