package deployment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aistudio/ide-backend/internal/auth"
	"github.com/aistudio/ide-backend/internal/user"
)

// DeployRequest is the payload for deploying a model.
type DeployRequest struct {
	ModelID      uint   `json:"modelId" binding:"required"`
	Platform     string `json:"platform" binding:"required"`
	ResourceType string `json:"resourceType" binding:"required"`
}

// ExportRequest selects the export format.
type ExportRequest struct {
	Format string `json:"format" binding:"required,oneof=onnx tflite pytorch"`
}

// Handler handles model and deployment HTTP endpoints.
type Handler struct {
	router  *gin.RouterGroup
	repo    Repository
	service Service
	logger  *zap.Logger
}

// NewHandler registers model/deployment endpoints on the given router group.
// Clearing all deployments is admin-only.
func NewHandler(router *gin.RouterGroup, repo Repository, service Service, logger *zap.Logger) *Handler {
	h := &Handler{router: router, repo: repo, service: service, logger: logger}
	h.router.GET("/models", h.ListModels)
	h.router.POST("/models/:id/export", h.ExportModel)
	h.router.GET("/deployments", h.ListDeployments)
	h.router.POST("/deployments", h.Deploy)
	h.router.DELETE("/deployments/:id", h.Delete)
	h.router.DELETE("/deployments", auth.Authorize(user.RoleAdmin), h.ClearAll)
	h.router.POST("/deployments/:id/test", h.TestInference)
	return h
}

// ListModels godoc
// @Summary      List Models
// @Tags         models
// @Produce      json
// @Success      200  {array}   Model
// @Failure      500  {object}  map[string]string
// @Security     BearerAuth
// @Router       /models [get]
func (h *Handler) ListModels(c *gin.Context) {
	models, err := h.repo.ListModels(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list models", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, models)
}

// ExportModel godoc
// @Summary      Export Model
// @Description  Produce a simulated export artifact URL
// @Tags         models
// @Accept       json
// @Produce      json
// @Param        id       path      int            true  "model id"
// @Param        payload  body      ExportRequest  true  "Export format"
// @Success      200      {object}  ExportResult
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Security     BearerAuth
// @Router       /models/{id}/export [post]
func (h *Handler) ExportModel(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid export payload"})
		return
	}
	result, err := h.service.ExportModel(c.Request.Context(), id, req.Format)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, result)
	case errors.Is(err, ErrModelNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Model not found"})
	default:
		h.logger.Error("model export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// ListDeployments godoc
// @Summary      List Deployments
// @Tags         deployments
// @Produce      json
// @Success      200  {array}   Deployment
// @Failure      500  {object}  map[string]string
// @Security     BearerAuth
// @Router       /deployments [get]
func (h *Handler) ListDeployments(c *gin.Context) {
	deployments, err := h.repo.ListDeployments(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list deployments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, deployments)
}

// Deploy godoc
// @Summary      Deploy Model
// @Tags         deployments
// @Accept       json
// @Produce      json
// @Param        payload  body      DeployRequest  true  "Deployment payload"
// @Success      201      {object}  Deployment
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Security     BearerAuth
// @Router       /deployments [post]
func (h *Handler) Deploy(c *gin.Context) {
	var req DeployRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deployment payload"})
		return
	}
	deployment, err := h.service.DeployModel(c.Request.Context(), DeployConfig{
		ModelID:      req.ModelID,
		Platform:     req.Platform,
		ResourceType: req.ResourceType,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, deployment)
	case errors.Is(err, ErrModelNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Model not found"})
	default:
		h.logger.Error("deployment failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// Delete godoc
// @Summary      Delete Deployment
// @Tags         deployments
// @Produce      json
// @Param        id  path  int  true  "deployment id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /deployments/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	err := h.service.DeleteDeployment(c.Request.Context(), id)
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, ErrDeploymentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Deployment not found"})
	default:
		h.logger.Error("deployment delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// ClearAll godoc
// @Summary      Clear Deployments
// @Description  Delete every deployment (admin only)
// @Tags         deployments
// @Produce      json
// @Success      204
// @Failure      403  {object}  map[string]string
// @Security     BearerAuth
// @Router       /deployments [delete]
func (h *Handler) ClearAll(c *gin.Context) {
	if err := h.service.ClearAllDeployments(c.Request.Context()); err != nil {
		h.logger.Error("deployment teardown failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}

// TestInference godoc
// @Summary      Test Inference
// @Description  Run a simulated prediction against a deployment
// @Tags         deployments
// @Produce      json
// @Param        id  path      int  true  "deployment id"
// @Success      200  {object}  InferenceResult
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /deployments/{id}/test [post]
func (h *Handler) TestInference(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	result, err := h.service.TestInference(c.Request.Context(), id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, result)
	case errors.Is(err, ErrDeploymentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Deployment not found"})
	default:
		h.logger.Error("inference test failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func (h *Handler) bindID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing id"})
		return 0, false
	}
	return uint(id), true
}
