package sandbox

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateSandboxRequest is the payload for provisioning a sandbox.
type CreateSandboxRequest struct {
	ProjectID   uint   `json:"projectId" binding:"required"`
	Runtime     string `json:"runtime" binding:"required,oneof=python r julia"`
	CPULimit    int    `json:"cpuLimit"`
	MemoryLimit string `json:"memoryLimit"`
}

// ExecuteRequest carries the code to run.
type ExecuteRequest struct {
	Code string `json:"code" binding:"required"`
}

// Handler handles sandbox HTTP endpoints.
type Handler struct {
	router  *gin.RouterGroup
	service Service
	logger  *zap.Logger
}

// NewHandler registers sandbox endpoints on the given router group.
func NewHandler(router *gin.RouterGroup, service Service, logger *zap.Logger) *Handler {
	h := &Handler{router: router, service: service, logger: logger}
	h.router.POST("/sandboxes", h.Create)
	h.router.POST("/sandboxes/:id/execute", h.Execute)
	return h
}

// Create godoc
// @Summary      Create Sandbox
// @Tags         sandboxes
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateSandboxRequest  true  "Sandbox payload"
// @Success      201      {object}  Sandbox
// @Failure      400      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Security     BearerAuth
// @Router       /sandboxes [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateSandboxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sandbox payload"})
		return
	}
	sandbox, err := h.service.CreateSandbox(c.Request.Context(), req.ProjectID, SandboxConfig{
		Runtime:     req.Runtime,
		CPULimit:    req.CPULimit,
		MemoryLimit: req.MemoryLimit,
	})
	if err != nil {
		h.logger.Error("failed to create sandbox", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, sandbox)
}

// Execute godoc
// @Summary      Execute Code
// @Description  Run code in a sandbox (simulated)
// @Tags         sandboxes
// @Accept       json
// @Produce      json
// @Param        id       path      int             true  "sandbox id"
// @Param        payload  body      ExecuteRequest  true  "Code payload"
// @Success      200      {object}  ExecutionResult
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Security     BearerAuth
// @Router       /sandboxes/{id}/execute [post]
func (h *Handler) Execute(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sandbox id"})
		return
	}
	var req ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid execute payload"})
		return
	}
	result, err := h.service.ExecuteCode(c.Request.Context(), uint(id), req.Code)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, result)
	case errors.Is(err, ErrSandboxNotRunning):
		c.JSON(http.StatusNotFound, gin.H{"error": "Sandbox not found or not running"})
	default:
		h.logger.Error("code execution failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
