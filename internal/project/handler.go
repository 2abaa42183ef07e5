package project

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateProjectRequest is the payload for creating a project.
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	UserID      uint   `json:"userId" binding:"required"`
}

// Handler handles project HTTP endpoints.
type Handler struct {
	router *gin.RouterGroup
	repo   Repository
	logger *zap.Logger
}

// NewHandler registers project endpoints on the given router group.
func NewHandler(router *gin.RouterGroup, repo Repository, logger *zap.Logger) *Handler {
	h := &Handler{router: router, repo: repo, logger: logger}
	h.router.POST("/projects", h.Create)
	h.router.GET("/projects/:userId", h.ListByUser)
	return h
}

// Create godoc
// @Summary      Create Project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateProjectRequest  true  "Project payload"
// @Success      201      {object}  Project
// @Failure      400      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Security     BearerAuth
// @Router       /projects [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project payload"})
		return
	}
	project := &Project{Name: req.Name, Description: req.Description, UserID: req.UserID}
	if err := h.repo.Create(c.Request.Context(), project); err != nil {
		h.logger.Error("failed to create project", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, project)
}

// ListByUser godoc
// @Summary      List Projects
// @Description  List a user's projects with their sandboxes
// @Tags         projects
// @Produce      json
// @Param        userId  path      int  true  "owner user id"
// @Success      200     {array}   Project
// @Failure      400     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Security     BearerAuth
// @Router       /projects/{userId} [get]
func (h *Handler) ListByUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}
	projects, err := h.repo.ReadByUserID(c.Request.Context(), uint(userID))
	if err != nil {
		h.logger.Error("failed to list projects", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, projects)
}
