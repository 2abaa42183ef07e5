package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aistudio/ide-backend/internal/user"
)

// RefreshTokenCookie is the HTTP-only cookie carrying the refresh token. It
// is never exposed to client script; the server reads it back on refresh and
// logout.
const RefreshTokenCookie = "refreshToken"

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

// LoginRequest is the payload for logging in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID    uint      `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  user.Role `json:"role"`
}

// AuthResponse is returned from register and login: the public user view plus
// a fresh access token. The refresh token travels in the cookie only.
type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"accessToken"`
}

// TokenResponse carries a newly issued access token.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// Handler handles authentication-related HTTP endpoints.
type Handler struct {
	router     *gin.RouterGroup
	service    Service
	logger     *zap.Logger
	refreshTTL time.Duration
}

// NewHandler registers auth endpoints on the given router group. The login
// limiter runs before the login handler only.
func NewHandler(router *gin.RouterGroup, service Service, logger *zap.Logger, refreshTTL time.Duration, loginLimiter gin.HandlerFunc) *Handler {
	h := &Handler{router: router, service: service, logger: logger, refreshTTL: refreshTTL}
	h.router.POST("/auth/register", h.Register)
	h.router.POST("/auth/login", loginLimiter, h.Login)
	h.router.POST("/auth/refresh", h.Refresh)
	h.router.POST("/auth/logout", h.Logout)
	return h
}

// Register godoc
// @Summary      Register
// @Description  Create an account and issue a token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      RegisterRequest  true  "Registration payload"
// @Success      201      {object}  AuthResponse
// @Failure      400      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid registration payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid registration payload"})
		return
	}
	u, access, refresh, err := h.service.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	switch {
	case err == nil:
		h.setRefreshCookie(c, refresh)
		c.JSON(http.StatusCreated, AuthResponse{User: publicView(u), AccessToken: access})
	case errors.Is(err, user.ErrEmailAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
	case errors.Is(err, user.ErrInvalidEmailFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid registration payload"})
	default:
		h.logger.Error("Register service failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// Login godoc
// @Summary      Login
// @Description  Authenticate with email and password and issue a token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      LoginRequest  true  "Login credentials"
// @Success      200      {object}  AuthResponse
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Failure      429      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid login payload"})
		return
	}
	u, access, refresh, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		h.setRefreshCookie(c, refresh)
		c.JSON(http.StatusOK, AuthResponse{User: publicView(u), AccessToken: access})
	case errors.Is(err, ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	default:
		h.logger.Error("Login service failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// Refresh godoc
// @Summary      Refresh access token
// @Description  Exchange the refresh token cookie for a new access token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  TokenResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(RefreshTokenCookie)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token missing"})
		return
	}
	access, err := h.service.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}
	c.JSON(http.StatusOK, TokenResponse{AccessToken: access})
}

// Logout godoc
// @Summary      Logout
// @Description  Revoke the refresh token and clear the cookie
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	if refreshToken, err := c.Cookie(RefreshTokenCookie); err == nil && refreshToken != "" {
		// Revocation errors are deliberately discarded: logout always
		// succeeds from the caller's perspective.
		_ = h.service.Logout(c.Request.Context(), refreshToken)
	}
	h.clearRefreshCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *Handler) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(RefreshTokenCookie, token, int(h.refreshTTL.Seconds()), "/", "", false, true)
}

func (h *Handler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(RefreshTokenCookie, "", -1, "/", "", false, true)
}

func publicView(u *user.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}
