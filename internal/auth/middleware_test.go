package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aistudio/ide-backend/internal/user"
)

func newProtectedRouter(t *testing.T, roles ...user.Role) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()

	group := router.Group("/")
	group.Use(Authenticate(testAccessSecret, zap.NewNop()))
	if len(roles) > 0 {
		group.Use(Authorize(roles...))
	}
	group.GET("/protected", func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"email": claims.Email, "role": claims.Role})
	})
	return router
}

func doProtected(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	rec := doProtected(newProtectedRouter(t), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	router := newProtectedRouter(t)

	tests := []struct {
		name   string
		header string
	}{
		{name: "no scheme", header: "some-token"},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "missing token", header: "Bearer"},
		{name: "extra parts", header: "Bearer a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doProtected(router, tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	token, err := IssueAccessToken(1, "a@x.com", user.RoleUser, testAccessSecret, 0, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	rec := doProtected(newProtectedRouter(t), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, TokenExpiredCode, body["code"])
}

func TestAuthenticate_WrongKey(t *testing.T) {
	token, err := IssueAccessToken(1, "a@x.com", user.RoleUser, "some-other-secret", 15*time.Minute, time.Now())
	require.NoError(t, err)

	rec := doProtected(newProtectedRouter(t), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Wrong-key and malformed tokens share one generic response, with no
	// TOKEN_EXPIRED code.
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body["code"])
}

func TestAuthenticate_AttachesClaims(t *testing.T) {
	token, err := IssueAccessToken(1, "a@x.com", user.RoleUser, testAccessSecret, 15*time.Minute, time.Now())
	require.NoError(t, err)

	rec := doProtected(newProtectedRouter(t), "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "a@x.com", body["email"])
}

func TestAuthorize_RoleMismatch(t *testing.T) {
	router := newProtectedRouter(t, user.RoleAdmin)

	token, err := IssueAccessToken(1, "a@x.com", user.RoleUser, testAccessSecret, 15*time.Minute, time.Now())
	require.NoError(t, err)

	rec := doProtected(router, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthorize_RoleAllowed(t *testing.T) {
	router := newProtectedRouter(t, user.RoleAdmin, user.RoleUser)

	token, err := IssueAccessToken(1, "admin@x.com", user.RoleAdmin, testAccessSecret, 15*time.Minute, time.Now())
	require.NoError(t, err)

	rec := doProtected(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthorize_WithoutClaims(t *testing.T) {
	// Authorize wired without Authenticate in front: no claims in context.
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin", Authorize(user.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
