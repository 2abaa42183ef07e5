package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aistudio/ide-backend/internal/user"
)

// ContextClaimsKey is the key under which verified token claims are stored in
// Gin context.
const ContextClaimsKey = "authClaims"

// TokenExpiredCode is the machine-readable code returned alongside 401 when
// the access token has expired, so clients can trigger a refresh.
const TokenExpiredCode = "TOKEN_EXPIRED"

// Authenticate extracts the bearer token from the Authorization header,
// verifies it against the access secret and attaches the claims to the
// request context. Claims are not re-checked against the user row; the role
// captured at issuance is trusted until the token expires.
func Authenticate(accessSecret string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("missing authorization header", zap.String("ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid authentication token"})
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			logger.Warn("malformed authorization header", zap.String("ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid authentication token"})
			return
		}

		claims, err := ParseToken(parts[1], accessSecret)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				logger.Info("expired token attempt", zap.String("ip", c.ClientIP()))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Token expired",
					"code":  TokenExpiredCode,
				})
				return
			}
			// Malformed and wrong-key tokens collapse to the same response.
			logger.Warn("invalid token attempt", zap.String("ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

// Authorize rejects requests whose claims' role is not in the allowed set.
// Must run after Authenticate.
func Authorize(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok || !roleAllowed(claims.Role, roles) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: Insufficient permissions"})
			return
		}
		c.Next()
	}
}

// ClaimsFromContext returns the verified claims attached by Authenticate.
func ClaimsFromContext(c *gin.Context) (*Claims, bool) {
	raw, exists := c.Get(ContextClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := raw.(*Claims)
	return claims, ok
}

func roleAllowed(role user.Role, allowed []user.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
