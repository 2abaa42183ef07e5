package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/aistudio/ide-backend/internal/user"
)

var (
	// ErrTokenExpired marks a well-formed, correctly signed token whose
	// validity window has passed. Clients use this to trigger a refresh.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers everything else: malformed input, signature
	// mismatch, wrong secret, unexpected signing method.
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims is the identity payload embedded in both token families: user id,
// email and role as they were at issuance time. Claims are trusted as-is once
// a token verifies; a role change only takes effect on the next refresh.
type Claims struct {
	UserID uint      `json:"userId"`
	Email  string    `json:"email"`
	Role   user.Role `json:"role"`
	jwt.RegisteredClaims
}

// IssueAccessToken signs a short-lived access token for the given identity.
func IssueAccessToken(userID uint, email string, role user.Role, secret string, ttl time.Duration, now time.Time) (string, error) {
	return issueToken(userID, email, role, secret, ttl, now)
}

// IssueRefreshToken signs a long-lived refresh token. Same claims as the
// access token, different secret and lifetime.
func IssueRefreshToken(userID uint, email string, role user.Role, secret string, ttl time.Duration, now time.Time) (string, error) {
	return issueToken(userID, email, role, secret, ttl, now)
}

func issueToken(userID uint, email string, role user.Role, secret string, ttl time.Duration, now time.Time) (string, error) {
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(userID)),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates signature and expiry of a presented token and recovers
// its claims. The two failure kinds are distinguishable with errors.Is:
// ErrTokenExpired for an elapsed validity window, ErrTokenInvalid for
// everything else.
func ParseToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
