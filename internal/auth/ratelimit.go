package auth

import (
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/didip/tollbooth_gin"
	"github.com/gin-gonic/gin"
)

// NewLoginLimiter builds the per-IP rate limiter guarding the login endpoint:
// a burst of maxAttempts with tokens replenishing over the window, so the
// attempt after the budget is exhausted fails fast with 429 regardless of
// credential correctness.
func NewLoginLimiter(maxAttempts int, window time.Duration) gin.HandlerFunc {
	lmt := tollbooth.NewLimiter(float64(maxAttempts)/window.Seconds(), &limiter.ExpirableOptions{
		DefaultExpirationTTL: window,
	})
	lmt.SetBurst(maxAttempts)
	lmt.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})
	lmt.SetMessage(`{"error":"Too many login attempts, please try again after 15 minutes"}`)
	lmt.SetMessageContentType("application/json; charset=utf-8")
	return tollbooth_gin.LimitHandler(lmt)
}
