package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/RehanMehtaIND/noteslite/internal/core/domain"
	"github.com/RehanMehtaIND/noteslite/internal/logger"
)

// Throttle limits requests per client IP under the given scope. A limiter
// error lets the request through.
func Throttle(limiter domain.AttemptLimiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		allowed, retryAfter, err := limiter.Allow(ctx, scope+":"+c.ClientIP())
		if err != nil {
			logger.FromContext(ctx).Warn().Err(err).Str("scope", scope).Msg("Attempt limiter unavailable")
			c.Next()
			return
		}
		if !allowed {
			RecordAuthOutcome(scope, OutcomeThrottled)
			seconds := int(math.Ceil(retryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many attempts. Try again later."})
			return
		}
		c.Next()
	}
}
