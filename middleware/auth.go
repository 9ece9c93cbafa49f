package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RehanMehtaIND/noteslite/internal/auth"
	"github.com/RehanMehtaIND/noteslite/internal/core/domain"
	"github.com/RehanMehtaIND/noteslite/internal/logger"
)

const userKey = "noteslite.user"

// RequireUser resolves the caller once per request and aborts with 401 when
// there is no authenticated user.
func RequireUser(resolver auth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolver.Resolve(c.Request.Context(), c.Request)
		if err != nil {
			if errors.Is(err, auth.ErrUnauthenticated) {
				RecordAuthOutcome("resolve", OutcomeUnauthenticated)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated."})
				return
			}
			RecordAuthOutcome("resolve", OutcomeError)
			logger.FromContext(c.Request.Context()).Error().Err(err).Msg("Resolve user failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session."})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by RequireUser.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok && user != nil
}
