package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RehanMehtaIND/noteslite/internal/core/domain"
	"github.com/RehanMehtaIND/noteslite/internal/logger"
)

// HealthHandler reports whether the user store is reachable.
type HealthHandler struct {
	users          domain.UserRepository
	databaseName   string
	databaseURLSet bool
	now            func() time.Time
}

// NewHealthHandler creates a HealthHandler reporting databaseName.
func NewHealthHandler(users domain.UserRepository, databaseName string, databaseURLSet bool) *HealthHandler {
	return &HealthHandler{users: users, databaseName: databaseName, databaseURLSet: databaseURLSet, now: time.Now}
}

// RegisterRoutes mounts the health routes.
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/db-check", h.DBCheck)
}

// DBCheck handles GET /api/v1/db-check. Driver errors are logged, never
// returned.
func (h *HealthHandler) DBCheck(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	total, err := h.users.Count(ctx)
	if err != nil {
		span.RecordError(err)
		logger.FromContext(ctx).Error().Err(err).Msg("Database check failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "The backend could not connect to PostgreSQL.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "connected",
		"database":  h.databaseName,
		"stats":     gin.H{"total_users": total},
		"env_check": gin.H{"database_url_set": h.databaseURLSet},
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}
