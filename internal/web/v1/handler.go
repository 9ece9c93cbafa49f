// Package v1 exposes the HTTP handlers of API version 1.
package v1

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/RehanMehtaIND/noteslite/middleware"
)

// Routes wires the v1 handlers onto a router group. Auth is required;
// the other handlers are mounted when set.
type Routes struct {
	Auth       *AuthHandler
	Boards     *BoardHandler
	Workspaces *WorkspaceHandler
	Health     *HealthHandler

	// Gate authenticates the caller on protected routes.
	Gate gin.HandlerFunc
	// Throttle, when set, guards the credential endpoints.
	Throttle gin.HandlerFunc
}

// Register mounts every route on rg.
func (r Routes) Register(rg *gin.RouterGroup) {
	r.Auth.RegisterRoutes(rg, r.Gate, r.Throttle)
	if r.Boards != nil {
		r.Boards.RegisterRoutes(rg.Group("", r.Gate))
	}
	if r.Workspaces != nil {
		r.Workspaces.RegisterRoutes(rg.Group("", r.Gate))
	}
	if r.Health != nil {
		r.Health.RegisterRoutes(rg)
	}
}

// startSpan opens the web-layer span of a request.
func startSpan(c *gin.Context) (context.Context, trace.Span) {
	return middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.FullPath()),
	))
}
