package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RehanMehtaIND/noteslite/internal/core/domain"
	"github.com/RehanMehtaIND/noteslite/internal/logger"
	logicv1 "github.com/RehanMehtaIND/noteslite/internal/logic/v1"
	"github.com/RehanMehtaIND/noteslite/middleware"
)

const invalidWorkspacePayload = "Invalid workspace payload."

type createWorkspaceRequest struct {
	Name  string  `json:"name" validate:"min=1,max=120"`
	Theme *string `json:"theme" validate:"omitnil,max=40"`
}

type updateWorkspaceRequest struct {
	Name  *string `json:"name" validate:"omitnil,min=1,max=120"`
	Theme *string `json:"theme" validate:"omitnil,max=40"`
}

// WorkspaceHandler serves the workspace endpoints. All routes require a user.
type WorkspaceHandler struct {
	workspaces *logicv1.WorkspaceService
}

// NewWorkspaceHandler creates a WorkspaceHandler.
func NewWorkspaceHandler(workspaces *logicv1.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaces: workspaces}
}

// RegisterRoutes mounts the workspace routes on a gated group.
func (h *WorkspaceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/workspaces", h.List)
	rg.POST("/workspaces", h.Create)
	rg.GET("/workspaces/:id", h.Get)
	rg.PATCH("/workspaces/:id", h.Update)
	rg.DELETE("/workspaces/:id", h.Delete)
}

// List handles GET /api/v1/workspaces.
func (h *WorkspaceHandler) List(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	user, _ := middleware.CurrentUser(c)
	items, err := h.workspaces.List(ctx, user.ID)
	if err != nil {
		h.fail(c, err, "Failed to load workspaces.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"workspaces": items})
}

// Create handles POST /api/v1/workspaces.
func (h *WorkspaceHandler) Create(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	var req createWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidWorkspacePayload})
		return
	}
	trimPtr(&req.Name)
	trimPtr(req.Theme)
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err, invalidWorkspacePayload)})
		return
	}

	user, _ := middleware.CurrentUser(c)
	w, err := h.workspaces.Create(ctx, user.ID, req.Name, req.Theme)
	if err != nil {
		h.fail(c, err, "Failed to create workspace.")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"workspace": w})
}

// Get handles GET /api/v1/workspaces/:id.
func (h *WorkspaceHandler) Get(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	user, _ := middleware.CurrentUser(c)
	w, err := h.workspaces.Get(ctx, user.ID, c.Param("id"))
	if err != nil {
		h.fail(c, err, "Failed to load workspace.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"workspace": w})
}

// Update handles PATCH /api/v1/workspaces/:id.
func (h *WorkspaceHandler) Update(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	var req updateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidWorkspacePayload})
		return
	}
	trimPtr(req.Name)
	trimPtr(req.Theme)
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err, invalidWorkspacePayload)})
		return
	}

	user, _ := middleware.CurrentUser(c)
	w, err := h.workspaces.Update(ctx, user.ID, c.Param("id"), domain.WorkspacePatch{Name: req.Name, Theme: req.Theme})
	if err != nil {
		h.fail(c, err, "Failed to update workspace.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"workspace": w})
}

// Delete handles DELETE /api/v1/workspaces/:id.
func (h *WorkspaceHandler) Delete(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	user, _ := middleware.CurrentUser(c)
	if err := h.workspaces.Delete(ctx, user.ID, c.Param("id")); err != nil {
		h.fail(c, err, "Failed to delete workspace.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// fail maps a service error to a response; unexpected errors are logged and
// answered with internal.
func (h *WorkspaceHandler) fail(c *gin.Context, err error, internal string) {
	var verr *logicv1.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
	case errors.Is(err, logicv1.ErrWorkspaceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Workspace not found."})
	default:
		logger.FromContext(c.Request.Context()).Error().Err(err).Msg(internal)
		c.JSON(http.StatusInternalServerError, gin.H{"error": internal})
	}
}
