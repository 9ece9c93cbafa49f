package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RehanMehtaIND/noteslite/internal/core/domain"
	"github.com/RehanMehtaIND/noteslite/internal/logger"
	logicv1 "github.com/RehanMehtaIND/noteslite/internal/logic/v1"
	"github.com/RehanMehtaIND/noteslite/middleware"
)

const invalidBoardPayload = "Invalid board payload."

type createBoardRequest struct {
	Title *string `json:"title" validate:"omitnil,min=1,max=80"`
}

type updateBoardRequest struct {
	Title           *string `json:"title" validate:"omitnil,min=1,max=80"`
	Image           *string `json:"image" validate:"omitnil,url"`
	BackgroundMode  *string `json:"backgroundMode" validate:"omitnil,oneof=image color gradient"`
	BackgroundColor *string `json:"backgroundColor" validate:"omitnil,hex6"`
	GradientFrom    *string `json:"gradientFrom" validate:"omitnil,hex6"`
	GradientTo      *string `json:"gradientTo" validate:"omitnil,hex6"`
}

// BoardHandler serves the board endpoints. All routes require a user.
type BoardHandler struct {
	boards *logicv1.BoardService
}

// NewBoardHandler creates a BoardHandler.
func NewBoardHandler(boards *logicv1.BoardService) *BoardHandler {
	return &BoardHandler{boards: boards}
}

// RegisterRoutes mounts the board routes on a gated group.
func (h *BoardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/boards", h.List)
	rg.POST("/boards", h.Create)
	rg.PATCH("/boards/:id", h.Update)
	rg.DELETE("/boards/:id", h.Delete)
}

// List handles GET /api/v1/boards.
func (h *BoardHandler) List(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	user, _ := middleware.CurrentUser(c)
	boards, err := h.boards.List(ctx, user.ID)
	if err != nil {
		span.RecordError(err)
		logger.FromContext(ctx).Error().Err(err).Msg("List boards failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load boards."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"boards": boards})
}

// Create handles POST /api/v1/boards. A missing or unreadable body creates
// a board with the default title.
func (h *BoardHandler) Create(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	var req createBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": invalidBoardPayload})
			return
		}
		req = createBoardRequest{}
	}
	trimPtr(req.Title)
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidBoardPayload})
		return
	}

	user, _ := middleware.CurrentUser(c)
	board, err := h.boards.Create(ctx, user.ID, req.Title)
	if err != nil {
		span.RecordError(err)
		logger.FromContext(ctx).Error().Err(err).Msg("Create board failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create board."})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"board": board})
}

// Update handles PATCH /api/v1/boards/:id. An explicit null image clears it.
func (h *BoardHandler) Update(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	var req updateBoardRequest
	if err := c.ShouldBindBodyWithJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidBoardPayload})
		return
	}
	var present map[string]any
	if err := c.ShouldBindBodyWithJSON(&present); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidBoardPayload})
		return
	}
	trimPtr(req.Title)
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err, invalidBoardPayload)})
		return
	}
	_, imageSet := present["image"]

	user, _ := middleware.CurrentUser(c)
	board, err := h.boards.Update(ctx, user.ID, c.Param("id"), domain.BoardPatch{
		Title:           req.Title,
		ImageSet:        imageSet,
		Image:           req.Image,
		BackgroundMode:  req.BackgroundMode,
		BackgroundColor: req.BackgroundColor,
		GradientFrom:    req.GradientFrom,
		GradientTo:      req.GradientTo,
	})
	if err != nil {
		var verr *logicv1.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
		case errors.Is(err, logicv1.ErrBoardNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found."})
		default:
			span.RecordError(err)
			logger.FromContext(ctx).Error().Err(err).Msg("Update board failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update board."})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"board": board})
}

// Delete handles DELETE /api/v1/boards/:id.
func (h *BoardHandler) Delete(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	user, _ := middleware.CurrentUser(c)
	if err := h.boards.Delete(ctx, user.ID, c.Param("id")); err != nil {
		if errors.Is(err, logicv1.ErrBoardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found."})
			return
		}
		span.RecordError(err)
		logger.FromContext(ctx).Error().Err(err).Msg("Delete board failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete board."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
