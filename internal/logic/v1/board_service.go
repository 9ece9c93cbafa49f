package v1

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/RehanMehtaIND/noteslite/internal/core/domain"
	"github.com/RehanMehtaIND/noteslite/middleware"
)

// DefaultBoardTitle names a board created without a title.
const DefaultBoardTitle = "NEW BOARD"

// BoardTemplate is the look of a starter board.
type BoardTemplate struct {
	Title           string
	Image           string
	BackgroundColor string
	GradientFrom    string
	GradientTo      string
}

// StarterTemplates are the boards every new account starts with.
var StarterTemplates = []BoardTemplate{
	{
		Title:           "DSA NOTES",
		Image:           "https://images.unsplash.com/photo-1464822759844-d150ad6d1b8a?auto=format&fit=crop&w=1400&q=80",
		BackgroundColor: "#cfd2d9",
		GradientFrom:    "#d6deec",
		GradientTo:      "#aeb6c8",
	},
	{
		Title:           "TRANSACTIONS",
		Image:           "https://images.unsplash.com/photo-1454496522488-7a8e488e8606?auto=format&fit=crop&w=1400&q=80",
		BackgroundColor: "#cfd2d9",
		GradientFrom:    "#d5dfed",
		GradientTo:      "#afb8cb",
	},
	{
		Title:           "GAME DEV",
		Image:           "https://images.unsplash.com/photo-1501785888041-af3ef285b470?auto=format&fit=crop&w=1400&q=80",
		BackgroundColor: "#cfd2d9",
		GradientFrom:    "#d7dcf0",
		GradientTo:      "#b6b6d6",
	},
	{
		Title:           "POEMS",
		Image:           "https://images.unsplash.com/photo-1472396961693-142e6e269027?auto=format&fit=crop&w=1400&q=80",
		BackgroundColor: "#cfd2d9",
		GradientFrom:    "#d9e1eb",
		GradientTo:      "#b3c1c9",
	},
}

// board builds an image-mode board for userID from the template.
func (t BoardTemplate) board(userID, title string) domain.Board {
	image := t.Image
	return domain.Board{
		UserID:          userID,
		Title:           title,
		Image:           &image,
		BackgroundMode:  domain.BackgroundImage,
		BackgroundColor: t.BackgroundColor,
		GradientFrom:    t.GradientFrom,
		GradientTo:      t.GradientTo,
	}
}

// StarterBoards returns the starter boards for a new user, in display order.
func StarterBoards(userID string) []domain.Board {
	boards := make([]domain.Board, 0, len(StarterTemplates))
	for _, t := range StarterTemplates {
		boards = append(boards, t.board(userID, t.Title))
	}
	return boards
}

// BoardService manages a user's boards.
type BoardService struct {
	boards domain.BoardRepository
}

// NewBoardService creates a new BoardService.
func NewBoardService(boards domain.BoardRepository) *BoardService {
	return &BoardService{boards: boards}
}

// List returns the user's boards, oldest first.
func (s *BoardService) List(ctx context.Context, userID string) ([]domain.Board, error) {
	ctx, span := middleware.StartSpan(ctx, "boards.list", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	boards, err := s.boards.ListByUser(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list boards: %w", err)
	}
	span.SetAttributes(attribute.Int("boards.count", len(boards)))
	return boards, nil
}

// Create adds a board styled like the first starter template. A nil title
// uses DefaultBoardTitle.
func (s *BoardService) Create(ctx context.Context, userID string, title *string) (*domain.Board, error) {
	ctx, span := middleware.StartSpan(ctx, "boards.create", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	name := DefaultBoardTitle
	if title != nil {
		name = strings.ToUpper(strings.TrimSpace(*title))
	}

	board, err := s.boards.Create(ctx, StarterTemplates[0].board(userID, name))
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("create board: %w", err)
	}
	return board, nil
}

// Update applies patch to one of the user's boards.
func (s *BoardService) Update(ctx context.Context, userID, id string, patch domain.BoardPatch) (*domain.Board, error) {
	ctx, span := middleware.StartSpan(ctx, "boards.update", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("board.id", id),
	))
	defer span.End()

	if patch.Title == nil && !patch.ImageSet && patch.BackgroundMode == nil &&
		patch.BackgroundColor == nil && patch.GradientFrom == nil && patch.GradientTo == nil {
		return nil, ErrNoUpdates
	}
	if patch.Title != nil {
		title := strings.ToUpper(strings.TrimSpace(*patch.Title))
		patch.Title = &title
	}

	board, err := s.boards.Update(ctx, userID, id, patch)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("update board %s: %w", id, err)
	}
	if board == nil {
		return nil, fmt.Errorf("update board %s: %w", id, ErrBoardNotFound)
	}
	return board, nil
}

// Delete removes one of the user's boards.
func (s *BoardService) Delete(ctx context.Context, userID, id string) error {
	ctx, span := middleware.StartSpan(ctx, "boards.delete", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("board.id", id),
	))
	defer span.End()

	deleted, err := s.boards.Delete(ctx, userID, id)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("delete board %s: %w", id, err)
	}
	if !deleted {
		return fmt.Errorf("delete board %s: %w", id, ErrBoardNotFound)
	}
	return nil
}
