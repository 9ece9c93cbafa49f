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

// DefaultWorkspaceTheme is used when a workspace is created without a theme.
const DefaultWorkspaceTheme = "default"

// WorkspaceService manages a user's workspaces.
type WorkspaceService struct {
	workspaces domain.WorkspaceRepository
}

// NewWorkspaceService creates a new WorkspaceService.
func NewWorkspaceService(workspaces domain.WorkspaceRepository) *WorkspaceService {
	return &WorkspaceService{workspaces: workspaces}
}

func (s *WorkspaceService) List(ctx context.Context, userID string) ([]domain.Workspace, error) {
	ctx, span := middleware.StartSpan(ctx, "workspaces.list", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	items, err := s.workspaces.ListByUser(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	return items, nil
}

func (s *WorkspaceService) Get(ctx context.Context, userID, id string) (*domain.Workspace, error) {
	ctx, span := middleware.StartSpan(ctx, "workspaces.get", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("workspace.id", id),
	))
	defer span.End()

	w, err := s.workspaces.Get(ctx, userID, id)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("get workspace %s: %w", id, err)
	}
	if w == nil {
		return nil, fmt.Errorf("get workspace %s: %w", id, ErrWorkspaceNotFound)
	}
	return w, nil
}

// Create adds a workspace. An empty theme uses DefaultWorkspaceTheme.
func (s *WorkspaceService) Create(ctx context.Context, userID, name string, theme *string) (*domain.Workspace, error) {
	ctx, span := middleware.StartSpan(ctx, "workspaces.create", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	w := domain.Workspace{
		UserID: userID,
		Name:   strings.TrimSpace(name),
		Theme:  DefaultWorkspaceTheme,
	}
	if theme != nil {
		w.Theme = strings.TrimSpace(*theme)
	}

	created, err := s.workspaces.Create(ctx, w)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return created, nil
}

func (s *WorkspaceService) Update(ctx context.Context, userID, id string, patch domain.WorkspacePatch) (*domain.Workspace, error) {
	ctx, span := middleware.StartSpan(ctx, "workspaces.update", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("workspace.id", id),
	))
	defer span.End()

	if patch.Name == nil && patch.Theme == nil {
		return nil, ErrNoUpdates
	}
	patch.Name = trimmed(patch.Name)
	patch.Theme = trimmed(patch.Theme)

	w, err := s.workspaces.Update(ctx, userID, id, patch)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("update workspace %s: %w", id, err)
	}
	if w == nil {
		return nil, fmt.Errorf("update workspace %s: %w", id, ErrWorkspaceNotFound)
	}
	return w, nil
}

func (s *WorkspaceService) Delete(ctx context.Context, userID, id string) error {
	ctx, span := middleware.StartSpan(ctx, "workspaces.delete", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("workspace.id", id),
	))
	defer span.End()

	deleted, err := s.workspaces.Delete(ctx, userID, id)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("delete workspace %s: %w", id, err)
	}
	if !deleted {
		return fmt.Errorf("delete workspace %s: %w", id, ErrWorkspaceNotFound)
	}
	return nil
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}
