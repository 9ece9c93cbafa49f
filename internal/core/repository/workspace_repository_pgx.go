package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/RehanMehtaIND/noteslite/internal/core/domain"
)

const workspaceColumns = `id, user_id, name, theme, created_at, updated_at`

// PgxWorkspaceRepository implements domain.WorkspaceRepository using pgx.
type PgxWorkspaceRepository struct {
	db DBTX
}

// NewWorkspaceRepository creates a new PgxWorkspaceRepository.
func NewWorkspaceRepository(db DBTX) *PgxWorkspaceRepository {
	return &PgxWorkspaceRepository{db: db}
}

func scanWorkspace(row pgx.Row) (*domain.Workspace, error) {
	var w domain.Workspace
	if err := row.Scan(&w.ID, &w.UserID, &w.Name, &w.Theme, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

func scanOptionalWorkspace(row pgx.Row) (*domain.Workspace, error) {
	w, err := scanWorkspace(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return w, nil
}

// ListByUser returns the user's workspaces ordered by creation time.
func (r *PgxWorkspaceRepository) ListByUser(ctx context.Context, userID string) ([]domain.Workspace, error) {
	rows, err := r.db.Query(ctx, `SELECT `+workspaceColumns+` FROM workspaces WHERE user_id = $1 ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workspaces := []domain.Workspace{}
	for rows.Next() {
		w, err := scanWorkspace(rows)
		if err != nil {
			return nil, err
		}
		workspaces = append(workspaces, *w)
	}
	return workspaces, rows.Err()
}

// Get returns the workspace, or (nil, nil) when it is missing or not owned.
func (r *PgxWorkspaceRepository) Get(ctx context.Context, userID, id string) (*domain.Workspace, error) {
	return scanOptionalWorkspace(r.db.QueryRow(ctx,
		`SELECT `+workspaceColumns+` FROM workspaces WHERE id = $1 AND user_id = $2`, id, userID))
}

// Create inserts a workspace.
func (r *PgxWorkspaceRepository) Create(ctx context.Context, w domain.Workspace) (*domain.Workspace, error) {
	query := `INSERT INTO workspaces (id, user_id, name, theme) VALUES ($1, $2, $3, $4) RETURNING ` + workspaceColumns
	return scanWorkspace(r.db.QueryRow(ctx, query, uuid.NewString(), w.UserID, w.Name, w.Theme))
}

// Update applies patch, or returns (nil, nil) when the workspace is missing or not owned.
func (r *PgxWorkspaceRepository) Update(ctx context.Context, userID, id string, p domain.WorkspacePatch) (*domain.Workspace, error) {
	query := `
		UPDATE workspaces SET
			name = COALESCE($3, name),
			theme = COALESCE($4, theme),
			updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + workspaceColumns

	return scanOptionalWorkspace(r.db.QueryRow(ctx, query, id, userID, p.Name, p.Theme))
}

// Delete removes the workspace and reports whether it existed.
func (r *PgxWorkspaceRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM workspaces WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
