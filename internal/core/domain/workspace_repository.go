package domain

import "context"

// WorkspaceRepository defines the data-access contract for workspaces,
// scoped to the owning user like BoardRepository.
type WorkspaceRepository interface {
	ListByUser(ctx context.Context, userID string) ([]Workspace, error)

	// Get returns (nil, nil) when the workspace does not exist or is not owned.
	Get(ctx context.Context, userID, id string) (*Workspace, error)

	Create(ctx context.Context, workspace Workspace) (*Workspace, error)

	// Update returns (nil, nil) when the workspace does not exist or is not owned.
	Update(ctx context.Context, userID, id string, patch WorkspacePatch) (*Workspace, error)

	Delete(ctx context.Context, userID, id string) (bool, error)
}
