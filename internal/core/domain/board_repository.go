package domain

import "context"

// BoardRepository defines the data-access contract for boards.
// Every operation is scoped to the owning user; a board owned by someone
// else behaves exactly like a missing one.
type BoardRepository interface {
	// ListByUser returns the user's boards, oldest first.
	ListByUser(ctx context.Context, userID string) ([]Board, error)

	// Create inserts a board and returns it with generated fields set.
	Create(ctx context.Context, board Board) (*Board, error)

	// CreateMany inserts boards in a single batch.
	CreateMany(ctx context.Context, boards []Board) error

	// Update applies patch to the user's board.
	// Returns (nil, nil) when the board does not exist or is not owned.
	Update(ctx context.Context, userID, id string, patch BoardPatch) (*Board, error)

	// Delete removes the user's board and reports whether a row was deleted.
	Delete(ctx context.Context, userID, id string) (bool, error)
}
