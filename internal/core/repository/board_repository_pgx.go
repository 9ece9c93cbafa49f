package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/RehanMehtaIND/noteslite/internal/core/domain"
)

const boardColumns = `id, user_id, title, image, background_mode, background_color, gradient_from, gradient_to, created_at, updated_at`

// PgxBoardRepository implements domain.BoardRepository using pgx.
type PgxBoardRepository struct {
	db  DBTX
	now func() time.Time
}

// NewBoardRepository creates a new PgxBoardRepository.
func NewBoardRepository(db DBTX) *PgxBoardRepository {
	return &PgxBoardRepository{db: db, now: time.Now}
}

func scanBoard(row pgx.Row) (*domain.Board, error) {
	var b domain.Board
	err := row.Scan(
		&b.ID, &b.UserID, &b.Title, &b.Image, &b.BackgroundMode,
		&b.BackgroundColor, &b.GradientFrom, &b.GradientTo, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListByUser returns the user's boards ordered by creation time.
func (r *PgxBoardRepository) ListByUser(ctx context.Context, userID string) ([]domain.Board, error) {
	query := `SELECT ` + boardColumns + ` FROM boards WHERE user_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	boards := []domain.Board{}
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, err
		}
		boards = append(boards, *b)
	}
	return boards, rows.Err()
}

// Create inserts a board.
func (r *PgxBoardRepository) Create(ctx context.Context, b domain.Board) (*domain.Board, error) {
	query := `
		INSERT INTO boards (id, user_id, title, image, background_mode, background_color, gradient_from, gradient_to)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + boardColumns

	return scanBoard(r.db.QueryRow(ctx, query,
		uuid.NewString(), b.UserID, b.Title, b.Image, b.BackgroundMode,
		b.BackgroundColor, b.GradientFrom, b.GradientTo,
	))
}

// CreateMany inserts boards with a single COPY. Creation timestamps are
// spaced by a microsecond so ListByUser keeps the input order.
func (r *PgxBoardRepository) CreateMany(ctx context.Context, boards []domain.Board) error {
	if len(boards) == 0 {
		return nil
	}

	base := r.now().UTC()
	rows := make([][]any, 0, len(boards))
	for i, b := range boards {
		ts := base.Add(time.Duration(i) * time.Microsecond)
		rows = append(rows, []any{
			uuid.NewString(), b.UserID, b.Title, b.Image, b.BackgroundMode,
			b.BackgroundColor, b.GradientFrom, b.GradientTo, ts, ts,
		})
	}

	_, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"boards"},
		[]string{"id", "user_id", "title", "image", "background_mode", "background_color", "gradient_from", "gradient_to", "created_at", "updated_at"},
		pgx.CopyFromRows(rows),
	)
	return err
}

// Update applies patch to the board identified by id and owned by userID.
// Returns (nil, nil) when no such board exists.
func (r *PgxBoardRepository) Update(ctx context.Context, userID, id string, p domain.BoardPatch) (*domain.Board, error) {
	query := `
		UPDATE boards SET
			title = COALESCE($3, title),
			image = CASE WHEN $4::boolean THEN $5::text ELSE image END,
			background_mode = COALESCE($6, background_mode),
			background_color = COALESCE($7, background_color),
			gradient_from = COALESCE($8, gradient_from),
			gradient_to = COALESCE($9, gradient_to),
			updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + boardColumns

	b, err := scanBoard(r.db.QueryRow(ctx, query,
		id, userID, p.Title, p.ImageSet, p.Image,
		p.BackgroundMode, p.BackgroundColor, p.GradientFrom, p.GradientTo,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

// Delete removes the board and reports whether it existed.
func (r *PgxBoardRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM boards WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
