package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/RehanMehtaIND/noteslite/internal/core/domain"
)

const userColumns = `id, name, email, COALESCE(password_hash, ''), COALESCE(external_id, '')`

// PgxUserRepository implements domain.UserRepository using pgx.
type PgxUserRepository struct {
	db DBTX
}

// NewUserRepository creates a new PgxUserRepository.
func NewUserRepository(db DBTX) *PgxUserRepository {
	return &PgxUserRepository{db: db}
}

// GetByEmail returns the user matching the given email.
// Returns (nil, nil) when no user is found.
func (r *PgxUserRepository) GetByEmail(ctx context.Context, email string) (*domain.UserRow, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// GetByID returns the user matching the given ID.
// Returns (nil, nil) when no user is found.
func (r *PgxUserRepository) GetByID(ctx context.Context, id string) (*domain.UserRow, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByExternalID returns the user linked to the given provider subject.
// Returns (nil, nil) when no user is found.
func (r *PgxUserRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.UserRow, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE external_id = $1`, externalID)
}

func (r *PgxUserRepository) getOne(ctx context.Context, query string, arg any) (*domain.UserRow, error) {
	var row domain.UserRow
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&row.ID, &row.Name, &row.Email, &row.PasswordHash, &row.ExternalID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &row, nil
}

// Create inserts a new password user. A taken email yields domain.ErrDuplicate.
func (r *PgxUserRepository) Create(ctx context.Context, name, email, passwordHash string) (*domain.UserRow, error) {
	query := `INSERT INTO users (id, name, email, password_hash) VALUES ($1, $2, $3, $4) RETURNING id`

	row := domain.UserRow{Name: name, Email: email, PasswordHash: passwordHash}
	if err := r.db.QueryRow(ctx, query, uuid.NewString(), name, email, passwordHash).Scan(&row.ID); err != nil {
		return nil, translateError(err)
	}

	return &row, nil
}

// CreateExternal inserts a user provisioned by an identity provider.
// A taken external ID or email yields domain.ErrDuplicate.
func (r *PgxUserRepository) CreateExternal(ctx context.Context, externalID, name, email string) (*domain.UserRow, error) {
	query := `INSERT INTO users (id, name, email, external_id) VALUES ($1, $2, $3, $4) RETURNING id`

	row := domain.UserRow{Name: name, Email: email, ExternalID: externalID}
	if err := r.db.QueryRow(ctx, query, uuid.NewString(), name, email, externalID).Scan(&row.ID); err != nil {
		return nil, translateError(err)
	}

	return &row, nil
}

// Count returns the total number of users.
func (r *PgxUserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
