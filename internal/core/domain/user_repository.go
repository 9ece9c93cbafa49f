package domain

import "context"

// UserRow represents a user record returned from the database.
// It includes the password hash so the Logic layer can verify credentials;
// it must be converted with Public before leaving the service.
type UserRow struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // empty for users provisioned by an identity provider
	ExternalID   string
}

// Public strips credential material from the row.
func (r *UserRow) Public() *User {
	return &User{ID: r.ID, Name: r.Name, Email: r.Email}
}

// UserRepository defines the data-access contract for user operations.
// Implementations live in internal/core/repository (Core layer).
// The Logic layer depends on this interface only, never on SQL or pgx directly.
// Email uniqueness is enforced by the store; a conflicting insert returns
// ErrDuplicate.
type UserRepository interface {
	// GetByEmail returns the user with the given normalized email.
	// Returns (nil, nil) when no user is found.
	GetByEmail(ctx context.Context, email string) (*UserRow, error)

	// GetByID returns the user with the given ID.
	// Returns (nil, nil) when no user is found.
	GetByID(ctx context.Context, id string) (*UserRow, error)

	// GetByExternalID returns the user linked to an identity provider subject.
	// Returns (nil, nil) when no user is found.
	GetByExternalID(ctx context.Context, externalID string) (*UserRow, error)

	// Create inserts a password user.
	Create(ctx context.Context, name, email, passwordHash string) (*UserRow, error)

	// CreateExternal inserts a user provisioned from an identity provider.
	CreateExternal(ctx context.Context, externalID, name, email string) (*UserRow, error)

	// Count returns the number of users.
	Count(ctx context.Context) (int64, error)
}
