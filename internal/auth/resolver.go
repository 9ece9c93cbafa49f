// Package auth holds the credential primitives of the service: password
// hashing, session tokens, the session cookie and the resolvers that turn an
// incoming request into the calling user.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/RehanMehtaIND/noteslite/internal/core/domain"
)

// ErrUnauthenticated means the request carries no usable identity.
var ErrUnauthenticated = errors.New("unauthenticated")

// Resolver determines the user behind a request. It returns
// ErrUnauthenticated when there is none and a wrapped error when the user
// store fails.
type Resolver interface {
	Resolve(ctx context.Context, r *http.Request) (*domain.User, error)
}

// CookieResolver reads the session token from the session cookie.
type CookieResolver struct {
	codec *TokenCodec
	users domain.UserRepository
}

// NewCookieResolver creates a resolver backed by locally issued tokens.
func NewCookieResolver(codec *TokenCodec, users domain.UserRepository) *CookieResolver {
	return &CookieResolver{codec: codec, users: users}
}

// Resolve implements Resolver. It never writes to the store and never
// refreshes the cookie.
func (cr *CookieResolver) Resolve(ctx context.Context, r *http.Request) (*domain.User, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrUnauthenticated
	}

	claims, ok := cr.codec.Verify(cookie.Value)
	if !ok {
		return nil, ErrUnauthenticated
	}

	row, err := cr.users.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("load session user: %w", err)
	}
	if row == nil {
		return nil, ErrUnauthenticated
	}
	return row.Public(), nil
}
