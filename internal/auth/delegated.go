package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/RehanMehtaIND/noteslite/internal/core/domain"
)

// Identity is what an external identity provider asserts about a caller.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

// IdentityProvider authenticates a request on behalf of an external
// provider. It returns ErrUnauthenticated when the request carries no valid
// provider credential.
type IdentityProvider interface {
	Identify(ctx context.Context, r *http.Request) (*Identity, error)
}

// providerClaims is the token payload issued by the provider.
type providerClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// BearerProvider verifies HS256 bearer tokens minted by the provider.
type BearerProvider struct {
	issuer string
	secret []byte
	now    func() time.Time
}

// NewBearerProvider creates a provider accepting tokens from issuer signed
// with secret.
func NewBearerProvider(issuer string, secret []byte) *BearerProvider {
	return &BearerProvider{issuer: issuer, secret: secret, now: time.Now}
}

// Identify implements IdentityProvider.
func (p *BearerProvider) Identify(_ context.Context, r *http.Request) (*Identity, error) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(token) == "" {
		return nil, ErrUnauthenticated
	}

	var claims providerClaims
	parsed, err := jwt.ParseWithClaims(strings.TrimSpace(token), &claims, func(*jwt.Token) (any, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(p.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
		jwt.WithStrictDecoding(),
	)
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return nil, ErrUnauthenticated
	}

	return &Identity{Subject: claims.Subject, Email: claims.Email, Name: claims.Name}, nil
}

// DelegatedResolver maps provider identities onto local users, creating the
// user on first sight.
type DelegatedResolver struct {
	provider IdentityProvider
	users    domain.UserRepository
}

// NewDelegatedResolver creates a resolver for provider-authenticated
// deployments.
func NewDelegatedResolver(provider IdentityProvider, users domain.UserRepository) *DelegatedResolver {
	return &DelegatedResolver{provider: provider, users: users}
}

// Resolve implements Resolver.
func (dr *DelegatedResolver) Resolve(ctx context.Context, r *http.Request) (*domain.User, error) {
	id, err := dr.provider.Identify(ctx, r)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("identify caller: %w", err)
	}

	row, err := dr.users.GetByExternalID(ctx, id.Subject)
	if err != nil {
		return nil, fmt.Errorf("load user %q: %w", id.Subject, err)
	}
	if row != nil {
		return row.Public(), nil
	}

	row, err = dr.users.CreateExternal(ctx, id.Subject, fallbackName(id), fallbackEmail(id))
	if errors.Is(err, domain.ErrDuplicate) {
		// Lost a provisioning race; the winner's row is authoritative.
		row, err = dr.users.GetByExternalID(ctx, id.Subject)
		if err == nil && row == nil {
			err = fmt.Errorf("email already linked to another account: %w", domain.ErrDuplicate)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("provision user %q: %w", id.Subject, err)
	}
	return row.Public(), nil
}

func fallbackName(id *Identity) string {
	if name := strings.TrimSpace(id.Name); name != "" {
		return name
	}
	return "User"
}

func fallbackEmail(id *Identity) string {
	if email := strings.ToLower(strings.TrimSpace(id.Email)); email != "" {
		return email
	}
	return id.Subject + "@placeholder.local"
}
