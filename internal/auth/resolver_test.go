package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RehanMehtaIND/noteslite/internal/core/domain"
	"github.com/RehanMehtaIND/noteslite/internal/testutil"
)

func newRequest(cookie string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	if cookie != "" {
		r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: cookie})
	}
	return r
}

func TestCookieResolver(t *testing.T) {
	ctx := context.Background()
	codec, err := NewTokenCodec([]byte("secret"))
	require.NoError(t, err)

	users := testutil.NewUsers()
	ada := users.Put(domain.UserRow{Name: "Ada", Email: "ada@example.com", PasswordHash: "digest"})
	resolver := NewCookieResolver(codec, users)

	t.Run("no cookie does not touch the store", func(t *testing.T) {
		before := users.Calls
		_, err := resolver.Resolve(ctx, newRequest(""))
		assert.ErrorIs(t, err, ErrUnauthenticated)
		assert.Equal(t, before, users.Calls)
	})

	t.Run("invalid token", func(t *testing.T) {
		before := users.Calls
		_, err := resolver.Resolve(ctx, newRequest("bogus"))
		assert.ErrorIs(t, err, ErrUnauthenticated)
		assert.Equal(t, before, users.Calls)
	})

	t.Run("subject gone", func(t *testing.T) {
		token, err := codec.Issue("deleted-user")
		require.NoError(t, err)
		_, err = resolver.Resolve(ctx, newRequest(token))
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("valid", func(t *testing.T) {
		token, err := codec.Issue(ada.ID)
		require.NoError(t, err)
		user, err := resolver.Resolve(ctx, newRequest(token))
		require.NoError(t, err)
		assert.Equal(t, &domain.User{ID: ada.ID, Name: "Ada", Email: "ada@example.com"}, user)
	})

	t.Run("repeatable without side effects", func(t *testing.T) {
		token, err := codec.Issue(ada.ID)
		require.NoError(t, err)
		req := newRequest(token)
		before, err := users.Count(ctx)
		require.NoError(t, err)

		first, err := resolver.Resolve(ctx, req)
		require.NoError(t, err)
		second, err := resolver.Resolve(ctx, req)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		after, err := users.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
		assert.Equal(t, SessionCookieName+"="+token, req.Header.Get("Cookie"))
	})

	t.Run("store failure", func(t *testing.T) {
		failing := testutil.NewUsers()
		failing.Err = errors.New("connection refused")
		token, err := codec.Issue(ada.ID)
		require.NoError(t, err)

		_, err = NewCookieResolver(codec, failing).Resolve(ctx, newRequest(token))
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnauthenticated)
	})
}

func providerToken(t *testing.T, issuer, subject, email, name string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, providerClaims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("provider-secret"))
	require.NoError(t, err)
	return token
}

func bearer(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

func TestBearerProvider(t *testing.T) {
	p := NewBearerProvider("https://id.example", []byte("provider-secret"))
	ctx := context.Background()

	id, err := p.Identify(ctx, bearer(providerToken(t, "https://id.example", "sub-1", "grace@example.com", "Grace")))
	require.NoError(t, err)
	assert.Equal(t, &Identity{Subject: "sub-1", Email: "grace@example.com", Name: "Grace"}, id)

	_, err = p.Identify(ctx, bearer(providerToken(t, "https://evil.example", "sub-1", "", "")))
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = p.Identify(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = p.Identify(ctx, bearer("garbage"))
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

type raceUsers struct {
	*testutil.Users
	reads int
}

// GetByExternalID misses on the first read, as if another request were
// provisioning the same subject concurrently.
func (r *raceUsers) GetByExternalID(ctx context.Context, externalID string) (*domain.UserRow, error) {
	r.reads++
	if r.reads == 1 {
		return nil, nil
	}
	return r.Users.GetByExternalID(ctx, externalID)
}

func TestDelegatedResolver(t *testing.T) {
	ctx := context.Background()
	provider := NewBearerProvider("https://id.example", []byte("provider-secret"))

	t.Run("provisions on first sight", func(t *testing.T) {
		users := testutil.NewUsers()
		resolver := NewDelegatedResolver(provider, users)

		user, err := resolver.Resolve(ctx, bearer(providerToken(t, "https://id.example", "sub-1", "Grace@Example.com", "Grace")))
		require.NoError(t, err)
		assert.Equal(t, "Grace", user.Name)
		assert.Equal(t, "grace@example.com", user.Email)

		again, err := resolver.Resolve(ctx, bearer(providerToken(t, "https://id.example", "sub-1", "grace@example.com", "Grace")))
		require.NoError(t, err)
		assert.Equal(t, user.ID, again.ID)

		n, _ := users.Count(ctx)
		assert.Equal(t, int64(1), n)
	})

	t.Run("fallback name and email", func(t *testing.T) {
		users := testutil.NewUsers()
		user, err := NewDelegatedResolver(provider, users).Resolve(ctx, bearer(providerToken(t, "https://id.example", "sub-2", "", "")))
		require.NoError(t, err)
		assert.Equal(t, "User", user.Name)
		assert.Equal(t, "sub-2@placeholder.local", user.Email)
	})

	t.Run("provisioning race re-reads", func(t *testing.T) {
		users := &raceUsers{Users: testutil.NewUsers()}
		winner, err := users.Users.CreateExternal(ctx, "sub-3", "Winner", "w@example.com")
		require.NoError(t, err)

		user, err := NewDelegatedResolver(provider, users).Resolve(ctx, bearer(providerToken(t, "https://id.example", "sub-3", "w@example.com", "Loser")))
		require.NoError(t, err)
		assert.Equal(t, winner.ID, user.ID)
		assert.Equal(t, "Winner", user.Name)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		_, err := NewDelegatedResolver(provider, testutil.NewUsers()).Resolve(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("store failure", func(t *testing.T) {
		users := testutil.NewUsers()
		users.Err = errors.New("db down")
		_, err := NewDelegatedResolver(provider, users).Resolve(ctx, bearer(providerToken(t, "https://id.example", "sub-4", "", "")))
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnauthenticated)
	})
}
