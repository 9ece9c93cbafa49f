package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RehanMehtaIND/noteslite/internal/auth"
	"github.com/RehanMehtaIND/noteslite/internal/core/domain"
	"github.com/RehanMehtaIND/noteslite/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubResolver struct {
	user  *domain.User
	err   error
	calls int
}

func (s *stubResolver) Resolve(context.Context, *http.Request) (*domain.User, error) {
	s.calls++
	return s.user, s.err
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequireUser(t *testing.T) {
	newRouter := func(res auth.Resolver) *gin.Engine {
		r := gin.New()
		r.GET("/me", RequireUser(res), func(c *gin.Context) {
			user, ok := CurrentUser(c)
			require.True(t, ok)
			c.JSON(http.StatusOK, user)
		})
		return r
	}

	t.Run("authenticated", func(t *testing.T) {
		res := &stubResolver{user: &domain.User{ID: "u-1", Name: "Ada", Email: "ada@example.com"}}
		rec := serve(newRouter(res), httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":"u-1","name":"Ada","email":"ada@example.com"}`, rec.Body.String())
		assert.Equal(t, 1, res.calls)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		rec := serve(newRouter(&stubResolver{err: auth.ErrUnauthenticated}), httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"Unauthenticated."}`, rec.Body.String())
	})

	t.Run("store failure", func(t *testing.T) {
		rec := serve(newRouter(&stubResolver{err: errors.New("db down")}), httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "db down")
	})
}

func TestRequireUser_CookieSessionIsNotRefreshed(t *testing.T) {
	codec, err := auth.NewTokenCodec([]byte("secret"))
	require.NoError(t, err)
	users := testutil.NewUsers()
	ada := users.Put(domain.UserRow{Name: "Ada", Email: "ada@example.com", PasswordHash: "digest"})
	token, err := codec.Issue(ada.ID)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", RequireUser(auth.NewCookieResolver(codec, users)), func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, user)
	})

	var bodies []string
	for range 2 {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
		rec := serve(r, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Values("Set-Cookie"))
		bodies = append(bodies, rec.Body.String())
	}
	assert.Equal(t, bodies[0], bodies[1])
}

func TestCurrentUser_Unset(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	user, ok := CurrentUser(c)
	assert.False(t, ok)
	assert.Nil(t, user)
}

func TestThrottle(t *testing.T) {
	limiter := testutil.NewLimiter(1)
	r := gin.New()
	r.POST("/login", Throttle(limiter, "login"), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	newReq := func(ip string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":5000"
		return req
	}

	assert.Equal(t, http.StatusNoContent, serve(r, newReq("10.0.0.1")).Code)

	rec := serve(r, newReq("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"Too many attempts. Try again later."}`, rec.Body.String())

	assert.Equal(t, http.StatusNoContent, serve(r, newReq("10.0.0.2")).Code, "limits are per client")

	limiter.Err = errors.New("redis down")
	assert.Equal(t, http.StatusNoContent, serve(r, newReq("10.0.0.1")).Code, "limiter errors fail open")
}

func TestLoggingMiddleware_TraceID(t *testing.T) {
	r := gin.New()
	r.Use(LoggingMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("trace_id"))
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(TraceParentHeader, "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	rec := serve(r, req)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", rec.Body.String())
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", rec.Header().Get(TraceIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(TraceIDHeader, "abc123")
	assert.Equal(t, "abc123", serve(r, req).Body.String())

	generated := serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil)).Header().Get(TraceIDHeader)
	assert.Len(t, generated, 32)
}

func TestPrometheusMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(PrometheusMiddleware())
	r.GET("/boards/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	serve(r, httptest.NewRequest(http.MethodGet, "/boards/123", nil))
	RecordAuthOutcome("login", OutcomeSuccess)

	body := serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil)).Body.String()
	assert.Contains(t, body, `http_requests_total{method="GET",path="/boards/:id",status="200"}`)
	assert.Contains(t, body, `noteslite_auth_outcomes_total{operation="login",outcome="success"}`)
}

func TestStartSpan_NoopProvider(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "test")
	defer span.End()
	assert.NotNil(t, ctx)
}
