package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/RehanMehtaIND/noteslite/internal/auth"
	"github.com/RehanMehtaIND/noteslite/internal/core/domain"
	"github.com/RehanMehtaIND/noteslite/internal/logger"
	logicv1 "github.com/RehanMehtaIND/noteslite/internal/logic/v1"
	"github.com/RehanMehtaIND/noteslite/middleware"
)

const invalidPayload = "Invalid request payload."

// AuthHandler serves the session endpoints.
// Dependencies are injected via the constructor, no global state.
type AuthHandler struct {
	auth    *logicv1.AuthService
	cookies auth.CookiePolicy
}

// NewAuthHandler creates an AuthHandler. A nil service leaves signup and
// login unmounted, for deployments where an identity provider owns
// credentials.
func NewAuthHandler(svc *logicv1.AuthService, cookies auth.CookiePolicy) *AuthHandler {
	return &AuthHandler{auth: svc, cookies: cookies}
}

// RegisterRoutes mounts the auth routes. throttle may be nil.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, gate, throttle gin.HandlerFunc) {
	if h.auth != nil {
		credentials := rg.Group("/auth")
		if throttle != nil {
			credentials.Use(throttle)
		}
		credentials.POST("/signup", h.Signup)
		credentials.POST("/login", h.Login)
	}
	rg.POST("/auth/logout", h.Logout)
	rg.GET("/auth/me", gate, h.Me)
}

// Signup handles POST /api/v1/auth/signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	log := logger.FromContext(ctx)

	var req domain.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidPayload})
		return
	}
	trimPtr(&req.Name)
	trimPtr(&req.Email)
	if err := validate.Struct(req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err, invalidPayload)})
		return
	}
	span.SetAttributes(attribute.Bool("request.valid", true))

	sess, err := h.auth.Signup(ctx, req)
	if err != nil {
		if errors.Is(err, logicv1.ErrUserExists) {
			middleware.RecordAuthOutcome("signup", middleware.OutcomeConflict)
			c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered."})
			return
		}
		span.RecordError(err)
		middleware.RecordAuthOutcome("signup", middleware.OutcomeError)
		log.Error().Err(err).Msg("Signup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account."})
		return
	}

	middleware.RecordAuthOutcome("signup", middleware.OutcomeSuccess)
	log.Info().Str("user_id", sess.User.ID).Msg("Signup successful")
	http.SetCookie(c.Writer, h.cookies.Session(sess.Token))
	c.JSON(http.StatusCreated, domain.AuthResponse{User: sess.User})
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	log := logger.FromContext(ctx)

	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidPayload})
		return
	}
	trimPtr(&req.Email)
	if err := validate.Struct(req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err, invalidPayload)})
		return
	}
	span.SetAttributes(attribute.Bool("request.valid", true))

	sess, err := h.auth.Login(ctx, req)
	if err != nil {
		if errors.Is(err, logicv1.ErrInvalidCredentials) {
			middleware.RecordAuthOutcome("login", middleware.OutcomeInvalid)
			log.Info().Msg("Login rejected")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
			return
		}
		span.RecordError(err)
		middleware.RecordAuthOutcome("login", middleware.OutcomeError)
		log.Error().Err(err).Msg("Login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in."})
		return
	}

	middleware.RecordAuthOutcome("login", middleware.OutcomeSuccess)
	log.Info().Str("user_id", sess.User.ID).Msg("Login successful")
	http.SetCookie(c.Writer, h.cookies.Session(sess.Token))
	c.JSON(http.StatusOK, domain.AuthResponse{User: sess.User})
}

// Logout handles POST /api/v1/auth/logout. It always succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	http.SetCookie(c.Writer, h.cookies.Expired())
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated."})
		return
	}
	c.JSON(http.StatusOK, domain.AuthResponse{User: *user})
}
