package v1

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/RehanMehtaIND/noteslite/internal/auth"
	"github.com/RehanMehtaIND/noteslite/internal/core/domain"
	"github.com/RehanMehtaIND/noteslite/middleware"
)

// Session is the result of a successful signup or login.
type Session struct {
	User  domain.User
	Token string
}

// AuthService implements the password signup and login flows.
// It depends on repository interfaces (injected via constructor) and
// MUST NOT access the database or SQL directly.
type AuthService struct {
	users  domain.UserRepository
	boards domain.BoardRepository
	hasher *auth.Hasher
	codec  *auth.TokenCodec
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, boards domain.BoardRepository, hasher *auth.Hasher, codec *auth.TokenCodec) *AuthService {
	return &AuthService{
		users:  users,
		boards: boards,
		hasher: hasher,
		codec:  codec,
	}
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup registers a password user, gives them the starter boards and
// issues a session token.
func (s *AuthService) Signup(ctx context.Context, req domain.SignupRequest) (*Session, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.signup", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	name := strings.TrimSpace(req.Name)
	email := NormalizeEmail(req.Email)

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		span.SetAttributes(attribute.Bool("signup.success", false))
		return nil, fmt.Errorf("signup %q: %w", email, ErrUserExists)
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	row, err := s.users.Create(ctx, name, email, digest)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			// Another signup for the same email won the insert.
			span.SetAttributes(attribute.Bool("signup.success", false))
			return nil, fmt.Errorf("signup %q: %w", email, ErrUserExists)
		}
		span.RecordError(err)
		return nil, fmt.Errorf("insert user: %w", err)
	}

	if err := s.boards.CreateMany(ctx, StarterBoards(row.ID)); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("create starter boards for %s: %w", row.ID, err)
	}

	token, err := s.codec.Issue(row.ID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	span.SetAttributes(
		attribute.String("user.id", row.ID),
		attribute.Bool("signup.success", true),
	)
	span.AddEvent("user.registered")

	return &Session{User: *row.Public(), Token: token}, nil
}

// Login checks a password and issues a session token. An unknown email and a
// wrong password fail identically.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*Session, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.login", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	email := NormalizeEmail(req.Email)

	row, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query user: %w", err)
	}
	if row == nil || row.PasswordHash == "" {
		s.hasher.VerifyDummy(req.Password)
		span.SetAttributes(attribute.Bool("auth.success", false))
		span.AddEvent("authentication.failed")
		return nil, fmt.Errorf("login %q: %w", email, ErrInvalidCredentials)
	}

	if !s.hasher.Verify(req.Password, row.PasswordHash) {
		span.SetAttributes(attribute.Bool("auth.success", false))
		span.AddEvent("authentication.failed")
		return nil, fmt.Errorf("login %q: %w", email, ErrInvalidCredentials)
	}

	token, err := s.codec.Issue(row.ID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	span.SetAttributes(
		attribute.String("user.id", row.ID),
		attribute.Bool("auth.success", true),
	)
	span.AddEvent("user.authenticated")

	return &Session{User: *row.Public(), Token: token}, nil
}
