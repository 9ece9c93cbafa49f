// Package v1 provides the business logic for API version 1.
//
// Error Handling:
// This package defines sentinel errors for the expected failures of each
// operation. They are wrapped with context using fmt.Errorf("%w") when
// returned, so handlers map them with errors.Is:
//
//	switch {
//	case errors.Is(err, logicv1.ErrInvalidCredentials):
//	    c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
//	case errors.Is(err, logicv1.ErrUserExists):
//	    c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered."})
//	default:
//	    c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in."})
//	}
//
// Anything that is not a sentinel or a *ValidationError is a store or
// internal failure and must not be shown to the caller.
package v1

import "errors"

// Sentinel errors for business operations.
var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	// HTTP Status: 401 Unauthorized
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserExists indicates the email is already registered.
	// HTTP Status: 409 Conflict
	ErrUserExists = errors.New("user already exists")

	// ErrBoardNotFound indicates the board does not exist or is not owned by
	// the caller.
	// HTTP Status: 404 Not Found
	ErrBoardNotFound = errors.New("board not found")

	// ErrWorkspaceNotFound indicates the workspace does not exist or is not
	// owned by the caller.
	// HTTP Status: 404 Not Found
	ErrWorkspaceNotFound = errors.New("workspace not found")
)

// ValidationError is a rejected input. Message is safe to show to the caller.
// HTTP Status: 400 Bad Request
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrNoUpdates is returned for a patch that changes nothing.
var ErrNoUpdates = &ValidationError{Message: "No updates provided."}
