package domain

import "time"

// User is the public view of an account. It never carries the password hash.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SignupRequest is the payload of POST /auth/signup.
type SignupRequest struct {
	Name     string `json:"name" validate:"min=2,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=8,maxbytes=72"`
}

// LoginRequest is the payload of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by signup, login and me.
type AuthResponse struct {
	User User `json:"user"`
}

// Background modes of a board card.
const (
	BackgroundImage    = "image"
	BackgroundColor    = "color"
	BackgroundGradient = "gradient"
)

// Board is a dashboard card owned by a user.
type Board struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	Title           string    `json:"title"`
	Image           *string   `json:"image"`
	BackgroundMode  string    `json:"backgroundMode"`
	BackgroundColor string    `json:"backgroundColor"`
	GradientFrom    string    `json:"gradientFrom"`
	GradientTo      string    `json:"gradientTo"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// BoardPatch lists the board fields to change. Nil pointers are left as is.
// Image is applied only when ImageSet is true; a nil Image then clears it.
type BoardPatch struct {
	Title           *string
	ImageSet        bool
	Image           *string
	BackgroundMode  *string
	BackgroundColor *string
	GradientFrom    *string
	GradientTo      *string
}

// Workspace groups a user's planning columns and cards.
type Workspace struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Theme     string    `json:"theme"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WorkspacePatch lists the workspace fields to change.
type WorkspacePatch struct {
	Name  *string
	Theme *string
}
