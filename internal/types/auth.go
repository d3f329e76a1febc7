package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Auth methods supported for the single user record. Local users carry a
// bcrypt hash; OAuth users pass through with no password at all.
const (
	AuthMethodLocal  = "local"
	AuthMethodGoogle = "google"
)

// SignupRequest represents the request to create a new user.
// Password is required only for local signup; the user service enforces that.
type SignupRequest struct {
	Name       string `json:"name" validate:"required,min=1"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password,omitempty"`
	AuthMethod string `json:"auth_method,omitempty"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password,omitempty"`
	AuthMethod string `json:"auth_method,omitempty"`
}

// OAuthRequest represents an OAuth signup-or-login pass-through request.
type OAuthRequest struct {
	Name       string `json:"name" validate:"required,min=1"`
	Email      string `json:"email" validate:"required,email"`
	AuthMethod string `json:"auth_method,omitempty"`
}

// User represents a user profile for API responses (avoids import cycle with db package).
type User struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	AuthMethod string    `json:"auth_method"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AuthResponse is the signup/login response with user data and a signed token.
type AuthResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
	Token   string `json:"token"`
}

// Validate validates the SignupRequest using the validator.
func (r *SignupRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the OAuthRequest using the validator.
func (r *OAuthRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
