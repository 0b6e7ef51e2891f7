// Package dto provides Data Transfer Objects for API requests and responses.
// Request validation lives here so the services stay free of transport
// concerns.
package dto

import (
	"errors"
	"strings"

	"github.com/checkfit/checkfit/internal/model"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

// Request validation errors.
var (
	ErrNameRequired     = errors.New("name is required")
	ErrEmailInvalid     = errors.New("a valid email is required")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
)

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Message string `json:"message"`
}

// RegisterRequest represents the request body for registering a user.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the registration fields.
func (r *RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	if !isEmail(r.Email) {
		return ErrEmailInvalid
	}
	if len(r.Password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// AuthenticateRequest represents the request body for creating a session.
type AuthenticateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the session fields.
func (r *AuthenticateRequest) Validate() error {
	if !isEmail(r.Email) {
		return ErrEmailInvalid
	}
	if len(r.Password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// TokenResponse carries a freshly issued access token.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse represents a user in API responses.
// The password hash never leaves the server.
type UserResponse struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

// ProfileResponse wraps the profile payload.
type ProfileResponse struct {
	User UserResponse `json:"user"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}

// isEmail is a minimal structural check: one "@" with a dot in the domain.
func isEmail(s string) bool {
	s = strings.TrimSpace(s)
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	domain := s[at+1:]
	if strings.Contains(domain, "@") {
		return false
	}
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
