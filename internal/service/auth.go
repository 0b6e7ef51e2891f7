package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/checkfit/checkfit/internal/auth"
	"github.com/checkfit/checkfit/internal/metrics"
	"github.com/checkfit/checkfit/internal/model"
	"github.com/checkfit/checkfit/internal/repository"
)

// AuthService handles registration, authentication and profile lookup.
// Token issuance lives in the handler layer via auth.TokenManager; this
// service only deals with users and password hashes.
type AuthService struct {
	users      repository.Users
	bcryptCost int
	metrics    metrics.Recorder
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repository.Users, bcryptCost int, recorder metrics.Recorder) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AuthService{
		users:      users,
		bcryptCost: bcryptCost,
		metrics:    recorder,
	}
}

// RegisterInput defines input for registering a user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a new MEMBER user with a bcrypt password hash.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	passwordHash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: passwordHash,
		Role:         model.RoleMember,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncUserRegistered()

	return user, nil
}

// AuthenticateInput defines input for authenticating a user.
type AuthenticateInput struct {
	Email    string
	Password string
}

// Authenticate verifies the email/password pair and returns the user.
// Unknown email and wrong password both return ErrInvalidCredentials so
// callers cannot probe which emails are registered.
func (s *AuthService) Authenticate(ctx context.Context, input AuthenticateInput) (*model.User, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	match, err := auth.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !match {
		return nil, ErrInvalidCredentials
	}

	s.metrics.IncUserAuthenticated()

	return user, nil
}

// Profile retrieves a user by ID.
func (s *AuthService) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
