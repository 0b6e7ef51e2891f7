// Package inmem provides in-memory repository implementations used in tests.
// They satisfy the same contracts as the PostgreSQL repository and return
// the same sentinel errors.
package inmem

import (
	"context"
	"sync"

	"github.com/checkfit/checkfit/internal/model"
	"github.com/checkfit/checkfit/internal/repository"
)

// Users is an in-memory implementation of repository.Users.
type Users struct {
	mu    sync.RWMutex
	users map[string]*model.User
}

// NewUsers creates an empty in-memory users repository.
func NewUsers() *Users {
	return &Users{users: make(map[string]*model.User)}
}

// CreateUser stores a user, enforcing email uniqueness.
func (r *Users) CreateUser(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrEmailExists
		}
	}

	copied := *user
	r.users[user.ID] = &copied
	return nil
}

// GetUserByID retrieves a user by ID.
func (r *Users) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	copied := *user
	return &copied, nil
}

// GetUserByEmail retrieves a user by email.
func (r *Users) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}
