// Package memory provides an in-process ports.UserRepository used by tests
// and local development. It mirrors the Mongo implementation's semantics:
// case-insensitive username uniqueness, creation-order listing, and appends
// that are atomic with respect to concurrent callers.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/fittrack/exercise-tracker/internal/core/domain"
)

// UserRepository stores users in a map guarded by a single mutex; order is a
// slice of ids in insertion order.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
	order []string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*domain.User)}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fold := strings.ToLower(user.Username)
	for _, u := range r.users {
		if strings.ToLower(u.Username) == fold {
			return nil, domain.ErrDuplicateUsername
		}
	}

	stored := cloneUser(user)
	stored.ID = uuid.NewString()
	if stored.Log == nil {
		stored.Log = []domain.Exercise{}
	}

	r.users[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	return cloneUser(stored), nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	fold := strings.ToLower(username)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.ToLower(u.Username) == fold {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*domain.User, 0, len(r.order))
	for _, id := range r.order {
		u := r.users[id]
		// listing never exposes the log
		users = append(users, &domain.User{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt})
	}
	return users, nil
}

func (r *UserRepository) AppendExercise(_ context.Context, userID string, ex domain.Exercise) error {
	if _, err := uuid.Parse(userID); err != nil {
		return domain.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Log = append(u.Log, ex)
	return nil
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	clone.Log = make([]domain.Exercise, len(u.Log))
	copy(clone.Log, u.Log)
	return &clone
}
