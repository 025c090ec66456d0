package repository

import (
	"context"
	"sync"

	"memorial-backend/internal/domains/user/model"
)

// memoryUserRepository is a map-backed store used in tests and local
// development.
type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]model.User
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		users: make(map[string]model.User),
	}
}

func (r *memoryUserRepository) Create(ctx context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[u.Email]; exists {
		return model.ErrEmailTaken
	}
	r.users[u.Email] = *u
	return nil
}

func (r *memoryUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[email]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return &u, nil
}

func (r *memoryUserRepository) Delete(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[email]; !ok {
		return model.ErrUserNotFound
	}
	delete(r.users, email)
	return nil
}
