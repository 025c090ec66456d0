package repository

import (
	"context"

	"memorial-backend/internal/domains/user/model"
)

// UserRepository persists accounts keyed by email.
type UserRepository interface {
	// Create stores a new user. Returns model.ErrEmailTaken when the
	// email is already registered.
	Create(ctx context.Context, u *model.User) error
	// GetByEmail returns model.ErrUserNotFound when no account exists.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// Delete removes the account. Returns model.ErrUserNotFound when
	// no account exists.
	Delete(ctx context.Context, email string) error
}
