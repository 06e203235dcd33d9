package repository

import (
	"context"

	"github.com/shelllbyyyyyy/authcore/internal/user/domain"
)

// Repository defines persistence for identities. Implementations return
// (nil, nil) for missing rows; errors are infrastructure failures only.
type Repository interface {
	// Create persists the user. The user must have ID set; it is not assigned here.
	Create(ctx context.Context, u domain.User) error
	// FindByEmail returns the user without its password slot, or nil if absent.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID returns the user without its password slot, or nil if absent.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindWithPasswordByEmail returns the user including the password hash, or nil if absent.
	FindWithPasswordByEmail(ctx context.Context, email string) (*domain.User, error)
	// Delete removes the user row for email.
	Delete(ctx context.Context, email string) error
	// ReplacePassword persists the replacement password hash and UpdatedAt.
	ReplacePassword(ctx context.Context, u domain.User) error
}
