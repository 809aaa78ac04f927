package repository

import (
	"context"
	"errors"

	"account-api/internal/domain"
)

var (
	// ErrNotFound is returned when no record matches the requested identifier.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when a write would give two records the
	// same email address.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines persistence operations for User entities.
//
// Create and Update rely on a uniqueness constraint enforced by the storage
// layer itself, so two concurrent writes with the same email resolve to
// exactly one success even across processes.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.User, error)
}
