package repository

import (
	"context"
	"errors"

	"github.com/futureed/backend/internal/domain"
)

// ErrDuplicateEmail is returned by Create when the address is already taken.
var ErrDuplicateEmail = errors.New("email already registered")

// UserStore persists user accounts. Lookups return (nil, nil) when no user matches.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Exists(ctx context.Context, email string) (bool, error)
}
