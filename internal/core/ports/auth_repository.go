package ports

import (
	"context"

	"github.com/repertoire/contacts-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts the user and returns it with its generated ID.
	// A taken numero yields domain.ErrDuplicateIdentifier.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByPhoneNumber returns domain.ErrInvalidCredentials when no user matches,
	// so callers cannot tell unknown numeros from bad passwords.
	FindByPhoneNumber(ctx context.Context, numero string) (*domain.User, error)
}
