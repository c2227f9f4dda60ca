package ports

import (
	"context"

	"github.com/repertoire/contacts-api/internal/core/domain"
)

// RegisterInput carries the fields needed to open an account.
type RegisterInput struct {
	LastName    string
	FirstName   string
	PhoneNumber string
	Password    string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, numero, password string) (*domain.User, error)
}
