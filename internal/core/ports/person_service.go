package ports

import (
	"context"

	"github.com/repertoire/contacts-api/internal/core/domain"
)

// PersonInput carries the editable fields of a contact and its owner.
type PersonInput struct {
	UserID    int64
	LastName  string
	FirstName string
	Telephone string
}

// PersonService defines use-case operations for a user's contact list.
type PersonService interface {
	Create(ctx context.Context, input PersonInput) (*domain.Person, error)
	List(ctx context.Context, userID int64) ([]domain.Person, error)
	Search(ctx context.Context, userID int64, query string) ([]domain.Person, error)
	Get(ctx context.Context, userID, personID int64) (*domain.Person, error)
	Update(ctx context.Context, personID int64, input PersonInput) (*domain.Person, error)
	Delete(ctx context.Context, userID, personID int64) error
}
