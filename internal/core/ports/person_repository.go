package ports

import (
	"context"

	"github.com/repertoire/contacts-api/internal/core/domain"
)

// PersonRepository defines persistence operations for contacts.
// Every lookup is scoped by the owning user ID; a contact that exists under
// another user is reported as domain.ErrPersonNotFound.
type PersonRepository interface {
	Create(ctx context.Context, p *domain.Person) (*domain.Person, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Person, error)
	// Search matches query as a case-insensitive substring of nom, prenom or telephone.
	Search(ctx context.Context, userID int64, query string) ([]domain.Person, error)
	FindByID(ctx context.Context, userID, personID int64) (*domain.Person, error)
	// Update overwrites nom, prenom and telephone of the contact identified by
	// p.ID and p.UserID.
	Update(ctx context.Context, p *domain.Person) (*domain.Person, error)
	Delete(ctx context.Context, userID, personID int64) error
}
