package ports

import (
	"context"

	"github.com/repertoire/contacts-api/internal/core/domain"
)

// ContactCache holds the full contact list of a user between writes.
//
// Every Invalidate bumps the user's list version. Get returns the version
// current at read time; Set stores the list under that version, and a list
// stored under an older version is never returned. A fill that raced with a
// write is therefore discarded instead of served.
type ContactCache interface {
	// Get reports ok=false on a miss.
	Get(ctx context.Context, userID int64) (persons []domain.Person, version int64, ok bool, err error)
	Set(ctx context.Context, userID, version int64, persons []domain.Person) error
	Invalidate(ctx context.Context, userID int64) error
}
