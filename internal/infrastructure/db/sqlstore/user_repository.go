package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/repertoire/contacts-api/internal/core/domain"
	"github.com/repertoire/contacts-api/internal/core/ports"
)

var _ ports.UserRepository = (*UserRepository)(nil)

// UserRepository implements ports.UserRepository over the users table.
type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// Create inserts a new user. The users_numero_key constraint decides
// uniqueness; its violation is reported as domain.ErrDuplicateIdentifier.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	const q = `
		INSERT INTO users (nom, prenom, numero, mot_de_passe)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	created := *user
	err := r.store.withTx(ctx, func(ctx context.Context, tx DBTX) error {
		return tx.QueryRowContext(ctx, r.store.query(q),
			user.LastName, user.FirstName, user.PhoneNumber, user.PasswordHash,
		).Scan(&created.ID)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateIdentifier
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &created, nil
}

// FindByPhoneNumber returns domain.ErrInvalidCredentials when numero is unknown.
func (r *UserRepository) FindByPhoneNumber(ctx context.Context, numero string) (*domain.User, error) {
	const q = `
		SELECT id, nom, prenom, numero, mot_de_passe
		FROM users
		WHERE numero = $1`

	var u domain.User
	err := r.store.db.QueryRowContext(ctx, r.store.query(q), numero).
		Scan(&u.ID, &u.LastName, &u.FirstName, &u.PhoneNumber, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}
