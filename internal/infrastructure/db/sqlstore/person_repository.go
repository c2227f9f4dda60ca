package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/repertoire/contacts-api/internal/core/domain"
	"github.com/repertoire/contacts-api/internal/core/ports"
)

var _ ports.PersonRepository = (*PersonRepository)(nil)

const personColumns = `id, nom, prenom, telephone, user_id`

// PersonRepository implements ports.PersonRepository over the persons table.
// Every statement filters on user_id so contacts of other users are invisible.
type PersonRepository struct {
	store *Store
}

func NewPersonRepository(store *Store) *PersonRepository {
	return &PersonRepository{store: store}
}

// Create inserts a contact. A (telephone, user_id) clash is reported as
// domain.ErrDuplicateContact and an unknown owner as domain.ErrUnknownUser.
func (r *PersonRepository) Create(ctx context.Context, p *domain.Person) (*domain.Person, error) {
	const q = `
		INSERT INTO persons (nom, prenom, telephone, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + personColumns

	var created domain.Person
	err := r.store.withTx(ctx, func(ctx context.Context, tx DBTX) error {
		return scanPerson(tx.QueryRowContext(ctx, r.store.query(q),
			p.LastName, p.FirstName, p.Telephone, p.UserID,
		), &created)
	})
	if err != nil {
		return nil, r.mapWriteError("insert person", err)
	}
	return &created, nil
}

func (r *PersonRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Person, error) {
	const q = `
		SELECT ` + personColumns + `
		FROM persons
		WHERE user_id = $1
		ORDER BY id`

	return r.list(ctx, "list persons", q, userID)
}

// Search matches query against nom, prenom and telephone, case-insensitively.
// LIKE wildcards in query are matched literally.
func (r *PersonRepository) Search(ctx context.Context, userID int64, query string) ([]domain.Person, error) {
	const q = `
		SELECT ` + personColumns + `
		FROM persons
		WHERE user_id = $1
		  AND (LOWER(nom) LIKE $2 ESCAPE '\'
		    OR LOWER(prenom) LIKE $2 ESCAPE '\'
		    OR LOWER(telephone) LIKE $2 ESCAPE '\')
		ORDER BY id`

	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	return r.list(ctx, "search persons", q, userID, pattern)
}

func (r *PersonRepository) FindByID(ctx context.Context, userID, personID int64) (*domain.Person, error) {
	const q = `
		SELECT ` + personColumns + `
		FROM persons
		WHERE id = $1 AND user_id = $2`

	var p domain.Person
	if err := scanPerson(r.store.db.QueryRowContext(ctx, r.store.query(q), personID, userID), &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPersonNotFound
		}
		return nil, fmt.Errorf("find person: %w", err)
	}
	return &p, nil
}

// Update overwrites nom, prenom and telephone in a single statement. No row
// means the contact is absent under p.UserID.
func (r *PersonRepository) Update(ctx context.Context, p *domain.Person) (*domain.Person, error) {
	const q = `
		UPDATE persons
		SET nom = $1, prenom = $2, telephone = $3
		WHERE id = $4 AND user_id = $5
		RETURNING ` + personColumns

	var updated domain.Person
	err := r.store.withTx(ctx, func(ctx context.Context, tx DBTX) error {
		return scanPerson(tx.QueryRowContext(ctx, r.store.query(q),
			p.LastName, p.FirstName, p.Telephone, p.ID, p.UserID,
		), &updated)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPersonNotFound
		}
		return nil, r.mapWriteError("update person", err)
	}
	return &updated, nil
}

func (r *PersonRepository) Delete(ctx context.Context, userID, personID int64) error {
	const q = `DELETE FROM persons WHERE id = $1 AND user_id = $2`

	err := r.store.withTx(ctx, func(ctx context.Context, tx DBTX) error {
		res, err := tx.ExecContext(ctx, r.store.query(q), personID, userID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrPersonNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrPersonNotFound) {
			return err
		}
		return fmt.Errorf("delete person: %w", err)
	}
	return nil
}

func (r *PersonRepository) list(ctx context.Context, op, q string, args ...any) ([]domain.Person, error) {
	rows, err := r.store.db.QueryContext(ctx, r.store.query(q), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	persons := []domain.Person{}
	for rows.Next() {
		var p domain.Person
		if err := scanPerson(rows, &p); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		persons = append(persons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return persons, nil
}

func (r *PersonRepository) mapWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicateContact
	case isForeignKeyViolation(err):
		return domain.ErrUnknownUser
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(row rowScanner, p *domain.Person) error {
	return row.Scan(&p.ID, &p.LastName, &p.FirstName, &p.Telephone, &p.UserID)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
