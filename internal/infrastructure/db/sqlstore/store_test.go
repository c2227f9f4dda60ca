package sqlstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repertoire/contacts-api/internal/core/domain"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), Config{
		Driver: DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "contacts.db"),
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func createUser(t *testing.T, s *Store, numero string) *domain.User {
	t.Helper()
	u, err := NewUserRepository(s).Create(context.Background(), &domain.User{
		LastName: "martin", FirstName: "anna", PhoneNumber: numero, PasswordHash: "hash",
	})
	require.NoError(t, err)
	return u
}

func createPerson(t *testing.T, r *PersonRepository, userID int64, nom, prenom, tel string) *domain.Person {
	t.Helper()
	p, err := r.Create(context.Background(), &domain.Person{
		LastName: nom, FirstName: prenom, Telephone: tel, UserID: userID,
	})
	require.NoError(t, err)
	return p
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "mysql", DSN: "x"}, zerolog.Nop())
	require.Error(t, err)
}

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: DriverSQLite}, zerolog.Nop())
	require.Error(t, err)
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.db")
	cfg := Config{Driver: DriverSQLite, DSN: path}

	s1, err := Open(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	createUser(t, s1, "0600000001")
	require.NoError(t, s1.Close())

	s2, err := Open(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer s2.Close()

	u, err := NewUserRepository(s2).FindByPhoneNumber(context.Background(), "0600000001")
	require.NoError(t, err)
	assert.Equal(t, "0600000001", u.PhoneNumber)
	require.NoError(t, s2.Ping(context.Background()))
}

func TestDialect_Rebind(t *testing.T) {
	q := `SELECT 1 WHERE a = $1 AND b = $2 OR c = $2`
	assert.Equal(t, q, postgresDialect.rebind(q))
	assert.Equal(t, `SELECT 1 WHERE a = ?1 AND b = ?2 OR c = ?2`, sqliteDialect.rebind(q))
}

func TestDialect_DSN(t *testing.T) {
	assert.Equal(t, "postgres://u@h/db", postgresDialect.dsn("postgres://u@h/db"))
	assert.Equal(t, "a.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", sqliteDialect.dsn("a.db"))
	assert.Equal(t, "a.db?mode=rwc&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", sqliteDialect.dsn("a.db?mode=rwc"))
	assert.Equal(t, "a.db?_pragma=foreign_keys(0)", sqliteDialect.dsn("a.db?_pragma=foreign_keys(0)"))
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	s := setupStore(t)
	repo := NewUserRepository(s)
	ctx := context.Background()

	u, err := repo.Create(ctx, &domain.User{
		LastName: "dupont", FirstName: "jean", PhoneNumber: "0612345678", PasswordHash: "$2a$10$hash",
	})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)

	got, err := repo.FindByPhoneNumber(ctx, "0612345678")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "dupont", got.LastName)
	assert.Equal(t, "jean", got.FirstName)
	assert.Equal(t, "$2a$10$hash", got.PasswordHash)
}

func TestUserRepository_DuplicateNumero(t *testing.T) {
	s := setupStore(t)
	repo := NewUserRepository(s)
	createUser(t, s, "0612345678")

	_, err := repo.Create(context.Background(), &domain.User{
		LastName: "autre", FirstName: "nom", PhoneNumber: "0612345678", PasswordHash: "h",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateIdentifier)
}

func TestUserRepository_FindUnknown(t *testing.T) {
	s := setupStore(t)
	_, err := NewUserRepository(s).FindByPhoneNumber(context.Background(), "0000000000")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestPersonRepository_CreateAndList(t *testing.T) {
	s := setupStore(t)
	repo := NewPersonRepository(s)
	ctx := context.Background()
	u := createUser(t, s, "0600000001")

	empty, err := repo.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	a := createPerson(t, repo, u.ID, "Martin", "Anna", "0611111111")
	b := createPerson(t, repo, u.ID, "Durand", "Bob", "0622222222")

	got, err := repo.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Person{*a, *b}, got)
	assert.Equal(t, u.ID, got[0].UserID)
}

func TestPersonRepository_DuplicateTelephone(t *testing.T) {
	s := setupStore(t)
	repo := NewPersonRepository(s)
	ctx := context.Background()
	u1 := createUser(t, s, "0600000001")
	u2 := createUser(t, s, "0600000002")

	createPerson(t, repo, u1.ID, "Martin", "Anna", "0611111111")

	_, err := repo.Create(ctx, &domain.Person{LastName: "X", FirstName: "Y", Telephone: "0611111111", UserID: u1.ID})
	assert.ErrorIs(t, err, domain.ErrDuplicateContact)

	// Same number under another owner is allowed.
	other := createPerson(t, repo, u2.ID, "Martin", "Anna", "0611111111")
	assert.Equal(t, u2.ID, other.UserID)
}

func TestPersonRepository_UnknownOwner(t *testing.T) {
	s := setupStore(t)
	_, err := NewPersonRepository(s).Create(context.Background(), &domain.Person{
		LastName: "X", FirstName: "Y", Telephone: "0611111111", UserID: 999,
	})
	assert.ErrorIs(t, err, domain.ErrUnknownUser)
}

func TestPersonRepository_ListIsScopedToOwner(t *testing.T) {
	s := setupStore(t)
	repo := NewPersonRepository(s)
	ctx := context.Background()
	u1 := createUser(t, s, "0600000001")
	u2 := createUser(t, s, "0600000002")

	createPerson(t, repo, u1.ID, "Martin", "Anna", "0611111111")
	p2 := createPerson(t, repo, u2.ID, "Leroy", "Zoe", "0633333333")

	got, err := repo.ListByUser(ctx, u2.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Person{*p2}, got)

	_, err = repo.FindByID(ctx, u1.ID, p2.ID)
	assert.ErrorIs(t, err, domain.ErrPersonNotFound)
}

func TestPersonRepository_Search(t *testing.T) {
	s := setupStore(t)
	repo := NewPersonRepository(s)
	ctx := context.Background()
	u := createUser(t, s, "0600000001")
	other := createUser(t, s, "0600000002")

	anna := createPerson(t, repo, u.ID, "Martin", "Anna", "0611111111")
	bob := createPerson(t, repo, u.ID, "Durand", "Bob", "0622222222")
	createPerson(t, repo, other.ID, "Annabelle", "Anna", "0699999999")

	got, err := repo.Search(ctx, u.ID, "an")
	require.NoError(t, err)
	assert.Equal(t, []domain.Person{*anna, *bob}, got)

	got, err = repo.Search(ctx, u.ID, "ANNA")
	require.NoError(t, err)
	assert.Equal(t, []domain.Person{*anna}, got)

	got, err = repo.Search(ctx, u.ID, "2222")
	require.NoError(t, err)
	assert.Equal(t, []domain.Person{*bob}, got)

	got, err = repo.Search(ctx, u.ID, "zzz")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPersonRepository_SearchWildcardsAreLiteral(t *testing.T) {
	s := setupStore(t)
	repo := NewPersonRepository(s)
	ctx := context.Background()
	u := createUser(t, s, "0600000001")

	createPerson(t, repo, u.ID, "Martin", "Anna", "0611111111")
	pct := createPerson(t, repo, u.ID, "100%", "Bio", "0622222222")
	under := createPerson(t, repo, u.ID, "de_la", "Rue", "0633333333")

	got, err := repo.Search(ctx, u.ID, "%")
	require.NoError(t, err)
	assert.Equal(t, []domain.Person{*pct}, got)

	got, err = repo.Search(ctx, u.ID, "_")
	require.NoError(t, err)
	assert.Equal(t, []domain.Person{*under}, got)
}

func TestPersonRepository_Update(t *testing.T) {
	s := setupStore(t)
	repo := NewPersonRepository(s)
	ctx := context.Background()
	u := createUser(t, s, "0600000001")
	other := createUser(t, s, "0600000002")

	createPerson(t, repo, u.ID, "Martin", "Anna", "0611111111")
	bob := createPerson(t, repo, u.ID, "Durand", "Bob", "0622222222")

	// Keeping its own telephone is not a collision.
	updated, err := repo.Update(ctx, &domain.Person{
		ID: bob.ID, UserID: u.ID, LastName: "Durand", FirstName: "Robert", Telephone: "0622222222",
	})
	require.NoError(t, err)
	assert.Equal(t, "Robert", updated.FirstName)
	assert.Equal(t, bob.ID, updated.ID)

	_, err = repo.Update(ctx, &domain.Person{
		ID: bob.ID, UserID: u.ID, LastName: "Durand", FirstName: "Bob", Telephone: "0611111111",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateContact)

	_, err = repo.Update(ctx, &domain.Person{
		ID: bob.ID, UserID: other.ID, LastName: "X", FirstName: "Y", Telephone: "0600000000",
	})
	assert.ErrorIs(t, err, domain.ErrPersonNotFound)

	_, err = repo.Update(ctx, &domain.Person{
		ID: 999, UserID: u.ID, LastName: "X", FirstName: "Y", Telephone: "0600000000",
	})
	assert.ErrorIs(t, err, domain.ErrPersonNotFound)

	got, err := repo.FindByID(ctx, u.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, *updated, *got)
}

func TestPersonRepository_Delete(t *testing.T) {
	s := setupStore(t)
	repo := NewPersonRepository(s)
	ctx := context.Background()
	u := createUser(t, s, "0600000001")
	other := createUser(t, s, "0600000002")

	p := createPerson(t, repo, u.ID, "Martin", "Anna", "0611111111")

	assert.ErrorIs(t, repo.Delete(ctx, other.ID, p.ID), domain.ErrPersonNotFound)
	require.NoError(t, repo.Delete(ctx, u.ID, p.ID))
	assert.ErrorIs(t, repo.Delete(ctx, u.ID, p.ID), domain.ErrPersonNotFound)

	_, err := repo.FindByID(ctx, u.ID, p.ID)
	assert.ErrorIs(t, err, domain.ErrPersonNotFound)

	// The telephone is free again once the contact is gone.
	createPerson(t, repo, u.ID, "Martin", "Anna", "0611111111")
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\%b\_c\\d`, escapeLike(`a%b_c\d`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
