package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/repertoire/contacts-api/internal/core/domain"
	"github.com/repertoire/contacts-api/internal/core/ports"
	"github.com/repertoire/contacts-api/internal/pkg/metrics"
)

// PersonService implements the contact-list use cases on top of a
// PersonRepository, with an optional list cache in front of List.
type PersonService struct {
	repo   ports.PersonRepository
	cache  ports.ContactCache
	logger zerolog.Logger
}

// NewPersonService returns a PersonService. A nil cache disables caching.
func NewPersonService(repo ports.PersonRepository, cache ports.ContactCache, logger zerolog.Logger) *PersonService {
	if cache == nil {
		cache = noopCache{}
	}
	return &PersonService{repo: repo, cache: cache, logger: logger}
}

func (s *PersonService) Create(ctx context.Context, in ports.PersonInput) (*domain.Person, error) {
	created, err := s.repo.Create(ctx, &domain.Person{
		LastName:  in.LastName,
		FirstName: in.FirstName,
		Telephone: strings.TrimSpace(in.Telephone),
		UserID:    in.UserID,
	})
	s.record("create", err)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, in.UserID)
	s.logger.Info().Int64("user_id", in.UserID).Int64("person_id", created.ID).Msg("contact created")
	return created, nil
}

// List returns every contact of userID, serving from the cache when possible.
// Cache failures degrade to a store read and skip the fill.
func (s *PersonService) List(ctx context.Context, userID int64) ([]domain.Person, error) {
	cached, version, ok, err := s.cache.Get(ctx, userID)
	cacheable := err == nil
	switch {
	case err != nil:
		metrics.ContactCacheTotal.WithLabelValues("error").Inc()
		s.logger.Warn().Err(err).Int64("user_id", userID).Msg("contact cache read failed, using store")
	case ok:
		metrics.ContactCacheTotal.WithLabelValues("hit").Inc()
		s.record("list", nil)
		return cached, nil
	default:
		metrics.ContactCacheTotal.WithLabelValues("miss").Inc()
	}

	persons, err := s.repo.ListByUser(ctx, userID)
	s.record("list", err)
	if err != nil {
		return nil, err
	}

	if !cacheable {
		return persons, nil
	}
	// Stored under the version seen before the store read. A write since then
	// has bumped it, so a racing fill is never served.
	if err := s.cache.Set(ctx, userID, version, persons); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", userID).Msg("contact cache write failed")
	}
	return persons, nil
}

func (s *PersonService) Search(ctx context.Context, userID int64, query string) ([]domain.Person, error) {
	persons, err := s.repo.Search(ctx, userID, query)
	s.record("search", err)
	return persons, err
}

func (s *PersonService) Get(ctx context.Context, userID, personID int64) (*domain.Person, error) {
	p, err := s.repo.FindByID(ctx, userID, personID)
	s.record("get", err)
	return p, err
}

// Update overwrites nom, prenom and telephone. The owner is taken from
// input.UserID and never changes.
func (s *PersonService) Update(ctx context.Context, personID int64, in ports.PersonInput) (*domain.Person, error) {
	updated, err := s.repo.Update(ctx, &domain.Person{
		ID:        personID,
		LastName:  in.LastName,
		FirstName: in.FirstName,
		Telephone: strings.TrimSpace(in.Telephone),
		UserID:    in.UserID,
	})
	s.record("update", err)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, in.UserID)
	return updated, nil
}

func (s *PersonService) Delete(ctx context.Context, userID, personID int64) error {
	err := s.repo.Delete(ctx, userID, personID)
	s.record("delete", err)
	if err != nil {
		return err
	}

	s.invalidate(ctx, userID)
	s.logger.Info().Int64("user_id", userID).Int64("person_id", personID).Msg("contact deleted")
	return nil
}

func (s *PersonService) invalidate(ctx context.Context, userID int64) {
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", userID).Msg("contact cache invalidation failed")
	}
}

func (s *PersonService) record(operation string, err error) {
	result := metrics.ResultOK
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrDuplicateContact):
		result = metrics.ResultDuplicate
	case errors.Is(err, domain.ErrPersonNotFound):
		result = metrics.ResultNotFound
	case errors.Is(err, domain.ErrUnknownUser):
		result = metrics.ResultRejected
	default:
		result = metrics.ResultError
		s.logger.Error().Err(err).Str("operation", operation).Msg("contact operation failed")
	}
	metrics.ContactOperationsTotal.WithLabelValues(operation, result).Inc()
}

type noopCache struct{}

func (noopCache) Get(context.Context, int64) ([]domain.Person, int64, bool, error) {
	return nil, 0, false, nil
}
func (noopCache) Set(context.Context, int64, int64, []domain.Person) error { return nil }
func (noopCache) Invalidate(context.Context, int64) error { return nil }
