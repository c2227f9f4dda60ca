package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/repertoire/contacts-api/internal/core/domain"
	"github.com/repertoire/contacts-api/internal/core/ports"
	"github.com/repertoire/contacts-api/internal/pkg/metrics"
)

// AuthService implements registration and login.
type AuthService struct {
	repo      ports.UserRepository
	cost      int
	dummyHash []byte
	logger    zerolog.Logger
}

// NewAuthService builds an AuthService hashing with the given bcrypt cost.
// Costs outside bcrypt's accepted range fall back to bcrypt.DefaultCost.
func NewAuthService(repo ports.UserRepository, cost int, logger zerolog.Logger) (*AuthService, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	// Compared against when the numero is unknown so both rejection paths pay
	// for one bcrypt comparison.
	dummy, err := bcrypt.GenerateFromPassword([]byte("contacts-api/unknown-user"), cost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &AuthService{repo: repo, cost: cost, dummyHash: dummy, logger: logger}, nil
}

// Register stores a new account with a bcrypt hash of the password and
// lowercased names.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		LastName:     strings.ToLower(in.LastName),
		FirstName:    strings.ToLower(in.FirstName),
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		PasswordHash: string(hash),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateIdentifier) {
			metrics.RegistrationsTotal.WithLabelValues(metrics.ResultDuplicate).Inc()
			return nil, err
		}
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultError).Inc()
		s.logger.Error().Err(err).Msg("failed to register user")
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues(metrics.ResultOK).Inc()
	s.logger.Info().Int64("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login verifies the password of the account identified by numero. Unknown
// numeros and wrong passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, numero, password string) (*domain.User, error) {
	user, err := s.repo.FindByPhoneNumber(ctx, strings.TrimSpace(numero))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			metrics.LoginsTotal.WithLabelValues(metrics.ResultRejected).Inc()
			return nil, domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		s.logger.Debug().Int64("user_id", user.ID).Msg("login rejected")
		return nil, domain.ErrInvalidCredentials
	}

	metrics.LoginsTotal.WithLabelValues(metrics.ResultOK).Inc()
	return user, nil
}
