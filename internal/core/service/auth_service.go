package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/paintcompare/marketplace-api/internal/core/auth"
	"github.com/paintcompare/marketplace-api/internal/core/domain"
	"github.com/paintcompare/marketplace-api/internal/core/ports"
)

const minPasswordLength = 8

// AuthService implements registration and login on top of the credential
// store, the password hasher and the token service.
type AuthService struct {
	store    ports.CredentialStore
	tokens   *auth.TokenService
	throttle ports.LoginThrottle
	activity ports.ActivitySink
	logger   zerolog.Logger
}

func NewAuthService(store ports.CredentialStore, tokens *auth.TokenService, throttle ports.LoginThrottle, activity ports.ActivitySink, logger zerolog.Logger) *AuthService {
	return &AuthService{
		store:    store,
		tokens:   tokens,
		throttle: throttle,
		activity: activity,
		logger:   logger,
	}
}

// Register creates a customer-role credential and issues a session token.
// A duplicate email yields ErrUserExists.
func (s *AuthService) Register(ctx context.Context, email, password, name, phone string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return "", nil, domain.ErrInvalidInput
	}
	if len(password) < minPasswordLength {
		return "", nil, domain.ErrInvalidInput
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", nil, err
	}

	user := &domain.User{
		Email:        email,
		Name:         name,
		Phone:        phone,
		PasswordHash: hash,
		Role:         domain.RoleCustomer,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.store.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(created.ID, created.Email, created.Role)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return token, created, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password both collapse into ErrInvalidCredentials so the response
// does not reveal which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.tooManyFailures(ctx, email) {
		return "", nil, domain.ErrTooManyAttempts
	}

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !user.IsActive {
		return "", nil, domain.ErrInactiveAccount
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		s.recordFailure(ctx, email)
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}

	if err := s.throttle.Reset(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("throttle reset failed")
	}
	s.activity.Enqueue(domain.LoginActivity{
		UserID: user.ID,
		Email:  user.Email,
		At:     time.Now().UTC(),
	})

	return token, user, nil
}

// tooManyFailures fails open: an unreachable throttle must not lock every
// account out.
func (s *AuthService) tooManyFailures(ctx context.Context, email string) bool {
	blocked, err := s.throttle.TooManyFailures(ctx, email)
	if err != nil {
		s.logger.Warn().Err(err).Msg("throttle check failed")
		return false
	}
	return blocked
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("throttle record failed")
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
