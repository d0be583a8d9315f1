package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/paintcompare/marketplace-api/internal/core/auth"
	"github.com/paintcompare/marketplace-api/internal/core/domain"
	"github.com/paintcompare/marketplace-api/internal/core/ports"
)

// UserAdminService implements the admin back-office over credential records.
type UserAdminService struct {
	store  ports.CredentialStore
	logger zerolog.Logger
}

func NewUserAdminService(store ports.CredentialStore, logger zerolog.Logger) *UserAdminService {
	return &UserAdminService{store: store, logger: logger}
}

func (s *UserAdminService) List(ctx context.Context, limit, offset int64) ([]*domain.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.store.List(ctx, limit, offset)
}

func (s *UserAdminService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.store.FindByID(ctx, id)
}

// Update applies the non-nil fields of input. Role changes take effect on the
// next authoritative resolution, without waiting for outstanding tokens to
// expire.
func (s *UserAdminService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Role != nil {
		if !domain.ValidRole(*input.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.store.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Msg("user updated by admin")
	return user, nil
}

func (s *UserAdminService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted by admin")
	return nil
}
