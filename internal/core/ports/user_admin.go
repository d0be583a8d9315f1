package ports

import (
	"context"

	"github.com/paintcompare/marketplace-api/internal/core/domain"
)

// UpdateUserInput carries the fields an administrator may change. Nil
// pointers mean "leave unchanged".
type UpdateUserInput struct {
	Name     *string
	Phone    *string
	Role     *string
	IsActive *bool
	Password *string
}

// UserAdminService is the back-office surface over credential records.
type UserAdminService interface {
	List(ctx context.Context, limit, offset int64) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
