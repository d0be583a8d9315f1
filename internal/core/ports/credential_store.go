package ports

import (
	"context"
	"time"

	"github.com/paintcompare/marketplace-api/internal/core/domain"
)

// CredentialStore defines persistence for user credential records. Lookups
// are point reads by unique key; implementations must treat email
// case-insensitively (the mongo implementation lowercases on both write and
// read).
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdateLastLogin is advisory; last-write-wins is acceptable.
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error

	// Admin back-office operations.
	List(ctx context.Context, limit, offset int64) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}
