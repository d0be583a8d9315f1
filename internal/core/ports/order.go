package ports

import (
	"context"

	"github.com/paintcompare/marketplace-api/internal/core/domain"
)

// OrderItemInput is a single requested line at order placement time.
type OrderItemInput struct {
	ProductID string
	Quantity  int
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string, limit, offset int64) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
}

// OrderService exposes order placement and tracking. Reads are scoped to the
// requesting identity unless it is an admin.
type OrderService interface {
	Place(ctx context.Context, identity *domain.Identity, items []OrderItemInput) (*domain.Order, error)
	Get(ctx context.Context, identity *domain.Identity, id string) (*domain.Order, error)
	ListForUser(ctx context.Context, identity *domain.Identity, limit, offset int64) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}
