package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/paintcompare/marketplace-api/internal/core/domain"
	"github.com/paintcompare/marketplace-api/internal/core/ports"
)

// OrderService implements order placement and tracking.
type OrderService struct {
	orders   ports.OrderRepository
	products ports.ProductRepository
	logger   zerolog.Logger
}

func NewOrderService(orders ports.OrderRepository, products ports.ProductRepository, logger zerolog.Logger) *OrderService {
	return &OrderService{orders: orders, products: products, logger: logger}
}

// Place creates an order for the requesting identity. Unit prices are read
// from the catalog at placement time and frozen on the order.
func (s *OrderService) Place(ctx context.Context, identity *domain.Identity, items []ports.OrderItemInput) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	var total float64
	lines := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, domain.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
		total += product.Price * float64(item.Quantity)
	}

	now := time.Now().UTC()
	order := &domain.Order{
		UserID:    identity.UserID,
		Items:     lines,
		Total:     total,
		Status:    domain.OrderPlaced,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("order_id", created.ID).Str("user_id", identity.UserID).Float64("total", total).Msg("order placed")
	return created, nil
}

// Get returns an order, restricted to its owner unless the identity is an
// admin.
func (s *OrderService) Get(ctx context.Context, identity *domain.Identity, id string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if identity.Role != domain.RoleAdmin && order.UserID != identity.UserID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func (s *OrderService) ListForUser(ctx context.Context, identity *domain.Identity, limit, offset int64) ([]*domain.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.orders.ListByUser(ctx, identity.UserID, limit, offset)
}

// UpdateStatus advances an order through its lifecycle. Transitions outside
// the state machine are rejected.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, domain.ErrInvalidTransition
	}
	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	return order, nil
}
