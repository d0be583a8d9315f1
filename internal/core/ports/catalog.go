package ports

import (
	"context"

	"github.com/paintcompare/marketplace-api/internal/core/domain"
)

// ProductInput carries the writable fields of a paint listing.
type ProductInput struct {
	Name       string
	Brand      string
	ColorHex   string
	Finish     string
	SizeLiters float64
	Price      float64
}

// ProductRepository defines persistence operations for the catalog.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, int64, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
}

// CatalogService exposes catalog browsing and supplier product management.
// Mutations require an identity; ownership is enforced against it.
type CatalogService interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, int64, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, identity *domain.Identity, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, identity *domain.Identity, id string, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, identity *domain.Identity, id string) error
}
