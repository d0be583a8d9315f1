package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/paintcompare/marketplace-api/internal/core/domain"
	"github.com/paintcompare/marketplace-api/internal/core/ports"
)

// CatalogService implements catalog browsing and supplier product management.
type CatalogService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewCatalogService(repo ports.ProductRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

func (s *CatalogService) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	return s.repo.List(ctx, filter)
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CatalogService) Create(ctx context.Context, identity *domain.Identity, input ports.ProductInput) (*domain.Product, error) {
	if input.Name == "" || input.Price <= 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	product := &domain.Product{
		Name:       input.Name,
		Brand:      input.Brand,
		ColorHex:   input.ColorHex,
		Finish:     input.Finish,
		SizeLiters: input.SizeLiters,
		Price:      input.Price,
		SupplierID: identity.UserID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", created.ID).Str("supplier_id", identity.UserID).Msg("product created")
	return created, nil
}

func (s *CatalogService) Update(ctx context.Context, identity *domain.Identity, id string, input ports.ProductInput) (*domain.Product, error) {
	product, err := s.owned(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Brand = input.Brand
	product.ColorHex = input.ColorHex
	product.Finish = input.Finish
	product.SizeLiters = input.SizeLiters
	product.Price = input.Price
	product.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) Delete(ctx context.Context, identity *domain.Identity, id string) error {
	if _, err := s.owned(ctx, identity, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// owned fetches the product and enforces that suppliers only touch their own
// listings. Admins are unrestricted.
func (s *CatalogService) owned(ctx context.Context, identity *domain.Identity, id string) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if identity.Role != domain.RoleAdmin && product.SupplierID != identity.UserID {
		return nil, domain.ErrForbidden
	}
	return product, nil
}
