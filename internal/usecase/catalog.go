package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	domain "github.com/RUstamdarvishY/Online-shop/internal/entity"
)

var minUnitPrice = decimal.NewFromInt(1)

// CatalogService manages collections and products. Deletes are guarded by
// referential checks instead of cascades.
type CatalogService struct {
	collections CollectionRepo
	products    ProductRepo
}

func NewCatalogService(collections CollectionRepo, products ProductRepo) *CatalogService {
	return &CatalogService{collections: collections, products: products}
}

func (s *CatalogService) CreateCollection(ctx context.Context, c *domain.Collection) error {
	if err := s.validateFeatured(ctx, c); err != nil {
		return err
	}
	return s.collections.Create(ctx, c)
}

func (s *CatalogService) GetCollection(ctx context.Context, id int64) (*domain.Collection, error) {
	return s.collections.GetByID(ctx, id)
}

func (s *CatalogService) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	return s.collections.List(ctx)
}

func (s *CatalogService) UpdateCollection(ctx context.Context, c *domain.Collection) error {
	if _, err := s.collections.GetByID(ctx, c.ID); err != nil {
		return err
	}
	if err := s.validateFeatured(ctx, c); err != nil {
		return err
	}
	return s.collections.Update(ctx, c)
}

func (s *CatalogService) DeleteCollection(ctx context.Context, id int64) error {
	n, err := s.collections.ProductCount(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return &ConflictError{Reason: ReasonHasProducts}
	}
	return s.collections.Delete(ctx, id)
}

func (s *CatalogService) validateFeatured(ctx context.Context, c *domain.Collection) error {
	if c.FeaturedProductID == nil {
		return nil
	}
	ok, err := s.products.Exists(ctx, *c.FeaturedProductID)
	if err != nil {
		return err
	}
	if !ok {
		return &ValidationError{Field: "featured_product_id", Reason: ReasonProductNotFound}
	}
	return nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, p *domain.Product) error {
	if err := s.validateProduct(ctx, p); err != nil {
		return err
	}
	return s.products.Create(ctx, p)
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *CatalogService) ListProducts(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	return s.products.List(ctx, f)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, p *domain.Product) error {
	if _, err := s.products.GetByID(ctx, p.ID); err != nil {
		return err
	}
	if err := s.validateProduct(ctx, p); err != nil {
		return err
	}
	return s.products.Update(ctx, p)
}

// DeleteProduct is rejected while any order line references the product,
// otherwise order history would lose its pricing source.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	n, err := s.products.OrderItemCount(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return &ConflictError{Reason: ReasonInOrders}
	}
	return s.products.Delete(ctx, id)
}

func (s *CatalogService) validateProduct(ctx context.Context, p *domain.Product) error {
	if p.UnitPrice.LessThan(minUnitPrice) {
		return &ValidationError{Field: "unit_price", Reason: "must be at least 1"}
	}
	if p.Inventory < 0 {
		return &ValidationError{Field: "inventory", Reason: "must not be negative"}
	}
	if _, err := s.collections.GetByID(ctx, p.CollectionID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return &ValidationError{Field: "collection_id", Reason: ReasonCollectionNotFound}
		}
		return err
	}
	return nil
}
