package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/RUstamdarvishY/Online-shop/internal/entity"
)

// CartService maintains the transient pre-order basket.
type CartService struct {
	carts    CartRepo
	products ProductRepo
}

func NewCartService(carts CartRepo, products ProductRepo) *CartService {
	return &CartService{carts: carts, products: products}
}

func (s *CartService) Create(ctx context.Context) (*domain.Cart, error) {
	cart := &domain.Cart{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.carts.Create(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) Get(ctx context.Context, id uuid.UUID) (*domain.Cart, error) {
	return s.carts.GetByID(ctx, id)
}

func (s *CartService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.carts.Delete(ctx, id)
}

// AddItem merges quantity into the existing (cart, product) row or creates
// one. Repeated adds of the same product never produce a second row.
func (s *CartService) AddItem(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (*domain.CartItem, error) {
	if quantity < 1 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	ok, err := s.carts.Exists(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	ok, err = s.products.Exists(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &ValidationError{Field: "product_id", Reason: ReasonProductNotFound}
	}
	return s.carts.UpsertItem(ctx, cartID, productID, quantity)
}

// UpdateItem overwrites the stored quantity; no merge.
func (s *CartService) UpdateItem(ctx context.Context, cartID uuid.UUID, itemID int64, quantity int) (*domain.CartItem, error) {
	if quantity < 1 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	if err := s.carts.UpdateItemQuantity(ctx, cartID, itemID, quantity); err != nil {
		return nil, err
	}
	return s.carts.GetItem(ctx, cartID, itemID)
}

func (s *CartService) RemoveItem(ctx context.Context, cartID uuid.UUID, itemID int64) error {
	return s.carts.RemoveItem(ctx, cartID, itemID)
}

func (s *CartService) ListItems(ctx context.Context, cartID uuid.UUID) ([]domain.CartItem, error) {
	ok, err := s.carts.Exists(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return s.carts.ListItems(ctx, cartID)
}
