package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	domain "github.com/RUstamdarvishY/Online-shop/internal/entity"
)

// OrderService manages the ledger of placed orders. Orders enter the
// ledger only through Checkout; there is no direct creation path.
type OrderService struct {
	orders OrderRepo
	cache  OrderCache // optional
}

func NewOrderService(orders OrderRepo, cache OrderCache) *OrderService {
	return &OrderService{orders: orders, cache: cache}
}

func (s *OrderService) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

func (s *OrderService) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	return s.orders.ListByCustomer(ctx, customerID)
}

func (s *OrderService) ListItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	if _, err := s.orders.ItemCount(ctx, orderID); err != nil {
		return nil, err
	}
	return s.orders.ListItems(ctx, orderID)
}

// SetStatus applies a payment-status transition. Any of P/C/F may be set
// over any other; the enum is deliberately unguarded.
func (s *OrderService) SetStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	if !status.Valid() {
		return &ValidationError{Field: "payment_status", Reason: ReasonInvalidStatus}
	}
	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.SetStatus(ctx, id, status) // best effort
	}
	return nil
}

// Delete refuses to remove an order that still owns items; there is no
// cascade, the caller removes items first.
func (s *OrderService) Delete(ctx context.Context, id int64) error {
	n, err := s.orders.ItemCount(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return &ConflictError{Reason: ReasonHasItems}
	}
	return s.orders.Delete(ctx, id)
}

func orderTotal(items []domain.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Total())
	}
	return total
}
