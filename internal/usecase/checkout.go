package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/RUstamdarvishY/Online-shop/internal/entity"
)

// OutboxChannelOrderPlaced is the outbox channel drained to RabbitMQ.
const OutboxChannelOrderPlaced = "orders.placed.v1"

// Checkout is the sole path by which a cart becomes an order. The whole
// conversion runs in one database transaction: insert order, bulk-insert
// its items, enqueue the placed event, delete the cart. Any failure rolls
// everything back and leaves the cart untouched.
type Checkout struct {
	carts CartRepo
	store CheckoutStore
}

func NewCheckout(carts CartRepo, store CheckoutStore) *Checkout {
	return &Checkout{carts: carts, store: store}
}

func (uc *Checkout) Execute(ctx context.Context, cartID uuid.UUID, customerID int64) (*domain.Order, error) {
	// Preconditions run before the atomic section and have no side effects.
	ok, err := uc.carts.Exists(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &ValidationError{Field: "cart_id", Reason: ReasonCartNotFound}
	}
	n, err := uc.carts.CountItems(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, &ValidationError{Field: "cart_id", Reason: ReasonCartEmpty}
	}

	var order *domain.Order
	err = uc.store.WithinTx(ctx, func(tx CheckoutTx) error {
		// The row lock serializes concurrent checkouts of the same cart:
		// the loser blocks here, then sees the cart already consumed.
		locked, err := tx.LockCart(ctx, cartID)
		if err != nil {
			return err
		}
		if !locked {
			return &ValidationError{Field: "cart_id", Reason: ReasonCartNotFound}
		}

		lines, err := tx.CartLines(ctx, cartID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return &ValidationError{Field: "cart_id", Reason: ReasonCartEmpty}
		}

		ok, err := tx.CustomerExists(ctx, customerID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("customer %d: %w", customerID, ErrNotFound)
		}

		placedAt := time.Now().UTC()
		orderID, err := tx.InsertOrder(ctx, customerID, domain.PaymentPending, placedAt)
		if err != nil {
			return err
		}

		items, err := tx.InsertOrderItems(ctx, orderID, lines)
		if err != nil {
			return err
		}

		order = &domain.Order{
			ID:            orderID,
			CustomerID:    customerID,
			PaymentStatus: domain.PaymentPending,
			PlacedAt:      placedAt,
			Items:         items,
		}

		payload, err := json.Marshal(OrderPlacedMsg{
			OrderID:    orderID,
			CustomerID: customerID,
			Total:      orderTotal(items).StringFixed(2),
			PlacedAt:   placedAt,
		})
		if err != nil {
			return err
		}
		if err := tx.InsertOutbox(ctx, OutboxChannelOrderPlaced, payload); err != nil {
			return err
		}

		return tx.DeleteCart(ctx, cartID)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
