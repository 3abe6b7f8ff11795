package kafka

import (
	"context"
	"errors"

	domain "github.com/RUstamdarvishY/Online-shop/internal/entity"
	"github.com/RUstamdarvishY/Online-shop/internal/usecase"
)

// PaymentStatusChangedHandler applies the payment processor's verdict to
// the order ledger: SUCCESS marks the order Complete, anything else
// marks it Failed.
type PaymentStatusChangedHandler struct {
	Orders *usecase.OrderService
}

func NewPaymentStatusChangedHandler(orders *usecase.OrderService) *PaymentStatusChangedHandler {
	return &PaymentStatusChangedHandler{Orders: orders}
}

func (h *PaymentStatusChangedHandler) Handle(ctx context.Context, ev usecase.PaymentStatusChangedMsg) error {
	status := domain.PaymentFailed
	if ev.Status == "SUCCESS" {
		status = domain.PaymentComplete
	}
	err := h.Orders.SetStatus(ctx, ev.OrderID, status)
	if errors.Is(err, usecase.ErrNotFound) {
		// Event for an order we never placed (or one already deleted);
		// retrying cannot help.
		return nil
	}
	return err
}
