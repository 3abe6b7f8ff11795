package queue

import (
	"context"

	domain "github.com/RUstamdarvishY/Online-shop/internal/entity"
	"github.com/RUstamdarvishY/Online-shop/internal/usecase"
)

// OrderPlacedHandler warms the order-status cache as soon as a placed
// event comes back around, so the first status read after checkout skips
// MySQL. Intended for use with queue.JSONHandler[usecase.OrderPlacedMsg].
type OrderPlacedHandler struct {
	Cache usecase.OrderCache
}

func NewOrderPlacedHandler(cache usecase.OrderCache) *OrderPlacedHandler {
	return &OrderPlacedHandler{Cache: cache}
}

func (h *OrderPlacedHandler) HandlePlaced(ctx context.Context, msg usecase.OrderPlacedMsg) error {
	return h.Cache.SetStatus(ctx, msg.OrderID, domain.PaymentPending)
}
