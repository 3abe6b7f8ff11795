package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/RUstamdarvishY/Online-shop/internal/entity"
	"github.com/RUstamdarvishY/Online-shop/internal/logging"
	"github.com/RUstamdarvishY/Online-shop/internal/usecase"
)

type OrderHandler struct {
	checkout *usecase.Checkout
	orders   *usecase.OrderService
	idem     usecase.IdempotencyStore // optional
}

func NewOrderHandler(checkout *usecase.Checkout, orders *usecase.OrderService, idem usecase.IdempotencyStore) *OrderHandler {
	return &OrderHandler{checkout: checkout, orders: orders, idem: idem}
}

type checkoutReq struct {
	CartID     string `json:"cart_id" binding:"required,uuid"`
	CustomerID int64  `json:"customer_id" binding:"required"`
}

type updateOrderReq struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// Checkout converts the cart into an order. The X-Idempotency-Key header
// lets a retried request replay the first response instead of failing
// with cart_not_found after the cart was consumed.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	cartID, err := uuid.Parse(req.CartID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_cart_id", "field": "cart_id"})
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	scope := strconv.FormatInt(req.CustomerID, 10)
	idemKey := c.GetHeader("X-Idempotency-Key")

	if h.idem != nil && idemKey != "" {
		if prev, ok, _ := h.idem.Recall(ctx, scope, idemKey); ok {
			if orderID, err := strconv.ParseInt(prev, 10, 64); err == nil {
				if order, err := h.orders.Get(ctx, orderID); err == nil {
					c.JSON(http.StatusOK, toOrderResp(order))
					return
				}
			}
		}
		ok, err := h.idem.TryLock(ctx, scope, idemKey)
		if err != nil {
			writeError(c, err)
			return
		}
		if !ok {
			c.JSON(http.StatusConflict, gin.H{"error": "duplicate_request"})
			return
		}
	}

	order, err := h.checkout.Execute(ctx, cartID, req.CustomerID)
	if err != nil {
		writeError(c, err)
		return
	}

	if h.idem != nil && idemKey != "" {
		if err := h.idem.Remember(ctx, scope, idemKey, strconv.FormatInt(order.ID, 10)); err != nil {
			logging.From(c).Warn("idempotency remember failed", "order_id", order.ID, "error", err)
		}
	}
	c.JSON(http.StatusCreated, toOrderResp(order))
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	order, err := h.orders.Get(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResp(order))
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var (
		orders []domain.Order
		err    error
	)
	if raw := c.Query("customer_id"); raw != "" {
		customerID, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id", "field": "customer_id"})
			return
		}
		orders, err = h.orders.ListByCustomer(ctx, customerID)
	} else {
		orders, err = h.orders.List(ctx)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]orderResp, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResp(&orders[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) ListOrderItems(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.orders.ListItems(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]orderItemResp, 0, len(items))
	for _, it := range items {
		out = append(out, toOrderItemResp(it))
	}
	c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req updateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.orders.SetStatus(ctx, id, domain.PaymentStatus(req.PaymentStatus)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "payment_status": req.PaymentStatus})
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.orders.Delete(ctx, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
