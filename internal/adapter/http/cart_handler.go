package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/RUstamdarvishY/Online-shop/internal/usecase"
)

type CartHandler struct {
	carts *usecase.CartService
}

func NewCartHandler(carts *usecase.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type addCartItemReq struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gte=1"`
}

type updateCartItemReq struct {
	Quantity int `json:"quantity" binding:"required,gte=1"`
}

func (h *CartHandler) CreateCart(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	cart, err := h.carts.Create(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCartResp(cart))
}

func (h *CartHandler) GetCart(c *gin.Context) {
	cartID, ok := cartParam(c)
	if !ok {
		return
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	cart, err := h.carts.Get(ctx, cartID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResp(cart))
}

func (h *CartHandler) DeleteCart(c *gin.Context) {
	cartID, ok := cartParam(c)
	if !ok {
		return
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.carts.Delete(ctx, cartID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) ListItems(c *gin.Context) {
	cartID, ok := cartParam(c)
	if !ok {
		return
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.carts.ListItems(ctx, cartID)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]cartItemResp, 0, len(items))
	for _, it := range items {
		out = append(out, toCartItemResp(it))
	}
	c.JSON(http.StatusOK, out)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	cartID, ok := cartParam(c)
	if !ok {
		return
	}
	var req addCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	item, err := h.carts.AddItem(ctx, cartID, req.ProductID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCartItemResp(*item))
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	cartID, ok := cartParam(c)
	if !ok {
		return
	}
	itemID, ok := idParam(c, "item_id")
	if !ok {
		return
	}
	var req updateCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	item, err := h.carts.UpdateItem(ctx, cartID, itemID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartItemResp(*item))
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	cartID, ok := cartParam(c)
	if !ok {
		return
	}
	itemID, ok := idParam(c, "item_id")
	if !ok {
		return
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.carts.RemoveItem(ctx, cartID, itemID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func cartParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("cart_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_cart_id", "field": "cart_id"})
		return uuid.UUID{}, false
	}
	return id, true
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id", "field": name})
		return 0, false
	}
	return id, true
}

func reqCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), 3*time.Second)
}
