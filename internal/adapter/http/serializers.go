package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/RUstamdarvishY/Online-shop/internal/entity"
	"github.com/RUstamdarvishY/Online-shop/internal/logging"
	"github.com/RUstamdarvishY/Online-shop/internal/usecase"
)

// Money fields go out as fixed two-decimal strings, payment status as its
// single-character code.

type productResp struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	UnitPrice    string `json:"unit_price"`
	Inventory    int    `json:"inventory"`
	CollectionID int64  `json:"collection_id"`
}

type collectionResp struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	FeaturedProductID *int64 `json:"featured_product_id,omitempty"`
	ProductsCount     int    `json:"products_count"`
}

type customerResp struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	House     string `json:"house"`
	Korpus    string `json:"korpus,omitempty"`
	Flat      string `json:"flat"`
}

type cartItemResp struct {
	ID         int64       `json:"id"`
	Product    productResp `json:"product"`
	Quantity   int         `json:"quantity"`
	TotalPrice string      `json:"total_price"`
}

type cartResp struct {
	ID         string         `json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	Items      []cartItemResp `json:"items"`
	TotalPrice string         `json:"total_price"`
}

type orderItemResp struct {
	ID         int64       `json:"id"`
	Product    productResp `json:"product"`
	Quantity   int         `json:"quantity"`
	TotalPrice string      `json:"total_price"`
}

type orderResp struct {
	ID            int64           `json:"id"`
	CustomerID    int64           `json:"customer_id"`
	PaymentStatus string          `json:"payment_status"`
	PlacedAt      time.Time       `json:"placed_at"`
	Items         []orderItemResp `json:"items"`
}

func toProductResp(p domain.Product) productResp {
	return productResp{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		UnitPrice:    p.UnitPrice.StringFixed(2),
		Inventory:    p.Inventory,
		CollectionID: p.CollectionID,
	}
}

func toCollectionResp(c domain.Collection) collectionResp {
	return collectionResp{
		ID:                c.ID,
		Title:             c.Title,
		FeaturedProductID: c.FeaturedProductID,
		ProductsCount:     c.ProductsCount,
	}
}

func toCustomerResp(c domain.Customer) customerResp {
	return customerResp{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Street:    c.Street,
		House:     c.House,
		Korpus:    c.Korpus,
		Flat:      c.Flat,
	}
}

func toCartItemResp(it domain.CartItem) cartItemResp {
	return cartItemResp{
		ID:         it.ID,
		Product:    toProductResp(it.Product),
		Quantity:   it.Quantity,
		TotalPrice: it.Total().StringFixed(2),
	}
}

func toCartResp(c *domain.Cart) cartResp {
	items := make([]cartItemResp, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, toCartItemResp(it))
	}
	return cartResp{
		ID:         c.ID.String(),
		CreatedAt:  c.CreatedAt,
		Items:      items,
		TotalPrice: c.Total().StringFixed(2),
	}
}

func toOrderItemResp(it domain.OrderItem) orderItemResp {
	return orderItemResp{
		ID:         it.ID,
		Product:    toProductResp(it.Product),
		Quantity:   it.Quantity,
		TotalPrice: it.Total().StringFixed(2),
	}
}

func toOrderResp(o *domain.Order) orderResp {
	items := make([]orderItemResp, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, toOrderItemResp(it))
	}
	return orderResp{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		PaymentStatus: string(o.PaymentStatus),
		PlacedAt:      o.PlacedAt,
		Items:         items,
	}
}

// writeError maps the usecase error taxonomy onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	var ve *usecase.ValidationError
	var ce *usecase.ConflictError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason, "field": ve.Field})
	case errors.As(err, &ce):
		c.JSON(http.StatusConflict, gin.H{"error": ce.Reason})
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	default:
		logging.From(c).Error("request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
