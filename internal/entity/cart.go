package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is addressed by a random 128-bit token, not a sequential id,
// so it can be created and used without authentication.
type Cart struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Items     []CartItem
}

// Total is computed from live product prices every time, never stored.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Total())
	}
	return total
}

// CartItem quantity is at least 1. A cart holds at most one item per
// product; adds for an existing product merge into the same row.
type CartItem struct {
	ID       int64
	CartID   uuid.UUID
	Product  Product
	Quantity int
}

func (i CartItem) Total() decimal.Decimal {
	return i.Product.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
