package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPaymentStatusValid(t *testing.T) {
	assert.True(t, PaymentPending.Valid())
	assert.True(t, PaymentComplete.Valid())
	assert.True(t, PaymentFailed.Valid())
	assert.False(t, PaymentStatus("X").Valid())
	assert.False(t, PaymentStatus("").Valid())
}

// Totals are always derived from the product's current price, never stored.
func TestTotalsFollowProductPrice(t *testing.T) {
	p := Product{ID: 1, UnitPrice: decimal.RequireFromString("10.00")}
	line := CartItem{Product: p, Quantity: 2}
	assert.Equal(t, "20.00", line.Total().StringFixed(2))

	cart := Cart{Items: []CartItem{
		{Product: p, Quantity: 2},
		{Product: Product{ID: 2, UnitPrice: decimal.RequireFromString("5.00")}, Quantity: 1},
	}}
	assert.Equal(t, "25.00", cart.Total().StringFixed(2))

	// Reprice the product and the same quantity is worth more.
	line.Product.UnitPrice = decimal.RequireFromString("12.50")
	assert.Equal(t, "25.00", line.Total().StringFixed(2))

	oi := OrderItem{Product: line.Product, Quantity: 4}
	assert.Equal(t, "50.00", oi.Total().StringFixed(2))
}

func TestCartTotalEmpty(t *testing.T) {
	assert.True(t, Cart{}.Total().IsZero())
}
