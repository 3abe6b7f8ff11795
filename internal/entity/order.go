package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the single-character code persisted on an order.
// Transitions are unguarded: any status may be set over any other.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "P"
	PaymentComplete PaymentStatus = "C"
	PaymentFailed   PaymentStatus = "F"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentComplete, PaymentFailed:
		return true
	}
	return false
}

type Order struct {
	ID            int64
	CustomerID    int64
	PaymentStatus PaymentStatus
	PlacedAt      time.Time
	Items         []OrderItem
}

// OrderItem carries no price snapshot; the line value is derived by
// joining the live product at read time.
type OrderItem struct {
	ID       int64
	OrderID  int64
	Product  Product
	Quantity int
}

func (i OrderItem) Total() decimal.Decimal {
	return i.Product.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
