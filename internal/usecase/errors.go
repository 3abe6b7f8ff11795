package usecase

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an entity id does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError rejects bad input with field-level detail. Reason codes
// are stable strings ("product_not_found", "cart_empty", ...) surfaced to
// the client as-is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ConflictError rejects a delete blocked by existing dependents.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return "conflict: " + e.Reason
}

const (
	ReasonProductNotFound    = "product_not_found"
	ReasonCartNotFound       = "cart_not_found"
	ReasonCartEmpty          = "cart_empty"
	ReasonCollectionNotFound = "collection_not_found"
	ReasonInvalidStatus      = "invalid_status"
	ReasonHasItems           = "has_items"
	ReasonHasProducts        = "has_products"
	ReasonHasOrders          = "has_orders"
	ReasonInOrders           = "in_orders"
)
