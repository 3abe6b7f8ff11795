package domain

import "github.com/shopspring/decimal"

type Collection struct {
	ID                int64
	Title             string
	FeaturedProductID *int64
	ProductsCount     int
}

type Product struct {
	ID           int64
	Title        string
	Description  string
	UnitPrice    decimal.Decimal // >= 1, two decimal places
	Inventory    int             // >= 0, never touched by checkout
	CollectionID int64
}
