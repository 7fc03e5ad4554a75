package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product belongs to exactly one shop and is only visible or mutable
// through that shop's merchant.
type Product struct {
	ID          string
	ShopID      string
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CatalogItem is a product row joined with its owning shop, the unit
// returned by the shopper-facing catalog search.
type CatalogItem struct {
	ProductID   string
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	ShopID      string
	ShopName    string
	City        string
}
