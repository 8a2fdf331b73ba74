package cart

import (
	"github.com/angelmondragon/scentshop/internal/catalog"
	"github.com/shopspring/decimal"
)

// Line is one row of the cart. Price and Discount are copied from the catalog
// when the line is created and never re-synced.
type Line struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Discount int             `json:"discount"`
	Quantity int             `json:"quantity"`
}

// UnitPrice is the discounted price of a single unit.
func (l Line) UnitPrice() decimal.Decimal {
	return catalog.ApplyDiscount(l.Price, l.Discount)
}

// Subtotal is UnitPrice times Quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}
