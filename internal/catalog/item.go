package catalog

import "github.com/shopspring/decimal"

// Item is one immutable catalog entry. Name is the unique identifier.
type Item struct {
	Name        string          `json:"name" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url" validate:"omitempty,url"`
	Discount    int             `json:"discount" validate:"min=0,max=100"`
	Notes       []string        `json:"notes" validate:"dive,required"`
}

// DiscountedPrice is the price after applying the item's percentage discount.
func (i Item) DiscountedPrice() decimal.Decimal {
	return ApplyDiscount(i.Price, i.Discount)
}

func (i Item) clone() Item {
	out := i
	if i.Notes != nil {
		out.Notes = append([]string(nil), i.Notes...)
	}
	return out
}

// RankedItem is an Item annotated with how many search terms matched it.
type RankedItem struct {
	Item
	MatchCount int `json:"match_count"`
}

var hundred = decimal.NewFromInt(100)

// ApplyDiscount returns price reduced by percent, rounded to cents.
func ApplyDiscount(price decimal.Decimal, percent int) decimal.Decimal {
	if percent <= 0 {
		return price.Round(2)
	}
	factor := hundred.Sub(decimal.NewFromInt(int64(percent))).Div(hundred)
	return price.Mul(factor).Round(2)
}
