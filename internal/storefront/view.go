package storefront

import (
	"github.com/angelmondragon/scentshop/internal/cart"
	"github.com/angelmondragon/scentshop/internal/catalog"
	"github.com/angelmondragon/scentshop/internal/notify"
	"github.com/shopspring/decimal"
)

// CartLineView is a cart line with its derived prices.
type CartLineView struct {
	cart.Line
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CartView is the rendered cart panel.
type CartView struct {
	Lines     []CartLineView  `json:"lines"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
}

// Snapshot is the full visible state of a session.
type Snapshot struct {
	SessionID     string                `json:"session_id"`
	Status        Status                `json:"status"`
	SearchText    string                `json:"search_text"`
	Results       []catalog.RankedItem  `json:"results"`
	Cart          CartView              `json:"cart"`
	Notifications []notify.Notification `json:"notifications"`
}

func newCartView(ledger *cart.Ledger) CartView {
	lines := ledger.Lines()
	view := CartView{
		Lines:     make([]CartLineView, 0, len(lines)),
		ItemCount: ledger.ItemCount(),
		Total:     ledger.Total(),
	}
	for _, line := range lines {
		view.Lines = append(view.Lines, CartLineView{
			Line:      line,
			UnitPrice: line.UnitPrice(),
			Subtotal:  line.Subtotal(),
		})
	}
	return view
}
