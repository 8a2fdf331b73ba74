package controllers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/scentshop/internal/catalog"
	"github.com/angelmondragon/scentshop/internal/notify"
	"github.com/angelmondragon/scentshop/internal/storefront"
)

// Storefront is the session surface the HTTP handlers drive.
type Storefront interface {
	Search(ctx context.Context, text string) ([]catalog.RankedItem, error)
	AddToCart(ctx context.Context, name string) (storefront.CartView, error)
	RemoveFromCart(ctx context.Context, name string) (storefront.CartView, error)
	UpdateQuantity(ctx context.Context, name string, quantity int) (storefront.CartView, error)
	Cart() (storefront.CartView, error)
	View(ctx context.Context) storefront.Snapshot
	Notifications() []notify.Notification
	Status() storefront.Status
}

var _ Storefront = (*storefront.Session)(nil)

// itemNameParam reads the {name} path segment. chi matches on the raw path
// when the request carried one, so it is unescaped here.
func itemNameParam(r *http.Request) (string, error) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name, nil
	}
	return url.PathUnescape(name)
}
