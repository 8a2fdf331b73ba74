package controllers

import (
	"net/http"

	"github.com/angelmondragon/scentshop/api/responses"
	"github.com/angelmondragon/scentshop/api/validators"
	pkgerrors "github.com/angelmondragon/scentshop/pkg/errors"
	"github.com/angelmondragon/scentshop/pkg/logger"
)

type addItemRequest struct {
	Name string `json:"name" validate:"required"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0"`
}

func GetCart(svc Storefront, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.Cart()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// AddCartItem adds one unit of the named perfume. Unknown names leave the cart as is.
func AddCartItem(svc Storefront, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := svc.AddToCart(r.Context(), req.Name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func RemoveCartItem(svc Storefront, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, err := itemNameParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item name"))
			return
		}
		view, err := svc.RemoveFromCart(r.Context(), name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// UpdateCartItem sets the quantity of a line; zero removes it.
func UpdateCartItem(svc Storefront, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, err := itemNameParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item name"))
			return
		}
		var req setQuantityRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := svc.UpdateQuantity(r.Context(), name, *req.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}
