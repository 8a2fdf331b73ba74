package controllers

import (
	"net/http"

	"github.com/angelmondragon/scentshop/api/responses"
)

// ListNotifications drains the pending notifications.
func ListNotifications(svc Storefront) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"notifications": svc.Notifications()})
	}
}

// GetState returns the full session snapshot, including the failed status.
func GetState(svc Storefront) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.View(r.Context()))
	}
}
