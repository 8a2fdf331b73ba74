package controllers

import (
	"net/http"

	"github.com/angelmondragon/scentshop/api/responses"
	pkgerrors "github.com/angelmondragon/scentshop/pkg/errors"
	"github.com/angelmondragon/scentshop/pkg/config"
	"github.com/angelmondragon/scentshop/pkg/logger"
)

const envHeader = "X-Scentshop-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports not ready once the session has failed; only a restart clears it.
func HealthReady(cfg *config.Config, svc Storefront, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		if st := svc.Status(); st.Failed() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeAppFailed, "session failed").
				WithDetails(map[string]any{"status": st.State.String(), "message": st.Message}))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
