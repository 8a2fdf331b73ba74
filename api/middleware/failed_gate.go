package middleware

import (
	"net/http"

	"github.com/angelmondragon/scentshop/api/responses"
	"github.com/angelmondragon/scentshop/internal/storefront"
	pkgerrors "github.com/angelmondragon/scentshop/pkg/errors"
	"github.com/angelmondragon/scentshop/pkg/logger"
)

// StatusReader exposes the application status of the session.
type StatusReader interface {
	Status() storefront.Status
}

// FailedGate rejects requests once the session has entered its failed state.
func FailedGate(status StatusReader, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if st := status.Status(); st.Failed() {
				err := pkgerrors.New(pkgerrors.CodeAppFailed, "session failed").
					WithDetails(map[string]any{"message": st.Message})
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
