package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/angelmondragon/scentshop/api/responses"
	pkgerrors "github.com/angelmondragon/scentshop/pkg/errors"
	"github.com/angelmondragon/scentshop/pkg/logger"
)

// PanicSink receives panics that escaped a handler.
type PanicSink interface {
	Recover(ctx context.Context, recovered any)
}

// Recoverer turns a handler panic into a global failure of the session.
func Recoverer(logg *logger.Logger, sink PanicSink) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					err := fmt.Errorf("panic: %v", rec)
					ctx := r.Context()
					if logg != nil {
						ctx = logg.WithFields(ctx, map[string]any{"panic": fmt.Sprint(rec)})
						logg.Error(ctx, "panic.recovered", err)
					}
					if sink != nil {
						sink.Recover(ctx, rec)
					}
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeAppFailed, err, "panic"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
