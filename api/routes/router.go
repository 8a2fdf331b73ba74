package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/scentshop/api/controllers"
	"github.com/angelmondragon/scentshop/api/middleware"
	"github.com/angelmondragon/scentshop/pkg/config"
	"github.com/angelmondragon/scentshop/pkg/logger"
)

// Session is everything the router needs from the storefront session.
type Session interface {
	controllers.Storefront
	middleware.PanicSink
}

// NewRouter wires the storefront API. gatherer may be nil when metrics are disabled.
func NewRouter(cfg *config.Config, logg *logger.Logger, sess Session, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg, sess),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, sess, logg))
	})

	if cfg.Metrics.Enabled && gatherer != nil {
		r.Method(http.MethodGet, cfg.Metrics.Path, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/state", controllers.GetState(sess))
		r.Get("/notifications", controllers.ListNotifications(sess))

		r.Group(func(r chi.Router) {
			r.Use(middleware.FailedGate(sess, logg))
			r.Get("/catalog", controllers.ListCatalog(sess, logg))
			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.GetCart(sess, logg))
				r.Post("/items", controllers.AddCartItem(sess, logg))
				r.Delete("/items/{name}", controllers.RemoveCartItem(sess, logg))
				r.Put("/items/{name}", controllers.UpdateCartItem(sess, logg))
			})
		})
	})

	return r
}
