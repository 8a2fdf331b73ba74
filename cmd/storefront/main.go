package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/scentshop/api/routes"
	"github.com/angelmondragon/scentshop/internal/catalog"
	"github.com/angelmondragon/scentshop/internal/notify"
	"github.com/angelmondragon/scentshop/internal/storefront"
	"github.com/angelmondragon/scentshop/pkg/config"
	"github.com/angelmondragon/scentshop/pkg/instance"
	"github.com/angelmondragon/scentshop/pkg/logger"
	"github.com/angelmondragon/scentshop/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logg.Error(context.Background(), "failed to load catalog", err)
		os.Exit(1)
	}

	var (
		reg      *prometheus.Registry
		gatherer prometheus.Gatherer
	)
	if cfg.Metrics.Enabled {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		gatherer = reg
	}
	var recorder *metrics.StorefrontMetrics
	if reg != nil {
		recorder = metrics.NewStorefrontMetrics(reg)
	}

	sess, err := storefront.NewSession(storefront.Params{
		Catalog: cat,
		Center: notify.NewCenter(notify.Options{
			TTL:      cfg.Notify.TTL,
			Capacity: cfg.Notify.Capacity,
			Logger:   logg,
			Metrics:  recorder,
		}),
		Logger:  logg,
		Metrics: recorder,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create storefront session", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":        cfg.App.Env,
		"addr":       addr,
		"instance":   instance.GetID(),
		"session_id": sess.ID(),
		"catalog":    cat.Len(),
	})
	logg.Info(ctx, "starting storefront server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, sess, gatherer),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "storefront server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
		logg.Info(ctx, "storefront server stopped")
	}
}
