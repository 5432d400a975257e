package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/SttarkMax/sistema/api/middleware"
	"github.com/SttarkMax/sistema/api/routes"
	"github.com/SttarkMax/sistema/internal/backend"
	"github.com/SttarkMax/sistema/internal/cashflow"
	"github.com/SttarkMax/sistema/internal/catalog"
	"github.com/SttarkMax/sistema/internal/customers"
	"github.com/SttarkMax/sistema/internal/numbering"
	"github.com/SttarkMax/sistema/internal/orders"
	"github.com/SttarkMax/sistema/internal/payables"
	"github.com/SttarkMax/sistema/internal/pricing"
	"github.com/SttarkMax/sistema/internal/quotes"
	"github.com/SttarkMax/sistema/internal/sales"
	"github.com/SttarkMax/sistema/internal/suppliers"
	"github.com/SttarkMax/sistema/internal/users"
	"github.com/SttarkMax/sistema/pkg/auth/session"
	"github.com/SttarkMax/sistema/pkg/config"
	"github.com/SttarkMax/sistema/pkg/logger"
	"github.com/SttarkMax/sistema/pkg/metrics"
	"github.com/SttarkMax/sistema/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "console"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "console",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "console stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, redisClient.Close())
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := metrics.NewHTTPMetrics(registry)

	api, err := backend.NewClient(cfg.Backend.BaseURL,
		backend.WithTimeout(cfg.Backend.Timeout),
		backend.WithObserver(metrics.NewBackendMetrics(registry)),
	)
	if err != nil {
		return err
	}

	store, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		return err
	}
	sessions, err := middleware.NewSessions(cfg.JWT, cfg.Session, store, api, logg)
	if err != nil {
		return err
	}

	svc, err := buildServices(cfg, api, redisClient)
	if err != nil {
		return err
	}

	addr := ":" + cfg.App.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, redisClient, registry, httpMetrics, sessions, api, svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logCtx := logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"backend": cfg.Backend.BaseURL,
	})
	logg.Info(logCtx, "starting console server")

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down console server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func buildServices(cfg *config.Config, api *backend.Client, seq *redis.Client) (svc routes.Services, err error) {
	quoteNumbers, err := numbering.New(seq, "quote", cfg.Numbering.QuotePrefix, cfg.Numbering.Digits)
	if err != nil {
		return svc, err
	}
	orderNumbers, err := numbering.New(seq, "order", cfg.Numbering.OrderPrefix, cfg.Numbering.Digits)
	if err != nil {
		return svc, err
	}

	if svc.Catalog, err = catalog.NewService(api); err != nil {
		return svc, err
	}
	if svc.Pricing, err = pricing.NewService(api, pricing.NewCalculator(cfg.Pricing.CardSurchargePercent)); err != nil {
		return svc, err
	}
	if svc.Customers, err = customers.NewService(api, nil); err != nil {
		return svc, err
	}
	if svc.Quotes, err = quotes.NewService(api, svc.Pricing, svc.Customers, quoteNumbers, nil); err != nil {
		return svc, err
	}
	if svc.Orders, err = orders.NewService(api, orderNumbers, nil); err != nil {
		return svc, err
	}
	if svc.Suppliers, err = suppliers.NewService(api, nil); err != nil {
		return svc, err
	}
	if svc.Payables, err = payables.NewService(api, nil); err != nil {
		return svc, err
	}
	if svc.Cashflow, err = cashflow.NewService(api); err != nil {
		return svc, err
	}
	if svc.Sales, err = sales.NewService(api); err != nil {
		return svc, err
	}
	if svc.Users, err = users.NewService(api); err != nil {
		return svc, err
	}
	return svc, nil
}
