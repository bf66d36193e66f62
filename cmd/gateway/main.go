package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/nhakalabs/storefront-gateway/api/routes"
	authsvc "github.com/nhakalabs/storefront-gateway/internal/auth"
	"github.com/nhakalabs/storefront-gateway/internal/cart"
	checkoutsvc "github.com/nhakalabs/storefront-gateway/internal/checkout"
	"github.com/nhakalabs/storefront-gateway/internal/contributions"
	"github.com/nhakalabs/storefront-gateway/internal/memorials"
	"github.com/nhakalabs/storefront-gateway/internal/orders"
	"github.com/nhakalabs/storefront-gateway/internal/payment"
	"github.com/nhakalabs/storefront-gateway/internal/storefront"
	"github.com/nhakalabs/storefront-gateway/internal/users"
	"github.com/nhakalabs/storefront-gateway/pkg/auth/session"
	"github.com/nhakalabs/storefront-gateway/pkg/commerce"
	"github.com/nhakalabs/storefront-gateway/pkg/config"
	"github.com/nhakalabs/storefront-gateway/pkg/logger"
	"github.com/nhakalabs/storefront-gateway/pkg/metrics"
	pkgredis "github.com/nhakalabs/storefront-gateway/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "gateway"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "gateway",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := pkgredis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	commerceClient, err := commerce.NewClient(cfg.Commerce, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create commerce client", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	cartProvider := cart.NewProvider()
	processor := payment.NewSimulator(cfg.Checkout)

	storefrontService, err := storefront.NewService(cartProvider, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create storefront service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(cartProvider, commerceClient, processor, checkoutMetrics, logg, cfg.Checkout.Currency)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	authService, err := authsvc.NewService(commerceClient, sessionManager, cartProvider, checkoutService, cfg.JWT, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(commerceClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	memorialService, err := memorials.NewService(commerceClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create memorial service", err)
		os.Exit(1)
	}

	contributionService, err := contributions.NewService(commerceClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create contribution service", err)
		os.Exit(1)
	}

	userService, err := users.NewService(commerceClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting gateway server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			redisClient,
			sessionManager,
			registry,
			authService,
			storefrontService,
			checkoutService,
			orderService,
			memorialService,
			contributionService,
			userService,
		),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "gateway server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var closeErr error
	closeErr = multierr.Append(closeErr, server.Shutdown(drainCtx))
	closeErr = multierr.Append(closeErr, redisClient.Close())
	if closeErr != nil {
		logg.Error(ctx, "shutdown finished with errors", closeErr)
		os.Exit(1)
	}
	logg.Info(ctx, "gateway stopped")
}
