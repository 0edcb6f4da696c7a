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

	"github.com/rossellmestanza/menudigital/api/routes"
	"github.com/rossellmestanza/menudigital/internal/auth"
	"github.com/rossellmestanza/menudigital/internal/cart"
	"github.com/rossellmestanza/menudigital/internal/catalog"
	"github.com/rossellmestanza/menudigital/internal/order"
	"github.com/rossellmestanza/menudigital/pkg/auth/session"
	"github.com/rossellmestanza/menudigital/pkg/config"
	"github.com/rossellmestanza/menudigital/pkg/db"
	"github.com/rossellmestanza/menudigital/pkg/logger"
	"github.com/rossellmestanza/menudigital/pkg/metrics"
	"github.com/rossellmestanza/menudigital/pkg/migrate"
	"github.com/rossellmestanza/menudigital/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	catalogRepo := catalog.NewRepository(dbClient.DB())
	loader, err := catalog.NewLoader(catalogRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog loader", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalogRepo, loader)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(redisClient, redisClient, loader, cfg.Cart.TTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	orderService, err := order.NewService(cartService, loader)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.NewRepository(dbClient.DB()), sessionManager, cfg.JWT, cfg.Password, cfg.Admin, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := authService.EnsureBootstrapAdmin(ctx); err != nil {
		logg.Error(ctx, "failed to seed bootstrap admin", err)
		os.Exit(1)
	}

	loadCtx, cancelLoad := context.WithTimeout(ctx, cfg.Catalog.LoadTimeout)
	if err := loader.Refresh(loadCtx); err != nil {
		// Serve anyway; the loader will retry on its interval and the menu
		// endpoints report the loading state until the first fetch lands.
		logg.Warn(logg.WithField(ctx, "error", err.Error()), "initial catalog load failed")
	}
	cancelLoad()
	go loader.Run(ctx, cfg.Catalog.RefreshInterval)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	startCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(startCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			redisClient,
			sessionManager,
			loader,
			catalogService,
			cartService,
			orderService,
			authService,
			registry,
			httpMetrics,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(startCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(startCtx, "api server shutdown failed", err)
		}
		logg.Info(startCtx, "api server stopped")
	}
}
