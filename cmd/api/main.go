package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tacocrew/tacocrew-backend/api/routes"
	grouporder "github.com/tacocrew/tacocrew-backend/internal/grouporders"
	orgsvc "github.com/tacocrew/tacocrew-backend/internal/organizations"
	stocksvc "github.com/tacocrew/tacocrew-backend/internal/stock"
	userorder "github.com/tacocrew/tacocrew-backend/internal/userorders"
	usersvc "github.com/tacocrew/tacocrew-backend/internal/users"
	"github.com/tacocrew/tacocrew-backend/pkg/config"
	"github.com/tacocrew/tacocrew-backend/pkg/db"
	"github.com/tacocrew/tacocrew-backend/pkg/logger"
	"github.com/tacocrew/tacocrew-backend/pkg/metrics"
	"github.com/tacocrew/tacocrew-backend/pkg/migrate"
	"github.com/tacocrew/tacocrew-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

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

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	stockRepo := stocksvc.NewRepository(dbClient.DB())
	if err := stockRepo.EnsureCatalog(context.Background(), stocksvc.DefaultCatalog()); err != nil {
		logg.Error(context.Background(), "failed to seed stock catalog", err)
		os.Exit(1)
	}

	stockService, err := stocksvc.NewService(stockRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create stock service", err)
		os.Exit(1)
	}

	userService, err := usersvc.NewService(usersvc.NewRepository(dbClient.DB()), cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	orgRepo := orgsvc.NewRepository(dbClient.DB())
	organizationService, err := orgsvc.NewService(orgRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create organization service", err)
		os.Exit(1)
	}

	groupOrderRepo := grouporder.NewRepository(dbClient.DB())
	userOrderRepo := userorder.NewRepository(dbClient.DB())

	groupOrderService, err := grouporder.NewService(groupOrderRepo, userOrderRepo, dbClient, orgRepo, stockService)
	if err != nil {
		logg.Error(context.Background(), "failed to create group order service", err)
		os.Exit(1)
	}

	userOrderService, err := userorder.NewService(userOrderRepo, groupOrderRepo, stockService)
	if err != nil {
		logg.Error(context.Background(), "failed to create user order service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			httpMetrics,
			userService,
			organizationService,
			groupOrderService,
			userOrderService,
			stockService,
		),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutting down api server")
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
