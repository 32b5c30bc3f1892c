package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/rootbits-api/internal/audit"
	"github.com/BruksfildServices01/rootbits-api/internal/config"
	dbpkg "github.com/BruksfildServices01/rootbits-api/internal/db"
	"github.com/BruksfildServices01/rootbits-api/internal/logger"
	"github.com/BruksfildServices01/rootbits-api/internal/ratelimit"
	"github.com/BruksfildServices01/rootbits-api/internal/routes"
	"github.com/BruksfildServices01/rootbits-api/internal/timezone"
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
		ServiceName: cfg.App.Name,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := timezone.Configure(cfg.App.Timezone); err != nil {
		logg.Warn(logg.WithField(context.Background(), "timezone", cfg.App.Timezone), "unknown timezone, using default")
	}
	decimal.MarshalJSONWithoutQuotes = true

	db, err := dbpkg.NewDB(cfg.DB)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	deps := routes.Deps{
		DB:     db,
		Config: cfg,
		Log:    logg,
	}

	if cfg.Redis.URL != "" {
		redisClient, err := ratelimit.Connect(context.Background(), cfg.Redis.URL)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		deps.RateLimit = ratelimit.NewRedisStore(redisClient, cfg.App.Name)
	}

	if cfg.App.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		deps.Registry = reg
	}

	dispatcher := audit.NewDispatcher(audit.New(db), logg)
	deps.Audit = dispatcher

	if cfg.App.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	routes.RegisterRoutes(r, deps)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
	}

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": server.Addr,
	})
	logg.Info(ctx, "starting api server")

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			dispatcher.Close()
			os.Exit(1)
		}
	case <-stop:
		logg.Info(ctx, "shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "graceful shutdown failed", err)
	}
	dispatcher.Close()
}
