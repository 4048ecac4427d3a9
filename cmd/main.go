package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pampers23/admin-shoe/internal/handler"
	"github.com/pampers23/admin-shoe/internal/middleware"
	"github.com/pampers23/admin-shoe/internal/repository"
	"github.com/pampers23/admin-shoe/internal/service"
	"github.com/pampers23/admin-shoe/pkg/cache"
	"github.com/pampers23/admin-shoe/pkg/config"
	"github.com/pampers23/admin-shoe/pkg/database"
	"github.com/pampers23/admin-shoe/pkg/jwtutil"
	"github.com/pampers23/admin-shoe/pkg/logger"
	"github.com/pampers23/admin-shoe/pkg/storage"
	"github.com/pampers23/admin-shoe/prometheus"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load("admin-shoe")
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: cfg.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting admin-shoe", cfg.LogConfig()...)

	prometheus.InitMetrics(cfg.Metrics.Prefix, prom.DefaultRegisterer)
	log.Info("Prometheus metrics initialized", zap.String("metrics_prefix", cfg.Metrics.Prefix))

	db, err := database.InitDB(&cfg.DB, log)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.MigrateModels(db, repository.Models()...); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}
	log.Info("Database connection established and migrations completed")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	queryCache, err := cache.New(ctx, cache.Config{
		Backend:       cfg.Cache.Backend,
		RedisAddr:     cfg.Cache.RedisAddr,
		RedisPassword: cfg.Cache.RedisPassword,
		RedisDB:       cfg.Cache.RedisDB,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize query cache", zap.Error(err))
	}
	log.Info("Query cache initialized", zap.String("backend", cfg.Cache.Backend))

	images, err := storage.NewFileStore(cfg.Storage.Root, cfg.Storage.Bucket, cfg.Storage.PublicURL)
	if err != nil {
		log.Fatal("Failed to initialize object store", zap.Error(err))
	}

	store := repository.NewGormStore(db)
	h := handler.New(
		store,
		service.NewCatalogService(store, queryCache, cfg.Cache.TTL),
		service.NewDashboardService(store, queryCache, cfg.Cache.TTL),
		service.NewOrderService(store, queryCache, cfg.Cache.TTL),
		images,
		cfg.Dashboard,
	)
	jwt := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:      cfg.JWT.SigningKey,
		ExpirationHours: cfg.JWT.ExpirationHours,
	})

	e := echo.New()
	e.HideBanner = true

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware())
	e.Use(middleware.MetricsMiddleware)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.Static("/storage", cfg.Storage.Root)
	h.Register(e, middleware.AuthMiddleware(jwt))

	go func() {
		port := cfg.Server.Port
		log.Info("Starting server", zap.String("port", port))
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
	if closer, ok := queryCache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Warn("Failed to close query cache", zap.Error(err))
		}
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
