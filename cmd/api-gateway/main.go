package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/advocate-directory-api/api/swagger"
	"github.com/noah-isme/advocate-directory-api/internal/handler"
	internalmiddleware "github.com/noah-isme/advocate-directory-api/internal/middleware"
	"github.com/noah-isme/advocate-directory-api/internal/models"
	"github.com/noah-isme/advocate-directory-api/internal/repository"
	"github.com/noah-isme/advocate-directory-api/internal/service"
	"github.com/noah-isme/advocate-directory-api/pkg/cache"
	"github.com/noah-isme/advocate-directory-api/pkg/config"
	"github.com/noah-isme/advocate-directory-api/pkg/database"
	appErrors "github.com/noah-isme/advocate-directory-api/pkg/errors"
	"github.com/noah-isme/advocate-directory-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/advocate-directory-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/advocate-directory-api/pkg/middleware/requestid"
	"github.com/noah-isme/advocate-directory-api/pkg/response"
)

// @title Advocate Directory API
// @version 1.0.0
// @description Search, filter and export the advocate directory.
// @BasePath /api
// @schemes http

const shutdownTimeout = 10 * time.Second

type advocateSource interface {
	service.AdvocateSource
	Ping(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	source, closeSource, err := newAdvocateSource(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("failed to init advocate source", zap.String("source", cfg.Advocates.Source), zap.Error(err))
	}
	defer closeSource()

	metricsSvc := service.NewMetricsService()
	cacheSvc, closeCache := newCacheService(ctx, cfg, metricsSvc, logr)
	defer closeCache()

	advocateSvc := service.NewAdvocateService(source, cacheSvc, metricsSvc, logr)
	r := newRouter(cfg, logr, metricsSvc, advocateSvc, source)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "source", cfg.Advocates.Source, "cache", cacheSvc.Enabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-quit
	logr.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}

func newRouter(cfg *config.Config, logr *zap.Logger, metricsSvc *service.MetricsService, advocateSvc *service.AdvocateService, source advocateSource) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	healthHandler := handler.NewHealthHandler(metricsSvc, source)
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", healthHandler.Prometheus)

	advocateHandler := handler.NewAdvocateHandler(advocateSvc)
	api := r.Group(cfg.APIPrefix)
	api.GET("/advocates", advocateHandler.List)
	api.GET("/advocates/export", advocateHandler.Export)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.ErrNotFound)
	})

	return r
}

func newAdvocateSource(ctx context.Context, cfg *config.Config, logr *zap.Logger) (advocateSource, func(), error) {
	if cfg.Advocates.Source != config.SourcePostgres {
		repo, err := repository.NewSeedRepository(cfg.Advocates.SeedFile, models.NewValidator())
		if err != nil {
			return nil, nil, err
		}
		logr.Info("serving advocates from seed data", zap.String("file", cfg.Advocates.SeedFile))
		return repo, func() {}, nil
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	repo := repository.NewAdvocateRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return repo, func() { _ = db.Close() }, nil
}

// newCacheService connects to Redis when search caching is enabled; an unreachable Redis disables caching.
func newCacheService(ctx context.Context, cfg *config.Config, metricsSvc *service.MetricsService, logr *zap.Logger) (*service.CacheService, func()) {
	if !cfg.Cache.Enabled {
		return service.NewCacheService(nil, metricsSvc, cfg.Cache.TTL, logr, false), func() {}
	}

	client, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("search cache disabled", zap.String("addr", cache.Addr(cfg.Redis)), zap.Error(err))
		return service.NewCacheService(nil, metricsSvc, cfg.Cache.TTL, logr, false), func() {}
	}

	repo := repository.NewCacheRepository(client)
	return service.NewCacheService(repo, metricsSvc, cfg.Cache.TTL, logr, true), func() { _ = repo.Close() }
}
