package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/bookly/crm-saas/configs"
	"github.com/bookly/crm-saas/internal/application/listcache"
	"github.com/bookly/crm-saas/internal/application/services"
	"github.com/bookly/crm-saas/internal/core/cachekey"
	"github.com/bookly/crm-saas/internal/core/domain/client"
	"github.com/bookly/crm-saas/internal/core/ports"
	"github.com/bookly/crm-saas/internal/infrastructure/db"
	"github.com/bookly/crm-saas/internal/infrastructure/health"
	"github.com/bookly/crm-saas/internal/infrastructure/httpserver"
	"github.com/bookly/crm-saas/internal/infrastructure/memcache"
	"github.com/bookly/crm-saas/internal/infrastructure/redis"
	"github.com/bookly/crm-saas/internal/infrastructure/repositories"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger := newLogger(cfg.Log)
	logger.Info("Starting Bookly CRM service...")

	// Initialize database (apply pool settings from config)
	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 5*time.Second)
	database, err := db.Connect(connectCtx, &cfg.Database, logger)
	cancelConnect()
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	logger.Info("Connected to database successfully")

	// Run migrations
	if err := database.Migrate(cfg.Database.MigrationsPath); err != nil {
		logger.Warn("Failed to run migrations:", err)
	}

	hcSlice := []ports.HealthChecker{health.NewDBHealthChecker(database)}

	// Select the list cache backend
	var (
		cacheBackend       ports.CacheStore
		rateLimiterService ports.RateLimiterService
	)
	switch cfg.Cache.Driver {
	case config.CacheDriverMemory:
		cacheBackend = memcache.New(cfg.Cache.MemoryCleanup)
		hcSlice = append(hcSlice, health.NewCacheHealthChecker("memory_cache", cacheBackend))
		logger.Info("Using in-process list cache")
	default:
		redisClient, err := redis.NewRedisClient(&cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to Redis:", err)
		}
		defer redisClient.Close()
		logger.Info("Connected to Redis successfully")

		cacheBackend = redis.NewRedisCache(redisClient, cfg.Cache.KeyPrefix, cfg.Cache.ScanCount)
		hcSlice = append(hcSlice, health.NewCacheHealthChecker("redis", cacheBackend))

		if cfg.RateLimit.Enabled {
			rateLimiterConfig := &services.RateLimiterConfig{
				DefaultRequestsPerMinute: cfg.RateLimit.DefaultRequestsPerMinute,
				BurstMultiplier:          cfg.RateLimit.BurstMultiplier,
				Window:                   cfg.RateLimit.Window,
				KeyPrefix:                cfg.RateLimit.KeyPrefix,
			}
			rateLimiterService = services.NewRateLimiterService(repositories.NewRateLimitRedisRepository(redisClient), rateLimiterConfig, logger)
		}
	}

	// List cache: fail-open store, read-through accessor and write-path invalidator
	cacheStore := listcache.NewStore(cacheBackend, cfg.Cache.OpTimeout, logger)
	clientLists := listcache.NewAccessor[client.View](cacheStore, cachekey.ClientList, cfg.Cache.ListTTL, logger)
	clientListInvalidator := listcache.NewInvalidator(cacheStore, cachekey.ClientList, logger)

	baseClientRepo := repositories.NewClientRepository(database, logger)
	// Decorate single-record lookups with cache-aside
	clientRepo := repositories.NewCachingClientRepository(baseClientRepo, cacheStore, cfg.Cache.ListTTL)
	clientService := services.NewClientService(clientRepo, clientLists, clientListInvalidator, logger)

	// Create server configuration
	serverConfig := &httpserver.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		TLSCertFile:    cfg.Server.TLSCertFile,
		TLSKeyFile:     cfg.Server.TLSKeyFile,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Environment:    cfg.Server.Environment,
	}

	deps := httpserver.ServerDeps{
		ClientService:      clientService,
		RateLimiterService: rateLimiterService,
		HealthCheckers:     hcSlice,
	}

	server := httpserver.NewServer(serverConfig, logger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}

func newLogger(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}
	return logger
}
