// cmd/server/main.go
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

	"github.com/joho/godotenv"

	"shortener-analytics/internal/auth"
	"shortener-analytics/internal/cache"
	"shortener-analytics/internal/config"
	"shortener-analytics/internal/events"
	"shortener-analytics/internal/geo"
	"shortener-analytics/internal/handler"
	"shortener-analytics/internal/maintenance"
	"shortener-analytics/internal/repository/postgres"
	"shortener-analytics/internal/service"
	"shortener-analytics/internal/tracker"
	customLogger "shortener-analytics/pkg/logger"
)

const (
	tokenTTL        = 24 * time.Hour
	shutdownTimeout = 30 * time.Second
)

// healthcheck probes url and returns the process exit code
func healthcheck(client *http.Client, url string) int {
	resp, err := client.Get(url)
	if err != nil {
		return 1
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 1
	}
	return 0
}

func main() {
	// Docker health check: probe the running server
	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8081"
		}
		client := &http.Client{Timeout: 5 * time.Second}
		os.Exit(healthcheck(client, fmt.Sprintf("http://localhost:%s/health", port)))
	}

	// Load environment variables from .env file (development only)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appLogger := customLogger.NewLogger()
	defer appLogger.Sync()
	appLogger.Info("Starting shortener analytics service")

	cfg, err := config.LoadConfig()
	if err != nil {
		appLogger.Fatalw("Failed to load configuration", "error", err)
	}

	db, err := postgres.Connect(cfg, appLogger)
	if err != nil {
		appLogger.Fatalw("Failed to initialize database", "error", err)
	}
	if err := postgres.Migrate(db); err != nil {
		appLogger.Fatalw("Failed to migrate database", "error", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Fatalw("Failed to get database handle", "error", err)
	}

	var linkCache cache.Cache
	if redisCache, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		appLogger.Warnw("Failed to initialize Redis cache, continuing without cache", "error", err)
	} else {
		linkCache = redisCache
	}

	var geoDB geo.Database
	if cfg.GeoIPDBPath != "" {
		mmdb, err := geo.OpenMaxMind(cfg.GeoIPDBPath)
		if err != nil {
			appLogger.Warnw("GeoIP database unavailable, locations will be empty", "error", err)
		} else {
			defer mmdb.Close()
			geoDB = mmdb
		}
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaClickTopic)
		appLogger.Infow("Publishing click events", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaClickTopic)
	}

	// Repositories
	linkRepo := postgres.NewLinkRepository(db)
	clickRepo := postgres.NewClickRepository(db)

	// Click pipeline
	recorder := tracker.NewRecorder(linkRepo, clickRepo, geo.NewResolver(geoDB, appLogger), publisher, appLogger)
	dispatcher := tracker.NewDispatcher(recorder, cfg.ClickWorkers, cfg.ClickQueueSize, cfg.ClickTimeout, appLogger)

	// Services
	redirectService := service.NewRedirectService(linkRepo, linkCache, dispatcher, cfg, appLogger)
	analyticsService := service.NewAnalyticsService(linkRepo, clickRepo, appLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler := maintenance.NewScheduler(cfg.ReconcileSchedule, analyticsService, appLogger)
	if err := scheduler.Start(ctx); err != nil {
		appLogger.Fatalw("Failed to start maintenance scheduler", "error", err)
	}

	checks := map[string]handler.Pinger{"database": handler.PingFunc(sqlDB.PingContext)}
	if linkCache != nil {
		checks["cache"] = linkCache
	}

	router, err := handler.NewRouter(cfg, appLogger, handler.Handlers{
		Redirect:    handler.NewRedirectHandler(redirectService, appLogger),
		Analytics:   handler.NewAnalyticsHandler(analyticsService, appLogger),
		Health:      handler.NewHealthHandler(checks),
		RequireUser: auth.NewTokenManager(cfg.JWTSecret, tokenTTL).RequireUser(),
	})
	if err != nil {
		appLogger.Fatalw("Failed to configure router", "error", err)
	}

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:        router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		appLogger.Infow("Server starting", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalw("Failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorw("Server forced to shutdown", "error", err)
	}

	// Stop taking clicks only once no request can submit more
	if err := dispatcher.Close(shutdownCtx); err != nil {
		appLogger.Errorw("Click queue not fully drained", "error", err, "dropped", dispatcher.Dropped())
	}

	<-scheduler.Stop().Done()

	if err := publisher.Close(); err != nil {
		appLogger.Errorw("Error closing event publisher", "error", err)
	}

	if linkCache != nil {
		if err := linkCache.Close(); err != nil {
			appLogger.Errorw("Error closing Redis connection", "error", err)
		}
	}

	if err := sqlDB.Close(); err != nil {
		appLogger.Errorw("Error closing database", "error", err)
	}

	appLogger.Info("Server exited successfully")
}
