package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"

	"github.com/buzzblog/backend/internal/api"
	"github.com/buzzblog/backend/internal/cache"
	"github.com/buzzblog/backend/internal/client"
	"github.com/buzzblog/backend/internal/db"
	"github.com/buzzblog/backend/internal/discovery"
	"github.com/buzzblog/backend/internal/service"
	"github.com/buzzblog/backend/pkg/config"
	"github.com/buzzblog/backend/pkg/logging"
	"github.com/buzzblog/backend/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.WithService(cfg.Service)
	logger.Info("Starting BuzzBlog service", zap.Int("threads", cfg.Server.Threads))

	// Initialize telemetry
	telemetryShutdown, err := telemetry.Init(&cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetryShutdown()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			ServerName:  cfg.Telemetry.ServiceName,
		}); err != nil {
			logger.Fatal("Failed to initialize Sentry", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	locator, err := discovery.New(cfg.Topology.Endpoints(),
		discovery.WithSelector(discovery.SelectorByName(cfg.Locator.Selector)),
		discovery.WithConnectTimeout(cfg.Locator.ConnectTimeout),
	)
	if err != nil {
		logger.Fatal("Failed to build service locator", zap.Error(err))
	}

	// Storage
	var database *db.DB
	if cfg.HasStorage() {
		database, err = db.New(cfg.DSN(), cfg.Logging.Level)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer database.Close()

		if err := database.Migrate(cfg.Service); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	var counts *cache.Cache
	if cfg.Service == config.ServiceUniquepair {
		counts, err = cache.New(&cfg.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, counting from the database", zap.Error(err))
			counts = nil
		}
		if counts != nil {
			defer counts.Close()
		}
	}

	tracer := telemetry.NewTracer(telemetry.NewClock(), logging.GetLogger())

	router := api.NewRouter(cfg.Service, database, counts, prometheus.DefaultRegisterer)
	register(router, cfg.Service, database, counts, locator, tracer)
	logger.Info("Registered methods", zap.Int("count", router.Handler().Methods()))

	// Create Gin engine
	if cfg.Logging.Level == "DEBUG" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	router.SetupRoutes(engine)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Fatal("Failed to listen", zap.String("address", addr), zap.Error(err))
	}
	// At most Threads requests are served at once.
	ln = netutil.LimitListener(ln, cfg.Server.Threads)

	srv := &http.Server{
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Server starting", zap.String("address", addr))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// register wires the configured service. Peers are reached through the
// locator; only the service's own store is local.
func register(router *api.Router, name string, database *db.DB, counts *cache.Cache, locator *discovery.Locator, tracer *telemetry.Tracer) {
	switch name {
	case config.ServiceUniquepair:
		router.RegisterUniquepair(service.NewUniquepairService(db.NewUniquepairRepository(database), counts, tracer))

	case config.ServiceAccount:
		accounts := service.NewAccountService(db.NewAccountRepository(database), tracer)
		accounts.SetPeers(client.NewFollow(locator), client.NewPost(locator), client.NewLike(locator))
		router.RegisterAccount(accounts)

	case config.ServiceFollow:
		router.RegisterFollow(service.NewFollowService(client.NewUniquepair(locator), client.NewAccount(locator), tracer))

	case config.ServiceLike:
		router.RegisterLike(service.NewLikeService(
			client.NewUniquepair(locator), client.NewAccount(locator), client.NewPost(locator), tracer))

	case config.ServicePost:
		posts := service.NewPostService(db.NewPostRepository(database), client.NewAccount(locator), tracer)
		posts.SetLikeCounter(client.NewLike(locator))
		router.RegisterPost(posts)
	}
}
