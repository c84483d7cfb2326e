package api

import (
	"context"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/buzzblog/backend/internal/cache"
	"github.com/buzzblog/backend/internal/db"
	"github.com/buzzblog/backend/pkg/logging"
)

// Router serves the JSON-RPC surface of one service
type Router struct {
	service string
	handler *JSONRPCHandler
	db      *db.DB
	cache   *cache.Cache
	logger  *zap.Logger
}

// NewRouter creates a new API router. database and counts may be nil for
// services without storage.
func NewRouter(service string, database *db.DB, counts *cache.Cache, reg prometheus.Registerer) *Router {
	return &Router{
		service: service,
		handler: NewJSONRPCHandler(service, NewMetrics(reg)),
		db:      database,
		cache:   counts,
		logger:  logging.WithComponent("api-router"),
	}
}

// Handler returns the JSON-RPC method registry
func (r *Router) Handler() *JSONRPCHandler {
	return r.handler
}

// SetupRoutes installs middleware and routes on engine
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	engine.Use(otelgin.Middleware("buzzblog-" + r.service))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	engine.GET("/health", r.healthHandler)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	engine.POST("/", r.handler.Handle)
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{
		"status":  "OK",
		"service": r.service,
	}
	if r.db != nil {
		if err := r.db.Health(ctx); err != nil {
			r.logger.Warn("Database unhealthy", zap.Error(err))
			status["status"] = "UNAVAILABLE"
			status["database"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
	}
	if r.cache != nil {
		if err := r.cache.Health(ctx); err != nil {
			// Counts fall back to the database.
			status["cache"] = err.Error()
		}
	}
	c.JSON(http.StatusOK, status)
}
