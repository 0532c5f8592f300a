package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/virtusia/backend/config"
	"github.com/virtusia/backend/internal/api"
	"github.com/virtusia/backend/internal/database"
	"github.com/virtusia/backend/internal/middleware"
	"github.com/virtusia/backend/internal/telemetry/metrics"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	logger *logrus.Logger
}

// NewServer wires middleware, telemetry and the API routes.
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, s3cfg *config.S3Config, logger *logrus.Logger) *Server {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metricsManager := metrics.NewManager("virtusia", "api", registry)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	router.Use(middleware.RequestMetrics(metricsManager))

	router.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api.SetupAPI(router, api.Deps{
		DB:      db,
		Redis:   redisClient,
		S3:      s3cfg,
		Metrics: metricsManager,
		Logger:  logger,
	}, cfg.JWTSecret)

	return &Server{
		router: router,
		db:     db,
		logger: logger,
	}
}

// Start begins serving and blocks until the listener fails or is shut down.
func (s *Server) Start(host, port string) error {
	s.http = &http.Server{
		Addr:              host + ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.WithField("addr", s.http.Addr).Info("starting server")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
