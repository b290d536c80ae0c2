// Package server wires the backend together: config, logging, metrics,
// the Jupyter client, the session registry, and the HTTP API.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/ananis25/jute/internal/api/http"
	"github.com/ananis25/jute/internal/api/middleware"
	"github.com/ananis25/jute/internal/config"
	"github.com/ananis25/jute/internal/jupyter"
	"github.com/ananis25/jute/internal/logging"
	"github.com/ananis25/jute/internal/monitoring"
	"github.com/ananis25/jute/internal/registry"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	router  *gin.Engine
	http    *http.Server
	client  *jupyter.Client
	kernels *registry.Manager
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// New creates a server instance from configuration.
func New(cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("initializing jute backend",
		zap.String("port", cfg.Server.Port),
		zap.String("jupyter_url", cfg.Jupyter.URL),
	)

	client, err := jupyter.NewClient(cfg.Jupyter.URL, cfg.Jupyter.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create jupyter client: %w", err)
	}

	kernels := registry.NewManager()
	metrics := monitoring.NewMetrics()

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	router.Use(monitoring.Middleware(metrics))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(client, kernels, metrics, logger)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Notebook files
	router.GET("/notebook", handlers.GetNotebook)
	router.PUT("/notebook", handlers.SaveNotebook)

	// Kernel sessions
	router.POST("/kernels", handlers.StartKernel)
	router.GET("/kernels", handlers.ListKernels)
	router.GET("/kernels/:id", handlers.GetKernel)
	router.DELETE("/kernels/:id", handlers.StopKernel)

	return &Server{
		router:  router,
		client:  client,
		kernels: kernels,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	addr := net.JoinHostPort(s.config.Server.Host, s.config.Server.Port)
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("listening", zap.String("addr", addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts the server down gracefully and kills every registered
// kernel session so nothing is left running on the remote server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, id := range s.kernels.List() {
		kernel, ok := s.kernels.Remove(id)
		if !ok {
			continue
		}
		if err := kernel.Kill(ctx); err != nil {
			s.logger.Warn("failed to kill kernel during shutdown",
				zap.String("kernel_id", id),
				zap.Error(err),
			)
		}
	}

	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
