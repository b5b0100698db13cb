package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/goran-ethernal/HeaderIndexor/internal/common"
	"github.com/goran-ethernal/HeaderIndexor/internal/logger"
	"github.com/goran-ethernal/HeaderIndexor/internal/metrics"
	"github.com/goran-ethernal/HeaderIndexor/pkg/api/docs"
	"github.com/goran-ethernal/HeaderIndexor/pkg/config"
)

// Ensure docs are initialized
var _ = docs.SwaggerInfo

const shutdownCtxTimeout = 10 * time.Second

// Server represents the API HTTP server.
type Server struct {
	config  *config.APIConfig
	handler *Handler
	server  *http.Server
	log     *logger.Logger
}

// NewServer creates a new API server.
func NewServer(cfg *config.APIConfig, reader ChainReader, pruner ChainPruner, log *logger.Logger) *Server {
	if log == nil {
		log = logger.GetDefaultLogger()
	}
	log = log.WithComponent(common.ComponentAPI)

	handler := NewHandler(reader, pruner, log)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.Health)

	// Chain endpoints
	mux.HandleFunc("GET /api/v1/chain/state", handler.GetState)
	mux.HandleFunc("GET /api/v1/chain/tips", handler.GetTips)
	mux.HandleFunc("GET /api/v1/chain/longest", handler.GetLongest)
	mux.HandleFunc("POST /api/v1/chain/tips/{hash}/prune", handler.PruneTip)

	// Block endpoints
	mux.HandleFunc("GET /api/v1/blocks/{hash}", handler.GetBlock)
	mux.HandleFunc("GET /api/v1/blocks/{hash}/tips", handler.GetBlockTips)
	mux.HandleFunc("GET /api/v1/blocks/{hash}/children", handler.GetBlockChildren)
	mux.HandleFunc("GET /api/v1/blocks/{hash}/first-in-path", handler.GetFirstInPath)
	mux.HandleFunc("GET /api/v1/orphans", handler.GetOrphans)

	// Swagger documentation endpoints
	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
	))

	// Apply middleware
	var h http.Handler = mux
	h = RecoveryMiddleware(log)(h)
	h = LoggingMiddleware(log)(h)

	if cfg.CORS.Enabled {
		h = CORSMiddleware(cfg.CORS.AllowedOrigins)(h)
	}

	// Use configured timeouts (defaults already applied in config.ApplyDefaults)
	httpServer := &http.Server{
		Addr:         cfg.ListenAddress,
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout.Duration,
		WriteTimeout: cfg.WriteTimeout.Duration,
		IdleTimeout:  cfg.IdleTimeout.Duration,
	}

	return &Server{
		config:  cfg,
		handler: handler,
		server:  httpServer,
		log:     log,
	}
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start serves the API until ctx is cancelled, then shuts the server down gracefully.
func (s *Server) Start(ctx context.Context) error {
	if !s.config.Enabled {
		s.log.Info("API server is disabled")
		return nil
	}

	s.log.Infof("Starting API server on %s", s.config.ListenAddress)
	metrics.ComponentHealthSet(common.ComponentAPI, true)

	serveErr := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Errorf("API server error: %v", err)
			metrics.ComponentHealthSet(common.ComponentAPI, false)
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		return fmt.Errorf("API server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownCtxTimeout)
	defer cancel()

	s.log.Info("Shutting down API server...")
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("API server shutdown error: %w", err)
	}

	s.log.Info("API server stopped")
	return nil
}
