package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/goran-ethernal/HeaderIndexor/internal/logger"
	"github.com/goran-ethernal/HeaderIndexor/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the default Prometheus registry over HTTP.
type Server struct {
	config *config.MetricsConfig
	log    *logger.Logger
	server *http.Server
}

// NewServer creates a metrics server. Nothing listens until Start is called.
func NewServer(cfg *config.MetricsConfig, log *logger.Logger) *Server {
	return &Server{
		config: cfg,
		log:    log,
	}
}

// Handler serves the registry at the configured path and a liveness probe at /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle(s.config.Path, promhttp.InstrumentMetricHandler(
		prometheus.DefaultRegisterer,
		promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
			ErrorLog:      zapErrorLog{s.log},
			ErrorHandling: promhttp.ContinueOnError,
		}),
	))

	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})

	return mux
}

// Start binds the listen address and serves in the background until Stop or ctx is done.
func (s *Server) Start(ctx context.Context) error {
	if !s.config.Enabled {
		return nil
	}

	listener, err := net.Listen("tcp", s.config.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.ListenAddress, err)
	}

	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Errorf("metrics server stopped unexpectedly: %v", err)
		}
	}()

	s.log.Infof("serving metrics: addr=%s path=%s", listener.Addr(), s.config.Path)

	return nil
}

// Stop shuts the server down. It is a no-op when the server never started.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	server := s.server
	s.server = nil

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown metrics server: %w", err)
	}

	return nil
}

// zapErrorLog adapts the logger to promhttp.Logger.
type zapErrorLog struct {
	log *logger.Logger
}

func (l zapErrorLog) Println(v ...any) {
	l.log.Error(v...)
}
