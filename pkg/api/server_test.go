package api

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goran-ethernal/HeaderIndexor/internal/common"
	"github.com/goran-ethernal/HeaderIndexor/internal/logger"
	apimocks "github.com/goran-ethernal/HeaderIndexor/pkg/api/mocks"
	"github.com/goran-ethernal/HeaderIndexor/pkg/config"
	"github.com/stretchr/testify/require"
)

func testAPIConfig(enabled bool, address string) *config.APIConfig {
	return &config.APIConfig{
		Enabled:       enabled,
		ListenAddress: address,
		ReadTimeout:   common.NewDuration(5 * time.Second),
		WriteTimeout:  common.NewDuration(10 * time.Second),
		IdleTimeout:   common.NewDuration(time.Minute),
	}
}

func TestNewServer(t *testing.T) {
	t.Parallel()

	cfg := testAPIConfig(true, "127.0.0.1:9090")
	server := NewServer(cfg, apimocks.NewChainReader(t), apimocks.NewChainPruner(t), nil)

	require.NotNil(t, server.handler)
	require.NotNil(t, server.Handler())
	require.Equal(t, "127.0.0.1:9090", server.server.Addr)
	require.Equal(t, 5*time.Second, server.server.ReadTimeout)
	require.Equal(t, 10*time.Second, server.server.WriteTimeout)
	require.Equal(t, time.Minute, server.server.IdleTimeout)
}

func TestServer_CORS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		cors       config.CORSConfig
		expectCORS bool
	}{
		{name: "disabled", cors: config.CORSConfig{Enabled: false, AllowedOrigins: []string{"*"}}},
		{name: "enabled", cors: config.CORSConfig{Enabled: true, AllowedOrigins: []string{"*"}}, expectCORS: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := testAPIConfig(true, "127.0.0.1:0")
			cfg.CORS = tt.cors
			server := NewServer(cfg, apimocks.NewChainReader(t), apimocks.NewChainPruner(t), logger.NewNopLogger())

			req := httptest.NewRequest(http.MethodOptions, "/api/v1/chain/tips", nil)
			req.Header.Set("Origin", "https://explorer.example")
			w := httptest.NewRecorder()

			server.Handler().ServeHTTP(w, req)

			if tt.expectCORS {
				require.Equal(t, http.StatusOK, w.Code)
				require.Equal(t, "https://explorer.example", w.Header().Get("Access-Control-Allow-Origin"))
			} else {
				require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestServer_Swagger(t *testing.T) {
	t.Parallel()

	server := NewServer(testAPIConfig(true, "127.0.0.1:0"), apimocks.NewChainReader(t), apimocks.NewChainPruner(t), logger.NewNopLogger())

	w := serve(t, server.Handler(), http.MethodGet, "/swagger/doc.json")

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "HeaderIndexor API")
	require.Contains(t, w.Body.String(), "/chain/tips/{hash}/prune")
}

func TestServer_Start_Disabled(t *testing.T) {
	t.Parallel()

	server := NewServer(testAPIConfig(false, "127.0.0.1:0"), apimocks.NewChainReader(t), apimocks.NewChainPruner(t), logger.NewNopLogger())

	done := make(chan error, 1)
	go func() {
		done <- server.Start(context.Background())
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Start() did not return when the server is disabled")
	}
}

func TestServer_Start_GracefulShutdown(t *testing.T) {
	t.Parallel()

	address := freeAddress(t)
	server := NewServer(testAPIConfig(true, address), apimocks.NewChainReader(t), apimocks.NewChainPruner(t), logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- server.Start(ctx)
	}()

	require.Eventually(t, func() bool {
		conn, err := net.DialTimeout("tcp", address, 100*time.Millisecond)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 5*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(shutdownCtxTimeout + 5*time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_Start_ListenFailure(t *testing.T) {
	t.Parallel()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	server := NewServer(testAPIConfig(true, listener.Addr().String()),
		apimocks.NewChainReader(t), apimocks.NewChainPruner(t), logger.NewNopLogger())

	select {
	case err := <-startAsync(server):
		require.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Start() did not report the listen failure")
	}
}

func startAsync(server *Server) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- server.Start(context.Background())
	}()

	return done
}

// freeAddress reserves a loopback port and releases it for the server under test.
func freeAddress(t *testing.T) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	address := listener.Addr().String()
	require.NoError(t, listener.Close())

	return address
}
