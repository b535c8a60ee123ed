package api_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/eventease/internal/api"
	"github.com/mcoot/eventease/internal/config"
)

func TestServerListensOnConfiguredAddr(t *testing.T) {
	cfg := &config.Config{Port: "9090"}

	serverConfig := api.DefaultServerConfig(cfg.Addr())
	assert.Equal(t, ":9090", serverConfig.Addr)
	assert.Zero(t, serverConfig.WriteTimeout)

	server := api.NewServer(http.NotFoundHandler(), serverConfig, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Equal(t, ":9090", server.Addr())
}

func TestServerShutdownStopsStart(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := api.NewServer(http.NotFoundHandler(), api.DefaultServerConfig("127.0.0.1:0"), logger)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, server.Shutdown(context.Background()))

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
