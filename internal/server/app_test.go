package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/studynotes/internal/logging"
	"github.com/dmitrijs2005/studynotes/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabaseDSN = filepath.Join(dir, "app.db")
	cfg.UploadDir = filepath.Join(dir, "uploads")
	cfg.EndpointAddrHTTP = freeAddr(t)
	return cfg
}

func TestNewApp_BadStorageBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.StorageBackend = "tape"

	_, err := NewApp(context.Background(), cfg, logging.Nop())
	require.Error(t, err)
}

func TestApp_RunServesAndStops(t *testing.T) {
	cfg := testConfig(t)
	cfg.EndpointAddrGRPCHealth = freeAddr(t)

	app, err := NewApp(context.Background(), cfg, logging.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://%s/healthz", cfg.EndpointAddrHTTP))
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 3*time.Second, 20*time.Millisecond)

	conn, err := grpc.NewClient(cfg.EndpointAddrGRPCHealth, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		cctx, ccancel := context.WithTimeout(context.Background(), time.Second)
		defer ccancel()
		resp, err := healthpb.NewHealthClient(conn).Check(cctx, &healthpb.HealthCheckRequest{})
		return err == nil && resp.GetStatus() == healthpb.HealthCheckResponse_SERVING
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after context cancel")
	}

	assert.Error(t, app.db.Ping(), "db must be closed after Run returns")
}

func TestApp_RunStopsWhenHTTPFails(t *testing.T) {
	cfg := testConfig(t)

	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()
	cfg.EndpointAddrHTTP = busy.Addr().String()

	app, err := NewApp(context.Background(), cfg, logging.Nop())
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		app.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app kept running without an HTTP listener")
	}
}
