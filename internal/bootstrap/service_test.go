//go:build unit

package bootstrap

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/LerianStudio/docker-api/pkg/log"
	"github.com/LerianStudio/docker-api/pkg/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_ServesAndDrains(t *testing.T) {
	cfg := &Config{Port: 0, Environment: "test"}
	svc := newService(cfg, NewProcess(time.Now(), cfg.Environment), log.NewNop(), nil)

	shutdown := make(chan struct{})
	svc.Server.WithShutdownChannel(shutdown)

	done := make(chan error, 1)

	go func() { done <- svc.Run() }()

	select {
	case <-svc.Server.ServersStarted():
	case err := <-done:
		t.Fatalf("service stopped before serving: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the service to start")
	}

	base := fmt.Sprintf("http://127.0.0.1:%d", svc.Server.Addr().(*net.TCPAddr).Port)

	resp, err := http.Get(base + "/")
	require.NoError(t, err)

	var welcome map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&welcome))
	require.NoError(t, resp.Body.Close())

	assert.Equal(t, "test", welcome["environment"])
	assert.Equal(t, "1.0.0", welcome["version"])

	resp, err = http.Post(base+"/api/users", "application/json", strings.NewReader(`{"name":"Dana"}`))
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Contains(t, string(raw), `"name":"Dana"`)

	close(shutdown)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for the service to drain")
	}

	assert.Equal(t, server.StateTerminated, svc.Server.State())
}
