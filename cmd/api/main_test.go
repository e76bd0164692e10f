//go:build unit

package main

import (
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Help(t *testing.T) {
	assert.Equal(t, 0, run(time.Now(), []string{"--help"}))
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	assert.Equal(t, 1, run(time.Now(), nil))
}

func TestRun_InvalidLogLevel(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "loud")

	assert.Equal(t, 1, run(time.Now(), nil))
}

func TestRun_BindFailure(t *testing.T) {
	busy, err := net.Listen("tcp", "0.0.0.0:0")
	require.NoError(t, err)

	defer busy.Close()

	t.Setenv("PORT", strconv.Itoa(busy.Addr().(*net.TCPAddr).Port))
	t.Setenv("LOG_LEVEL", "error")

	assert.Equal(t, 1, run(time.Now(), nil))
}
