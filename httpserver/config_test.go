package httpserver_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weirhq/weir/httpserver"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := httpserver.DefaultConfig()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.WriteTimeout)
	assert.Equal(t, 60*time.Second, cfg.IdleTimeout)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 1<<20, cfg.MaxHeaderBytes)
}

func TestLoadConfig(t *testing.T) {
	t.Run("uses defaults when environment is empty", func(t *testing.T) {
		cfg, err := httpserver.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	})

	t.Run("reads environment overrides", func(t *testing.T) {
		t.Setenv("SERVER_ADDR", ":9999")
		t.Setenv("SERVER_READ_TIMEOUT", "5s")

		cfg, err := httpserver.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, ":9999", cfg.Addr)
		assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	})

	t.Run("rejects unparseable values", func(t *testing.T) {
		t.Setenv("SERVER_READ_TIMEOUT", "soon")

		_, err := httpserver.LoadConfig()
		assert.Error(t, err)
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("requires an address", func(t *testing.T) {
		t.Parallel()

		_, err := httpserver.NewFromConfig(httpserver.Config{})
		assert.ErrorIs(t, err, httpserver.ErrMissingAddress)
	})

	t.Run("builds a server from defaults", func(t *testing.T) {
		t.Parallel()

		srv, err := httpserver.NewFromConfig(httpserver.DefaultConfig())
		require.NoError(t, err)
		assert.NotNil(t, srv)
	})

	t.Run("rejects unreadable certificates", func(t *testing.T) {
		t.Parallel()

		cfg := httpserver.DefaultConfig()
		cfg.TLSCertFile = "/nonexistent/cert.pem"
		cfg.TLSKeyFile = "/nonexistent/key.pem"

		_, err := httpserver.NewFromConfig(cfg)
		assert.ErrorIs(t, err, httpserver.ErrFailedLoadCert)
	})
}
