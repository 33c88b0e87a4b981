package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTLSFiles(t *testing.T) {
	t.Run("no configuration disables TLS", func(t *testing.T) {
		app := newTestApplication(t)

		_, _, ok := app.tlsFiles()
		assert.False(t, ok)
	})

	t.Run("missing files fall back to plain HTTP", func(t *testing.T) {
		app := newTestApplication(t)
		app.config.Server.TLSCertFile = "/nonexistent/cert.pem"
		app.config.Server.TLSKeyFile = "/nonexistent/key.pem"

		_, _, ok := app.tlsFiles()
		assert.False(t, ok)
	})

	t.Run("existing pair enables TLS", func(t *testing.T) {
		dir := t.TempDir()
		certPath := filepath.Join(dir, "cert.pem")
		keyPath := filepath.Join(dir, "key.pem")
		require.NoError(t, os.WriteFile(certPath, []byte("cert"), 0o600))
		require.NoError(t, os.WriteFile(keyPath, []byte("key"), 0o600))

		app := newTestApplication(t)
		app.config.Server.TLSCertFile = certPath
		app.config.Server.TLSKeyFile = keyPath

		cert, key, ok := app.tlsFiles()
		assert.True(t, ok)
		assert.Equal(t, certPath, cert)
		assert.Equal(t, keyPath, key)
	})
}
