package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// shutdownTimeout bounds how long in-flight requests get to finish during
// graceful shutdown.
const shutdownTimeout = 10 * time.Second

// startHTTPServer starts the HTTP server with graceful shutdown support.
// It takes a context that can be used to signal cancellation and the router.
// Returns an error if the server fails to start or encounters problems.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) error {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", app.config.Server.Port),
		Handler: router,
	}

	serverCtx, cancelServer := context.WithCancel(ctx)
	defer cancelServer()

	// Set up graceful shutdown with signal handling
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	certFile, keyFile, useTLS := app.tlsFiles()

	// Start server in a goroutine to allow for graceful shutdown
	go func() {
		var err error
		if useTLS {
			app.logger.Info("Starting server with TLS", "port", app.config.Server.Port)
			err = server.ListenAndServeTLS(certFile, keyFile)
		} else {
			app.logger.Info("Starting server", "port", app.config.Server.Port)
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error("Server failed", "error", err)
			cancelServer()
		}
	}()

	// Wait for shutdown signal or context cancellation
	select {
	case <-shutdownCh:
		app.logger.Info("Shutting down server...")
	case <-serverCtx.Done():
		app.logger.Info("Server context canceled, shutting down...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("Server shutdown failed", "error", err)
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	app.logger.Info("Server shutdown completed")
	return nil
}

// tlsFiles reports whether the configured TLS certificate and key are both
// present on disk. A partial or missing pair falls back to plain HTTP with
// a warning rather than refusing to start.
func (app *application) tlsFiles() (certFile, keyFile string, ok bool) {
	certFile = app.config.Server.TLSCertFile
	keyFile = app.config.Server.TLSKeyFile
	if certFile == "" || keyFile == "" {
		return "", "", false
	}

	for _, path := range []string{certFile, keyFile} {
		if _, err := os.Stat(path); err != nil {
			app.logger.Warn("TLS file not readable, falling back to plain HTTP",
				"path", path, "error", err)
			return "", "", false
		}
	}

	return certFile, keyFile, true
}
