// Package server runs the proxy side of the shim: an MCP server over
// streamable HTTP whose capabilities mirror the resolved backend.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	"github.com/toolfront/mcp-shim/internal"
	"github.com/toolfront/mcp-shim/internal/client"
	"github.com/toolfront/mcp-shim/internal/config"
)

const defaultAddr = "127.0.0.1:8000"

// Start connects to the resolved backend, mirrors it onto a local MCP
// server and serves it over streamable HTTP until SIGINT/SIGTERM or a
// fatal error. The listen address defaults to 127.0.0.1:8000 and can be
// overridden with SHIM_ADDR.
func Start(version string, backend config.Backend) error {
	addr := os.Getenv("SHIM_ADDR")
	if addr == "" {
		addr = defaultAddr
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mcpServer := server.NewMCPServer(
		"mcp-shim",
		version,
		server.WithResourceCapabilities(true, true),
		server.WithRecovery(),
		server.WithLogging(),
	)
	streamableServer := server.NewStreamableHTTPServer(mcpServer,
		server.WithEndpointPath("/mcp"),
	)

	backendClient, err := client.New(backend)
	if err != nil {
		return err
	}

	httpMux := http.NewServeMux()
	httpMux.Handle("/health", chainMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"mcp-shim"}`))
	}), loggerMiddleware("health")))
	httpMux.Handle("/mcp", chainMiddleware(streamableServer,
		recoverMiddleware("mcp"),
		loggerMiddleware("mcp"),
	))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: httpMux,
	}
	httpServer.RegisterOnShutdown(func() {
		internal.Logf("Closing backend client")
		_ = backendClient.Close()
	})

	info := mcp.Implementation{
		Name:    "mcp-shim",
		Version: version,
	}

	errChan := make(chan error, 2)

	var initGroup errgroup.Group
	initGroup.Go(func() error {
		internal.Logf("Connecting to backend")
		return backendClient.AddToMCPServer(ctx, info, mcpServer)
	})
	go func() {
		if err := initGroup.Wait(); err != nil {
			internal.LogError("Failed to initialize backend client: %v", err)
			errChan <- err
			return
		}
		internal.Logf("Backend client initialized")
	}()

	go func() {
		internal.Logf("Proxy listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			internal.LogError("HTTP server error: %v", err)
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-sigChan:
		internal.Logf("Shutdown signal received: %v", sig)
	case runErr = <-errChan:
		internal.Logf("Shutting down due to error: %v", runErr)
	case <-ctx.Done():
		internal.Logf("Context cancelled, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		internal.LogError("Server shutdown error: %v", err)
		if runErr == nil {
			runErr = err
		}
	}

	internal.Logf("Server shutdown complete")
	return runErr
}
