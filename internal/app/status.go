package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// statusHandler responds to liveness probes.
func (a *App) statusHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// startStatusServer binds the listener and serves /health and /metrics in
// the background. Binding happens synchronously so the endpoints are
// reachable as soon as this returns; the bound address is available via
// StatusAddr.
func (a *App) startStatusServer(port int) error {
	a.logger.Debug("Configuring status server.")
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.statusHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(a.promReg, promhttp.HandlerOpts{}))

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("status server failed to listen on port %d: %w", port, err)
	}
	a.statusAddr = listener.Addr().String()
	a.statusServer = &http.Server{Handler: mux}

	go func() {
		a.logger.Info("🩺 Status server starting", "address", fmt.Sprintf("http://localhost:%d/health", listener.Addr().(*net.TCPAddr).Port))
		// Serve returns ErrServerClosed on graceful shutdown; anything else
		// is a real failure.
		if err := a.statusServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Status server failed unexpectedly", "error", err)
		}
	}()
	return nil
}

// StatusAddr returns the status server's bound address, or the empty string
// when the server is disabled.
func (a *App) StatusAddr() string {
	return a.statusAddr
}

// CloseStatusServer gracefully shuts down the status server if it is
// running, draining in-flight scrapes.
func (a *App) CloseStatusServer(ctx context.Context) error {
	if a.statusServer == nil {
		a.logger.Debug("Status server was not running.")
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	a.logger.Info("🩺 Shutting down status server...")
	if err := a.statusServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Status server shutdown failed", "error", err)
		return err
	}

	a.logger.Debug("Status server shut down gracefully.")
	return nil
}
