package cli

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/travelqa/staysuite/internal/config"
	"github.com/travelqa/staysuite/internal/handlers"
	"github.com/travelqa/staysuite/internal/services"
)

// ServerDependencies holds all dependencies needed for the fixture site
type ServerDependencies struct {
	ServerConfig        config.ServerConfig
	HomeHandler         http.Handler
	ResultsHandler      http.Handler
	DestinationsHandler http.Handler
	StaticDir           string
	Log                 logrus.FieldLogger
}

// BuildServerDependencies wires the handlers of the fixture site around
// catalog. Templates and static assets are read from below root.
func BuildServerDependencies(cfg config.ServerConfig, catalog services.CatalogService, root string, log logrus.FieldLogger) (ServerDependencies, error) {
	deps := ServerDependencies{
		ServerConfig: cfg,
		StaticDir:    filepath.Join(root, "static"),
		Log:          log,
	}

	homeHandler, err := handlers.NewHomeHandler(filepath.Join(root, "templates", "home.html"), catalog, log)
	if err != nil {
		return deps, fmt.Errorf("failed to create home handler: %w", err)
	}
	deps.HomeHandler = homeHandler

	resultsHandler, err := handlers.NewResultsHandler(filepath.Join(root, "templates", "results.html"), catalog, log)
	if err != nil {
		return deps, fmt.Errorf("failed to create results handler: %w", err)
	}
	deps.ResultsHandler = resultsHandler

	deps.DestinationsHandler = handlers.NewDestinationsHandler(catalog, log)
	return deps, nil
}

// RunServe starts the fixture site and blocks until a shutdown signal
func RunServe(deps ServerDependencies) error {
	listener, server, err := StartServer(deps)
	if err != nil {
		return err
	}
	defer listener.Close()

	return WaitForShutdown(server, nil, deps.logger())
}

// StartServer creates and starts the HTTP server, returning the listener and server
func StartServer(deps ServerDependencies) (net.Listener, *http.Server, error) {
	log := deps.logger()

	mux := http.NewServeMux()
	mux.Handle("/", deps.HomeHandler)
	mux.Handle("/results", deps.ResultsHandler)
	mux.Handle("/api/destinations", deps.DestinationsHandler)
	if deps.StaticDir != "" {
		mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(deps.StaticDir))))
	}

	listener, err := net.Listen("tcp", deps.ServerConfig.Addr())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	server := &http.Server{
		Handler:           logRequests(mux, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", listener.Addr().String()).Info("Server listening")
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Server error")
		}
	}()

	return listener, server, nil
}

// WaitForShutdown waits for a shutdown signal and gracefully shuts down the server.
// If shutdown is nil, a channel is created and registered with signal.Notify.
func WaitForShutdown(server *http.Server, shutdown chan os.Signal, log logrus.FieldLogger) error {
	return WaitForShutdownWithTimeout(server, shutdown, 30*time.Second, log)
}

// WaitForShutdownWithTimeout allows specifying a custom shutdown timeout (primarily for testing)
func WaitForShutdownWithTimeout(server *http.Server, shutdown chan os.Signal, shutdownTimeout time.Duration, log logrus.FieldLogger) error {
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		defer signal.Stop(shutdown)
	}

	sig := <-shutdown
	log.WithField("signal", sig.String()).Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		// http.Server.Close does not propagate listener close errors, so
		// failing here after a failed Shutdown is not expected in practice.
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	log.Info("Server stopped")
	return nil
}

func (d ServerDependencies) logger() logrus.FieldLogger {
	if d.Log == nil {
		return logrus.StandardLogger()
	}
	return d.Log
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// logRequests logs one debug line per request
func logRequests(next http.Handler, log logrus.FieldLogger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start),
		}).Debug("Request served")
	})
}
