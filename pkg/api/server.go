// Package api dmidb REST API
//
// @title           dmidb REST API
// @version         1.0.0
// @description     Capture, archive and inspect SMBIOS/DMI tables.
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in              header
// @name            X-API-Key
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ssargent/dmidb/pkg/acquire"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// NewRouter wires every route of server. Metrics are served from gatherer.
func NewRouter(server *Server, gatherer prometheus.Gatherer) http.Handler {
	metrics := server.metrics

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger(server.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// API key authentication middleware for protected routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(metrics.InstrumentAuthMiddleware(apiKeyMiddleware(server.config.APIKey)))

		// Health check
		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		// Snapshots
		r.Post("/snapshots", metrics.InstrumentHandler("POST", "/api/v1/snapshots", server.handleCapture))
		r.Post("/snapshots/upload", metrics.InstrumentHandler("POST", "/api/v1/snapshots/upload", server.handleUpload))
		r.Get("/snapshots", metrics.InstrumentHandler("GET", "/api/v1/snapshots", server.handleListSnapshots))
		r.Get("/snapshots/{id}", metrics.InstrumentHandler("GET", "/api/v1/snapshots/{id}", server.handleGetSnapshot))
		r.Delete("/snapshots/{id}", metrics.InstrumentHandler("DELETE", "/api/v1/snapshots/{id}", server.handleDeleteSnapshot))
		r.Get("/snapshots/{id}/raw", metrics.InstrumentHandler("GET", "/api/v1/snapshots/{id}/raw", server.handleRaw))

		// Decoded views
		r.Get("/snapshots/{id}/structures", metrics.InstrumentHandler("GET", "/api/v1/snapshots/{id}/structures", server.handleStructures))
		r.Get("/snapshots/{id}/structures/{handle}", metrics.InstrumentHandler("GET", "/api/v1/snapshots/{id}/structures/{handle}", server.handleStructure))
		r.Get("/snapshots/{id}/inventory", metrics.InstrumentHandler("GET", "/api/v1/snapshots/{id}/inventory", server.handleInventory))
	})

	// Swagger documentation (unprotected)
	r.Get("/swagger/*", swaggerHandler(server.logger))

	return r
}

// StartServer serves the API until ctx is cancelled, then shuts down
// gracefully. Metrics are registered with the default Prometheus registry.
func StartServer(ctx context.Context, store ISnapshotStore, source acquire.Source, config ServerConfig, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Set Swagger host with port
	SwaggerInfo.Host = fmt.Sprintf("localhost:%d", config.Port)

	metrics := NewMetrics(prometheus.DefaultRegisterer)
	server := NewServer(store, source, config, metrics, logger)

	addr := net.JoinHostPort(config.Bind, strconv.Itoa(config.Port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(server, prometheus.DefaultGatherer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start background metrics updater
	updaterCtx, stopUpdater := context.WithCancel(ctx)
	defer stopUpdater()
	go server.startMetricsUpdater(updaterCtx)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting dmidb REST API server",
			zap.String("addr", addr),
			zap.String("metrics", fmt.Sprintf("http://%s/metrics", addr)),
		)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

func swaggerHandler(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/swagger/", "/swagger/index.html":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(swaggerUI))
		case "/swagger/swagger.json":
			doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
			if err != nil {
				logger.Error("failed to generate swagger doc", zap.Error(err))
				http.Error(w, "Failed to generate Swagger documentation", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(doc))
		default:
			http.NotFound(w, r)
		}
	}
}

const swaggerUI = `<!DOCTYPE html>
<html>
<head>
	 <title>dmidb API Documentation</title>
	 <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui.css" />
</head>
<body>
	 <div id="swagger-ui"></div>
	 <script src="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui-bundle.js"></script>
	 <script>
	   window.onload = function() {
	     SwaggerUIBundle({
	       url: '/swagger/swagger.json',
	       dom_id: '#swagger-ui',
	       presets: [
	         SwaggerUIBundle.presets.apis,
	         SwaggerUIBundle.presets.standalone
	       ]
	     });
	   };
	 </script>
</body>
</html>`
