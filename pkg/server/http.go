package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/productcatalog/pkg/config"
	"github.com/abgdnv/productcatalog/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// HTTPOption customizes the server built by NewHTTPServer.
type HTTPOption func(*http.Server)

// WithTracing wraps the server handler with OpenTelemetry instrumentation.
// Spans are named after operation.
func WithTracing(operation string) HTTPOption {
	return func(s *http.Server) {
		s.Handler = otelhttp.NewHandler(s.Handler, operation)
	}
}

// NewHTTPServer returns a server listening on cfg.Port with the configured limits.
func NewHTTPServer(cfg config.HTTPConfig, handler http.Handler, opts ...HTTPOption) *http.Server {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.Timeout.Read,
		WriteTimeout:      cfg.Timeout.Write,
		IdleTimeout:       cfg.Timeout.Idle,
		ReadHeaderTimeout: cfg.Timeout.ReadHeader,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}
	for _, opt := range opts {
		opt(srv)
	}
	return srv
}

// NewChiRouter returns a router that tags requests with an ID, logs them and recovers from panics.
func NewChiRouter(logger *slog.Logger) *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(web.RequestIDInjector)
	mux.Use(web.StructuredLogger(logger))
	mux.Use(web.Recoverer(logger))
	return mux
}
