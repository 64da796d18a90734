// Package app wires the catalog: storage, event publishing and the HTTP and gRPC transports.
package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/abgdnv/productcatalog/internal/config"
	"github.com/abgdnv/productcatalog/internal/product/service"
	"github.com/abgdnv/productcatalog/internal/product/store"
	grpcImpl "github.com/abgdnv/productcatalog/internal/product/transport/grpc"
	"github.com/abgdnv/productcatalog/internal/product/transport/rest"
	"github.com/abgdnv/productcatalog/pkg/bootstrap"
	pconfig "github.com/abgdnv/productcatalog/pkg/config"
	"github.com/abgdnv/productcatalog/pkg/messaging"
	pnats "github.com/abgdnv/productcatalog/pkg/nats"
	"github.com/abgdnv/productcatalog/pkg/server"
	"google.golang.org/grpc"
)

// CleanupFunc releases a resource acquired during setup.
type CleanupFunc func()

type Dependencies struct {
	ProductService service.ProductService
	Logger         *slog.Logger
	Tracing        bool
}

func SetupDependencies(productStore store.ProductStore, publisher messaging.Publisher, logger *slog.Logger) *Dependencies {
	return &Dependencies{
		ProductService: service.NewService(productStore, publisher, logger),
		Logger:         logger,
	}
}

// OpenStore builds the ProductStore selected by cfg.Driver. For the database drivers it
// connects, optionally migrates, and returns a cleanup closing the pool.
func OpenStore(ctx context.Context, cfg pconfig.DatabaseConfig, logLevel string, logger *slog.Logger) (store.ProductStore, CleanupFunc, error) {
	if cfg.Driver == pconfig.DriverMemory {
		logger.Warn("Using the in-memory product store, data is lost on restart")
		return store.NewInMemoryStore(), func() {}, nil
	}

	dbPool, err := bootstrap.NewDbPool(ctx, cfg.URL, cfg.Timeout)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Successfully connected to the database!", "driver", cfg.Driver)

	if cfg.Migrate {
		if err := bootstrap.Migrate(cfg.URL, logger); err != nil {
			dbPool.Close()
			return nil, nil, err
		}
	}

	switch cfg.Driver {
	case pconfig.DriverGorm:
		gdb, err := bootstrap.NewGormDB(dbPool, logLevel)
		if err != nil {
			dbPool.Close()
			return nil, nil, err
		}
		return store.NewGormStore(gdb), dbPool.Close, nil
	default:
		return store.NewPgStore(dbPool), dbPool.Close, nil
	}
}

// NewPublisher returns a JetStream publisher when NATS is enabled and a no-op publisher otherwise.
func NewPublisher(ctx context.Context, cfg pconfig.NATSConfig, logger *slog.Logger) (messaging.Publisher, CleanupFunc, error) {
	if !cfg.Enabled {
		return messaging.NopPublisher{Logger: logger}, func() {}, nil
	}
	nc, err := pnats.NewClient(cfg.Url, cfg.Timeout)
	if err != nil {
		return nil, nil, err
	}
	js, err := pnats.NewJetStreamContext(nc)
	if err != nil {
		return nil, nil, err
	}
	streamCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := pnats.EnsureStream(streamCtx, js, cfg.Stream, messaging.ProductsSubjects); err != nil {
		nc.Close()
		return nil, nil, err
	}
	logger.Info("Connected to NATS JetStream", "stream", cfg.Stream)
	cleanup := func() {
		if err := nc.Drain(); err != nil {
			logger.Warn("failed to drain NATS connection", "error", err)
		}
	}
	return pnats.NewNatsPublisher(js), cleanup, nil
}

// SetupHttpHandler builds the router with middleware and the catalog routes.
// Used by E2E tests to serve the application from an httptest.Server.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	rest.NewHandler(deps.ProductService, deps.Logger).RegisterRoutes(mux)
	return mux
}

// SetupHttpServer creates and configures the HTTP server of the catalog.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	var opts []server.HTTPOption
	if deps.Tracing {
		opts = append(opts, server.WithTracing("catalog-http"))
	}
	return server.NewHTTPServer(cfg.HTTPServer, SetupHttpHandler(deps), opts...)
}

// SetupGrpcServer creates the gRPC server with the catalog service registered.
func SetupGrpcServer(deps *Dependencies, reflectionEnabled bool) *grpc.Server {
	register := func(s *grpc.Server) {
		grpcImpl.RegisterCatalogServer(s, grpcImpl.NewServer(deps.ProductService, deps.Logger))
	}
	return server.NewGRPCServer(server.GRPCConfig{Reflection: reflectionEnabled, Tracing: deps.Tracing}, deps.Logger, register)
}

// PprofServer returns the server exposing net/http/pprof on addr.
func PprofServer(addr string) *http.Server {
	return &http.Server{Addr: addr, Handler: http.DefaultServeMux}
}
