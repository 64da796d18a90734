// Package client is a typed gRPC client of the product catalog.
package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	perrors "github.com/abgdnv/productcatalog/internal/product/errors"
	"github.com/abgdnv/productcatalog/internal/product/model"
	"github.com/abgdnv/productcatalog/internal/product/service"
	catalogpb "github.com/abgdnv/productcatalog/internal/product/transport/grpc"
	"github.com/abgdnv/productcatalog/pkg/client/grpc/interceptors"
	"github.com/abgdnv/productcatalog/pkg/config"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ProductClient calls a remote catalog and converts its payloads back into products.
// Errors carry the same sentinels as the local service.
type ProductClient struct {
	conn    *grpc.ClientConn
	catalog catalogpb.CatalogClient
	health  healthpb.HealthClient
}

// New connects to cfg.Addr. Every call is retried on transient failures, guarded by a circuit
// breaker and bounded by cfg.Timeout per attempt. Extra dial options are appended last.
func New(cfg config.GrpcClientConfig, tracing bool, opts ...grpc.DialOption) (*ProductClient, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithChainUnaryInterceptor(
			interceptors.NewRetryInterceptor(cfg.Resilience.Retry),
			interceptors.NewCircuitBreaker(catalogpb.CatalogServiceName, cfg.Resilience.CircuitBreaker),
			interceptors.UnaryClientTimeoutInterceptor(cfg.Timeout),
		),
	}
	if tracing {
		dialOpts = append(dialOpts, grpc.WithStatsHandler(otelgrpc.NewClientHandler()))
	}
	dialOpts = append(dialOpts, opts...)

	conn, err := grpc.NewClient(cfg.Addr, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC client connection: %w", err)
	}
	return &ProductClient{
		conn:    conn,
		catalog: catalogpb.NewCatalogClient(conn),
		health:  healthpb.NewHealthClient(conn),
	}, nil
}

func (c *ProductClient) Close() error {
	return c.conn.Close()
}

// Check reports whether the catalog service is serving.
func (c *ProductClient) Check(ctx context.Context) error {
	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{Service: catalogpb.CatalogServiceName})
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("catalog is %s", resp.GetStatus())
	}
	return nil
}

func (c *ProductClient) Get(ctx context.Context, id string) (*model.Product, error) {
	res, err := c.catalog.GetProduct(ctx, wrapperspb.String(id))
	if err != nil {
		return nil, fromStatus(err)
	}
	return fromStruct(res)
}

func (c *ProductClient) List(ctx context.Context, filter service.Filter) ([]model.Product, error) {
	req, err := structpb.NewStruct(filterMap(filter))
	if err != nil {
		return nil, fmt.Errorf("failed to encode filter: %w", err)
	}
	res, err := c.catalog.ListProducts(ctx, req)
	if err != nil {
		return nil, fromStatus(err)
	}
	products := make([]model.Product, 0, len(res.GetValues()))
	for _, v := range res.GetValues() {
		p, err := fromStruct(v.GetStructValue())
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, nil
}

// Create stores p remotely and copies the assigned ID into it.
func (c *ProductClient) Create(ctx context.Context, p *model.Product) error {
	req, err := toStruct(p)
	if err != nil {
		return err
	}
	res, err := c.catalog.CreateProduct(ctx, req)
	if err != nil {
		return fromStatus(err)
	}
	created, err := fromStruct(res)
	if err != nil {
		return err
	}
	p.ID = created.ID
	return nil
}

func (c *ProductClient) Update(ctx context.Context, p *model.Product) error {
	if !p.IsPersisted() {
		return fmt.Errorf("%w: update called with empty ID field", perrors.ErrDataValidation)
	}
	req, err := toStruct(p)
	if err != nil {
		return err
	}
	if _, err := c.catalog.UpdateProduct(ctx, req); err != nil {
		return fromStatus(err)
	}
	return nil
}

func (c *ProductClient) Delete(ctx context.Context, p *model.Product) error {
	if !p.IsPersisted() {
		return fmt.Errorf("%w: delete called with empty ID field", perrors.ErrDataValidation)
	}
	if _, err := c.catalog.DeleteProduct(ctx, wrapperspb.String(p.ID.String())); err != nil {
		return fromStatus(err)
	}
	return nil
}

// fromStatus turns gRPC status errors back into the catalog's sentinel errors.
func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.NotFound:
		return perrors.ErrProductNotFound
	case codes.InvalidArgument:
		// the server message already carries the validation prefix
		msg := strings.TrimPrefix(st.Message(), perrors.ErrDataValidation.Error()+": ")
		return fmt.Errorf("%w: %s", perrors.ErrDataValidation, msg)
	default:
		return fmt.Errorf("catalog call failed: %w", err)
	}
}

func toStruct(p *model.Product) (*structpb.Struct, error) {
	st, err := structpb.NewStruct(p.Serialize())
	if err != nil {
		return nil, fmt.Errorf("failed to encode product: %w", err)
	}
	return st, nil
}

func fromStruct(st *structpb.Struct) (*model.Product, error) {
	if st == nil {
		return nil, errors.New("catalog returned an empty product")
	}
	data := st.AsMap()
	var p model.Product
	if raw, ok := data["id"].(string); ok {
		id, err := model.ParseID(raw)
		if err != nil {
			return nil, err
		}
		p.ID = id
	}
	if err := p.Deserialize(data); err != nil {
		return nil, fmt.Errorf("catalog returned an invalid product: %w", err)
	}
	return &p, nil
}

func filterMap(f service.Filter) map[string]any {
	m := make(map[string]any)
	if f.Name != nil {
		m["name"] = *f.Name
	}
	if f.Category != nil {
		m["category"] = f.Category.String()
	}
	if f.Available != nil {
		m["available"] = *f.Available
	}
	if f.Price != nil {
		m["price"] = f.Price.String()
	}
	return m
}
