// Package grpc provides the gRPC transport of the product catalog.
package grpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	perrors "github.com/abgdnv/productcatalog/internal/product/errors"
	"github.com/abgdnv/productcatalog/internal/product/model"
	"github.com/abgdnv/productcatalog/internal/product/service"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var _ CatalogServer = (*Server)(nil)

type Server struct {
	service service.ProductService
	logger  *slog.Logger
}

func NewServer(service service.ProductService, logger *slog.Logger) *Server {
	return &Server{
		service: service,
		logger:  logger.With("component", "grpc"),
	}
}

func (s *Server) GetProduct(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	id, err := model.ParseID(req.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	found, err := s.service.FindByID(ctx, id)
	if err != nil {
		return nil, s.toStatus(ctx, "GetProduct", err)
	}
	return toStruct(found)
}

func (s *Server) ListProducts(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	filter, err := toFilter(req.AsMap())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	list, err := s.service.List(ctx, filter)
	if err != nil {
		return nil, s.toStatus(ctx, "ListProducts", err)
	}
	values := make([]*structpb.Value, 0, len(list))
	for i := range list {
		st, err := toStruct(&list[i])
		if err != nil {
			return nil, err
		}
		values = append(values, structpb.NewStructValue(st))
	}
	return &structpb.ListValue{Values: values}, nil
}

func (s *Server) CreateProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var p model.Product
	if err := p.Deserialize(req.AsMap()); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := s.service.Create(ctx, &p); err != nil {
		return nil, s.toStatus(ctx, "CreateProduct", err)
	}
	return toStruct(&p)
}

func (s *Server) UpdateProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	data := req.AsMap()
	rawID, ok := data["id"].(string)
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "%v: update called with empty ID field", perrors.ErrDataValidation)
	}
	id, err := model.ParseID(rawID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	p := model.Product{ID: id}
	if err := p.Deserialize(data); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := s.service.Update(ctx, &p); err != nil {
		return nil, s.toStatus(ctx, "UpdateProduct", err)
	}
	return toStruct(&p)
}

func (s *Server) DeleteProduct(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	id, err := model.ParseID(req.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := s.service.Delete(ctx, &model.Product{ID: id}); err != nil {
		return nil, s.toStatus(ctx, "DeleteProduct", err)
	}
	return &emptypb.Empty{}, nil
}

// toStatus maps service errors to gRPC status codes. Internal details are logged, not returned.
func (s *Server) toStatus(ctx context.Context, method string, err error) error {
	switch {
	case errors.Is(err, perrors.ErrProductNotFound):
		return status.Error(codes.NotFound, perrors.ErrProductNotFound.Error())
	case errors.Is(err, perrors.ErrDataValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		s.logger.ErrorContext(ctx, "service call failed", "method", method, "error", err)
		return status.Error(codes.Internal, "internal server error")
	}
}

func toStruct(p *model.Product) (*structpb.Struct, error) {
	st, err := structpb.NewStruct(p.Serialize())
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode product: %v", err)
	}
	return st, nil
}

// toFilter reads the optional name, category, available and price keys of a list request.
func toFilter(data map[string]any) (service.Filter, error) {
	var filter service.Filter
	if raw, ok := data["name"]; ok {
		name, ok := raw.(string)
		if !ok {
			return filter, fmt.Errorf("%w: invalid type for string [name]: %T", perrors.ErrDataValidation, raw)
		}
		filter.Name = &name
	}
	if raw, ok := data["category"]; ok {
		name, ok := raw.(string)
		if !ok {
			return filter, fmt.Errorf("%w: invalid type for category [category]: %T", perrors.ErrDataValidation, raw)
		}
		category, err := model.ParseCategory(name)
		if err != nil {
			return filter, err
		}
		filter.Category = &category
	}
	if raw, ok := data["available"]; ok {
		available, ok := raw.(bool)
		if !ok {
			return filter, fmt.Errorf("%w: invalid type for boolean [available]: %T", perrors.ErrDataValidation, raw)
		}
		filter.Available = &available
	}
	if raw, ok := data["price"]; ok {
		price, err := model.ParsePrice(raw)
		if err != nil {
			return filter, err
		}
		filter.Price = &price
	}
	return filter, nil
}
