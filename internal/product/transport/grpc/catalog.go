package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The catalog service exchanges protobuf well-known types: a product travels as a
// google.protobuf.Struct holding its serialized form and is addressed by a StringValue id.

const (
	CatalogServiceName = "catalog.v1.ProductCatalog"

	GetProductFullMethodName    = "/" + CatalogServiceName + "/GetProduct"
	ListProductsFullMethodName  = "/" + CatalogServiceName + "/ListProducts"
	CreateProductFullMethodName = "/" + CatalogServiceName + "/CreateProduct"
	UpdateProductFullMethodName = "/" + CatalogServiceName + "/UpdateProduct"
	DeleteProductFullMethodName = "/" + CatalogServiceName + "/DeleteProduct"
)

// CatalogServer is the server API for the ProductCatalog service.
type CatalogServer interface {
	GetProduct(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	ListProducts(context.Context, *structpb.Struct) (*structpb.ListValue, error)
	CreateProduct(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateProduct(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteProduct(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
}

// RegisterCatalogServer registers srv on s.
func RegisterCatalogServer(s grpc.ServiceRegistrar, srv CatalogServer) {
	s.RegisterService(&CatalogServiceDesc, srv)
}

// unaryHandler builds a grpc.MethodDesc handler for a method taking Req.
func unaryHandler[Req any, Resp any](fullMethod string, call func(CatalogServer, context.Context, *Req) (Resp, error)) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CatalogServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(CatalogServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// CatalogServiceDesc is the grpc.ServiceDesc for the ProductCatalog service.
var CatalogServiceDesc = grpc.ServiceDesc{
	ServiceName: CatalogServiceName,
	HandlerType: (*CatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetProduct",
			Handler: unaryHandler(GetProductFullMethodName, func(s CatalogServer, ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
				return s.GetProduct(ctx, in)
			}),
		},
		{
			MethodName: "ListProducts",
			Handler: unaryHandler(ListProductsFullMethodName, func(s CatalogServer, ctx context.Context, in *structpb.Struct) (*structpb.ListValue, error) {
				return s.ListProducts(ctx, in)
			}),
		},
		{
			MethodName: "CreateProduct",
			Handler: unaryHandler(CreateProductFullMethodName, func(s CatalogServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return s.CreateProduct(ctx, in)
			}),
		},
		{
			MethodName: "UpdateProduct",
			Handler: unaryHandler(UpdateProductFullMethodName, func(s CatalogServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return s.UpdateProduct(ctx, in)
			}),
		},
		{
			MethodName: "DeleteProduct",
			Handler: unaryHandler(DeleteProductFullMethodName, func(s CatalogServer, ctx context.Context, in *wrapperspb.StringValue) (*emptypb.Empty, error) {
				return s.DeleteProduct(ctx, in)
			}),
		},
	},
	Streams: []grpc.StreamDesc{},
}

// CatalogClient is the client API for the ProductCatalog service.
type CatalogClient interface {
	GetProduct(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListProducts(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error)
	CreateProduct(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	UpdateProduct(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	DeleteProduct(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type catalogClient struct {
	cc grpc.ClientConnInterface
}

func NewCatalogClient(cc grpc.ClientConnInterface) CatalogClient {
	return &catalogClient{cc}
}

func (c *catalogClient) GetProduct(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetProductFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *catalogClient) ListProducts(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, ListProductsFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *catalogClient) CreateProduct(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CreateProductFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *catalogClient) UpdateProduct(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, UpdateProductFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *catalogClient) DeleteProduct(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, DeleteProductFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
