package pb

import (
	"context"

	"google.golang.org/grpc"
)

// jsonCallOption forces every client call onto the "json" codec
// registered in codec.go, since this server never registers the
// protobuf binary codec for these message types.
var jsonCallOption = grpc.CallContentSubtype("json")

type OrderServiceClient interface {
	PlaceOrder(ctx context.Context, in *PlaceOrderRequest, opts ...grpc.CallOption) (*PlaceOrderResponse, error)
	CancelOrder(ctx context.Context, in *CancelOrderRequest, opts ...grpc.CallOption) (*CancelOrderResponse, error)
	GetBBO(ctx context.Context, in *GetBBORequest, opts ...grpc.CallOption) (*GetBBOResponse, error)
	GetL2Snapshot(ctx context.Context, in *GetL2SnapshotRequest, opts ...grpc.CallOption) (*GetL2SnapshotResponse, error)
}

type orderServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewOrderServiceClient(cc grpc.ClientConnInterface) OrderServiceClient {
	return &orderServiceClient{cc}
}

func (c *orderServiceClient) PlaceOrder(ctx context.Context, in *PlaceOrderRequest, opts ...grpc.CallOption) (*PlaceOrderResponse, error) {
	out := new(PlaceOrderResponse)
	opts = append(opts, jsonCallOption)
	if err := c.cc.Invoke(ctx, "/loki.OrderService/PlaceOrder", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *orderServiceClient) CancelOrder(ctx context.Context, in *CancelOrderRequest, opts ...grpc.CallOption) (*CancelOrderResponse, error) {
	out := new(CancelOrderResponse)
	opts = append(opts, jsonCallOption)
	if err := c.cc.Invoke(ctx, "/loki.OrderService/CancelOrder", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *orderServiceClient) GetBBO(ctx context.Context, in *GetBBORequest, opts ...grpc.CallOption) (*GetBBOResponse, error) {
	out := new(GetBBOResponse)
	opts = append(opts, jsonCallOption)
	if err := c.cc.Invoke(ctx, "/loki.OrderService/GetBBO", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *orderServiceClient) GetL2Snapshot(ctx context.Context, in *GetL2SnapshotRequest, opts ...grpc.CallOption) (*GetL2SnapshotResponse, error) {
	out := new(GetL2SnapshotResponse)
	opts = append(opts, jsonCallOption)
	if err := c.cc.Invoke(ctx, "/loki.OrderService/GetL2Snapshot", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

type OrderServiceServer interface {
	PlaceOrder(context.Context, *PlaceOrderRequest) (*PlaceOrderResponse, error)
	CancelOrder(context.Context, *CancelOrderRequest) (*CancelOrderResponse, error)
	GetBBO(context.Context, *GetBBORequest) (*GetBBOResponse, error)
	GetL2Snapshot(context.Context, *GetL2SnapshotRequest) (*GetL2SnapshotResponse, error)
}

// UnimplementedOrderServiceServer can be embedded to get forward
// compatible implementations; methods panic deliberately left out,
// each returns codes.Unimplemented-equivalent via a plain error since
// this repo never imports google.golang.org/grpc/codes elsewhere.
type UnimplementedOrderServiceServer struct{}

func (UnimplementedOrderServiceServer) PlaceOrder(context.Context, *PlaceOrderRequest) (*PlaceOrderResponse, error) {
	return nil, errUnimplemented("PlaceOrder")
}
func (UnimplementedOrderServiceServer) CancelOrder(context.Context, *CancelOrderRequest) (*CancelOrderResponse, error) {
	return nil, errUnimplemented("CancelOrder")
}
func (UnimplementedOrderServiceServer) GetBBO(context.Context, *GetBBORequest) (*GetBBOResponse, error) {
	return nil, errUnimplemented("GetBBO")
}
func (UnimplementedOrderServiceServer) GetL2Snapshot(context.Context, *GetL2SnapshotRequest) (*GetL2SnapshotResponse, error) {
	return nil, errUnimplemented("GetL2Snapshot")
}

type unimplementedError string

func (e unimplementedError) Error() string { return "pb: method " + string(e) + " not implemented" }

func errUnimplemented(method string) error { return unimplementedError(method) }

func _OrderService_PlaceOrder_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(PlaceOrderRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderServiceServer).PlaceOrder(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/loki.OrderService/PlaceOrder"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OrderServiceServer).PlaceOrder(ctx, req.(*PlaceOrderRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _OrderService_CancelOrder_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CancelOrderRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderServiceServer).CancelOrder(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/loki.OrderService/CancelOrder"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OrderServiceServer).CancelOrder(ctx, req.(*CancelOrderRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _OrderService_GetBBO_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetBBORequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderServiceServer).GetBBO(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/loki.OrderService/GetBBO"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OrderServiceServer).GetBBO(ctx, req.(*GetBBORequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _OrderService_GetL2Snapshot_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetL2SnapshotRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderServiceServer).GetL2Snapshot(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/loki.OrderService/GetL2Snapshot"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OrderServiceServer).GetL2Snapshot(ctx, req.(*GetL2SnapshotRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// OrderService_ServiceDesc mirrors what protoc-gen-go-grpc emits, wired
// to the handlers above instead of generated unmarshal code.
var OrderService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "loki.OrderService",
	HandlerType: (*OrderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "PlaceOrder", Handler: _OrderService_PlaceOrder_Handler},
		{MethodName: "CancelOrder", Handler: _OrderService_CancelOrder_Handler},
		{MethodName: "GetBBO", Handler: _OrderService_GetBBO_Handler},
		{MethodName: "GetL2Snapshot", Handler: _OrderService_GetL2Snapshot_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/proto/order_service.proto",
}

func RegisterOrderServiceServer(s grpc.ServiceRegistrar, srv OrderServiceServer) {
	s.RegisterService(&OrderService_ServiceDesc, srv)
}
