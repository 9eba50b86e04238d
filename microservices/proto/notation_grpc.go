// Service bindings for notation.proto. The messages are protobuf well-known
// types, so only the service plumbing is declared here.

package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	NotationService_Normalize_FullMethodName = "/pgn4.NotationService/Normalize"
	NotationService_Inspect_FullMethodName   = "/pgn4.NotationService/Inspect"
)

type NotationServiceClient interface {
	Normalize(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Inspect(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type notationServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewNotationServiceClient(cc grpc.ClientConnInterface) NotationServiceClient {
	return &notationServiceClient{cc}
}

func (c *notationServiceClient) Normalize(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	err := c.cc.Invoke(ctx, NotationService_Normalize_FullMethodName, in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *notationServiceClient) Inspect(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	err := c.cc.Invoke(ctx, NotationService_Inspect_FullMethodName, in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

type NotationServiceServer interface {
	Normalize(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	Inspect(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
}

// UnimplementedNotationServiceServer can be embedded to keep servers
// compiling when methods are added.
type UnimplementedNotationServiceServer struct{}

func (UnimplementedNotationServiceServer) Normalize(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Normalize not implemented")
}

func (UnimplementedNotationServiceServer) Inspect(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Inspect not implemented")
}

func RegisterNotationServiceServer(s grpc.ServiceRegistrar, srv NotationServiceServer) {
	s.RegisterService(&NotationService_ServiceDesc, srv)
}

func _NotationService_Normalize_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NotationServiceServer).Normalize(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: NotationService_Normalize_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NotationServiceServer).Normalize(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _NotationService_Inspect_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NotationServiceServer).Inspect(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: NotationService_Inspect_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NotationServiceServer).Inspect(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

var NotationService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "pgn4.NotationService",
	HandlerType: (*NotationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Normalize",
			Handler:    _NotationService_Normalize_Handler,
		},
		{
			MethodName: "Inspect",
			Handler:    _NotationService_Inspect_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "notation.proto",
}
