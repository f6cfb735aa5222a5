package grpcserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "jobtracker.v1.Tracker"

// TrackerServer is the server API of jobtracker.v1.Tracker. Requests and
// responses are google.protobuf.Struct values carrying the same JSON shapes
// as the HTTP API.
type TrackerServer interface {
	ListJobs(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetStatus(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ToggleSave(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GenerateDigest(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetDigest(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(TrackerServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(method string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(TrackerServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + method}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(TrackerServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes jobtracker.v1.Tracker for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TrackerServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("ListJobs", TrackerServer.ListJobs),
		unary("SetStatus", TrackerServer.SetStatus),
		unary("ToggleSave", TrackerServer.ToggleSave),
		unary("GenerateDigest", TrackerServer.GenerateDigest),
		unary("GetDigest", TrackerServer.GetDigest),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "jobtracker/v1/tracker.proto",
}

// Register mounts srv on s.
func Register(s grpc.ServiceRegistrar, srv TrackerServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client calls jobtracker.v1.Tracker.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient returns a Client over cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if in == nil {
		in = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListJobs(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "ListJobs", in, opts...)
}

func (c *Client) SetStatus(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "SetStatus", in, opts...)
}

func (c *Client) ToggleSave(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "ToggleSave", in, opts...)
}

func (c *Client) GenerateDigest(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "GenerateDigest", in, opts...)
}

func (c *Client) GetDigest(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "GetDigest", in, opts...)
}
