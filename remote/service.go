// Package remote serves the registry's indirect entry point to other
// processes, over gRPC and over Connect (HTTP). Both transports carry the
// same two CBOR messages; there is no generated code.
package remote

import (
	"context"

	"google.golang.org/grpc"
)

const (
	// ServiceName is the fully qualified dispatch service name.
	ServiceName = "hostbridge.v1.DispatchService"

	// InvokeProcedure is the path of the single dispatch method.
	InvokeProcedure = "/" + ServiceName + "/Invoke"
)

// InvokeRequest asks the server to dispatch Args to the callback bound to
// Handle.
type InvokeRequest struct {
	Handle string `cbor:"handle"`
	Args   []any  `cbor:"args,omitempty"`
}

// InvokeResponse carries the callback's result.
type InvokeResponse struct {
	Value any `cbor:"value,omitempty"`
}

// dispatchServer is the gRPC handler type for the dispatch service.
type dispatchServer interface {
	Invoke(ctx context.Context, req *InvokeRequest) (*InvokeResponse, error)
}

// invokeHandler decodes an InvokeRequest and runs it through the optional
// interceptor.
func invokeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(InvokeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(dispatchServer).Invoke(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: InvokeProcedure,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(dispatchServer).Invoke(ctx, req.(*InvokeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var dispatchServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*dispatchServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Invoke",
			Handler:    invokeHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "hostbridge/v1/dispatch",
}
