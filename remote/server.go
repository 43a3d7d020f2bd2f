package remote

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"github.com/tliron/commonlog"
	"google.golang.org/grpc"

	"github.com/chazu/hostbridge/domain"
	"github.com/chazu/hostbridge/registry"
)

var log = commonlog.GetLogger("hostbridge.remote")

// Server exposes a registry's indirect entry point to remote callers.
type Server struct {
	reg *registry.Registry
	dom *domain.Domain
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithDomain runs every remote call inside d, so arguments and results are
// copied across d's boundary and calls are serialized on d's worker.
func WithDomain(d *domain.Domain) ServerOption {
	return func(s *Server) { s.dom = d }
}

// NewServer creates a Server dispatching through reg.
func NewServer(reg *registry.Registry, opts ...ServerOption) *Server {
	s := &Server{reg: reg}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// dispatch resolves and invokes one request.
func (s *Server) dispatch(ctx context.Context, req *InvokeRequest) (any, error) {
	h, err := registry.ParseHandle(req.Handle)
	if err != nil {
		return nil, err
	}
	if s.dom != nil {
		return s.dom.Call(ctx, h, req.Args)
	}
	if s.reg == nil {
		return nil, registry.ErrUnavailable
	}
	target, ok := s.reg.Target()
	if !ok {
		return nil, registry.ErrTargetUnresolved
	}
	return target.Invoke(ctx, h, req.Args)
}

// Invoke implements the gRPC dispatch service.
func (s *Server) Invoke(ctx context.Context, req *InvokeRequest) (*InvokeResponse, error) {
	v, err := s.dispatch(ctx, req)
	if err != nil {
		log.Errorf("invoke %s: %s", req.Handle, err)
		return nil, toGRPCError(err)
	}
	return &InvokeResponse{Value: v}, nil
}

// RegisterGRPC registers the dispatch service on gs. The CBOR codec is
// selected by content subtype, so gs needs no codec option.
func (s *Server) RegisterGRPC(gs *grpc.Server) {
	gs.RegisterService(&dispatchServiceDesc, s)
}

// ConnectHandler returns the mount path and handler for the Connect
// transport.
func (s *Server) ConnectHandler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(wireCodec)}, opts...)
	handler := connect.NewUnaryHandler(
		InvokeProcedure,
		s.connectInvoke,
		opts...,
	)
	return "/" + ServiceName + "/", handler
}

// connectInvoke implements the Connect unary handler.
func (s *Server) connectInvoke(ctx context.Context, req *connect.Request[InvokeRequest]) (*connect.Response[InvokeResponse], error) {
	v, err := s.dispatch(ctx, req.Msg)
	if err != nil {
		log.Errorf("invoke %s: %s", req.Msg.Handle, err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&InvokeResponse{Value: v}), nil
}

// NewServeMux returns a mux with the Connect transport mounted.
func NewServeMux(s *Server) *http.ServeMux {
	mux := http.NewServeMux()
	path, handler := s.ConnectHandler()
	mux.Handle(path, handler)
	return mux
}
