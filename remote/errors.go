package remote

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/chazu/hostbridge/domain"
	"github.com/chazu/hostbridge/registry"
)

// CallError is a failure reported by the far side of a remote call that
// has no local equivalent.
type CallError struct {
	Code    codes.Code
	Message string
}

// Error formats the remote status code and message.
func (e *CallError) Error() string {
	return fmt.Sprintf("remote %s: %s", e.Code, e.Message)
}

// classify maps a dispatch failure onto a status code.
func classify(err error) codes.Code {
	switch {
	case errors.Is(err, registry.ErrInvalidHandle):
		return codes.InvalidArgument
	case errors.Is(err, registry.ErrNotFound):
		return codes.NotFound
	case errors.Is(err, registry.ErrUnavailable), errors.Is(err, domain.ErrUnloaded):
		return codes.Unavailable
	case errors.Is(err, registry.ErrTargetUnresolved):
		return codes.FailedPrecondition
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	default:
		return codes.Unknown
	}
}

// toGRPCError wraps err in a gRPC status.
func toGRPCError(err error) error {
	return status.Error(classify(err), err.Error())
}

// toConnectError wraps err in a *connect.Error.
func toConnectError(err error) error {
	// Connect codes share gRPC's numbering.
	return connect.NewError(connect.Code(classify(err)), err)
}

// fromWire turns a transport error back into a local error. NotFound
// becomes the same *registry.DispatchError a local Invoke would return.
func fromWire(h registry.Handle, code codes.Code, message string) error {
	if code == codes.NotFound {
		return &registry.DispatchError{Handle: h, Err: registry.ErrNotFound}
	}
	return &CallError{Code: code, Message: message}
}

// fromGRPCError decodes a gRPC status error returned for h.
func fromGRPCError(h registry.Handle, err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	return fromWire(h, st.Code(), st.Message())
}

// fromConnectError decodes a *connect.Error returned for h.
func fromConnectError(h registry.Handle, err error) error {
	var ce *connect.Error
	if !errors.As(err, &ce) {
		return err
	}
	return fromWire(h, codes.Code(ce.Code()), ce.Message())
}
