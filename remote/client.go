package remote

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/chazu/hostbridge/registry"
)

// Client calls a remote dispatch service over either transport.
type Client struct {
	invoke func(ctx context.Context, h registry.Handle, req *InvokeRequest) (*InvokeResponse, error)
	close  func() error
}

// Dial connects to a gRPC dispatch service at target. Without options the
// connection is plaintext.
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(codecName)),
	}, opts...)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{
		invoke: func(ctx context.Context, h registry.Handle, req *InvokeRequest) (*InvokeResponse, error) {
			resp := new(InvokeResponse)
			if err := conn.Invoke(ctx, InvokeProcedure, req, resp); err != nil {
				return nil, fromGRPCError(h, err)
			}
			return resp, nil
		},
		close: conn.Close,
	}, nil
}

// NewConnectClient calls the Connect transport mounted under baseURL. A nil
// httpClient means http.DefaultClient.
func NewConnectClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	opts = append([]connect.ClientOption{connect.WithCodec(wireCodec)}, opts...)
	client := connect.NewClient[InvokeRequest, InvokeResponse](
		httpClient,
		strings.TrimRight(baseURL, "/")+InvokeProcedure,
		opts...,
	)
	return &Client{
		invoke: func(ctx context.Context, h registry.Handle, req *InvokeRequest) (*InvokeResponse, error) {
			resp, err := client.CallUnary(ctx, connect.NewRequest(req))
			if err != nil {
				return nil, fromConnectError(h, err)
			}
			return resp.Msg, nil
		},
		close: func() error { return nil },
	}
}

// Invoke dispatches args to the remote callback bound to h. A remote miss
// returns a *registry.DispatchError wrapping registry.ErrNotFound.
func (c *Client) Invoke(ctx context.Context, h registry.Handle, args []any) (any, error) {
	if h.IsZero() {
		return nil, &registry.DispatchError{Handle: h, Err: registry.ErrNotFound}
	}
	resp, err := c.invoke(ctx, h, &InvokeRequest{Handle: h.String(), Args: args})
	if err != nil {
		return nil, err
	}
	return resp.Value, nil
}

// Callback returns a local stand-in for the remote callback bound to h. It
// can be bound into a local registry like any other callback.
func (c *Client) Callback(h registry.Handle) registry.Callback {
	return &remoteCallback{client: c, handle: h}
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.close()
}

type remoteCallback struct {
	client *Client
	handle registry.Handle
}

// Invoke calls the remote callback through the client.
func (r *remoteCallback) Invoke(ctx context.Context, args []any) (any, error) {
	return r.client.Invoke(ctx, r.handle, args)
}
