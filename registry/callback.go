package registry

import (
	"context"
	"fmt"
	"reflect"

	"github.com/chazu/hostbridge/bridge"
)

// Callback is a capability reachable through indirect dispatch.
type Callback interface {
	Invoke(ctx context.Context, args []any) (any, error)
}

// CallbackFunc is the function shape of a Callback.
type CallbackFunc func(ctx context.Context, args []any) (any, error)

// Invoke calls f.
func (f CallbackFunc) Invoke(ctx context.Context, args []any) (any, error) {
	return f(ctx, args)
}

type funcCallback struct {
	fn CallbackFunc
}

// Invoke calls the wrapped function.
func (c *funcCallback) Invoke(ctx context.Context, args []any) (any, error) {
	return c.fn(ctx, args)
}

// Func wraps fn as a Callback with pointer identity, so the result can be
// passed to Cleanup. Plain function values never compare equal.
func Func(fn CallbackFunc) Callback {
	if fn == nil {
		return nil
	}
	return &funcCallback{fn: fn}
}

// sameCallback reports whether a and b are the same callback. Only
// comparable dynamic types can match.
func sameCallback(a, b Callback) (same bool) {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta == nil || ta != tb || !ta.Comparable() {
		return false
	}
	// Structs holding interfaces report Comparable but can still panic.
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

// IsNil reports whether cb is absent: a nil interface, or a nil pointer,
// func, map, slice, chan or interface stored in one.
func IsNil(cb Callback) bool {
	if cb == nil {
		return true
	}
	v := reflect.ValueOf(cb)
	switch v.Kind() {
	case reflect.Ptr, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// ---------------------------------------------------------------------------
// Command callbacks
// ---------------------------------------------------------------------------

// CommandCallback dispatches to an execute bridge. Arguments are rendered
// into the interpreter's string argument list and a failed outcome becomes
// a *bridge.CallbackError.
type CommandCallback struct {
	Bridge      *bridge.ExecuteBridge
	Interpreter bridge.Interpreter
	ClientData  bridge.ClientData
}

// NewCommandCallback wraps b for registration.
func NewCommandCallback(b *bridge.ExecuteBridge, interp bridge.Interpreter, clientData bridge.ClientData) *CommandCallback {
	return &CommandCallback{Bridge: b, Interpreter: interp, ClientData: clientData}
}

// Invoke renders args as command arguments and runs them through the
// execute bridge. A non-Ok outcome becomes a *bridge.CallbackError.
func (c *CommandCallback) Invoke(_ context.Context, args []any) (any, error) {
	argv := make(bridge.Arguments, len(args))
	for i, a := range args {
		if s, ok := a.(string); ok {
			argv[i] = s
		} else {
			argv[i] = fmt.Sprint(a)
		}
	}
	out := c.Bridge.Execute(c.Interpreter, c.ClientData, argv)
	if err := out.Err(); err != nil {
		return nil, err
	}
	return out.Value, nil
}
