package bridge

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// ReturnCode: the interpreter's status protocol
// ---------------------------------------------------------------------------

// ReturnCode is the status half of every status+message forwarding call.
type ReturnCode int

const (
	Ok ReturnCode = iota
	Error
	Return
	Break
	Continue
)

// String returns the code name.
func (c ReturnCode) String() string {
	switch c {
	case Ok:
		return "Ok"
	case Error:
		return "Error"
	case Return:
		return "Return"
	case Break:
		return "Break"
	case Continue:
		return "Continue"
	default:
		return fmt.Sprintf("ReturnCode(%d)", int(c))
	}
}

// ---------------------------------------------------------------------------
// Outcome: tagged result of a forwarded call
// ---------------------------------------------------------------------------

// Outcome is the result of a forwarded call. Code Ok means Value is
// meaningful; any other code is a failure described by Message.
type Outcome[T any] struct {
	Code    ReturnCode
	Value   T
	Message string
}

// Succeed wraps v in an Ok outcome.
func Succeed[T any](v T) Outcome[T] {
	return Outcome[T]{Code: Ok, Value: v}
}

// Fail returns an Error outcome carrying msg.
func Fail[T any](msg string) Outcome[T] {
	return Outcome[T]{Code: Error, Message: msg}
}

// Failf is Fail with formatting.
func Failf[T any](format string, args ...any) Outcome[T] {
	return Outcome[T]{Code: Error, Message: fmt.Sprintf(format, args...)}
}

// Invalid is the outcome a bridge produces when it has no capability.
func Invalid[T any](kind Kind) Outcome[T] {
	return Fail[T](kind.invalidMessage())
}

// OK reports whether the outcome carries the Ok code.
func (o Outcome[T]) OK() bool {
	return o.Code == Ok
}

// Err converts a non-Ok outcome into a *CallbackError. Ok outcomes yield nil.
func (o Outcome[T]) Err() error {
	if o.Code == Ok {
		return nil
	}
	return &CallbackError{Code: o.Code, Message: o.Message}
}

// String formats the code with the value or the failure message.
func (o Outcome[T]) String() string {
	if o.Code == Ok {
		return fmt.Sprintf("%s: %v", o.Code, o.Value)
	}
	return fmt.Sprintf("%s: %s", o.Code, o.Message)
}

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

// ErrInvalidCallback is wrapped by every factory error for an absent capability.
var ErrInvalidCallback = errors.New("invalid callback")

// invalidCallbackError keeps the kind-specific text while still matching
// ErrInvalidCallback under errors.Is.
type invalidCallbackError struct {
	kind Kind
}

// Error returns the failure message.
func (e *invalidCallbackError) Error() string { return e.kind.invalidMessage() }

// Is matches ErrInvalidCallback.
func (e *invalidCallbackError) Is(target error) bool { return target == ErrInvalidCallback }

// CallbackError is a failed Outcome expressed as a Go error.
type CallbackError struct {
	Code    ReturnCode
	Message string
}

// Error returns the failure message.
func (e *CallbackError) Error() string {
	if e.Message == "" {
		return e.Code.String()
	}
	return e.Message
}

// MisuseError is the panic payload raised by bridges whose call shape has no
// failure channel (asynchronous completion, string transform) when they are
// invoked without a capability.
type MisuseError struct {
	Kind Kind
}

// Error returns the failure message.
func (e *MisuseError) Error() string {
	return e.Kind.invalidMessage()
}
