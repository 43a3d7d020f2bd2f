package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable is returned when the registry has no backing store.
	ErrUnavailable = errors.New("command callbacks not available")

	// ErrInvalidHandle is returned for a zero or malformed handle.
	ErrInvalidHandle = errors.New("invalid object instance")

	// ErrInvalidCallback is returned when binding an absent callback.
	ErrInvalidCallback = errors.New("invalid command callback")

	// ErrNotFound is wrapped by every DispatchError for a missing entry.
	ErrNotFound = errors.New("command callback not found")

	// ErrTargetUnresolved is returned when the configured invocation
	// target name has no entry point.
	ErrTargetUnresolved = errors.New("invocation target not resolved")
)

// DispatchError is the hard failure of indirect dispatch: the handle did not
// resolve to a callback. Reaching it means the caller's handle is stale or
// corrupt, never that the callback itself failed.
type DispatchError struct {
	Handle Handle
	Err    error
}

// Error names the handle that failed to resolve.
func (e *DispatchError) Error() string {
	if errors.Is(e.Err, ErrUnavailable) {
		return fmt.Sprintf("command callback for object %s: %v", e.Handle, e.Err)
	}
	return fmt.Sprintf("command callback for object %s not found", e.Handle)
}

// Unwrap returns the sentinel cause.
func (e *DispatchError) Unwrap() error { return e.Err }
