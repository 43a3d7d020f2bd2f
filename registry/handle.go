package registry

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const handlePrefix = "h-"

// Handle is the opaque identity key under which a callback is registered.
// The zero Handle never names an entry.
type Handle struct {
	id string
}

// NewHandle mints a fresh, unique handle.
func NewHandle() Handle {
	return Handle{id: handlePrefix + uuid.NewString()}
}

// ParseHandle recovers a handle from its String form. Any UUID spelling
// uuid.Parse accepts yields the canonical handle.
func ParseHandle(s string) (Handle, error) {
	rest, ok := strings.CutPrefix(s, handlePrefix)
	if !ok {
		return Handle{}, fmt.Errorf("%w: %q", ErrInvalidHandle, s)
	}
	u, err := uuid.Parse(rest)
	if err != nil {
		return Handle{}, fmt.Errorf("%w: %q: %v", ErrInvalidHandle, s, err)
	}
	return Handle{id: handlePrefix + u.String()}, nil
}

// MustParseHandle is ParseHandle for literals known to be valid.
func MustParseHandle(s string) Handle {
	h, err := ParseHandle(s)
	if err != nil {
		panic(err)
	}
	return h
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool { return h.id == "" }

// String returns the handle token, or "<nil>" for the zero Handle.
func (h Handle) String() string {
	if h.id == "" {
		return "<nil>"
	}
	return h.id
}
