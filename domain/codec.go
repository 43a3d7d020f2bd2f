package domain

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// Codec is the boundary encoding. Values are encoded as canonical CBOR and
// decoded generically: maps become map[string]any, arrays []any, and
// integers int64.
type Codec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// NewCodec builds the canonical boundary codec.
func NewCodec() (*Codec, error) {
	enc, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("domain: cbor enc mode: %w", err)
	}
	dec, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		IntDec:         cbor.IntDecConvertSigned,
	}.DecMode()
	if err != nil {
		return nil, fmt.Errorf("domain: cbor dec mode: %w", err)
	}
	return &Codec{enc: enc, dec: dec}, nil
}

// Marshal encodes v.
func (c *Codec) Marshal(v any) ([]byte, error) {
	return c.enc.Marshal(v)
}

// Unmarshal decodes data into v.
func (c *Codec) Unmarshal(data []byte, v any) error {
	return c.dec.Unmarshal(data, v)
}

// Copy round-trips v through the encoding, so that the result shares no
// memory with v. Values with no encoding (funcs, channels) fail.
func (c *Codec) Copy(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	data, err := c.enc.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("domain: value of type %T cannot cross the boundary: %w", v, err)
	}
	var out any
	if err := c.dec.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("domain: decode copied %T: %w", v, err)
	}
	return out, nil
}

// CopyArgs copies each argument independently.
func (c *Codec) CopyArgs(args []any) ([]any, error) {
	if args == nil {
		return nil, nil
	}
	out := make([]any, len(args))
	for i, a := range args {
		v, err := c.Copy(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}
