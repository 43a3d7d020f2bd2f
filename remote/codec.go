package remote

import (
	"fmt"

	"google.golang.org/grpc/encoding"

	"github.com/chazu/hostbridge/domain"
)

// codecName is the content subtype both transports negotiate.
const codecName = "cbor"

// cborCodec adapts the domain boundary codec to the gRPC and Connect codec
// interfaces, which share a method set.
type cborCodec struct {
	codec *domain.Codec
}

// Name returns the content subtype.
func (c cborCodec) Name() string { return codecName }

// Marshal encodes v in canonical CBOR.
func (c cborCodec) Marshal(v any) ([]byte, error) {
	return c.codec.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func (c cborCodec) Unmarshal(data []byte, v any) error {
	return c.codec.Unmarshal(data, v)
}

var wireCodec cborCodec

func init() {
	codec, err := domain.NewCodec()
	if err != nil {
		panic(fmt.Sprintf("remote: failed to create CBOR codec: %v", err))
	}
	wireCodec = cborCodec{codec: codec}
	encoding.RegisterCodec(wireCodec)
}
