package rpcserver

import (
	"fmt"

	"google.golang.org/grpc/encoding"

	"github.com/kymani37299/anonvote/internal/wire"
)

// codecName is registered with grpc-go's encoding package and selected via
// grpc.CallContentSubtype so every frame this service sends or receives is
// the binary layout in internal/wire, never real protobuf wire format.
const codecName = "anonvote-binary"

// wireMarshaler is implemented by every request/response type in
// internal/wire, including wire.RawMessage itself.
type wireMarshaler interface {
	MarshalWire() ([]byte, error)
}

type binaryCodec struct{}

func (binaryCodec) Name() string { return codecName }

func (binaryCodec) Marshal(v interface{}) ([]byte, error) {
	m, ok := v.(wireMarshaler)
	if !ok {
		return nil, fmt.Errorf("rpcserver: %T does not implement wireMarshaler", v)
	}
	return m.MarshalWire()
}

func (binaryCodec) Unmarshal(data []byte, v interface{}) error {
	raw, ok := v.(*wire.RawMessage)
	if !ok {
		return fmt.Errorf("rpcserver: %T is not a *wire.RawMessage", v)
	}
	raw.Data = append([]byte(nil), data...)
	return nil
}

func init() {
	encoding.RegisterCodec(binaryCodec{})
}
