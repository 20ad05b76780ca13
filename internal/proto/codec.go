package proto

import (
	"fmt"

	"google.golang.org/grpc/encoding"
	protov2 "google.golang.org/protobuf/proto"
)

// CodecName replaces gRPC's default codec, so plain clients need no
// content-subtype option.
const CodecName = "proto"

type codec struct{}

func (codec) Name() string { return CodecName }

func (codec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case wireMessage:
		return m.marshalWire(nil), nil
	case protov2.Message:
		return protov2.Marshal(m)
	default:
		return nil, fmt.Errorf("proto codec: cannot marshal %T", v)
	}
}

func (codec) Unmarshal(data []byte, v any) error {
	switch m := v.(type) {
	case wireMessage:
		return m.unmarshalWire(data)
	case protov2.Message:
		return protov2.Unmarshal(data, m)
	default:
		return fmt.Errorf("proto codec: cannot unmarshal into %T", v)
	}
}

func init() {
	encoding.RegisterCodec(codec{})
}
