// Package proto holds the wire contract of the authentication service.
//
// Messages are plain Go structs encoded in protobuf wire format with
// protowire. Field numbers follow authentication.proto, so clients generated
// from that file interoperate with this server. The package registers a
// "proto" codec that handles these structs and defers to the standard
// protobuf runtime for generated messages (e.g. the gRPC health service).
//
// Importing the package replaces gRPC's process-wide "proto" codec.
//
// String fields must hold valid UTF-8; decoding rejects anything else.
package proto

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"
)

var errInvalidUTF8 = errors.New("string field contains invalid UTF-8")

// wireMessage is implemented by every request and response in this package.
type wireMessage interface {
	marshalWire(b []byte) []byte
	unmarshalWire(b []byte) error
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

// fieldFunc decodes one field whose tag has already been consumed. It
// returns the number of bytes used, or 0 to have the field skipped.
type fieldFunc func(num protowire.Number, typ protowire.Type, b []byte) (int, error)

func consumeFields(b []byte, f fieldFunc) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		m, err := f(num, typ, b)
		if err != nil {
			return err
		}
		if m == 0 {
			m = protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return protowire.ParseError(m)
			}
		}
		b = b[m:]
	}
	return nil
}

func consumeString(num protowire.Number, typ protowire.Type, b []byte, dst *string) (int, error) {
	if typ != protowire.BytesType {
		return 0, fmt.Errorf("field %d: wire type %d, want bytes", num, typ)
	}
	v, n := protowire.ConsumeString(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	if !utf8.ValidString(v) {
		return 0, fmt.Errorf("field %d: %w", num, errInvalidUTF8)
	}
	*dst = v
	return n, nil
}

func consumeVarint(num protowire.Number, typ protowire.Type, b []byte, dst *uint64) (int, error) {
	if typ != protowire.VarintType {
		return 0, fmt.Errorf("field %d: wire type %d, want varint", num, typ)
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	*dst = v
	return n, nil
}

func consumeStatus(num protowire.Number, typ protowire.Type, b []byte, dst *StatusCode) (int, error) {
	var v uint64
	n, err := consumeVarint(num, typ, b, &v)
	if err != nil {
		return 0, err
	}
	*dst = StatusCode(int32(v))
	return n, nil
}
