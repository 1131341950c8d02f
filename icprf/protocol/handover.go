package protocol

import (
	"encoding/binary"
	"errors"
)

var ErrMalformedHandover = errors.New("protocol: malformed handover")

// Handover carries a constrained key to a new receiver.
// Format:
//
//	1 byte: generator name length
//	N bytes: generator name
//	8 bytes: constraint (big endian)
//	rest: encoded constrained key
type Handover struct {
	Generator  string
	Constraint uint64
	Key        []byte
}

func EncodeHandover(h Handover) ([]byte, error) {
	if len(h.Generator) == 0 || len(h.Generator) > 255 {
		return nil, ErrMalformedHandover
	}
	out := make([]byte, 0, 1+len(h.Generator)+8+len(h.Key))
	out = append(out, byte(len(h.Generator)))
	out = append(out, h.Generator...)
	out = binary.BigEndian.AppendUint64(out, h.Constraint)
	out = append(out, h.Key...)
	return out, nil
}

func DecodeHandover(data []byte) (Handover, error) {
	if len(data) < 1 {
		return Handover{}, ErrMalformedHandover
	}
	n := int(data[0])
	if n == 0 || len(data) < 1+n+8 {
		return Handover{}, ErrMalformedHandover
	}
	return Handover{
		Generator:  string(data[1 : 1+n]),
		Constraint: binary.BigEndian.Uint64(data[1+n : 1+n+8]),
		Key:        append([]byte(nil), data[1+n+8:]...),
	}, nil
}
