package ratchet

import (
	"encoding/binary"
	"errors"

	"github.com/TheusHen/icprf/icprf/cprf"
)

// DisclosureSize is the encoded size of a Disclosure.
const DisclosureSize = 8 + len(cprf.Node{})

var ErrMalformedDisclosure = errors.New("ratchet: malformed disclosure")

// Disclosure is a secret claimed to be the one at Index.
type Disclosure struct {
	Index  uint64
	Secret cprf.Node
}

// Encode serializes a Disclosure as index (8 bytes, big endian) || secret.
func (d Disclosure) Encode() []byte {
	out := make([]byte, DisclosureSize)
	binary.BigEndian.PutUint64(out[:8], d.Index)
	copy(out[8:], d.Secret[:])
	return out
}

// DecodeDisclosure deserializes a Disclosure.
func DecodeDisclosure(data []byte) (Disclosure, error) {
	if len(data) != DisclosureSize {
		return Disclosure{}, ErrMalformedDisclosure
	}
	d := Disclosure{Index: binary.BigEndian.Uint64(data[:8])}
	copy(d.Secret[:], data[8:])
	return d, nil
}

// Envelope is a message sealed under the secret at Index.
type Envelope struct {
	Index      uint64
	Ciphertext []byte
}

// Encode serializes an Envelope for wire transmission.
func (e Envelope) Encode() []byte {
	out := make([]byte, 8+len(e.Ciphertext))
	binary.BigEndian.PutUint64(out[:8], e.Index)
	copy(out[8:], e.Ciphertext)
	return out
}

// DecodeEnvelope deserializes an Envelope.
func DecodeEnvelope(data []byte) (Envelope, error) {
	if len(data) < 8 {
		return Envelope{}, errors.New("ratchet: envelope too short")
	}
	return Envelope{
		Index:      binary.BigEndian.Uint64(data[:8]),
		Ciphertext: data[8:],
	}, nil
}
