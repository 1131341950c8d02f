package ratchet

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/TheusHen/icprf/icprf/cprf"
	"github.com/TheusHen/icprf/icprf/prg"
)

var (
	ErrOutOfOrder      = errors.New("ratchet: disclosure out of order")
	ErrNotYetDisclosed = errors.New("ratchet: index not yet disclosed")
	ErrInvalidState    = errors.New("ratchet: invalid receiver state")
)

// stateHeaderSize is constraint (8) + started flag (1).
const stateHeaderSize = 9

// Receiver is the verifying end of a stream. It holds a constrained key and
// the constraint that key is valid for, and accepts only the disclosure for
// the index right after it.
type Receiver[P prg.PRG] struct {
	mu         sync.Mutex
	prf        *cprf.PRF[P]
	key        cprf.ConstrainedKey[P]
	constraint uint64
	started    bool
}

// NewReceiver creates a receiver that expects index 0 first.
func NewReceiver[P prg.PRG](p P) *Receiver[P] {
	return &Receiver[P]{prf: cprf.New(p)}
}

// NewReceiverFromKey creates a receiver from a key handed over by the
// disclosing side. The key is checked against the constraint's spine shape.
func NewReceiverFromKey[P prg.PRG](p P, key *cprf.ConstrainedKey[P], constraint uint64) (*Receiver[P], error) {
	r := &Receiver[P]{prf: cprf.New(p), key: *key, constraint: constraint, started: true}
	if _, err := r.prf.ConstrainedEval(&r.key, constraint, constraint); err != nil {
		return nil, err
	}
	return r, nil
}

// Provide verifies d and, if it is consistent, extends the receiver to
// d.Index. Nothing changes on error.
func (r *Receiver[P]) Provide(d Disclosure) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	want := uint64(0)
	if r.started {
		if r.constraint == cprf.MaxIndex {
			return ErrChainExhausted
		}
		want = r.constraint + 1
	}
	if d.Index != want {
		return fmt.Errorf("%w: got %d, want %d", ErrOutOfOrder, d.Index, want)
	}
	if err := r.prf.Increment(&r.key, d.Index, d.Secret); err != nil {
		return err
	}
	r.constraint = d.Index
	r.started = true
	return nil
}

// Constraint returns the last disclosed index. ok is false before the first
// disclosure.
func (r *Receiver[P]) Constraint() (constraint uint64, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.constraint, r.started
}

// At returns the secret at index, which must already be disclosed.
func (r *Receiver[P]) At(index uint64) (cprf.Node, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.at(index)
}

func (r *Receiver[P]) at(index uint64) (cprf.Node, error) {
	if !r.started || index > r.constraint {
		return cprf.Node{}, fmt.Errorf("%w: %d", ErrNotYetDisclosed, index)
	}
	return r.prf.ConstrainedEval(&r.key, r.constraint, index)
}

// Key returns a copy of the constrained key and its constraint.
func (r *Receiver[P]) Key() (cprf.ConstrainedKey[P], uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		return cprf.ConstrainedKey[P]{}, 0, ErrNothingDisclosed
	}
	return r.key, r.constraint, nil
}

// Open decrypts an envelope sealed by the chain under an index the receiver
// has already seen disclosed.
func (r *Receiver[P]) Open(env Envelope, ad []byte) ([]byte, error) {
	r.mu.Lock()
	secret, err := r.at(env.Index)
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	aead, err := messageAEAD(secret, env.Index)
	if err != nil {
		return nil, err
	}
	return aead.Open(env.Ciphertext, ad)
}

// Export exports the receiver state for persistence.
// Format: constraint (8, big endian) || started (1) || key
// WARNING: the key reveals every disclosed secret.
func (r *Receiver[P]) Export() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	key, _ := r.key.MarshalBinary()
	out := make([]byte, stateHeaderSize, stateHeaderSize+len(key))
	binary.BigEndian.PutUint64(out[:8], r.constraint)
	if r.started {
		out[8] = 1
	}
	return append(out, key...)
}

// ImportReceiver restores a receiver written by Export.
func ImportReceiver[P prg.PRG](p P, data []byte) (*Receiver[P], error) {
	if len(data) < stateHeaderSize || data[8] > 1 {
		return nil, ErrInvalidState
	}
	var key cprf.ConstrainedKey[P]
	if err := key.UnmarshalBinary(data[stateHeaderSize:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	constraint := binary.BigEndian.Uint64(data[:8])
	if data[8] == 0 {
		if constraint != 0 || key.Len() != 0 {
			return nil, ErrInvalidState
		}
		return NewReceiver(p), nil
	}
	r, err := NewReceiverFromKey(p, &key, constraint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	return r, nil
}
