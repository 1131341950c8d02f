package cprf

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/TheusHen/icprf/icprf/prg"
)

var ErrInvalidKeyEncoding = errors.New("cprf: invalid constrained key encoding")

// ConstrainedKey is the spine of subtree roots that covers every index up to
// a constraint. Only the first Len() slots are meaningful; the rest are zero.
//
// The zero value is the empty key: it covers nothing and accepts index 0 as
// its first Increment. The constraint itself is not stored and must be
// tracked by the caller (see ratchet.Receiver).
type ConstrainedKey[P prg.PRG] struct {
	nodes [Capacity]Node
	n     int
}

// Len returns the number of meaningful spine slots.
func (ck *ConstrainedKey[P]) Len() int { return ck.n }

// Nodes returns a copy of the meaningful spine slots.
func (ck *ConstrainedKey[P]) Nodes() []Node {
	out := make([]Node, ck.n)
	copy(out, ck.nodes[:ck.n])
	return out
}

// Equal reports whether both keys have the same meaningful slots.
func (ck *ConstrainedKey[P]) Equal(other *ConstrainedKey[P]) bool {
	if ck.n != other.n {
		return false
	}
	for i := 0; i < ck.n; i++ {
		if subtle.ConstantTimeCompare(ck.nodes[i][:], other.nodes[i][:]) != 1 {
			return false
		}
	}
	return true
}

// MarshalBinary encodes the meaningful slots contiguously, 32 bytes each.
func (ck *ConstrainedKey[P]) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, ck.n*prg.SeedSize)
	for i := 0; i < ck.n; i++ {
		out = append(out, ck.nodes[i][:]...)
	}
	return out, nil
}

// UnmarshalBinary decodes a key written by MarshalBinary.
func (ck *ConstrainedKey[P]) UnmarshalBinary(data []byte) error {
	if len(data)%prg.SeedSize != 0 || len(data) > Capacity*prg.SeedSize {
		return fmt.Errorf("%w: %d bytes", ErrInvalidKeyEncoding, len(data))
	}
	*ck = ConstrainedKey[P]{n: len(data) / prg.SeedSize}
	for i := 0; i < ck.n; i++ {
		copy(ck.nodes[i][:], data[i*prg.SeedSize:])
	}
	return nil
}

// Constrain returns a key that reproduces every secret at or before
// constraint.
//
// It follows the Evaluate path towards constraint. Whenever the path turns
// right, the left sibling is kept: it is the root of a subtree that lies
// entirely before constraint. The node reached at the end covers its own
// subtree, which also ends at constraint.
func (f *PRF[P]) Constrain(sk MasterSecret, constraint uint64) (*ConstrainedKey[P], error) {
	if constraint > MaxIndex {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, constraint)
	}
	ck := &ConstrainedKey[P]{}
	node := Node(sk)
	target, top := constraint, MaxIndex
	i := 0
	for top != target {
		top = top>>1 - 1
		if target <= top {
			f.left(&node)
			continue
		}
		ck.nodes[i] = node
		f.left(&ck.nodes[i])
		i++
		f.right(&node)
		target -= top + 1
	}
	ck.nodes[i] = node
	ck.n = i + 1
	return ck, nil
}

// ConstrainedEval returns the secret at index from a key constrained at
// constraint. The result equals Evaluate(sk, index) for the master secret the
// key descends from.
func (f *PRF[P]) ConstrainedEval(ck *ConstrainedKey[P], constraint, index uint64) (Node, error) {
	if constraint > MaxIndex {
		return Node{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, constraint)
	}
	if index > constraint {
		return Node{}, fmt.Errorf("%w: %d > %d", ErrIndexExceedsConstraint, index, constraint)
	}
	if slot, _ := spinePosition(constraint); slot+1 != ck.n {
		return Node{}, fmt.Errorf("%w: constraint %d needs %d slots, key has %d",
			ErrConstraintMismatch, constraint, slot+1, ck.n)
	}

	top := MaxIndex
	i := 0
	for {
		if top == constraint {
			res := ck.nodes[i]
			f.descend(&res, index, top)
			return res, nil
		}
		half := top>>1 - 1
		switch {
		case index > half:
			// both index and constraint are right of the stored left sibling
			top = half
			constraint -= half + 1
			index -= half + 1
			i++
		case constraint < half:
			top = half
		default:
			// index is in the left subtree, which the key stores whole
			res := ck.nodes[i]
			f.descend(&res, index, half)
			return res, nil
		}
	}
}
