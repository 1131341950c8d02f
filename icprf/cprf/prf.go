package cprf

import (
	"errors"
	"fmt"

	"github.com/TheusHen/icprf/icprf/prg"
)

const (
	// Depth is the height of the derivation tree.
	Depth = 48
	// Capacity is the number of spine slots in a ConstrainedKey.
	Capacity = Depth + 1
	// MaxIndex is the last index of the domain. It is the tree root, so
	// evaluating it returns the master secret itself.
	MaxIndex uint64 = 1<<(Depth+1) - 2
)

var (
	ErrIndexOutOfRange        = errors.New("cprf: index out of range")
	ErrIndexExceedsConstraint = errors.New("cprf: index exceeds constraint")
	ErrConstraintMismatch     = errors.New("cprf: constraint does not match key")
	ErrConsistencyViolation   = errors.New("cprf: disclosed secret inconsistent with constrained key")
)

// Node is a secret at one position of the derivation tree.
type Node [prg.SeedSize]byte

// MasterSecret is the root of the derivation tree.
type MasterSecret [prg.SeedSize]byte

// PRF derives and verifies secrets with the generator P.
// It holds no mutable state and is safe for concurrent use.
type PRF[P prg.PRG] struct {
	prg P
}

// New returns a PRF using generator p.
func New[P prg.PRG](p P) *PRF[P] {
	return &PRF[P]{prg: p}
}

// Generator returns the generator the PRF was built with.
func (f *PRF[P]) Generator() P { return f.prg }

func (f *PRF[P]) left(n *Node)  { prg.Left(f.prg, (*[prg.SeedSize]byte)(n)) }
func (f *PRF[P]) right(n *Node) { prg.Right(f.prg, (*[prg.SeedSize]byte)(n)) }

// Evaluate returns the secret at index.
func (f *PRF[P]) Evaluate(sk MasterSecret, index uint64) (Node, error) {
	if index > MaxIndex {
		return Node{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	node := Node(sk)
	f.descend(&node, index, MaxIndex)
	return node, nil
}

// descend walks node, the root of a subtree whose last index is top, down to
// target. target is numbered relative to the subtree.
func (f *PRF[P]) descend(node *Node, target, top uint64) {
	for top != target {
		top = top>>1 - 1
		if target <= top {
			f.left(node)
		} else {
			f.right(node)
			target -= top + 1
		}
	}
}

// spinePosition returns the spine slot that holds index once a key is
// constrained at index, together with the last index of the subtree rooted
// at index (0 for a leaf). The slot is the number of right turns on the path
// from the root.
func spinePosition(index uint64) (slot int, top uint64) {
	top = MaxIndex
	for top != index {
		top = top>>1 - 1
		if index > top {
			index -= top + 1
			slot++
		}
	}
	return slot, top
}
