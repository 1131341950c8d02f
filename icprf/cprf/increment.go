package cprf

import (
	"crypto/subtle"
	"fmt"

	"github.com/TheusHen/icprf/icprf/prg"
)

// Increment extends ck, constrained at index-1, to index using the secret
// disclosed for index. On error ck is left unchanged.
//
// A disclosed internal node must expand to the two children already held in
// the spine: its left half to the slot the node will occupy and its right
// half to the slot after it. On success the node replaces its children.
// A leaf has no children to check; it is stored as is and verified when its
// parent is disclosed.
//
// Increment does not know the constraint of ck. Indices must be supplied in
// sequence; ratchet.Receiver enforces that.
func (f *PRF[P]) Increment(ck *ConstrainedKey[P], index uint64, secret Node) error {
	if index > MaxIndex {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	slot, top := spinePosition(index)
	if top == 0 {
		ck.nodes[slot] = secret
		ck.n = slot + 1
		return nil
	}

	left, right := prg.Split(f.prg, (*[prg.SeedSize]byte)(&secret))
	okLeft := subtle.ConstantTimeCompare(left[:], ck.nodes[slot][:])
	okRight := subtle.ConstantTimeCompare(right[:], ck.nodes[slot+1][:])
	if okLeft&okRight != 1 {
		return fmt.Errorf("%w: index %d", ErrConsistencyViolation, index)
	}

	ck.nodes[slot] = secret
	ck.nodes[slot+1] = Node{}
	ck.n = slot + 1
	return nil
}
