// Package shachain implements the BOLT-3 per-commitment secret scheme, the
// construction payment channels use today. It is kept as a baseline for the
// constrained PRF: Producer mirrors cprf Evaluate and Store mirrors a
// receiver fed with cprf Increment.
package shachain

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const (
	maxHeight = 48

	// StartIndex is the first commitment number of a channel. Commitment
	// numbers count down from it.
	StartIndex uint64 = 1<<maxHeight - 1
)

var (
	ErrIndexOutOfRange    = errors.New("shachain: index out of range")
	ErrInconsistentSecret = errors.New("shachain: secret does not derive known secrets")
	ErrUnknownIndex       = errors.New("shachain: no stored secret derives index")
)

// derive applies the flip-and-hash step for every set bit of index below
// height, from the highest down.
func derive(base chainhash.Hash, height int, index uint64) chainhash.Hash {
	for b := height - 1; b >= 0; b-- {
		if index>>uint(b)&1 == 0 {
			continue
		}
		base[b/8] ^= 1 << uint(b%8)
		base = chainhash.HashH(base[:])
	}
	return base
}

// Producer generates the secret for any commitment number from a seed.
type Producer struct {
	seed chainhash.Hash
}

func NewProducer(seed chainhash.Hash) *Producer {
	return &Producer{seed: seed}
}

// AtIndex returns the secret for commitment number index.
func (p *Producer) AtIndex(index uint64) (chainhash.Hash, error) {
	if index > StartIndex {
		return chainhash.Hash{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return derive(p.seed, maxHeight, index), nil
}

type element struct {
	index  uint64
	secret chainhash.Hash
	set    bool
}

// Store keeps the at most 49 secrets from which every secret received so
// far can be derived. Secrets must be provided in descending commitment
// number order starting at StartIndex.
type Store struct {
	known [maxHeight + 1]element
}

func position(index uint64) int {
	if index == 0 {
		return maxHeight
	}
	return bits.TrailingZeros64(index)
}

// Provide checks that secret derives every stored secret below its position
// and stores it.
func (s *Store) Provide(index uint64, secret chainhash.Hash) error {
	if index > StartIndex {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	pos := position(index)
	for b := 0; b < pos; b++ {
		e := s.known[b]
		if !e.set {
			continue
		}
		if derive(secret, pos, e.index) != e.secret {
			return fmt.Errorf("%w: index %d", ErrInconsistentSecret, index)
		}
	}
	s.known[pos] = element{index: index, secret: secret, set: true}
	return nil
}

// At returns the secret for a commitment number already provided.
func (s *Store) At(index uint64) (chainhash.Hash, error) {
	for b := 0; b <= maxHeight; b++ {
		e := s.known[b]
		if !e.set {
			continue
		}
		mask := ^uint64(0) << uint(b)
		if index&mask == e.index {
			return derive(e.secret, b, index), nil
		}
	}
	return chainhash.Hash{}, fmt.Errorf("%w: %d", ErrUnknownIndex, index)
}
