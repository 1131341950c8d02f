package ratchet

import (
	"errors"
	"sync"

	"github.com/TheusHen/icprf/icprf/cprf"
	"github.com/TheusHen/icprf/icprf/crypto"
	"github.com/TheusHen/icprf/icprf/prg"
)

var (
	ErrChainExhausted   = errors.New("ratchet: maximum index reached")
	ErrNothingDisclosed = errors.New("ratchet: nothing disclosed yet")
)

// Chain is the disclosing end of a stream. It derives the secret for each
// index from the master secret and hands them out in order.
type Chain[P prg.PRG] struct {
	mu   sync.Mutex
	prf  *cprf.PRF[P]
	sk   cprf.MasterSecret
	next uint64
	done bool
}

// NewChain creates a chain that discloses from index 0.
func NewChain[P prg.PRG](p P, sk cprf.MasterSecret) *Chain[P] {
	return &Chain[P]{prf: cprf.New(p), sk: sk}
}

// ResumeChain creates a chain whose next disclosure is at index next.
func ResumeChain[P prg.PRG](p P, sk cprf.MasterSecret, next uint64) (*Chain[P], error) {
	if next > cprf.MaxIndex {
		return nil, ErrChainExhausted
	}
	return &Chain[P]{prf: cprf.New(p), sk: sk, next: next}, nil
}

// Next returns the disclosure for the next index and advances the chain.
func (c *Chain[P]) Next() (Disclosure, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done {
		return Disclosure{}, ErrChainExhausted
	}
	secret, err := c.prf.Evaluate(c.sk, c.next)
	if err != nil {
		return Disclosure{}, err
	}
	d := Disclosure{Index: c.next, Secret: secret}
	if c.next == cprf.MaxIndex {
		c.done = true
	} else {
		c.next++
	}
	return d, nil
}

// Position returns the index of the next disclosure.
func (c *Chain[P]) Position() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.next
}

// Constrain returns a key covering everything disclosed so far, and the
// constraint it is valid for. A counterparty can hand it to
// NewReceiverFromKey instead of replaying every disclosure.
func (c *Chain[P]) Constrain() (*cprf.ConstrainedKey[P], uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.next == 0 && !c.done {
		return nil, 0, ErrNothingDisclosed
	}
	last := c.next - 1
	if c.done {
		last = cprf.MaxIndex
	}
	ck, err := c.prf.Constrain(c.sk, last)
	if err != nil {
		return nil, 0, err
	}
	return ck, last, nil
}

// Seal encrypts plaintext under the secret at index. The index may lie in
// the future; the receiver can open the envelope once it is disclosed.
func (c *Chain[P]) Seal(index uint64, plaintext, ad []byte) (Envelope, error) {
	secret, err := c.prf.Evaluate(c.sk, index)
	if err != nil {
		return Envelope{}, err
	}
	aead, err := messageAEAD(secret, index)
	if err != nil {
		return Envelope{}, err
	}
	ct, err := aead.Seal(plaintext, ad)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Index: index, Ciphertext: ct}, nil
}

func messageAEAD(secret cprf.Node, index uint64) (*crypto.AEAD, error) {
	key, err := crypto.MessageKey(secret, index)
	if err != nil {
		return nil, err
	}
	return crypto.NewAEAD(key)
}
