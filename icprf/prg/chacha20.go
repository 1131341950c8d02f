package prg

import (
	"golang.org/x/crypto/chacha20"
)

var zeroNonce [chacha20.NonceSize]byte

// ChaCha20 keys the ChaCha20 stream cipher with the seed and a zero nonce and
// returns the first 64 keystream bytes.
type ChaCha20 struct{}

func (ChaCha20) Name() string { return "chacha20" }

func (ChaCha20) Generate(seed *[SeedSize]byte) [OutputSize]byte {
	var out [OutputSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(seed[:], zeroNonce[:])
	if err != nil {
		// only reachable with a bad key or nonce length
		panic("prg: " + err.Error())
	}
	c.XORKeyStream(out[:], out[:])
	return out
}
