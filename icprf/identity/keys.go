package identity

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
)

// SeedSize is the length of the private seed a key pair is derived from.
const SeedSize = ed25519.SeedSize

var ErrInvalidSeed = errors.New("identity: invalid Ed25519 seed size")

// KeyPair holds the Ed25519 keypair a sender signs handovers with.
type KeyPair struct {
	PublicKey  ed25519.PublicKey
	PrivateKey ed25519.PrivateKey
}

func GenerateKeyPair() (KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return KeyPair{}, err
	}
	return KeyPair{PublicKey: pub, PrivateKey: priv}, nil
}

// NewKeyPairFromSeed deterministically derives a key pair, so a sender can
// keep only the seed in its configuration.
func NewKeyPairFromSeed(seed []byte) (KeyPair, error) {
	if len(seed) != SeedSize {
		return KeyPair{}, ErrInvalidSeed
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return KeyPair{PublicKey: priv.Public().(ed25519.PublicKey), PrivateKey: priv}, nil
}

func (kp KeyPair) SignerID() SignerID {
	return SignerIDFromPublicKey(kp.PublicKey)
}

func (kp KeyPair) Sign(message []byte) []byte {
	return ed25519.Sign(kp.PrivateKey, message)
}

func Verify(publicKey ed25519.PublicKey, message, signature []byte) bool {
	if len(publicKey) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(publicKey, message, signature)
}
