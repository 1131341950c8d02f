package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the AEAD key size.
const KeySize = chacha20poly1305.KeySize

var (
	ErrCiphertextTooShort = errors.New("crypto: ciphertext too short")
	ErrDecryptionFailed   = errors.New("crypto: decryption failed")
)

// AEAD wraps XChaCha20-Poly1305. Nonces are 24 random bytes, large enough
// that a key can seal many messages without tracking a counter.
type AEAD struct {
	aead cipher.AEAD
}

// NewAEAD creates an AEAD from a 32-byte key.
func NewAEAD(key [KeySize]byte) (*AEAD, error) {
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, err
	}
	return &AEAD{aead: aead}, nil
}

// Seal encrypts and authenticates plaintext.
// Returns: nonce (24 bytes) || ciphertext || tag (16 bytes)
func (a *AEAD) Seal(plaintext, additionalData []byte) ([]byte, error) {
	out := make([]byte, chacha20poly1305.NonceSizeX, chacha20poly1305.NonceSizeX+len(plaintext)+a.aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, out); err != nil {
		return nil, err
	}
	return a.aead.Seal(out, out, plaintext, additionalData), nil
}

// Open decrypts and verifies data produced by Seal.
func (a *AEAD) Open(sealed, additionalData []byte) ([]byte, error) {
	if len(sealed) < chacha20poly1305.NonceSizeX+a.aead.Overhead() {
		return nil, ErrCiphertextTooShort
	}
	nonce, ct := sealed[:chacha20poly1305.NonceSizeX], sealed[chacha20poly1305.NonceSizeX:]
	plaintext, err := a.aead.Open(nil, nonce, ct, additionalData)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

// Overhead returns the number of bytes Seal adds to a plaintext.
func (a *AEAD) Overhead() int { return chacha20poly1305.NonceSizeX + a.aead.Overhead() }
