package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/TheusHen/icprf/icprf/cprf"
)

const messageKeyInfo = "icprf-message-key"

// GenerateMasterSecret returns a fresh random master secret.
func GenerateMasterSecret() (cprf.MasterSecret, error) {
	var sk cprf.MasterSecret
	if _, err := io.ReadFull(rand.Reader, sk[:]); err != nil {
		return cprf.MasterSecret{}, err
	}
	return sk, nil
}

// DeriveMasterSecret derives a master secret from seed material using
// HKDF-SHA256. salt may be nil; info binds the secret to its use.
func DeriveMasterSecret(seed, salt, info []byte) (cprf.MasterSecret, error) {
	var sk cprf.MasterSecret
	if err := deriveInto(sk[:], seed, salt, info); err != nil {
		return cprf.MasterSecret{}, err
	}
	return sk, nil
}

// MessageKey derives the symmetric key for messages sealed under the secret
// at index. The index is bound into the HKDF info so that a secret reused at
// another position yields another key.
func MessageKey(secret cprf.Node, index uint64) ([KeySize]byte, error) {
	info := make([]byte, 0, len(messageKeyInfo)+8)
	info = append(info, messageKeyInfo...)
	info = binary.BigEndian.AppendUint64(info, index)

	var key [KeySize]byte
	if err := deriveInto(key[:], secret[:], nil, info); err != nil {
		return [KeySize]byte{}, err
	}
	return key, nil
}

func deriveInto(out, secret, salt, info []byte) error {
	_, err := io.ReadFull(hkdf.New(sha256.New, secret, salt, info), out)
	return err
}
