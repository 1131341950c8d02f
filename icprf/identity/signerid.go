package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// SignerID is the stable identifier for a sender.
// It is defined as: SignerID = SHA-256(PublicKey).
type SignerID [32]byte

func SignerIDFromPublicKey(publicKey []byte) SignerID {
	return SignerID(sha256.Sum256(publicKey))
}

func ParseSignerIDHex(s string) (SignerID, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return SignerID{}, err
	}
	if len(b) != len(SignerID{}) {
		return SignerID{}, errors.New("identity: invalid signer id length")
	}
	var id SignerID
	copy(id[:], b)
	return id, nil
}

func (id SignerID) String() string {
	return hex.EncodeToString(id[:])
}
