package protocol

import (
	"crypto/ed25519"
	"errors"

	"github.com/TheusHen/icprf/icprf/identity"
)

var ErrBadSignature = errors.New("protocol: bad handover signature")

// handoverContext separates handover signatures from anything else the same
// key might sign.
const handoverContext = "icprf-handover-v1"

// SignHandover encodes h and signs it with kp.
// Format:
//
//	32 bytes: Ed25519 public key
//	64 bytes: signature over handoverContext || encoded handover
//	rest: encoded handover
func SignHandover(kp identity.KeyPair, h Handover) ([]byte, error) {
	body, err := EncodeHandover(h)
	if err != nil {
		return nil, err
	}
	sig := kp.Sign(signedMessage(body))
	out := make([]byte, 0, ed25519.PublicKeySize+ed25519.SignatureSize+len(body))
	out = append(out, kp.PublicKey...)
	out = append(out, sig...)
	out = append(out, body...)
	return out, nil
}

// OpenSignedHandover checks the signature on data and returns the handover
// with the identity that signed it. Deciding whether to trust that identity
// is up to the caller.
func OpenSignedHandover(data []byte) (Handover, identity.SignerID, error) {
	const header = ed25519.PublicKeySize + ed25519.SignatureSize
	if len(data) < header {
		return Handover{}, identity.SignerID{}, ErrMalformedHandover
	}
	pub := ed25519.PublicKey(data[:ed25519.PublicKeySize])
	sig := data[ed25519.PublicKeySize:header]
	body := data[header:]
	if !identity.Verify(pub, signedMessage(body), sig) {
		return Handover{}, identity.SignerID{}, ErrBadSignature
	}
	h, err := DecodeHandover(body)
	if err != nil {
		return Handover{}, identity.SignerID{}, err
	}
	return h, identity.SignerIDFromPublicKey(pub), nil
}

func signedMessage(body []byte) []byte {
	msg := make([]byte, 0, len(handoverContext)+len(body))
	msg = append(msg, handoverContext...)
	return append(msg, body...)
}
