// Package crypto provides the key material helpers around the PRF.
//
//   - Master secrets from crypto/rand or from seed material via HKDF-SHA256
//   - Per-index message keys derived from disclosed secrets via HKDF-SHA256
//   - AEAD sealing via XChaCha20-Poly1305 with random nonces
package crypto
