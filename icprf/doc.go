// Package icprf provides an incrementally constrained pseudorandom function
// for per-index secret chains, such as the revocation secrets of payment
// channels.
//
// One 32-byte master secret defines a secret for every index up to
// cprf.MaxIndex. The disclosing party hands out secrets in index order; the
// receiving party keeps a compact constrained key from which it can recompute
// every secret disclosed so far, and which rejects a disclosure that does not
// belong to the same tree.
//
// Packages:
//   - prg: the length-doubling generators (ChaCha20, SHA-512, BLAKE2b, SHA3)
//   - cprf: evaluation, constraining, incremental update and constrained evaluation
//   - ratchet: stateful disclosing and verifying ends of a stream
//   - crypto: master secret generation, HKDF derivation, message sealing
//   - protocol: framing for disclosure streams and signed handovers
//   - identity: Ed25519 identities that sign handovers
//   - shachain: the BOLT-3 per-commitment secret baseline
package icprf
