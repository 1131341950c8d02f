// Package identity provides the Ed25519 identities senders use to sign
// handovers, and the SignerID receivers pin them by.
package identity
