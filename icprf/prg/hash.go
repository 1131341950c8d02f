package prg

import (
	"crypto/sha512"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// SHA512 splits the SHA-512 digest of the seed.
type SHA512 struct{}

func (SHA512) Name() string { return "sha512" }

func (SHA512) Generate(seed *[SeedSize]byte) [OutputSize]byte {
	return sha512.Sum512(seed[:])
}

// BLAKE2b splits the unkeyed BLAKE2b-512 digest of the seed.
type BLAKE2b struct{}

func (BLAKE2b) Name() string { return "blake2b" }

func (BLAKE2b) Generate(seed *[SeedSize]byte) [OutputSize]byte {
	return blake2b.Sum512(seed[:])
}

// SHA3 splits the SHA3-512 digest of the seed.
type SHA3 struct{}

func (SHA3) Name() string { return "sha3" }

func (SHA3) Generate(seed *[SeedSize]byte) [OutputSize]byte {
	return sha3.Sum512(seed[:])
}
