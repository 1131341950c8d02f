// Package prg provides the length-doubling pseudorandom generators that drive
// the derivation tree.
//
// A generator maps a 32-byte seed to 64 bytes. The left half is the seed of
// the left child and the right half the seed of the right child. Every
// generator is an empty struct type so it can be used as a type argument,
// which binds a derivation session to exactly one generator at compile time.
package prg
