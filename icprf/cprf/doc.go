// Package cprf implements an incrementally constrained pseudorandom function.
//
// A 32-byte master secret is the root of a perfect binary tree of height
// Depth whose nodes are derived with a length-doubling generator (see package
// prg). Indices number the tree nodes in post-order, so the secret at index i
// is the node reached by descending from the root, and every index below a
// subtree's root belongs to that subtree.
//
// Constrain produces a ConstrainedKey: the spine of subtree roots covering
// every index up to a constraint C and nothing after it. A holder of the key
// can recompute any secret at or before C with ConstrainedEval, and can extend
// the key to C+1 with Increment once the secret for C+1 is disclosed. Increment
// checks the disclosed secret against the spine, so a forged or skipped
// disclosure is rejected before anything is changed.
//
// The generator is a type parameter of PRF and ConstrainedKey; a key built
// with one generator cannot be evaluated with another.
package cprf
