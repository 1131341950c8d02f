// Package ratchet runs the two ends of a disclosure stream.
//
// A Chain holds the master secret and discloses one secret per index, in
// order. A Receiver holds only a constrained key: it checks each disclosure
// against what it already holds, and can recompute every secret disclosed so
// far. Messages sealed by the Chain under a future index become readable by
// the Receiver once that index has been disclosed.
package ratchet
