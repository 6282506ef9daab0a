// Package removal computes safe deletion plans for grid items and renders
// them as shell scripts.
//
// The store only removes empty collections, so ordering is everything: a
// plan emits a removal command per data object as the tree walk encounters
// it, then removal commands for the collections in reverse lexical order.
// A child collection's path is always prefixed by, and so sorts after, its
// parent's, which places deeper collections first. The root comes last.
// None of the emitted commands are recursive; each removes exactly one item,
// and correctness depends entirely on emission order.
package removal
