// Package checks provides the correctness predicates for grid items and the
// mutating ensure-operations the repair paths delegate to.
//
// The predicates are pure functions over store.Object snapshots: they do no
// I/O and never mutate, so a data object's state can be classified once from
// a single snapshot and every decision made from it is consistent.
//
// # Checksum conditions
//
// A data object's checksums are correct when every valid replica has a
// checksum, all valid replica checksums agree, and exactly one checksum AVU
// exists whose value equals the agreed checksum.
//
// # Replica conditions
//
// Replicas are correct when the number of valid replicas equals the count
// expected for the object's location and no replica is trimmable. Invalid
// replicas are always trimmable; valid replicas are trimmable when they
// exceed the expected count.
//
// # Common metadata
//
// Common metadata is the conjunction of checksum, creation, and type
// metadata presence, each required only where the policy demands it (type
// metadata only for recognized data-file suffixes).
package checks
