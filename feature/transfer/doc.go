// Package transfer provides the idempotent copy engine for grid items.
//
// Copy dispatches on the (source kind, destination kind) pair: collections
// are created at the destination (optionally recursing into their contents),
// data objects are copied through the store's verified copy primitive, and
// nonsensical combinations (a collection into a data object) are rejected.
// Metadata and permission propagation is additive only.
//
// With exist_ok set, a copy is skipped when the destination already holds an
// equivalent item. For a data object this demands more than checksum
// equality: both sides must also each have internally agreeing replica
// checksums, because an object whose own replicas disagree cannot be trusted
// as already correctly copied. A violation raises a ChecksumError to the
// caller; copying over bad data is not safe to simply skip.
package transfer
