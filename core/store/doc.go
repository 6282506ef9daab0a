// Package store defines the client-side view of the grid, a remote
// hierarchical object store with replication and attribute-value metadata.
//
// Items in the grid are either collections (containers) or data objects
// (leaves). A data object's bytes exist as one or more replicas, each held on
// a named storage resource with its own checksum and validity flag. Arbitrary
// AVU (attribute/value/units) triples and access entries may be attached to
// any item.
//
// # Client Interface
//
// The Client interface is the complete capability surface the rest of the
// system builds on: stat/list, metadata and permission reads, replica
// enumeration, and the mutating primitives (add metadata/permissions, trim
// replicas, create collections, verified object copy, single-item removal).
// A concrete implementation lives in store/gateway; a testify mock lives in
// store/mocks.
//
// # Snapshots
//
// FetchObject resolves a path into an Object snapshot (replicas + metadata,
// fetched concurrently). Predicates elsewhere operate on snapshots only, so
// they stay pure and trivially testable.
//
// # Pooling
//
// Pool is a bounded pool of Clients. Workers acquire a client for the
// duration of one item's processing and must release it on every exit path.
package store
