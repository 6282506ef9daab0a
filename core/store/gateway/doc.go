// Package gateway is the concrete store.Client for the grid.
//
// The grid splits into two planes. The data plane is an S3-compatible
// object store (MinIO) where each configured storage resource is a bucket
// and a replica is the object's copy in one resource bucket. The metadata
// plane is a MySQL catalog holding the item tree (collections, data
// objects), the replica registry (resource, checksum, validity, creation
// time), AVU metadata, and access lists.
//
// All structural questions (stat, list, replica enumeration, metadata) are
// answered from the catalog alone. Mutations keep the planes consistent:
// trimming a replica deletes both the bucket object and its registry row,
// and the verified copy primitive replicates onto every resource bucket,
// compares the written ETag against the source checksum, and registers the
// new replicas only after every copy verified.
package gateway
