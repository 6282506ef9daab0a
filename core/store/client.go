package store

import "context"

// Client defines the interface for grid operations. One Client corresponds
// to one session against the store; Clients are not shared between workers,
// they are borrowed from a Pool instead.
type Client interface {
	// Stat reports what exists at a path. A missing path is KindNone with a
	// nil error.
	Stat(ctx context.Context, path string) (Kind, error)
	// List returns the immediate children of a collection.
	List(ctx context.Context, path string) ([]Entry, error)
	// Metadata returns all AVUs attached to an item.
	Metadata(ctx context.Context, path string) ([]AVU, error)
	// Replicas returns all replicas of a data object.
	Replicas(ctx context.Context, path string) ([]Replica, error)
	// Permissions returns the access list of an item.
	Permissions(ctx context.Context, path string) ([]Access, error)
	// AddMetadata attaches AVUs to an item, skipping AVUs already present.
	// It returns the number actually added.
	AddMetadata(ctx context.Context, path string, avus ...AVU) (int, error)
	// RemoveMetadata detaches matching AVUs from an item and returns the
	// number removed.
	RemoveMetadata(ctx context.Context, path string, avus ...AVU) (int, error)
	// AddPermissions grants access entries on an item, skipping entries
	// already present. It returns the number actually added.
	AddPermissions(ctx context.Context, path string, acl ...Access) (int, error)
	// TrimReplicas removes replicas of a data object. When valid is set,
	// valid replicas beyond the first keep are trimmed; when invalid is set,
	// all invalid replicas are trimmed. It returns the counts of valid and
	// invalid replicas removed.
	TrimReplicas(ctx context.Context, path string, valid, invalid bool, keep int) (int, int, error)
	// CreateCollection creates a collection. When existOK is set, an
	// existing collection at the path is not an error.
	CreateCollection(ctx context.Context, path string, existOK bool) error
	// CopyObject copies a data object's bytes to a new path, replicating
	// onto every configured resource. When verify is set the copy fails
	// with a checksum-mismatch Error unless the written data matches the
	// source checksum.
	CopyObject(ctx context.Context, src, dest string, verify bool) error
	// RemoveObject removes a single data object and all its replicas.
	RemoveObject(ctx context.Context, path string) error
	// RemoveCollection removes a single, empty collection.
	RemoveCollection(ctx context.Context, path string) error
	// Close releases the session.
	Close() error
}
