package store

import "time"

// Kind classifies an item at a grid path.
type Kind int

const (
	// KindNone means nothing exists at the path.
	KindNone Kind = iota
	// KindCollection is a container item.
	KindCollection
	// KindDataObject is a leaf item carrying data.
	KindDataObject
)

func (k Kind) String() string {
	switch k {
	case KindCollection:
		return "collection"
	case KindDataObject:
		return "data_object"
	default:
		return "none"
	}
}

// Replica is one physical copy of a data object's bytes on a storage
// resource.
type Replica struct {
	// Number is the replica ordinal within its object.
	Number int
	// Resource is the name of the storage resource holding this replica.
	Resource string
	// Checksum is the recorded checksum of this replica. Empty when the
	// resource has not (yet) computed one.
	Checksum string
	// Valid reports whether the replica is in the valid state. Invalid
	// replicas are stale copies left behind by interrupted writes.
	Valid bool
	// Created is the store's record of when this replica was written.
	Created time.Time
}

// AVU is an attribute/value/units metadata triple attached to an item.
// Multiple AVUs with the same attribute may coexist on one item.
type AVU struct {
	Attr  string
	Value string
	Units string
}

// Access is one entry of an item's access list.
type Access struct {
	// User is the grid account the entry grants to.
	User string
	// Level is the permission level, e.g. "own", "read".
	Level string
}

// Entry is one child of a collection.
type Entry struct {
	Path string
	Kind Kind
}
