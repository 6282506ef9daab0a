package store

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Object is a point-in-time snapshot of a data object: its replicas and its
// metadata. Snapshots are read-only; all mutation goes through a Client.
type Object struct {
	Path     string
	Replicas []Replica
	Metadata []AVU
}

// FetchObject resolves a path into an Object snapshot. Replicas and metadata
// are fetched concurrently on the same client.
func FetchObject(ctx context.Context, c Client, path string) (*Object, error) {
	obj := &Object{Path: path}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		replicas, err := c.Replicas(ctx, path)
		if err != nil {
			return err
		}
		obj.Replicas = replicas
		return nil
	})
	g.Go(func() error {
		metadata, err := c.Metadata(ctx, path)
		if err != nil {
			return err
		}
		obj.Metadata = metadata
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return obj, nil
}

// ValidReplicas returns the replicas in the valid state.
func (o *Object) ValidReplicas() []Replica {
	var valid []Replica
	for _, r := range o.Replicas {
		if r.Valid {
			valid = append(valid, r)
		}
	}
	return valid
}

// InvalidReplicas returns the replicas not in the valid state.
func (o *Object) InvalidReplicas() []Replica {
	var invalid []Replica
	for _, r := range o.Replicas {
		if !r.Valid {
			invalid = append(invalid, r)
		}
	}
	return invalid
}

// Checksum returns the object's checksum, taken from its first valid
// replica. It is only "the" checksum of the object when all valid replicas
// agree; callers that need that guarantee check it first.
func (o *Object) Checksum() string {
	for _, r := range o.Replicas {
		if r.Valid {
			return r.Checksum
		}
	}
	return ""
}

// AVUsFor returns the AVUs with the given attribute.
func (o *Object) AVUsFor(attr string) []AVU {
	var avus []AVU
	for _, avu := range o.Metadata {
		if avu.Attr == attr {
			avus = append(avus, avu)
		}
	}
	return avus
}
