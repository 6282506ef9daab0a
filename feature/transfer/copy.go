package transfer

import (
	"context"
	"errors"
	"fmt"
	"path"

	"rods-warden/core/store"
	"rods-warden/feature/integrity/checks"

	"go.uber.org/zap"
)

// ErrInvalidPathTypes is returned when the source and destination kinds form
// a combination that cannot be copied. This indicates caller misuse, not a
// transient condition, and is never handled internally.
var ErrInvalidPathTypes = errors.New("invalid path type combination")

// Options controls a copy.
type Options struct {
	// ACL also copies permissions.
	ACL bool
	// AVU also copies metadata.
	AVU bool
	// ExistOK skips items that already exist at the destination and are
	// identical to what the copy would produce, instead of failing.
	ExistOK bool
	// Recurse descends into collections.
	Recurse bool
}

// copyAction is one entry of the dispatch table.
type copyAction int

const (
	actionReject copyAction = iota
	actionCopyCollection
	actionCopyObject
	actionCopyObjectInto
)

// pathTypes keys the dispatch table by the kinds found at the source and
// destination paths. KindNone means nothing exists at the destination.
type pathTypes struct {
	Src, Dest store.Kind
}

// dispatch is the copy truth table. Pairs not listed (a missing source) are
// invalid.
var dispatch = map[pathTypes]copyAction{
	{Src: store.KindCollection, Dest: store.KindDataObject}: actionReject,
	{Src: store.KindCollection, Dest: store.KindCollection}: actionCopyCollection,
	{Src: store.KindCollection, Dest: store.KindNone}:       actionCopyCollection,
	{Src: store.KindDataObject, Dest: store.KindDataObject}: actionCopyObject,
	{Src: store.KindDataObject, Dest: store.KindNone}:       actionCopyObject,
	{Src: store.KindDataObject, Dest: store.KindCollection}: actionCopyObjectInto,
}

// Copy copies a collection or data object from src to dest, optionally
// including metadata and permissions. It returns the number of items
// processed and the number actually copied; with Options.ExistOK, items
// skipped because an identical item already exists at the destination count
// as processed but not copied.
//
// Checksum inconsistencies abort the whole call with a
// checks.ChecksumError.
func Copy(ctx context.Context, c store.Client, src, dest string, opts Options, log *zap.Logger) (int, int, error) {
	e := &engine{c: c, opts: opts, log: log}
	return e.copy(ctx, src, dest)
}

type engine struct {
	c    store.Client
	opts Options
	log  *zap.Logger
}

func (e *engine) copy(ctx context.Context, src, dest string) (int, int, error) {
	srcKind, err := e.c.Stat(ctx, src)
	if err != nil {
		return 0, 0, err
	}
	destKind, err := e.c.Stat(ctx, dest)
	if err != nil {
		return 0, 0, err
	}

	action, ok := dispatch[pathTypes{Src: srcKind, Dest: destKind}]
	if !ok {
		return 0, 0, fmt.Errorf("%w: src %s (%s), dest %s (%s)",
			ErrInvalidPathTypes, src, srcKind, dest, destKind)
	}

	switch action {
	case actionCopyCollection:
		return e.copyCollection(ctx, src, dest)
	case actionCopyObject:
		return e.copyObject(ctx, src, dest)
	case actionCopyObjectInto:
		return e.copyObject(ctx, src, path.Join(dest, path.Base(src)))
	default:
		return 0, 0, fmt.Errorf("%w: cannot copy collection %s into data object %s",
			ErrInvalidPathTypes, src, dest)
	}
}

// copyCollection creates a child collection at dest named after src's
// basename, propagates metadata/permissions, and recurses if requested.
func (e *engine) copyCollection(ctx context.Context, src, dest string) (int, int, error) {
	coll := path.Join(dest, path.Base(src))
	processed, copied := 1, 0

	created, err := e.maybeCreateCollection(ctx, src, coll)
	if err != nil {
		return processed, copied, err
	}
	if created {
		copied++
	}
	if err := e.propagate(ctx, src, coll); err != nil {
		return processed, copied, err
	}

	if e.opts.Recurse {
		entries, err := e.c.List(ctx, src)
		if err != nil {
			return processed, copied, err
		}
		for _, entry := range entries {
			np, nc, err := e.copy(ctx, entry.Path, coll)
			processed += np
			copied += nc
			if err != nil {
				return processed, copied, err
			}
		}
	}

	return processed, copied, nil
}

func (e *engine) maybeCreateCollection(ctx context.Context, src, dest string) (bool, error) {
	if e.opts.ExistOK {
		kind, err := e.c.Stat(ctx, dest)
		if err != nil {
			return false, err
		}
		if kind == store.KindCollection {
			e.log.Info("Skipping copy of collection, destination collection exists",
				zap.String("src", src), zap.String("dest", dest))
			return false, nil
		}
	}

	e.log.Info("Copying collection", zap.String("src", src), zap.String("dest", dest))
	if err := e.c.CreateCollection(ctx, dest, e.opts.ExistOK); err != nil {
		return false, err
	}
	return true, nil
}

// copyObject copies a single data object to the destination path.
func (e *engine) copyObject(ctx context.Context, src, dest string) (int, int, error) {
	copied, err := e.maybeCopyObject(ctx, src, dest)
	if err != nil {
		return 1, 0, err
	}
	if err := e.propagate(ctx, src, dest); err != nil {
		return 1, copied, err
	}
	return 1, copied, nil
}

func (e *engine) maybeCopyObject(ctx context.Context, src, dest string) (int, error) {
	if e.opts.ExistOK {
		kind, err := e.c.Stat(ctx, dest)
		if err != nil {
			return 0, err
		}
		if kind == store.KindDataObject {
			return 0, e.checkExisting(ctx, src, dest)
		}
	}

	e.log.Info("Copying data object", zap.String("src", src), zap.String("dest", dest))
	if err := e.c.CopyObject(ctx, src, dest, true); err != nil {
		return 0, err
	}
	return 1, nil
}

// checkExisting decides whether an existing destination object can be
// trusted as an already-completed copy of src.
func (e *engine) checkExisting(ctx context.Context, src, dest string) error {
	s, err := store.FetchObject(ctx, e.c, src)
	if err != nil {
		return err
	}
	d, err := store.FetchObject(ctx, e.c, dest)
	if err != nil {
		return err
	}

	if s.Checksum() != d.Checksum() {
		return &checks.ChecksumError{
			Message:  "a data object with a different checksum exists at the destination",
			Path:     dest,
			Expected: s.Checksum(),
			Observed: []string{d.Checksum()},
		}
	}
	if !checks.HasMatchingChecksums(s) {
		return &checks.ChecksumError{
			Message:  "the source data object does not have matching checksums",
			Path:     src,
			Observed: allReplicaChecksums(s),
		}
	}
	if !checks.HasMatchingChecksums(d) {
		return &checks.ChecksumError{
			Message:  "the destination data object does not have matching checksums",
			Path:     dest,
			Observed: allReplicaChecksums(d),
		}
	}

	e.log.Info("Skipping copy of data object, destination object exists",
		zap.String("src", src),
		zap.String("dest", dest),
		zap.String("checksum", d.Checksum()),
	)
	return nil
}

// propagate copies metadata and permissions, per options. Propagation is
// additive: nothing at the destination is removed.
func (e *engine) propagate(ctx context.Context, src, dest string) error {
	if e.opts.AVU {
		avus, err := e.c.Metadata(ctx, src)
		if err != nil {
			return err
		}
		n, err := e.c.AddMetadata(ctx, dest, avus...)
		if err != nil {
			return err
		}
		e.log.Info("Added AVUs", zap.Int("count", n), zap.String("path", dest))
	}
	if e.opts.ACL {
		acl, err := e.c.Permissions(ctx, src)
		if err != nil {
			return err
		}
		n, err := e.c.AddPermissions(ctx, dest, acl...)
		if err != nil {
			return err
		}
		e.log.Info("Added permissions", zap.Int("count", n), zap.String("path", dest))
	}
	return nil
}

func allReplicaChecksums(o *store.Object) []string {
	var sums []string
	for _, r := range o.Replicas {
		sums = append(sums, r.Checksum)
	}
	return sums
}
