package checks

import (
	"context"
	"path"
	"sort"
	"strings"
	"time"

	"rods-warden/core/store"
)

// Common metadata attributes.
const (
	// AttrChecksum holds the agreed replica checksum of a data object.
	AttrChecksum = "md5"
	// AttrCreated holds the creation time, RFC 3339, UTC.
	AttrCreated = "dcterms:created"
	// AttrCreator holds the identity of the data creator.
	AttrCreator = "dcterms:creator"
	// AttrType holds the data type derived from the path suffix.
	AttrType = "type"
)

// PlaceholderCreator is recorded when no creator identity is supplied.
const PlaceholderCreator = "unknown"

// recognizedSuffixes are the data-file suffixes that a type AVU is required
// for. Anything else carries no type metadata.
var recognizedSuffixes = map[string]struct{}{
	"bam": {}, "bed": {}, "cram": {}, "csv": {}, "fast5": {}, "fastq": {},
	"json": {}, "pod5": {}, "tsv": {}, "txt": {}, "vcf": {}, "xml": {},
}

// DataTypeForPath returns the data type implied by a path's suffix, or ""
// when the suffix is not a recognized data-file type. Compression suffixes
// are looked through, so "reads.fastq.gz" has type "fastq".
func DataTypeForPath(p string) string {
	name := path.Base(p)
	for _, compression := range []string{".gz", ".bz2", ".zst"} {
		name = strings.TrimSuffix(name, compression)
	}

	ext := strings.TrimPrefix(path.Ext(name), ".")
	ext = strings.ToLower(ext)
	if _, ok := recognizedSuffixes[ext]; ok {
		return ext
	}
	return ""
}

// RequiresChecksumMetadata returns true if the object must carry a checksum
// AVU. All data objects do.
func RequiresChecksumMetadata(obj *store.Object) bool {
	return true
}

// RequiresCreationMetadata returns true if the object must carry creation
// metadata. All data objects do.
func RequiresCreationMetadata(obj *store.Object) bool {
	return true
}

// HasCreationMetadata returns true if the object has both a created and a
// creator AVU.
func HasCreationMetadata(obj *store.Object) bool {
	return len(obj.AVUsFor(AttrCreated)) > 0 && len(obj.AVUsFor(AttrCreator)) > 0
}

// RequiresTypeMetadata returns true if the object's path has a recognized
// data-file suffix.
func RequiresTypeMetadata(obj *store.Object) bool {
	return DataTypeForPath(obj.Path) != ""
}

// HasTypeMetadata returns true if the object has a type AVU.
func HasTypeMetadata(obj *store.Object) bool {
	return len(obj.AVUsFor(AttrType)) > 0
}

// EnsureMatchingChecksumMetadata makes the object's checksum metadata match
// its replica checksums, replacing the checksum AVU set with exactly one AVU
// holding the agreed value. It returns true if metadata were changed.
//
// Repair is refused with a ChecksumError when some valid replica lacks a
// checksum or the valid replica checksums diverge: choosing the correct
// value then needs a judgement on which replica is authoritative.
func EnsureMatchingChecksumMetadata(ctx context.Context, c store.Client, obj *store.Object) (bool, error) {
	if HasMatchingChecksumMetadata(obj) {
		return false, nil
	}
	if !HasCompleteChecksums(obj) {
		return false, &ChecksumError{
			Message:  "a valid replica has no checksum",
			Path:     obj.Path,
			Observed: replicaChecksums(obj),
		}
	}
	if !HasMatchingChecksums(obj) {
		return false, &ChecksumError{
			Message:  "valid replica checksums do not match",
			Path:     obj.Path,
			Observed: replicaChecksums(obj),
		}
	}

	if stale := obj.AVUsFor(AttrChecksum); len(stale) > 0 {
		if _, err := c.RemoveMetadata(ctx, obj.Path, stale...); err != nil {
			return false, err
		}
	}
	avu := store.AVU{Attr: AttrChecksum, Value: obj.Checksum()}
	if _, err := c.AddMetadata(ctx, obj.Path, avu); err != nil {
		return false, err
	}

	return true, nil
}

// EnsureCommonMetadata fills in any common metadata the object is missing.
// Creation time is taken from the store's record of the earliest valid
// replica; the creator defaults to a placeholder when absent; the type comes
// from the path suffix. It returns true if any metadata were added.
func EnsureCommonMetadata(ctx context.Context, c store.Client, obj *store.Object, creator string) (bool, error) {
	if creator == "" {
		creator = PlaceholderCreator
	}

	var pending []store.AVU

	if RequiresChecksumMetadata(obj) && !HasChecksumMetadata(obj) {
		if !HasCompleteChecksums(obj) || !HasMatchingChecksums(obj) {
			return false, &ChecksumError{
				Message:  "cannot derive a checksum AVU from divergent replicas",
				Path:     obj.Path,
				Observed: replicaChecksums(obj),
			}
		}
		pending = append(pending, store.AVU{Attr: AttrChecksum, Value: obj.Checksum()})
	}

	if RequiresCreationMetadata(obj) && !HasCreationMetadata(obj) {
		pending = append(pending,
			store.AVU{Attr: AttrCreated, Value: earliestReplicaTime(obj).Format(time.RFC3339)},
			store.AVU{Attr: AttrCreator, Value: creator},
		)
	}

	if RequiresTypeMetadata(obj) && !HasTypeMetadata(obj) {
		pending = append(pending, store.AVU{Attr: AttrType, Value: DataTypeForPath(obj.Path)})
	}

	if len(pending) == 0 {
		return false, nil
	}

	n, err := c.AddMetadata(ctx, obj.Path, pending...)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// replicaChecksums returns the sorted checksums of the object's valid
// replicas, for diagnostics.
func replicaChecksums(obj *store.Object) []string {
	var sums []string
	for _, r := range obj.ValidReplicas() {
		sums = append(sums, r.Checksum)
	}
	sort.Strings(sums)
	return sums
}

// earliestReplicaTime returns the creation time of the object's earliest
// valid replica, falling back across all replicas when none are valid.
func earliestReplicaTime(obj *store.Object) time.Time {
	replicas := obj.ValidReplicas()
	if len(replicas) == 0 {
		replicas = obj.Replicas
	}

	var earliest time.Time
	for _, r := range replicas {
		if earliest.IsZero() || r.Created.Before(earliest) {
			earliest = r.Created
		}
	}
	if earliest.IsZero() {
		earliest = time.Now().UTC()
	}
	return earliest.UTC()
}
