package checks

import (
	"rods-warden/core/store"
)

// HasCompleteChecksums returns true if every valid replica of the object has
// a checksum.
func HasCompleteChecksums(obj *store.Object) bool {
	for _, r := range obj.ValidReplicas() {
		if r.Checksum == "" {
			return false
		}
	}
	return true
}

// HasMatchingChecksums returns true if the checksums of all valid replicas
// agree. Vacuously true for zero or one valid replica.
func HasMatchingChecksums(obj *store.Object) bool {
	valid := obj.ValidReplicas()
	if len(valid) < 2 {
		return true
	}
	for _, r := range valid[1:] {
		if r.Checksum != valid[0].Checksum {
			return false
		}
	}
	return true
}

// HasChecksumMetadata returns true if the object has at least one checksum
// AVU.
func HasChecksumMetadata(obj *store.Object) bool {
	return len(obj.AVUsFor(AttrChecksum)) > 0
}

// HasMatchingChecksumMetadata returns true if the object has exactly one
// checksum AVU and its value equals the checksum agreed by all valid
// replicas.
func HasMatchingChecksumMetadata(obj *store.Object) bool {
	if !HasCompleteChecksums(obj) || !HasMatchingChecksums(obj) {
		return false
	}
	avus := obj.AVUsFor(AttrChecksum)
	return len(avus) == 1 && avus[0].Value == obj.Checksum()
}

// HasCompleteReplicas returns true if the object has exactly expected valid
// replicas.
func HasCompleteReplicas(obj *store.Object, expected int) bool {
	return len(obj.ValidReplicas()) == expected
}

// HasTrimmableReplicas returns true if the object has any invalid replicas,
// or more valid replicas than expected.
func HasTrimmableReplicas(obj *store.Object, expected int) bool {
	valid, invalid := TrimmableReplicas(obj, expected)
	return len(valid) > 0 || len(invalid) > 0
}

// TrimmableReplicas partitions the object's trimmable replicas into the
// valid replicas in excess of the expected count and the invalid replicas.
func TrimmableReplicas(obj *store.Object, expected int) (valid, invalid []store.Replica) {
	v := obj.ValidReplicas()
	if len(v) > expected {
		valid = v[expected:]
	}
	invalid = obj.InvalidReplicas()
	return valid, invalid
}

// HasCommonMetadata returns true if every piece of common metadata required
// for the object is present.
func HasCommonMetadata(obj *store.Object) bool {
	if RequiresChecksumMetadata(obj) && !HasChecksumMetadata(obj) {
		return false
	}
	if RequiresCreationMetadata(obj) && !HasCreationMetadata(obj) {
		return false
	}
	if RequiresTypeMetadata(obj) && !HasTypeMetadata(obj) {
		return false
	}
	return true
}
