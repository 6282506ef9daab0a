// Package integrity provides the check and repair operations for data
// object checksums, replicas, and common metadata.
//
// Each operation reads data object paths from a line-oriented reader, runs a
// per-item policy through the concurrent driver in core/reconcile, and
// writes matched paths to a writer according to the print flags. Checks are
// strictly read-only; repairs mutate only through the documented
// ensure/trim operations and are safe to re-apply.
//
// # Operations
//
//   - CheckChecksums / RepairChecksums: replica checksum completeness and
//     agreement, and the single matching checksum AVU.
//   - CheckReplicas / RepairReplicas: expected valid replica count and
//     trimmable (invalid or excess) replicas. Repair only ever trims;
//     missing replicas are never created here.
//   - CheckCommonMetadata / RepairCommonMetadata: checksum, creation, and
//     type metadata presence per the common metadata policy.
package integrity
