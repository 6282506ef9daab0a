package integrity

import (
	"context"
	"io"
	"sort"

	"rods-warden/core/reconcile"
	"rods-warden/core/store"
	"rods-warden/feature/integrity/checks"

	"go.uber.org/zap"
)

// CheckChecksums reads data object paths from in and checks that each one
// has correct checksums and checksum metadata, writing matched paths to out.
//
// The conditions for a data object to be correct are:
//
//   - every valid replica has a checksum,
//   - the checksums of all valid replicas agree,
//   - the object has one, and only one, checksum AVU,
//   - the checksum AVU has the same value as the replica checksums.
//
// This operation never mutates.
func CheckChecksums(ctx context.Context, pool *store.Pool, log *zap.Logger, in io.Reader, out io.Writer, opts Options) (reconcile.Summary, error) {
	sink := reconcile.NewSink(out)

	fn := func(ctx context.Context, i int, path string, c store.Client) reconcile.Outcome {
		obj, err := store.FetchObject(ctx, c, path)
		if err != nil {
			logItemError(log, i, path, err)
			if opts.PrintFail {
				sink.Print(path)
			}
			return reconcile.Outcome{}
		}

		if checks.HasMatchingChecksumMetadata(obj) {
			log.Info("Checksums correct", zap.Int("item", i), zap.String("path", path))
			if opts.PrintPass {
				sink.Print(path)
			}
			return reconcile.Outcome{Success: true}
		}

		var values []string
		for _, avu := range obj.AVUsFor(checks.AttrChecksum) {
			values = append(values, avu.Value)
		}
		sort.Strings(values)
		log.Warn("Checksum metadata do not match",
			zap.Int("item", i),
			zap.String("path", path),
			zap.String("checksum", obj.Checksum()),
			zap.Strings("metadata", values),
		)
		if opts.PrintFail {
			sink.Print(path)
		}
		return reconcile.Outcome{}
	}

	return reconcile.Run(ctx, in, pool, opts.Workers, log, fn)
}

// RepairChecksums reads data object paths from in and ensures that each one
// has correct checksums and checksum metadata by making any necessary
// repairs, writing matched paths to out.
//
// The possible repair replaces the object's checksum AVU set with exactly
// one AVU holding the value all valid replicas agree on. Objects whose valid
// replicas lack checksums or disagree among themselves are not repaired
// automatically: deciding which replica is authoritative needs human
// judgement, so those items fail instead.
//
// Re-running a repair on a correct object is a no-op.
func RepairChecksums(ctx context.Context, pool *store.Pool, log *zap.Logger, in io.Reader, out io.Writer, opts Options) (reconcile.Summary, error) {
	sink := reconcile.NewSink(out)

	fn := func(ctx context.Context, i int, path string, c store.Client) reconcile.Outcome {
		obj, err := store.FetchObject(ctx, c, path)
		if err != nil {
			logItemError(log, i, path, err)
			if opts.PrintFail {
				sink.Print(path)
			}
			return reconcile.Outcome{}
		}

		if checks.HasMatchingChecksumMetadata(obj) {
			log.Info("Checksum metadata matches", zap.Int("item", i), zap.String("path", path))
			return reconcile.Outcome{Success: true}
		}

		log.Info("Checksum metadata incomplete; repairing",
			zap.Int("item", i),
			zap.String("path", path),
			zap.Bool("has_compl_checksums", checks.HasCompleteChecksums(obj)),
			zap.Bool("has_match_checksums", checks.HasMatchingChecksums(obj)),
			zap.Bool("has_checksum_meta", checks.HasChecksumMetadata(obj)),
		)

		repaired, err := checks.EnsureMatchingChecksumMetadata(ctx, c, obj)
		if err != nil {
			logItemError(log, i, path, err)
			if opts.PrintFail {
				sink.Print(path)
			}
			return reconcile.Outcome{}
		}

		if repaired && opts.PrintRepair {
			sink.Print(path)
		}
		return reconcile.Outcome{Success: true, Repaired: repaired}
	}

	return reconcile.Run(ctx, in, pool, opts.Workers, log, fn)
}
