package integrity

import (
	"context"
	"io"

	"rods-warden/core/reconcile"
	"rods-warden/core/store"
	"rods-warden/feature/integrity/checks"

	"go.uber.org/zap"
)

// CheckReplicas reads data object paths from in and checks that each one has
// correct replicas, writing matched paths to out.
//
// The conditions for replicas of a data object to be correct are:
//
//   - the object has the number of valid replicas expected for its location
//     in the resource tree (typically 2; 1 for unreplicated subtrees),
//   - no replica is invalid,
//   - no valid replica is in excess of the expected count.
//
// This operation never mutates.
func CheckReplicas(ctx context.Context, pool *store.Pool, log *zap.Logger, in io.Reader, out io.Writer, opts Options) (reconcile.Summary, error) {
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

		expected := opts.ExpectedReplicas(path)
		comp := checks.HasCompleteReplicas(obj, expected)
		trim := checks.HasTrimmableReplicas(obj, expected)

		if comp && !trim {
			log.Info("Replicas are complete", zap.Int("item", i), zap.String("path", path))
			if opts.PrintPass {
				sink.Print(path)
			}
			return reconcile.Outcome{Success: true}
		}

		log.Warn("Replicas are incomplete",
			zap.Int("item", i),
			zap.String("path", path),
			zap.Int("num_valid", len(obj.ValidReplicas())),
			zap.Int("num_invalid", len(obj.InvalidReplicas())),
			zap.Bool("has_compl_replicas", comp),
			zap.Bool("has_trim_replicas", trim),
			zap.Bool("has_compl_checksums", checks.HasCompleteChecksums(obj)),
			zap.Bool("has_match_checksums", checks.HasMatchingChecksums(obj)),
		)
		if opts.PrintFail {
			sink.Print(path)
		}
		return reconcile.Outcome{}
	}

	return reconcile.Run(ctx, in, pool, opts.Workers, log, fn)
}

// RepairReplicas reads data object paths from in and ensures that each one
// has correct replicas by making any necessary repairs, writing matched
// paths to out.
//
// The possible repairs are:
//
//   - invalid replicas are trimmed (the most common repair),
//   - valid replicas in excess of the expected count are trimmed.
//
// Repair only ever trims. An object left with fewer valid replicas than
// expected after trimming is not topped up here; replica creation needs a
// choice of source resource and is out of scope.
func RepairReplicas(ctx context.Context, pool *store.Pool, log *zap.Logger, in io.Reader, out io.Writer, opts Options) (reconcile.Summary, error) {
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

		expected := opts.ExpectedReplicas(path)
		comp := checks.HasCompleteReplicas(obj, expected)
		valid, invalid := checks.TrimmableReplicas(obj, expected)

		if len(valid) == 0 && len(invalid) == 0 {
			log.Info("No replicas to trim",
				zap.Int("item", i),
				zap.String("path", path),
				zap.Bool("has_compl_checksums", checks.HasCompleteChecksums(obj)),
				zap.Bool("has_match_checksums", checks.HasMatchingChecksums(obj)),
				zap.Bool("has_checksum_meta", checks.HasChecksumMetadata(obj)),
				zap.Bool("has_compl_replicas", comp),
			)
			return reconcile.Outcome{Success: true}
		}

		if len(valid) > 0 {
			nv, _, err := c.TrimReplicas(ctx, path, true, false, expected)
			if err != nil {
				logItemError(log, i, path, err)
				if opts.PrintFail {
					sink.Print(path)
				}
				return reconcile.Outcome{}
			}
			log.Info("Trimmed valid replicas",
				zap.Int("item", i),
				zap.String("path", path),
				zap.Bool("has_compl_replicas", comp),
				zap.Int("num_trimmed", nv),
			)
		}
		if len(invalid) > 0 {
			_, ni, err := c.TrimReplicas(ctx, path, false, true, expected)
			if err != nil {
				logItemError(log, i, path, err)
				if opts.PrintFail {
					sink.Print(path)
				}
				return reconcile.Outcome{}
			}
			log.Info("Trimmed invalid replicas",
				zap.Int("item", i),
				zap.String("path", path),
				zap.Bool("has_compl_replicas", comp),
				zap.Int("num_trimmed", ni),
			)
		}

		if opts.PrintRepair {
			sink.Print(path)
		}
		return reconcile.Outcome{Success: true, Repaired: true}
	}

	return reconcile.Run(ctx, in, pool, opts.Workers, log, fn)
}
