package integrity

import (
	"context"
	"io"

	"rods-warden/core/reconcile"
	"rods-warden/core/store"
	"rods-warden/feature/integrity/checks"

	"go.uber.org/zap"
)

// CheckCommonMetadata reads data object paths from in and checks that each
// one has complete common metadata, writing matched paths to out.
//
// This operation never mutates.
func CheckCommonMetadata(ctx context.Context, pool *store.Pool, log *zap.Logger, in io.Reader, out io.Writer, opts Options) (reconcile.Summary, error) {
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

		if checks.HasCommonMetadata(obj) {
			log.Info("Common metadata complete", zap.Int("item", i), zap.String("path", path))
			if opts.PrintPass {
				sink.Print(path)
			}
			return reconcile.Outcome{Success: true}
		}

		log.Warn("Common metadata incomplete",
			zap.Int("item", i),
			zap.String("path", path),
			zap.Bool("req_checksum_meta", checks.RequiresChecksumMetadata(obj)),
			zap.Bool("has_checksum_meta", checks.HasChecksumMetadata(obj)),
			zap.Bool("req_creation_meta", checks.RequiresCreationMetadata(obj)),
			zap.Bool("has_creation_meta", checks.HasCreationMetadata(obj)),
			zap.Bool("req_type_meta", checks.RequiresTypeMetadata(obj)),
			zap.Bool("has_type_meta", checks.HasTypeMetadata(obj)),
		)
		if opts.PrintFail {
			sink.Print(path)
		}
		return reconcile.Outcome{}
	}

	return reconcile.Run(ctx, in, pool, opts.Workers, log, fn)
}

// RepairCommonMetadata reads data object paths from in and ensures that each
// one has complete common metadata by making any necessary repairs, writing
// matched paths to out.
//
// The possible repairs are:
//
//   - creation metadata: the creation time is estimated from the store's
//     record of the earliest valid replica; the creator is set to the
//     supplied identity, or a placeholder,
//   - checksum metadata: the checksum is taken from the object's replicas,
//   - type metadata: the type is taken from the object's path.
//
// An item succeeds whenever the ensure operation completes without error;
// whether it actually wrote anything only governs the repair event.
func RepairCommonMetadata(ctx context.Context, pool *store.Pool, log *zap.Logger, in io.Reader, out io.Writer, opts Options) (reconcile.Summary, error) {
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

		if checks.HasCommonMetadata(obj) {
			log.Info("Common metadata complete", zap.Int("item", i), zap.String("path", path))
			return reconcile.Outcome{Success: true}
		}

		log.Info("Common metadata incomplete; repairing",
			zap.Int("item", i),
			zap.String("path", path),
			zap.Bool("req_checksum_meta", checks.RequiresChecksumMetadata(obj)),
			zap.Bool("has_checksum_meta", checks.HasChecksumMetadata(obj)),
			zap.Bool("req_creation_meta", checks.RequiresCreationMetadata(obj)),
			zap.Bool("has_creation_meta", checks.HasCreationMetadata(obj)),
			zap.Bool("req_type_meta", checks.RequiresTypeMetadata(obj)),
			zap.Bool("has_type_meta", checks.HasTypeMetadata(obj)),
		)

		repaired, err := checks.EnsureCommonMetadata(ctx, c, obj, opts.Creator)
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
