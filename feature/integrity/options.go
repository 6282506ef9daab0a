package integrity

import (
	"errors"
	"strings"

	"rods-warden/core/reconcile"

	"rods-warden/core/store"
	"rods-warden/feature/integrity/checks"

	"go.uber.org/zap"
)

// Options controls a check or repair run.
type Options struct {
	// Workers is the number of concurrent workers.
	Workers int
	// NumReplicas is the valid replica count expected outside any
	// single-replica subtree.
	NumReplicas int
	// SingleReplicaPrefixes lists path prefixes under which objects are
	// expected to hold exactly one replica.
	SingleReplicaPrefixes []string
	// PrintPass prints the paths of items passing a check.
	PrintPass bool
	// PrintFail prints the paths of items failing a check or repair.
	PrintFail bool
	// PrintRepair prints the paths of items that were repaired.
	PrintRepair bool
	// Creator is the data creator identity recorded by metadata repairs.
	// Empty means a placeholder value.
	Creator string
}

// OptionsFromConfig builds run options from the reconcile configuration.
func OptionsFromConfig(cfg reconcile.Config) Options {
	opts := Options{
		Workers:     cfg.Workers,
		NumReplicas: cfg.NumReplicas,
		Creator:     cfg.Creator,
	}
	for _, p := range strings.Split(cfg.SingleReplicaPrefixes, ",") {
		if p = strings.TrimSpace(p); p != "" {
			opts.SingleReplicaPrefixes = append(opts.SingleReplicaPrefixes, p)
		}
	}
	return opts
}

// ExpectedReplicas returns the valid replica count expected for an object at
// the given path: 1 under a single-replica subtree, the configured default
// elsewhere.
func (o Options) ExpectedReplicas(path string) int {
	for _, prefix := range o.SingleReplicaPrefixes {
		if strings.HasPrefix(path, prefix) {
			return 1
		}
	}
	if o.NumReplicas > 0 {
		return o.NumReplicas
	}
	return 2
}

// logItemError logs a per-item failure with whatever typed context is
// available. Store errors carry a code; checksum errors carry the values in
// conflict.
func logItemError(log *zap.Logger, index int, path string, err error) {
	var se *store.Error
	if errors.As(err, &se) {
		log.Error(se.Message,
			zap.Int("item", index),
			zap.String("path", path),
			zap.Int("code", se.Code),
		)
		return
	}

	var ce *checks.ChecksumError
	if errors.As(err, &ce) {
		log.Error(ce.Message,
			zap.Int("item", index),
			zap.String("path", path),
			zap.String("expected", ce.Expected),
			zap.Strings("observed", ce.Observed),
		)
		return
	}

	log.Error(err.Error(), zap.Int("item", index), zap.String("path", path))
}
