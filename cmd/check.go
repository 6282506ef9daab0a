package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"rods-warden/core/reconcile"
	"rods-warden/core/store"
	"rods-warden/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	threadsFlag       int
	clientsFlag       int
	replicasFlag      int
	singleReplicaFlag []string
	printPassFlag     bool
	printFailFlag     bool
)

// reconcileFunc is the common shape of the integrity check and repair entry
// points: read paths, reconcile each, write passing or repaired paths.
type reconcileFunc func(ctx context.Context, pool *store.Pool, log *zap.Logger, in io.Reader, out io.Writer, opts integrity.Options) (reconcile.Summary, error)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the integrity of data objects",
	Long: `Reads data object paths from standard input, one per line, and checks
each against an integrity requirement. Passing or failing paths are written to
standard output according to the print flags.`,
}

var checkChecksumsCmd = &cobra.Command{
	Use:   "checksums",
	Short: "Check that checksum metadata match replica checksums",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReconcile(cmd, integrity.CheckChecksums)
	},
}

var checkReplicasCmd = &cobra.Command{
	Use:   "replicas",
	Short: "Check that objects hold a full set of valid replicas",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReconcile(cmd, integrity.CheckReplicas)
	},
}

var checkCommonMetadataCmd = &cobra.Command{
	Use:   "common-metadata",
	Short: "Check that objects carry the common metadata set",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReconcile(cmd, integrity.CheckCommonMetadata)
	},
}

// runReconcile wires configuration, flags, the client pool and the standard
// streams into one check or repair run and reports its summary.
func runReconcile(cmd *cobra.Command, fn reconcileFunc) error {
	a, err := newApp(clientsFlag)
	if err != nil {
		return err
	}
	defer a.close()

	opts := integrity.OptionsFromConfig(a.cfg.Reconcile)
	if cmd.Flags().Changed("threads") {
		opts.Workers = threadsFlag
	}
	if cmd.Flags().Changed("replicas") {
		opts.NumReplicas = replicasFlag
	}
	if len(singleReplicaFlag) > 0 {
		opts.SingleReplicaPrefixes = singleReplicaFlag
	}
	opts.PrintPass = printPassFlag
	opts.PrintFail = printFailFlag
	opts.PrintRepair = printRepairFlag
	if creatorFlag != "" {
		opts.Creator = creatorFlag
	}

	summary, err := fn(cmd.Context(), a.pool, a.log, os.Stdin, os.Stdout, opts)
	if err != nil {
		return err
	}

	a.log.Info("Run complete",
		zap.Int("checked", summary.Checked),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("repaired", summary.Repaired),
		zap.Int("errors", summary.Errors))

	if summary.Errors > 0 {
		return fmt.Errorf("%d of %d paths failed", summary.Errors, summary.Checked)
	}
	return nil
}

func init() {
	for _, c := range []*cobra.Command{checkCmd, repairCmd} {
		c.PersistentFlags().IntVar(&threadsFlag, "threads", 4, "number of concurrent worker threads")
		c.PersistentFlags().IntVar(&clientsFlag, "clients", 4, "number of pooled grid clients")
		c.PersistentFlags().IntVar(&replicasFlag, "replicas", 2, "expected number of valid replicas")
		c.PersistentFlags().StringSliceVar(&singleReplicaFlag, "single-replica-prefix", nil, "path prefix under which a single replica is expected (repeatable)")
		c.PersistentFlags().BoolVar(&printFailFlag, "print-fail", false, "print the paths of failing items")
	}
	checkCmd.PersistentFlags().BoolVar(&printPassFlag, "print-pass", false, "print the paths of passing items")

	checkCmd.AddCommand(checkChecksumsCmd, checkReplicasCmd, checkCommonMetadataCmd)
	RootCmd.AddCommand(checkCmd)
}
