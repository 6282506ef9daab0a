package cmd

import (
	"github.com/spf13/cobra"

	"rods-warden/feature/integrity"
)

var (
	printRepairFlag bool
	creatorFlag     string
)

// repairCmd represents the repair command
var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Repair the integrity of data objects",
	Long: `Reads data object paths from standard input, one per line, and repairs
each against an integrity requirement. Already-correct objects are left
untouched; repaired paths are written to standard output according to the
print flags.`,
}

var repairChecksumsCmd = &cobra.Command{
	Use:   "checksums",
	Short: "Repair checksum metadata from replica checksums",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReconcile(cmd, integrity.RepairChecksums)
	},
}

var repairReplicasCmd = &cobra.Command{
	Use:   "replicas",
	Short: "Trim excess and invalid replicas",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReconcile(cmd, integrity.RepairReplicas)
	},
}

var repairCommonMetadataCmd = &cobra.Command{
	Use:   "common-metadata",
	Short: "Add missing common metadata to objects",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReconcile(cmd, integrity.RepairCommonMetadata)
	},
}

func init() {
	repairCmd.PersistentFlags().BoolVar(&printRepairFlag, "print-repair", false, "print the paths of repaired items")
	repairCommonMetadataCmd.Flags().StringVar(&creatorFlag, "creator", "", "data creator identity recorded by metadata repairs")

	repairCmd.AddCommand(repairChecksumsCmd, repairReplicasCmd, repairCommonMetadataCmd)
	RootCmd.AddCommand(repairCmd)
}
