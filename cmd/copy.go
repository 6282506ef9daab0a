package cmd

import (
	"fmt"

	"rods-warden/feature/transfer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	copyACLFlag     bool
	copyAVUFlag     bool
	copyExistOKFlag bool
	copyRecurseFlag bool
)

// copyCmd represents the copy command
var copyCmd = &cobra.Command{
	Use:   "copy SOURCE DEST",
	Short: "Copy a data object or collection within the grid",
	Long: `Copies a data object or collection from one grid path to another.
Copying a collection onto an existing data object is an error. With --recurse,
collection contents are copied as well; with --exist-ok, destinations already
holding identical content are skipped rather than failed.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(1)
		if err != nil {
			return err
		}
		defer a.close()

		client, err := a.pool.Acquire(cmd.Context())
		if err != nil {
			return err
		}
		defer a.pool.Release(client)

		opts := transfer.Options{
			ACL:     copyACLFlag,
			AVU:     copyAVUFlag,
			ExistOK: copyExistOKFlag,
			Recurse: copyRecurseFlag,
		}

		processed, copied, err := transfer.Copy(cmd.Context(), client, args[0], args[1], opts, a.log)

		a.log.Info("Copy complete",
			zap.String("src", args[0]),
			zap.String("dest", args[1]),
			zap.Int("processed", processed),
			zap.Int("copied", copied))

		if err != nil {
			return fmt.Errorf("copy failed after %d items: %w", processed, err)
		}
		return nil
	},
}

func init() {
	copyCmd.Flags().BoolVar(&copyACLFlag, "acl", false, "copy access permissions to the destination")
	copyCmd.Flags().BoolVar(&copyAVUFlag, "avu", false, "copy metadata to the destination")
	copyCmd.Flags().BoolVar(&copyExistOKFlag, "exist-ok", false, "skip destinations that already hold identical content")
	copyCmd.Flags().BoolVarP(&copyRecurseFlag, "recurse", "r", false, "copy collection contents recursively")

	RootCmd.AddCommand(copyCmd)
}
