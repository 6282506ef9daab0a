package cmd

import (
	"fmt"

	"rods-warden/feature/removal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	removeOutputFlag      string
	removeStopOnErrorFlag bool
	removeVerboseFlag     bool
)

// removeCmd represents the safe-remove-script command
var removeCmd = &cobra.Command{
	Use:   "safe-remove-script ROOT",
	Short: "Generate a script that safely removes a grid subtree",
	Long: `Walks the collection or data object at ROOT and writes an executable
bash script that removes every item found, data objects before the collections
holding them, so the removal never encounters a non-empty collection.`,
	Args: cobra.ExactArgs(1),
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

		plan, err := removal.Plan(cmd.Context(), client, args[0])
		if err != nil {
			return fmt.Errorf("failed to plan removal of %s: %w", args[0], err)
		}

		opts := removal.ScriptOptions{
			Generator:   "rods-warden " + Version,
			StopOnError: removeStopOnErrorFlag,
			Verbose:     removeVerboseFlag,
		}

		if err := removal.WriteScript(removeOutputFlag, plan, opts, a.log); err != nil {
			return err
		}

		a.log.Info("Removal script written",
			zap.String("root", args[0]),
			zap.String("script", removeOutputFlag),
			zap.Int("commands", len(plan)))
		return nil
	},
}

func init() {
	removeCmd.Flags().StringVarP(&removeOutputFlag, "output", "o", "remove.sh", "path of the script to write")
	removeCmd.Flags().BoolVar(&removeStopOnErrorFlag, "stop-on-error", true, "stop the script at the first failing command")
	removeCmd.Flags().BoolVar(&removeVerboseFlag, "verbose", false, "echo each command as the script runs")

	RootCmd.AddCommand(removeCmd)
}
