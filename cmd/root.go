package cmd

import (
	"fmt"
	"os"

	"rods-warden/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is the application version, stamped into generated scripts.
const Version = "1.0.0"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "rods-warden",
	Short: "Data integrity warden for the replicated object grid",
	Long: `rods-warden checks and repairs the integrity of objects held on the
replicated object grid: replica checksums, replica counts, common metadata,
safe copying and safe removal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting
		// We default to console format to match user expectations (CLI tool)
		// We use "debug" level configuration to get ISO8601 timestamps (DevConfig) instead of Epoch (ProdConfig)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			// Log the error with structured logger (Console encoding will make it pretty)
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
