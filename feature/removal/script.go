package removal

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// ScriptOptions controls the generated removal script.
type ScriptOptions struct {
	// Generator names the tool and version in the script's header comment.
	Generator string
	// StopOnError adds "set -e" so the script stops on the first error.
	StopOnError bool
	// Verbose adds "set -x" so commands are echoed to stderr as they run.
	Verbose bool
}

// WriteScript writes a bash script that removes the planned items in order.
// The script may be reviewed before being run on a target system. Any
// existing file at scriptPath is overwritten without warning; the result is
// made executable.
func WriteScript(scriptPath string, plan []Command, opts ScriptOptions, log *zap.Logger) error {
	f, err := os.Create(scriptPath)
	if err != nil {
		return fmt.Errorf("failed to create removal script: %w", err)
	}
	defer f.Close()

	fmt.Fprintln(f, "#!/bin/bash")
	if opts.Generator != "" {
		fmt.Fprintf(f, "# Generated by %s\n", opts.Generator)
	}
	if opts.StopOnError {
		fmt.Fprintln(f, "set -e")
	}
	if opts.Verbose {
		fmt.Fprintln(f, "set -x")
	}

	if err := WriteCommands(plan, f, log); err != nil {
		return err
	}

	return os.Chmod(scriptPath, 0o755)
}

// shellQuote returns s quoted for safe use in a shell command line.
func shellQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n\"'`$\\&|;<>()*?[]#~%{}!^") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
