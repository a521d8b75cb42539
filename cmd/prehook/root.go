package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/prehook/internal/git"
	"github.com/raphi011/prehook/internal/log"
	"github.com/raphi011/prehook/internal/output"
)

// Command group IDs for organizing help output
const (
	GroupHook   = "hook"
	GroupConfig = "config"
)

// exitError carries a process exit status without an error message,
// e.g. when checks failed and the report was already printed.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

type workDirKey struct{}

// workDirFromContext returns the directory prehook acts on.
func workDirFromContext(ctx context.Context) string {
	if dir, ok := ctx.Value(workDirKey{}).(string); ok {
		return dir
	}
	return "."
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	var (
		verbose bool
		quiet   bool
		dir     string
	)

	rootCmd := &cobra.Command{
		Use:   "prehook",
		Short: "Pluggable git hook runner",
		Long: `prehook runs configurable checks against the files touched by a git
operation and tells git whether to proceed.

Checks are configured per hook in TOML: built-in defaults, then
~/.config/prehook/config.toml, then .prehook.toml in the repository root.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2, // Enable typo suggestions
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip git check for completion and help commands
			if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
				return nil
			}

			ctx := cmd.Context()

			// Create logger (stderr for diagnostics)
			ctx = log.WithLogger(ctx, log.New(cmd.ErrOrStderr(), verbose, quiet))

			if dir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("failed to get working directory: %w", err)
				}
				dir = wd
			}
			ctx = context.WithValue(ctx, workDirKey{}, dir)

			cmd.SetContext(ctx)

			// Check git is available
			return git.CheckGit()
		},
		// Run is not set - shows help when no subcommand provided
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.PersistentFlags().StringVarP(&dir, "dir", "C", "", "Run as if prehook was started in `path`")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupHook, Title: "Hook Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Hook commands
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newUninstallCmd())

	// Config commands
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the command line and returns the process exit status.
func Execute(args []string) int {
	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, os.Stdout)

	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		fmt.Fprintln(os.Stderr, "prehook:", err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'prehook -h' for help")
		return 1
	}
	return 0
}
