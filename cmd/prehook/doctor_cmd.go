package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/raphi011/prehook/internal/config"
	"github.com/raphi011/prehook/internal/doctor"
	"github.com/raphi011/prehook/internal/git"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Diagnose configuration, tools and installed hooks",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Diagnose whether prehook can run the configured checks.

Reports misconfigured checks, required tools missing from PATH (with their
install command) and hooks that have enabled checks but no prehook script.
Exits non-zero if a problem would make hook runs error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Outside a repository only configuration and tools are checked.
			repoRoot, err := git.RepoRoot(ctx, workDirFromContext(ctx))
			if err != nil && !errors.Is(err, git.ErrNotInRepo) {
				return err
			}

			cfg, err := config.Load(repoRoot)
			if err != nil {
				return err
			}

			report, err := doctor.Run(ctx, cfg, checkRegistry(), repoRoot)
			if err != nil {
				return err
			}
			if !report.Healthy() {
				return &exitError{code: 1}
			}
			return nil
		},
	}

	return cmd
}
