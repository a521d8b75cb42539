package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/prehook/internal/check"
	"github.com/raphi011/prehook/internal/config"
	"github.com/raphi011/prehook/internal/hook"
	"github.com/raphi011/prehook/internal/log"
	"github.com/raphi011/prehook/internal/output"
)

func newRunCmd() *cobra.Command {
	var (
		allFiles bool
		only     []string
	)

	cmd := &cobra.Command{
		Use:     "run <hook-type> [git-args...]",
		Short:   "Run the checks configured for a git hook",
		GroupID: GroupHook,
		Args:    cobra.MinimumNArgs(1),
		Long: `Run the checks configured for a git hook.

Installed hook scripts call this with the arguments git passed to the hook.
Checks run against the files touched by the git operation: staged files for
pre-commit, files of unpushed commits for pre-push, and so on.

Exit status: 0 if every check passed or warned, 1 if a check failed,
2 if a check could not run. Set PREHOOK_SKIP=Name,Other to skip checks once.`,
		Example: `  prehook run pre-commit                    # Check staged files
  prehook run pre-commit --all-files        # Check every tracked file
  prehook run pre-commit --check MochaOnly  # Run a single check
  PREHOOK_SKIP=ShellCheck git commit        # Skip a check for one commit`,
		ValidArgsFunction: completeHookTypes,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			hookType, gitArgs := args[0], args[1:]
			if err := hook.Validate(hookType); err != nil {
				return err
			}

			repoRoot, cfg, err := loadRepo(ctx)
			if err != nil {
				return err
			}
			ctx = config.WithConfig(ctx, cfg)

			files, err := collectFiles(cmd, repoRoot, hookType, gitArgs, allFiles)
			if err != nil {
				return err
			}
			l.Debug("collected files", "hook", hookType, "files", len(files))

			rc := &check.RunContext{
				RepoRoot: repoRoot,
				HookType: hookType,
				Files:    files,
				Args:     gitArgs,
			}
			sel := hook.Selection{Only: only, Skip: hook.SkipFromEnv()}

			report, err := hook.Run(ctx, cfg, checkRegistry(), rc, sel)
			if err != nil {
				return err
			}
			out.Report(report, l.IsVerbose())

			if code := report.ExitCode(); code != 0 {
				return &exitError{code: code}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&allFiles, "all-files", false, "Run against every tracked file instead of the hook's file set")
	cmd.Flags().StringSliceVar(&only, "check", nil, "Only run the named check (repeatable)")
	cmd.RegisterFlagCompletionFunc("check", completeCheckNames)

	return cmd
}

// collectFiles returns the file set for a hook run. For pre-push the refs git
// writes to stdin narrow the set to exactly the pushed commits.
func collectFiles(cmd *cobra.Command, repoRoot, hookType string, gitArgs []string, allFiles bool) ([]string, error) {
	ctx := cmd.Context()
	if hookType == hook.PrePush && !allFiles {
		refs, err := pushRefsFromStdin(cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		if len(refs) > 0 {
			return hook.PushFiles(ctx, repoRoot, refs)
		}
	}
	return hook.Files(ctx, repoRoot, hookType, gitArgs, allFiles)
}
