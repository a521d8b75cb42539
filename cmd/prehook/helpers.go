package main

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/prehook/internal/check"
	"github.com/raphi011/prehook/internal/check/precommit"
	"github.com/raphi011/prehook/internal/config"
	"github.com/raphi011/prehook/internal/git"
	"github.com/raphi011/prehook/internal/hook"
)

// loadRepo resolves the repository containing the working directory and its
// effective configuration.
func loadRepo(ctx context.Context) (string, *config.Config, error) {
	repoRoot, err := git.RepoRoot(ctx, workDirFromContext(ctx))
	if err != nil {
		return "", nil, err
	}
	cfg, err := config.Load(repoRoot)
	if err != nil {
		return "", nil, err
	}
	return repoRoot, cfg, nil
}

// checkRegistry returns the registry of built-in checks.
func checkRegistry() *check.Registry {
	return precommit.Registry()
}

// configuredHookTypes returns the hook types that have at least one
// configured check, optionally only those with an enabled one.
func configuredHookTypes(cfg *config.Config, enabledOnly bool) []string {
	var types []string
	for _, hookType := range hook.Types {
		for _, e := range hook.Entries(cfg, checkRegistry(), hookType) {
			if !enabledOnly || (e.Err == nil && e.Base.Enabled()) {
				types = append(types, hookType)
				break
			}
		}
	}
	return types
}

// validateHookTypes returns an error for the first unsupported hook type.
func validateHookTypes(types []string) error {
	for _, t := range types {
		if err := hook.Validate(t); err != nil {
			return err
		}
	}
	return nil
}

// pushRefsFromStdin reads the refs git writes to the pre-push hook's stdin.
// Returns nil if stdin is a terminal (hook run by hand).
func pushRefsFromStdin(in io.Reader) ([]hook.PushRef, error) {
	if f, ok := in.(*os.File); ok {
		if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
			return nil, nil
		}
	}
	return hook.ParsePushRefs(in)
}

// completeHookTypes completes the hook type argument.
func completeHookTypes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 && cmd.Name() == "run" {
		return nil, cobra.ShellCompDirectiveDefault
	}

	var matches []string
	for _, t := range hook.Types {
		if strings.HasPrefix(t, toComplete) {
			matches = append(matches, t)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeCheckNames completes check names for the hook given as first argument.
func completeCheckNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	ctx := context.Background()
	repoRoot, err := git.RepoRoot(ctx, ".")
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := config.Load(repoRoot)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var matches []string
	for _, name := range cfg.CheckNames(args[0]) {
		if strings.HasPrefix(name, toComplete) {
			matches = append(matches, name)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// formatCommand renders a check's command line for display.
func formatCommand(b check.Base) string {
	opts := b.Options()
	command, _ := opts.Strings("command")
	parts := append(command, b.Flags()...)
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
