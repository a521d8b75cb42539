package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raphi011/prehook/internal/git"
	"github.com/raphi011/prehook/internal/hook"
	"github.com/raphi011/prehook/internal/output"
)

func newInstallCmd() *cobra.Command {
	var (
		force   bool
		command string
	)

	cmd := &cobra.Command{
		Use:     "install [hook-type...]",
		Short:   "Install git hook scripts that run prehook",
		GroupID: GroupHook,
		Long: `Install git hook scripts that run prehook.

Without arguments, installs a script for every hook type with at least one
enabled check. Existing hook scripts not written by prehook are kept unless
--force is given. Honours core.hooksPath.`,
		Example: `  prehook install                     # Install hooks with enabled checks
  prehook install pre-commit pre-push # Install specific hooks
  prehook install --force             # Replace foreign hook scripts`,
		ValidArgsFunction: completeHookTypes,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			repoRoot, cfg, err := loadRepo(ctx)
			if err != nil {
				return err
			}

			types := args
			if len(types) == 0 {
				types = configuredHookTypes(cfg, true)
			}
			if len(types) == 0 {
				out.Println("No hooks have enabled checks")
				return nil
			}
			if err := validateHookTypes(types); err != nil {
				return err
			}

			exe := command
			if exe == "" {
				if exe, err = os.Executable(); err != nil {
					return fmt.Errorf("failed to locate prehook executable: %w", err)
				}
			}

			hooksDir, err := git.HooksDir(ctx, repoRoot)
			if err != nil {
				return err
			}

			for _, hookType := range types {
				path, err := hook.Install(hooksDir, hookType, exe, force)
				if err != nil {
					return err
				}
				out.Printf("Installed %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing hook scripts")
	cmd.Flags().StringVar(&command, "command", "", "Executable the hook scripts invoke (default: this binary)")

	return cmd
}

func newUninstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "uninstall [hook-type...]",
		Short:   "Remove git hook scripts written by prehook",
		GroupID: GroupHook,
		Long: `Remove git hook scripts written by prehook.

Without arguments, removes prehook scripts for every hook type. Scripts not
written by prehook are never removed.`,
		ValidArgsFunction: completeHookTypes,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			types := args
			if len(types) == 0 {
				types = hook.Types
			}
			if err := validateHookTypes(types); err != nil {
				return err
			}

			repoRoot, err := git.RepoRoot(ctx, workDirFromContext(ctx))
			if err != nil {
				return err
			}
			hooksDir, err := git.HooksDir(ctx, repoRoot)
			if err != nil {
				return err
			}

			removed := 0
			for _, hookType := range types {
				ok, err := hook.Uninstall(hooksDir, hookType)
				if err != nil {
					return err
				}
				if ok {
					removed++
					out.Printf("Removed %s\n", hookType)
				}
			}
			if removed == 0 {
				out.Println("No prehook hooks installed")
			}
			return nil
		},
	}

	return cmd
}
