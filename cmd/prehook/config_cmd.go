package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/raphi011/prehook/internal/config"
	"github.com/raphi011/prehook/internal/git"
	"github.com/raphi011/prehook/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage prehook configuration.

Global config: ~/.config/prehook/config.toml (or $PREHOOK_CONFIG)
Local config:  .prehook.toml (in the repository root)`,
		Example: `  prehook config init   # Create .prehook.toml in the current repo
  prehook config show   # Show effective config`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a commented .prehook.toml",
		Args:  cobra.NoArgs,
		Example: `  prehook config init      # Create .prehook.toml
  prehook config init -f   # Overwrite existing config
  prehook config init -s   # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			if stdout {
				out.Print(config.Template())
				return nil
			}

			repoRoot, err := git.RepoRoot(ctx, workDirFromContext(ctx))
			if err != nil {
				return err
			}

			path, err := config.Init(repoRoot, force)
			if err != nil {
				return err
			}

			out.Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show the effective configuration as TOML: built-in defaults with the
global and local config files merged on top.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			_, cfg, err := loadRepo(ctx)
			if err != nil {
				return err
			}

			for _, f := range cfg.Files() {
				out.Printf("# merged: %s\n", f)
			}
			if err := toml.NewEncoder(out.Writer()).Encode(cfg.Options()); err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			return nil
		},
	}

	return cmd
}
