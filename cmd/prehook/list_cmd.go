package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/prehook/internal/hook"
	"github.com/raphi011/prehook/internal/output"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list [hook-type...]",
		Short:   "List configured checks",
		Aliases: []string{"ls"},
		GroupID: GroupConfig,
		Long: `List the checks configured for each hook with their effective state and
command line. Without arguments, lists every hook type with configured checks.`,
		Example: `  prehook list             # All hooks
  prehook list pre-commit  # One hook`,
		ValidArgsFunction: completeHookTypes,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			_, cfg, err := loadRepo(ctx)
			if err != nil {
				return err
			}

			types := args
			if len(types) == 0 {
				types = configuredHookTypes(cfg, false)
			}
			if err := validateHookTypes(types); err != nil {
				return err
			}

			var rows []output.CheckRow
			for _, hookType := range types {
				for _, e := range hook.Entries(cfg, checkRegistry(), hookType) {
					rows = append(rows, listRow(hookType, e))
				}
			}

			if len(rows) == 0 {
				out.Println("No checks configured")
				return nil
			}
			out.Print(output.ChecksTable(rows))
			return nil
		},
	}

	return cmd
}

// listRow describes one configured check for the listing.
func listRow(hookType string, e hook.Entry) output.CheckRow {
	if e.Err != nil {
		return output.CheckRow{Hook: hookType, Check: e.Name, State: output.CheckInvalid, Command: e.Err.Error()}
	}

	state := output.CheckEnabled
	if !e.Base.Enabled() {
		state = output.CheckDisabled
	}
	return output.CheckRow{
		Hook:    hookType,
		Check:   e.Name,
		State:   state,
		Command: formatCommand(e.Base),
		Include: e.Base.Include(),
	}
}
