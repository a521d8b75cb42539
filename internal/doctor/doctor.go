package doctor

import (
	"context"
	"fmt"

	"github.com/raphi011/prehook/internal/check"
	"github.com/raphi011/prehook/internal/config"
	"github.com/raphi011/prehook/internal/output"
)

// Run diagnoses the setup and prints a summary followed by every issue
// found, grouped by category.
func Run(ctx context.Context, cfg *config.Config, reg *check.Registry, repoRoot string) (*Report, error) {
	out := output.FromContext(ctx)

	out.Println("Checking configuration and tools...")
	report, err := Diagnose(ctx, cfg, reg, repoRoot)
	if err != nil {
		return nil, err
	}

	printEnvironment(out, report)
	printSummary(out, report.Stats)

	if len(report.Issues) == 0 {
		out.Println("\n✓ No issues found")
		return report, nil
	}

	out.Printf("\nFound %d issues:\n", len(report.Issues))
	printIssuesByCategory(out, report.Issues)
	return report, nil
}

// printEnvironment prints where configuration came from and who invoked us.
func printEnvironment(out *output.Printer, r *Report) {
	out.Println()
	if len(r.ConfigFiles) == 0 {
		out.Println("  config: built-in defaults")
	}
	for _, f := range r.ConfigFiles {
		out.Printf("  config: %s\n", f)
	}
	if r.ParentPID != "" {
		cmd := r.ParentCmd
		if cmd == "" {
			cmd = "unknown"
		}
		out.Printf("  parent: %s (pid %s)\n", cmd, r.ParentPID)
	}
	for _, tool := range r.Tools {
		version := tool.Version
		if version == "" {
			version = "version unknown"
		}
		out.Printf("  tool:   %s (%s)\n", tool.Name, version)
	}
}

// printSummary prints a categorized summary.
func printSummary(out *output.Printer, stats IssueStats) {
	out.Println()

	out.Printf("  ✓ %d checks ready\n", stats.ChecksReady)
	if stats.ChecksDisabled > 0 {
		out.Printf("  - %d checks disabled\n", stats.ChecksDisabled)
	}
	if stats.ConfigIssues > 0 {
		out.Printf("  ✗ %d checks misconfigured\n", stats.ConfigIssues)
	}
	if stats.ToolsMissing > 0 {
		out.Printf("  ✗ %d required tools missing\n", stats.ToolsMissing)
	}
	if stats.HooksInstalled > 0 {
		out.Printf("  ✓ %d hooks installed\n", stats.HooksInstalled)
	}
	if stats.HookIssues > 0 {
		out.Printf("  ⚠ %d hooks not installed\n", stats.HookIssues)
	}
}

// printIssuesByCategory groups and prints issues.
func printIssuesByCategory(out *output.Printer, issues []Issue) {
	byCategory := make(map[IssueCategory][]Issue)
	for _, issue := range issues {
		byCategory[issue.Category] = append(byCategory[issue.Category], issue)
	}

	categoryNames := map[IssueCategory]string{
		CategoryConfig: "Configuration issues",
		CategoryTool:   "Missing tools",
		CategoryHook:   "Git hooks",
	}

	for _, cat := range []IssueCategory{CategoryConfig, CategoryTool, CategoryHook} {
		catIssues := byCategory[cat]
		if len(catIssues) == 0 {
			continue
		}

		out.Printf("\n%s:\n", categoryNames[cat])
		for _, issue := range catIssues {
			line := fmt.Sprintf("  • %s: %s", issue.Key, issue.Description)
			if issue.Fix != "" {
				line += fmt.Sprintf(" (fix: %s)", issue.Fix)
			}
			out.Println(line)
		}
	}
}
