package doctor

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/raphi011/prehook/internal/check"
	"github.com/raphi011/prehook/internal/config"
	"github.com/raphi011/prehook/internal/git"
	"github.com/raphi011/prehook/internal/hook"
	"github.com/raphi011/prehook/internal/process"
)

// checkEntries inspects every configured check of hookType.
// Returns the issues found and whether any check is enabled. The required
// executables found on PATH are added to tools.
func checkEntries(cfg *config.Config, reg *check.Registry, hookType string, stats *IssueStats, tools map[string]bool) ([]Issue, bool) {
	var issues []Issue
	anyEnabled := false

	for _, e := range hook.Entries(cfg, reg, hookType) {
		key := hookType + "/" + e.Name

		if e.Err != nil {
			stats.ConfigIssues++
			issues = append(issues, Issue{
				Key:         key,
				Description: e.Err.Error(),
				Category:    CategoryConfig,
				Blocking:    true,
			})
			continue
		}
		if !e.Base.Enabled() {
			stats.ChecksDisabled++
			continue
		}
		anyEnabled = true

		if exe := e.Base.RequiredExecutable(); exe != "" && !process.LookPath(exe) {
			stats.ToolsMissing++
			issues = append(issues, Issue{
				Key:         key,
				Description: fmt.Sprintf("required executable %q not found in PATH", exe),
				Fix:         e.Base.InstallCommand(),
				Category:    CategoryTool,
				Blocking:    true,
			})
			continue
		}
		if exe := e.Base.RequiredExecutable(); exe != "" {
			tools[exe] = true
		}
		stats.ChecksReady++
	}

	return issues, anyEnabled
}

// checkHookInstalled reports a hook with enabled checks that git will not
// route to prehook.
func checkHookInstalled(hooksDir, hookType string, stats *IssueStats) []Issue {
	path := filepath.Join(hooksDir, hookType)

	if hook.IsManaged(path) {
		stats.HooksInstalled++
		return nil
	}

	stats.HookIssues++
	desc := "not installed"
	if _, err := os.Stat(path); err == nil {
		desc = fmt.Sprintf("%s exists but does not run prehook", path)
	}
	return []Issue{{
		Key:         hookType,
		Description: desc,
		Fix:         "prehook install " + hookType,
		Category:    CategoryHook,
	}}
}

// Diagnose inspects the configuration of every hook type, the tools its
// checks need and the hook scripts installed in the repository at repoRoot.
// An empty repoRoot skips the installed-hook checks.
func Diagnose(ctx context.Context, cfg *config.Config, reg *check.Registry, repoRoot string) (*Report, error) {
	r := &Report{
		ConfigFiles: cfg.Files(),
		ParentPID:   process.ParentPID(),
		ParentCmd:   process.ParentCommand(),
	}

	var hooksDir string
	if repoRoot != "" {
		dir, err := git.HooksDir(ctx, repoRoot)
		if err != nil {
			return nil, err
		}
		hooksDir = dir
	}

	tools := make(map[string]bool)
	for _, hookType := range hook.Types {
		issues, anyEnabled := checkEntries(cfg, reg, hookType, &r.Stats, tools)
		r.Issues = append(r.Issues, issues...)

		if anyEnabled && hooksDir != "" {
			r.Issues = append(r.Issues, checkHookInstalled(hooksDir, hookType, &r.Stats)...)
		}
	}

	for _, exe := range slices.Sorted(maps.Keys(tools)) {
		r.Tools = append(r.Tools, Tool{Name: exe, Version: toolVersion(ctx, exe)})
	}

	return r, nil
}

// versionTimeout bounds a single `--version` probe.
const versionTimeout = 5 * time.Second

// toolVersion returns the first line `exe --version` prints, or "" if the
// tool does not support the flag.
func toolVersion(ctx context.Context, exe string) string {
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	out, err := process.ExecSyncResult(ctx, hook.ShellQuote(exe)+" --version 2>/dev/null")
	if err != nil {
		return ""
	}
	first, _, _ := strings.Cut(out, "\n")
	return strings.TrimSpace(first)
}
