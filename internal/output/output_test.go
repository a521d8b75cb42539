package output

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/raphi011/prehook/internal/check"
	"github.com/raphi011/prehook/internal/hook"
)

func TestWithPrinter_FromContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		p := FromContext(WithPrinter(context.Background(), &buf))
		if p.Writer() != &buf {
			t.Error("Writer() should return the buffer passed to WithPrinter")
		}
	})

	t.Run("default to stdout when not set", func(t *testing.T) {
		t.Parallel()
		if p := FromContext(context.Background()); p.Writer() != os.Stdout {
			t.Error("Writer() should default to os.Stdout")
		}
	})
}

func TestPrinter_StripsStylesWhenNotATerminal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := New(&buf)

	p.Println(errorStyle.Render("✗"), boldStyle.Render("MochaOnly"))
	p.Printf("%d %s\n", 2, successStyle.Render("passed"))

	want := "✗ MochaOnly\n2 passed\n"
	if got := buf.String(); got != want {
		t.Errorf("Printer wrote %q, want %q", got, want)
	}
}

// render formats a report through a non-terminal printer, yielding plain text.
func render(r *hook.Report, verbose bool) string {
	var buf bytes.Buffer
	New(&buf).Report(r, verbose)
	return buf.String()
}

func TestReport(t *testing.T) {
	t.Parallel()

	report := &hook.Report{
		HookType: "pre-commit",
		Outcomes: []hook.Outcome{
			{Name: "MergeConflicts", Files: 3, Result: check.Pass()},
			{Name: "MochaOnly", Files: 1, Result: check.Fail("A .only found in mocha test file:\na.test.js:2:  it.only('x');\n")},
			{Name: "TrailingWhitespace", Result: check.Warn("dirty.go:1:package x \n")},
			{Name: "ShellCheck", Err: errors.New(`ShellCheck requires "shellcheck", which was not found in PATH`)},
			{Name: "Disabled", SkipReason: "disabled"},
		},
	}

	want := strings.Join([]string{
		"✓ MergeConflicts",
		"✗ MochaOnly",
		"    A .only found in mocha test file:",
		"    a.test.js:2:  it.only('x');",
		"⚠ TrailingWhitespace (warning)",
		"    dirty.go:1:package x ",
		"✗ ShellCheck (error)",
		`    ShellCheck requires "shellcheck", which was not found in PATH`,
		"pre-commit: 1 passed, 1 warned, 1 failed, 1 errored",
		"",
	}, "\n")

	if got := render(report, false); got != want {
		t.Errorf("Report() =\n%s\nwant\n%s", got, want)
	}
}

func TestReport_Verbose(t *testing.T) {
	t.Parallel()

	report := &hook.Report{
		HookType: "pre-push",
		Outcomes: []hook.Outcome{
			{Name: "MochaOnly", Description: "Check for .only in mocha test files", Files: 1, Duration: 12300 * time.Microsecond, Result: check.Pass()},
			{Name: "ShellCheck", SkipReason: "disabled"},
		},
	}

	got := render(report, true)
	for _, want := range []string{
		"✓ MochaOnly (Check for .only in mocha test files, 1 file, 12ms)\n",
		"- ShellCheck (disabled)\n",
		"pre-push: 1 passed, 1 skipped\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("verbose Report() missing %q in:\n%s", want, got)
		}
	}
}

func TestReport_QuietHidesPassingOutput(t *testing.T) {
	t.Parallel()

	outcomes := []hook.Outcome{
		{Name: "Loud", Result: check.Result{Status: check.StatusPass, Message: "all good"}},
		{Name: "Hushed", Quiet: true, Result: check.Result{Status: check.StatusPass, Message: "all good"}},
	}
	got := render(&hook.Report{HookType: "pre-commit", Outcomes: outcomes}, false)

	if strings.Count(got, "all good") != 1 {
		t.Errorf("expected exactly one passing message, got:\n%s", got)
	}
	if !strings.Contains(got, "✓ Loud\n    all good\n✓ Hushed\n") {
		t.Errorf("unexpected report:\n%s", got)
	}
}

func TestReport_Empty(t *testing.T) {
	t.Parallel()

	if got := render(&hook.Report{HookType: "commit-msg"}, false); got != "commit-msg: no checks configured\n" {
		t.Errorf("Report() = %q", got)
	}

	skipped := &hook.Report{HookType: "pre-commit", Outcomes: []hook.Outcome{{Name: "A", SkipReason: "disabled"}}}
	if got := render(skipped, false); got != "pre-commit: all checks skipped\n" {
		t.Errorf("Report() = %q", got)
	}
}

func TestChecksTable(t *testing.T) {
	t.Parallel()

	if got := ChecksTable(nil); got != "" {
		t.Errorf("ChecksTable(nil) = %q, want empty", got)
	}

	var buf bytes.Buffer
	New(&buf).Print(ChecksTable([]CheckRow{
		{Hook: "pre-commit", Check: "MochaOnly", State: CheckEnabled, Command: "grep -n", Include: []string{"**/*.test.js", "test/**/*.js"}},
		{Hook: "pre-commit", Check: "ShellCheck", State: CheckDisabled, Command: "shellcheck"},
		{Hook: "pre-push", Check: "Ghost", State: CheckInvalid, Command: "unknown check"},
	}))
	got := buf.String()

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header and 3 rows, got %d lines:\n%s", len(lines), got)
	}
	if fields := strings.Fields(lines[0]); strings.Join(fields, " ") != "HOOK CHECK STATE COMMAND INCLUDE" {
		t.Errorf("header = %q", lines[0])
	}
	// columns are aligned
	if strings.Index(lines[1], "enabled") != strings.Index(lines[2], "disabled") {
		t.Errorf("columns not aligned:\n%s", got)
	}
	if !strings.Contains(lines[1], "**/*.test.js, test/**/*.js") {
		t.Errorf("include patterns missing from %q", lines[1])
	}
	if !strings.HasSuffix(strings.TrimRight(lines[2], " "), "*") {
		t.Errorf("empty include should render as *, got %q", lines[2])
	}
	if !strings.Contains(lines[3], "invalid") {
		t.Errorf("invalid state missing from %q", lines[3])
	}
}
