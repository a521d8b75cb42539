// Package precommit contains the built-in checks.
//
// Each check is a thin layer over [check.Base]: the base filters the file set
// and runs the configured tool in parallel batches; the check turns the tool's
// output into a message. Default options live in the built-in config.
package precommit

import (
	"context"
	"strings"

	"github.com/raphi011/prehook/internal/check"
)

// Register adds all built-in checks to r.
func Register(r *check.Registry) {
	r.Register("MochaOnly", func(b check.Base) check.Check { return &MochaOnly{Base: b} })
	r.Register("MergeConflicts", func(b check.Base) check.Check { return &MergeConflicts{Base: b} })
	r.Register("TrailingWhitespace", func(b check.Base) check.Check { return &TrailingWhitespace{Base: b} })
	r.Register("ShellCheck", func(b check.Base) check.Check { return &ShellCheck{Base: b} })
}

// Registry returns a registry holding all built-in checks.
func Registry() *check.Registry {
	r := check.NewRegistry()
	Register(r)
	return r
}

// grepCheck fails with prefix followed by the tool output if the tool printed anything.
func grepCheck(ctx context.Context, b *check.Base, rc *check.RunContext, prefix string) (check.Result, error) {
	res, err := b.SpawnOnApplicableFiles(ctx, rc, b.Flags())
	if err != nil {
		return check.Result{}, err
	}
	if strings.TrimSpace(string(res.Stdout)) == "" {
		return check.Pass(), nil
	}
	return check.Fail(prefix + string(res.Stdout)), nil
}

// MochaOnly checks for describe.only / it.only left in mocha test files.
type MochaOnly struct {
	check.Base
}

// Run implements check.Check.
func (c *MochaOnly) Run(ctx context.Context, rc *check.RunContext) (check.Result, error) {
	return grepCheck(ctx, &c.Base, rc, "A .only found in mocha test file:\n")
}

// MergeConflicts checks for unresolved merge conflict markers.
type MergeConflicts struct {
	check.Base
}

// Run implements check.Check.
func (c *MergeConflicts) Run(ctx context.Context, rc *check.RunContext) (check.Result, error) {
	return grepCheck(ctx, &c.Base, rc, "Merge conflict markers found:\n")
}

// TrailingWhitespace checks for lines ending in blanks.
type TrailingWhitespace struct {
	check.Base
}

// Run implements check.Check.
func (c *TrailingWhitespace) Run(ctx context.Context, rc *check.RunContext) (check.Result, error) {
	return grepCheck(ctx, &c.Base, rc, "Trailing whitespace detected:\n")
}

// ShellCheck runs shellcheck over shell scripts.
// Findings fail the check; a non-zero exit without findings fails with stderr.
type ShellCheck struct {
	check.Base
}

// Run implements check.Check.
func (c *ShellCheck) Run(ctx context.Context, rc *check.RunContext) (check.Result, error) {
	res, err := c.SpawnOnApplicableFiles(ctx, rc, c.Flags())
	if err != nil {
		return check.Result{}, err
	}
	if out := strings.TrimSpace(string(res.Stdout)); out != "" {
		return check.Fail(out), nil
	}
	if res.ExitCode() != 0 {
		return check.Fail(strings.TrimSpace(string(res.Stderr))), nil
	}
	return check.Pass(), nil
}
