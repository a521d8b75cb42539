package hook

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/raphi011/prehook/internal/check"
	"github.com/raphi011/prehook/internal/config"
	"github.com/raphi011/prehook/internal/log"
	"github.com/raphi011/prehook/internal/process"
)

// SkipEnv names the environment variable listing checks to skip for one run.
const SkipEnv = "PREHOOK_SKIP"

// MissingExecutableError is returned when a check's required tool is not on PATH.
type MissingExecutableError struct {
	Check      string
	Executable string
	Install    string // install hint, may be empty
}

func (e *MissingExecutableError) Error() string {
	msg := fmt.Sprintf("%s requires %q, which was not found in PATH", e.Check, e.Executable)
	if e.Install != "" {
		msg += fmt.Sprintf(" (install with: %s)", e.Install)
	}
	return msg
}

// Entry is one configured check of a hook, built from effective options.
// Err is set when the check's configuration is unusable. Check is nil for
// disabled checks.
type Entry struct {
	Name  string
	Base  check.Base
	Check check.Check
	Err   error
}

// Entries builds every check configured for hookType, sorted by name.
// Configuration problems are kept per entry so one broken check does not
// hide the others.
func Entries(cfg *config.Config, reg *check.Registry, hookType string) []Entry {
	names := cfg.CheckNames(hookType)
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		e := Entry{Name: name}
		opts, err := cfg.CheckOptions(hookType, name)
		if err == nil {
			e.Base, err = check.NewBase(name, hookType, opts)
		}
		// disabled checks are never built, so they skip even when unknown
		if err == nil && e.Base.Enabled() {
			e.Check, err = reg.New(e.Base)
		}
		e.Err = err
		entries = append(entries, e)
	}
	return entries
}

// Selection narrows which configured checks run.
type Selection struct {
	Only []string // run only these checks; empty means all
	Skip []string // never run these checks
}

// SkipFromEnv parses the comma separated PREHOOK_SKIP variable.
func SkipFromEnv() []string {
	var names []string
	for name := range strings.SplitSeq(os.Getenv(SkipEnv), ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Run executes every enabled check configured for rc.HookType against
// rc.Files and returns their outcomes in configuration order.
//
// Checks run concurrently, at most cfg.Concurrency() at a time. A check that
// cannot run is recorded as an error outcome; Run itself only fails when the
// selection names a check that is not configured.
func Run(ctx context.Context, cfg *config.Config, reg *check.Registry, rc *check.RunContext, sel Selection) (*Report, error) {
	entries := Entries(cfg, reg, rc.HookType)

	for _, name := range sel.Only {
		if !slices.ContainsFunc(entries, func(e Entry) bool { return e.Name == name }) {
			return nil, fmt.Errorf("%w %q for %s", check.ErrUnknownCheck, name, rc.HookType)
		}
	}

	report := &Report{
		HookType: rc.HookType,
		Files:    rc.Files,
		Outcomes: make([]Outcome, len(entries)),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency())

	for i, e := range entries {
		if reason := skipReason(e, sel); reason != "" {
			report.Outcomes[i] = Outcome{Name: e.Name, Description: e.Base.Description(), SkipReason: reason}
			continue
		}
		g.Go(func() error {
			report.Outcomes[i] = runEntry(ctx, e, rc)
			return nil
		})
	}

	_ = g.Wait() // goroutines never fail; errors are recorded per outcome

	return report, nil
}

// skipReason returns why e should not run, or "" if it should.
func skipReason(e Entry, sel Selection) string {
	switch {
	case slices.Contains(sel.Skip, e.Name):
		return "skipped via " + SkipEnv
	case len(sel.Only) > 0 && !slices.Contains(sel.Only, e.Name):
		return "not selected"
	case e.Err == nil && !e.Base.Enabled():
		return "disabled"
	}
	return ""
}

// runEntry runs one check and turns its result or error into an outcome.
func runEntry(ctx context.Context, e Entry, rc *check.RunContext) Outcome {
	l := log.FromContext(ctx)
	out := Outcome{
		Name:        e.Name,
		Description: e.Base.Description(),
		Quiet:       e.Base.Quiet(),
	}
	if e.Err != nil {
		out.Err = e.Err
		return out
	}

	files, err := e.Base.ApplicableFiles(rc)
	if err != nil {
		out.Err = err
		return out
	}
	out.Files = len(files)
	if len(files) == 0 {
		out.Result = check.Pass()
		return out
	}

	if exe := e.Base.RequiredExecutable(); exe != "" && !process.LookPath(exe) {
		out.Err = &MissingExecutableError{Check: e.Name, Executable: exe, Install: e.Base.InstallCommand()}
		return out
	}

	if timeout := e.Base.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	l.Debug("running check", "check", e.Name, "files", len(files))
	start := time.Now()
	result, err := e.Check.Run(ctx, rc)
	out.Duration = time.Since(start)
	l.Debug("check finished", "check", e.Name, "status", result.Status, "duration", out.Duration.Round(time.Millisecond))

	if err != nil {
		out.Err = fmt.Errorf("check %s: %w", e.Name, err)
		return out
	}
	if result.Status == check.StatusFail && e.Base.OnFail() == check.StatusWarn {
		result.Status = check.StatusWarn
	}
	out.Result = result
	return out
}
