package check

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/raphi011/prehook/internal/config"
	"github.com/raphi011/prehook/internal/filter"
	"github.com/raphi011/prehook/internal/process"
	"github.com/raphi011/prehook/internal/runner"
)

// Check is a unit of validation run during a git hook.
//
// Run returns a Result for anything the check found, including failures.
// It returns an error only when the check could not do its job, e.g. a tool
// could not be launched.
type Check interface {
	Run(ctx context.Context, rc *RunContext) (Result, error)
}

// RunContext carries the per-invocation state shared by all checks of a hook
// run. It is built once by the caller and read-only afterwards.
type RunContext struct {
	RepoRoot string   // working directory for spawned tools
	HookType string   // e.g. "pre-commit"
	Files    []string // repo-relative paths touched by the git operation
	Args     []string // arguments git passed to the hook

	// Spawn launches processes; nil means process.SpawnSync.
	Spawn process.SpawnFunc
	// MaxCommandLength bounds batch command lines; 0 means the runner default.
	MaxCommandLength int
}

// Base holds the effective configuration of one check. Concrete checks embed
// it and get [Base.SpawnOnApplicableFiles] and [Base.RunDefault].
// A Base is immutable after [NewBase].
type Base struct {
	name     string
	hookType string
	opts     config.Options

	enabled            bool
	quiet              bool
	include            []string
	exclude            []string
	command            string
	commandArgs        []string
	flags              []string
	requiredExecutable string
	installCommand     string
	description        string
	onFail             Status
	timeout            time.Duration
}

// NewBase builds a Base from effective options.
// Returns a *config.ConfigError if an option has the wrong shape.
func NewBase(name, hookType string, opts config.Options) (Base, error) {
	b := Base{name: name, hookType: hookType, opts: opts.Clone(), onFail: StatusFail}

	if err := config.ValidateCheck(opts); err != nil {
		return Base{}, fmt.Errorf("check %s: %w", name, err)
	}

	// ValidateCheck guarantees the accessors below succeed.
	b.enabled, _ = opts.Bool("enabled", true)
	b.quiet, _ = opts.Bool("quiet", false)
	b.include, _ = opts.Strings("include")
	b.exclude, _ = opts.Strings("exclude")
	b.flags, _ = opts.Strings("flags")
	b.requiredExecutable, _ = opts.String("requiredExecutable")
	b.installCommand, _ = opts.String("installCommand")
	b.description, _ = opts.String("description")
	b.timeout, _ = opts.Duration("timeout")
	if onFail, _ := opts.String("onFail"); onFail != "" {
		b.onFail = Status(onFail)
	}

	command, _ := opts.Strings("command")
	if len(command) > 0 {
		b.command = command[0]
		b.commandArgs = command[1:]
	}

	return b, nil
}

// Name returns the check's name, e.g. "MochaOnly".
func (b *Base) Name() string { return b.name }

// HookType returns the hook the check is configured for.
func (b *Base) HookType() string { return b.hookType }

// Options returns a copy of the effective options.
func (b *Base) Options() config.Options { return b.opts.Clone() }

// Enabled reports whether the check should run at all.
func (b *Base) Enabled() bool { return b.enabled }

// Quiet reports whether output is hidden when the check passes.
func (b *Base) Quiet() bool { return b.quiet }

// Include returns the include glob patterns.
func (b *Base) Include() []string { return slices.Clone(b.include) }

// Exclude returns the exclude glob patterns.
func (b *Base) Exclude() []string { return slices.Clone(b.exclude) }

// Command returns the executable the check invokes.
func (b *Base) Command() string { return b.command }

// Flags returns the arguments passed before the file list.
func (b *Base) Flags() []string { return slices.Clone(b.flags) }

// RequiredExecutable returns the tool probed before the check runs.
func (b *Base) RequiredExecutable() string { return b.requiredExecutable }

// InstallCommand returns the hint shown when the required executable is missing.
func (b *Base) InstallCommand() string { return b.installCommand }

// Description returns the human readable summary of the check.
func (b *Base) Description() string {
	if b.description == "" {
		return b.name
	}
	return b.description
}

// OnFail returns the status a failure is reported as: fail or warn.
func (b *Base) OnFail() Status { return b.onFail }

// Timeout returns the maximum run time; 0 means no limit.
func (b *Base) Timeout() time.Duration { return b.timeout }

// ApplicableFiles returns the files of rc this check acts on, in rc order.
func (b *Base) ApplicableFiles(rc *RunContext) ([]string, error) {
	files, err := filter.Applicable(rc.Files, b.include, b.exclude)
	if err != nil {
		return nil, &config.ConfigError{Key: config.SectionName(b.hookType) + "." + b.name, Msg: err.Error()}
	}
	return files, nil
}

// SpawnOnApplicableFiles runs the check's command with args followed by the
// applicable files, batched and in parallel. With no applicable files it
// spawns nothing and returns an empty successful result.
// Launch failures are returned as a *runner.SpawnError.
func (b *Base) SpawnOnApplicableFiles(ctx context.Context, rc *RunContext, args []string) (process.Result, error) {
	files, err := b.ApplicableFiles(rc)
	if err != nil {
		return process.Result{}, err
	}
	if len(files) == 0 {
		zero := 0
		return process.Result{Status: &zero}, nil
	}
	if b.command == "" {
		return process.Result{}, fmt.Errorf("check %s: no command configured", b.name)
	}

	r := &runner.Runner{
		MaxCommandLength: rc.MaxCommandLength,
		Spawn:            rc.Spawn,
		Options:          process.Options{Dir: rc.RepoRoot},
	}
	return r.Run(ctx, b.command, slices.Concat(b.commandArgs, args), files)
}

// RunDefault runs the command with the configured flags over the applicable
// files and fails with the tool's stdout if it printed anything.
func (b *Base) RunDefault(ctx context.Context, rc *RunContext) (Result, error) {
	res, err := b.SpawnOnApplicableFiles(ctx, rc, b.flags)
	if err != nil {
		return Result{}, err
	}
	return Reduce(res), nil
}

// Generic is a check that needs no logic beyond [Base.RunDefault].
// It backs checks defined only in config.
type Generic struct {
	Base
}

// Run implements Check.
func (c *Generic) Run(ctx context.Context, rc *RunContext) (Result, error) {
	return c.RunDefault(ctx, rc)
}
