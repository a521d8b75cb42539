package hook

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphi011/prehook/internal/check"
	"github.com/raphi011/prehook/internal/config"
	"github.com/raphi011/prehook/internal/runner"
)

// stubCheck returns a fixed result after an optional delay.
type stubCheck struct {
	check.Base
	result check.Result
	err    error
	delay  time.Duration
	runs   *atomic.Int32
}

func (c *stubCheck) Run(ctx context.Context, _ *check.RunContext) (check.Result, error) {
	if c.runs != nil {
		c.runs.Add(1)
	}
	select {
	case <-time.After(c.delay):
	case <-ctx.Done():
		return check.Result{}, ctx.Err()
	}
	return c.result, c.err
}

// stubRegistry registers stub checks under the given names.
func stubRegistry(stubs map[string]stubCheck) *check.Registry {
	reg := check.NewRegistry()
	for name, s := range stubs {
		reg.Register(name, func(b check.Base) check.Check {
			c := s
			c.Base = b
			return &c
		})
	}
	return reg
}

// preCommitConfig builds a config with the given pre-commit check tables.
func preCommitConfig(checks config.Options) *config.Config {
	section := config.Options{config.AllChecks: config.Options{"enabled": true}}
	for name, opts := range checks {
		section[name] = opts
	}
	return config.New(config.Options{"concurrency": 4, "PreCommit": section})
}

func preCommitContext(files ...string) *check.RunContext {
	return &check.RunContext{RepoRoot: ".", HookType: PreCommit, Files: files}
}

func TestRun_OutcomesInConfigOrder(t *testing.T) {
	t.Parallel()

	cfg := preCommitConfig(config.Options{
		"Alpha":   config.Options{"description": "first"},
		"Bravo":   config.Options{},
		"Charlie": config.Options{},
	})
	reg := stubRegistry(map[string]stubCheck{
		// earlier checks finish last
		"Alpha":   {result: check.Pass(), delay: 60 * time.Millisecond},
		"Bravo":   {result: check.Fail("bad"), delay: 30 * time.Millisecond},
		"Charlie": {result: check.Warn("meh")},
	})

	report, err := Run(context.Background(), cfg, reg, preCommitContext("a.js"), Selection{})
	require.NoError(t, err)

	require.Len(t, report.Outcomes, 3)
	assert.Equal(t, "Alpha", report.Outcomes[0].Name)
	assert.Equal(t, "first", report.Outcomes[0].Description)
	assert.Equal(t, StatePass, report.Outcomes[0].State())
	assert.Equal(t, "Bravo", report.Outcomes[1].Name)
	assert.Equal(t, StateFail, report.Outcomes[1].State())
	assert.Equal(t, "bad", report.Outcomes[1].Result.Message)
	assert.Equal(t, "Charlie", report.Outcomes[2].Name)
	assert.Equal(t, StateWarn, report.Outcomes[2].State())
	assert.Equal(t, 1, report.Outcomes[0].Files)

	assert.Equal(t, 1, report.ExitCode())
	assert.False(t, report.Passed())
}

func TestRun_Skips(t *testing.T) {
	t.Parallel()

	var runs atomic.Int32
	cfg := preCommitConfig(config.Options{
		"Disabled": config.Options{"enabled": false},
		"Skipped":  config.Options{},
		"Runs":     config.Options{},
	})
	reg := stubRegistry(map[string]stubCheck{
		"Disabled": {result: check.Fail("x"), runs: &runs},
		"Skipped":  {result: check.Fail("x"), runs: &runs},
		"Runs":     {result: check.Pass(), runs: &runs},
	})

	report, err := Run(context.Background(), cfg, reg, preCommitContext("a"), Selection{Skip: []string{"Skipped"}})
	require.NoError(t, err)

	assert.Equal(t, int32(1), runs.Load())
	assert.Equal(t, "disabled", report.Outcomes[0].SkipReason)
	assert.Equal(t, StatePass, report.Outcomes[1].State())
	assert.Equal(t, "skipped via PREHOOK_SKIP", report.Outcomes[2].SkipReason)
	assert.Equal(t, 2, report.Count(StateSkipped))
	assert.Equal(t, 0, report.ExitCode())
}

func TestRun_Only(t *testing.T) {
	t.Parallel()

	cfg := preCommitConfig(config.Options{"A": config.Options{}, "B": config.Options{}})
	reg := stubRegistry(map[string]stubCheck{
		"A": {result: check.Fail("a")},
		"B": {result: check.Pass()},
	})

	report, err := Run(context.Background(), cfg, reg, preCommitContext("f"), Selection{Only: []string{"B"}})
	require.NoError(t, err)
	assert.Equal(t, StateSkipped, report.Outcomes[0].State())
	assert.Equal(t, StatePass, report.Outcomes[1].State())
	assert.Equal(t, 0, report.ExitCode())

	_, err = Run(context.Background(), cfg, reg, preCommitContext("f"), Selection{Only: []string{"Nope"}})
	require.ErrorIs(t, err, check.ErrUnknownCheck)
}

func TestRun_OnFailWarn(t *testing.T) {
	t.Parallel()

	cfg := preCommitConfig(config.Options{"Lint": config.Options{"onFail": "warn"}})
	reg := stubRegistry(map[string]stubCheck{"Lint": {result: check.Fail("style issues")}})

	report, err := Run(context.Background(), cfg, reg, preCommitContext("f"), Selection{})
	require.NoError(t, err)
	assert.Equal(t, check.Warn("style issues"), report.Outcomes[0].Result)
	assert.Equal(t, 0, report.ExitCode())
}

func TestRun_MissingExecutable(t *testing.T) {
	t.Parallel()

	var runs atomic.Int32
	cfg := preCommitConfig(config.Options{"Lint": config.Options{
		"requiredExecutable": "someunknowncommandthatnooneshouldhaveinstalled",
		"installCommand":     "brew install it",
	}})
	reg := stubRegistry(map[string]stubCheck{"Lint": {result: check.Pass(), runs: &runs}})

	report, err := Run(context.Background(), cfg, reg, preCommitContext("f"), Selection{})
	require.NoError(t, err)

	var missing *MissingExecutableError
	require.ErrorAs(t, report.Outcomes[0].Err, &missing)
	assert.Contains(t, missing.Error(), "install with: brew install it")
	assert.Equal(t, int32(0), runs.Load())
	assert.Equal(t, 2, report.ExitCode())
}

func TestRun_NoApplicableFilesPassesWithoutTool(t *testing.T) {
	t.Parallel()

	var runs atomic.Int32
	cfg := preCommitConfig(config.Options{"ShellLint": config.Options{
		"include":            []any{"**/*.sh"},
		"requiredExecutable": "someunknowncommandthatnooneshouldhaveinstalled",
	}})
	reg := stubRegistry(map[string]stubCheck{"ShellLint": {result: check.Fail("x"), runs: &runs}})

	report, err := Run(context.Background(), cfg, reg, preCommitContext("a.js", "lib/b.js"), Selection{})
	require.NoError(t, err)

	assert.Equal(t, StatePass, report.Outcomes[0].State())
	assert.NoError(t, report.Outcomes[0].Err)
	assert.Equal(t, 0, report.Outcomes[0].Files)
	assert.Equal(t, int32(0), runs.Load())
	assert.Equal(t, 0, report.ExitCode())
}

func TestRun_DisabledUnknownCheckIsSkipped(t *testing.T) {
	t.Parallel()

	cfg := preCommitConfig(config.Options{"Nope": config.Options{"enabled": false}})

	report, err := Run(context.Background(), cfg, check.NewRegistry(), preCommitContext("a.js"), Selection{})
	require.NoError(t, err)

	assert.Equal(t, StateSkipped, report.Outcomes[0].State())
	assert.Equal(t, "disabled", report.Outcomes[0].SkipReason)
	assert.NoError(t, report.Outcomes[0].Err)
	assert.Equal(t, 0, report.ExitCode())
}

func TestRun_CheckErrorIsKeptApartFromResult(t *testing.T) {
	t.Parallel()

	launch := errors.New("boom")
	cfg := preCommitConfig(config.Options{"A": config.Options{}, "B": config.Options{}})
	reg := stubRegistry(map[string]stubCheck{
		"A": {err: launch},
		"B": {result: check.Fail("content")},
	})

	report, err := Run(context.Background(), cfg, reg, preCommitContext("f"), Selection{})
	require.NoError(t, err)
	assert.Equal(t, StateError, report.Outcomes[0].State())
	assert.ErrorIs(t, report.Outcomes[0].Err, launch)
	assert.Equal(t, StateFail, report.Outcomes[1].State())
	assert.Equal(t, 2, report.ExitCode())
}

func TestRun_ConfigErrorDoesNotHideOtherChecks(t *testing.T) {
	t.Parallel()

	cfg := preCommitConfig(config.Options{
		"Broken": config.Options{"include": 42},
		"Fine":   config.Options{},
		"Ghost":  config.Options{}, // neither registered nor a command
	})
	reg := stubRegistry(map[string]stubCheck{"Broken": {}, "Fine": {result: check.Pass()}})

	report, err := Run(context.Background(), cfg, reg, preCommitContext("f"), Selection{})
	require.NoError(t, err)

	var cfgErr *config.ConfigError
	require.ErrorAs(t, report.Outcomes[0].Err, &cfgErr)
	assert.Equal(t, StatePass, report.Outcomes[1].State())
	require.ErrorIs(t, report.Outcomes[2].Err, check.ErrUnknownCheck)
	assert.Equal(t, 2, report.ExitCode())
}

func TestRun_Timeout(t *testing.T) {
	t.Parallel()

	cfg := preCommitConfig(config.Options{"Slow": config.Options{
		"command": []any{"sh", "-c", "sleep 5"},
		"timeout": "100ms",
	}})
	reg := check.NewRegistry()

	start := time.Now()
	report, err := Run(context.Background(), cfg, reg, preCommitContext("a.txt"), Selection{})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 4*time.Second)

	var spawnErr *runner.SpawnError
	require.ErrorAs(t, report.Outcomes[0].Err, &spawnErr)
	assert.ErrorIs(t, spawnErr, context.DeadlineExceeded)
	assert.Equal(t, 2, report.ExitCode())
}

func TestRun_GenericCheckFromConfig(t *testing.T) {
	t.Parallel()

	cfg := preCommitConfig(config.Options{"Echo": config.Options{
		"command": "echo",
		"include": []any{"*.go"},
	}})

	report, err := Run(context.Background(), cfg, check.NewRegistry(), preCommitContext("a.go", "b.txt", "c.go"), Selection{})
	require.NoError(t, err)
	assert.Equal(t, check.Fail("a.go c.go\n"), report.Outcomes[0].Result)
	assert.Equal(t, 2, report.Outcomes[0].Files)
}

func TestSkipFromEnv(t *testing.T) {
	t.Setenv(SkipEnv, " MochaOnly, ,ShellCheck ")
	assert.Equal(t, []string{"MochaOnly", "ShellCheck"}, SkipFromEnv())

	t.Setenv(SkipEnv, "")
	assert.Empty(t, SkipFromEnv())
}

func TestReportExitCode(t *testing.T) {
	t.Parallel()

	pass := Outcome{Result: check.Pass()}
	warn := Outcome{Result: check.Warn("w")}
	fail := Outcome{Result: check.Fail("f")}
	errored := Outcome{Err: errors.New("e")}
	skipped := Outcome{SkipReason: "disabled"}

	tests := []struct {
		name     string
		outcomes []Outcome
		want     int
	}{
		{"empty", nil, 0},
		{"all pass", []Outcome{pass, pass}, 0},
		{"warn passes", []Outcome{pass, warn, skipped}, 0},
		{"fail", []Outcome{pass, fail, warn}, 1},
		{"error wins over fail", []Outcome{fail, errored}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := &Report{Outcomes: tt.outcomes}
			assert.Equal(t, tt.want, r.ExitCode())
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	for _, h := range Types {
		assert.NoError(t, Validate(h))
	}
	assert.Error(t, Validate("pre-commmit"))
}
