package hook

import (
	"time"

	"github.com/raphi011/prehook/internal/check"
)

// State is the final disposition of one check in a hook run.
type State string

const (
	StatePass    State = "pass"
	StateWarn    State = "warn"
	StateFail    State = "fail"
	StateError   State = "error"
	StateSkipped State = "skipped"
)

// Outcome is what happened to one configured check.
type Outcome struct {
	Name        string
	Description string
	Quiet       bool // hide Result.Message when passing
	Files       int  // applicable files; 0 when unknown

	Result     check.Result
	Err        error  // infrastructure failure, Result is meaningless when set
	SkipReason string // non-empty when the check did not run
	Duration   time.Duration
}

// State reports the outcome's disposition. Errors take precedence over
// content results.
func (o Outcome) State() State {
	switch {
	case o.SkipReason != "":
		return StateSkipped
	case o.Err != nil:
		return StateError
	case o.Result.Status == check.StatusFail:
		return StateFail
	case o.Result.Status == check.StatusWarn:
		return StateWarn
	default:
		return StatePass
	}
}

// Report aggregates the outcomes of one hook run in configuration order.
type Report struct {
	HookType string
	Files    []string
	Outcomes []Outcome
}

// Count returns how many outcomes are in state s.
func (r *Report) Count(s State) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.State() == s {
			n++
		}
	}
	return n
}

// Passed reports whether git may proceed: no check failed or errored.
func (r *Report) Passed() bool {
	return r.ExitCode() == 0
}

// ExitCode returns the process exit status for the run:
// 0 when every check passed or warned, 1 when a check failed and 2 when a
// check could not run.
func (r *Report) ExitCode() int {
	code := 0
	for _, o := range r.Outcomes {
		switch o.State() {
		case StateError:
			return 2
		case StateFail:
			code = 1
		}
	}
	return code
}
