package check

import (
	"bytes"

	"github.com/raphi011/prehook/internal/process"
)

// Status is the content outcome of a check.
type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// Result is what a check found. Infrastructure failures are never a Result;
// they are returned as errors from [Check.Run].
type Result struct {
	Status  Status
	Message string // curated by the check; empty for pass
}

// Pass returns a passing result.
func Pass() Result {
	return Result{Status: StatusPass}
}

// Fail returns a failing result with message.
func Fail(message string) Result {
	return Result{Status: StatusFail, Message: message}
}

// Warn returns an advisory result with message.
func Warn(message string) Result {
	return Result{Status: StatusWarn, Message: message}
}

// Passed reports whether r does not block the hook.
func (r Result) Passed() bool {
	return r.Status != StatusFail
}

// Reduce folds process results into a Result. Tool output on stdout signals
// a violation: any non-blank stdout fails with the combined stdout as message.
func Reduce(results ...process.Result) Result {
	var out [][]byte
	for _, res := range results {
		if len(bytes.TrimSpace(res.Stdout)) > 0 {
			out = append(out, res.Stdout)
		}
	}
	if len(out) == 0 {
		return Pass()
	}
	return Fail(string(bytes.Join(out, []byte("\n"))))
}
