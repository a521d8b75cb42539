// Package runner fans a single command out over many files.
//
// Files are split into batches so no command line exceeds the configured
// maximum length. One process per batch runs concurrently; the run returns
// once every process terminated, with outputs merged in batch order so the
// result does not depend on which process finished first.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/raphi011/prehook/internal/log"
	"github.com/raphi011/prehook/internal/process"
)

// DefaultMaxCommandLength is a command line length every supported OS accepts.
const DefaultMaxCommandLength = 30000

// SpawnError reports that a batch process could not be launched or was
// terminated by a signal. It means the environment is broken, not that the
// check found a problem.
type SpawnError struct {
	Command string
	Batch   int    // index of the failing batch
	Signal  string // terminating signal; empty for launch failures
	Err     error
}

func (e *SpawnError) Error() string {
	if e.Signal != "" {
		return fmt.Sprintf("%s (batch %d) terminated by signal %s", e.Command, e.Batch, e.Signal)
	}
	return fmt.Sprintf("%s (batch %d): %v", e.Command, e.Batch, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// Runner executes commands over batches of files.
type Runner struct {
	// MaxCommandLength bounds each batch's command line; 0 means DefaultMaxCommandLength.
	MaxCommandLength int
	// Spawn launches one batch; nil means process.SpawnSync.
	Spawn process.SpawnFunc
	// Options are passed to every spawned process.
	Options process.Options
}

// New creates a Runner with default limits spawning real processes.
func New(opts process.Options) *Runner {
	return &Runner{
		MaxCommandLength: DefaultMaxCommandLength,
		Spawn:            process.SpawnSync,
		Options:          opts,
	}
}

func (r *Runner) maxLen() int {
	if r.MaxCommandLength <= 0 {
		return DefaultMaxCommandLength
	}
	return r.MaxCommandLength
}

func (r *Runner) spawn() process.SpawnFunc {
	if r.Spawn == nil {
		return process.SpawnSync
	}
	return r.Spawn
}

// Partition splits files into contiguous batches so that command, args and
// the batch's files joined by spaces stay within maxLen characters.
// A file too long to fit with any other file gets a batch of its own.
// Concatenating the batches in order yields files.
func Partition(command string, args, files []string, maxLen int) [][]string {
	base := len(command)
	for _, a := range args {
		base += len(a) + 1
	}

	var batches [][]string
	var current []string
	length := base

	for _, f := range files {
		add := len(f) + 1
		if len(current) > 0 && length+add > maxLen {
			batches = append(batches, current)
			current = nil
			length = base
		}
		current = append(current, f)
		length += add
	}
	if len(current) > 0 {
		batches = append(batches, current)
	}
	return batches
}

// Run executes command with args followed by each batch of files and merges
// the results. Stdout and stderr are joined with a newline in batch order; the
// exit code is the first non-zero one in batch order.
//
// If any batch fails to launch or is killed by a signal, Run returns a
// *SpawnError for the first such batch and no result.
func (r *Runner) Run(ctx context.Context, command string, args, files []string) (process.Result, error) {
	batches := Partition(command, args, files, r.maxLen())
	log.FromContext(ctx).Debug("spawning batches", "command", command, "files", len(files), "batches", len(batches))

	results := make([]process.Result, len(batches))
	spawn := r.spawn()

	var g errgroup.Group
	for i, batch := range batches {
		g.Go(func() error {
			batchArgs := make([]string, 0, len(args)+len(batch))
			batchArgs = append(batchArgs, args...)
			batchArgs = append(batchArgs, batch...)
			results[i] = spawn(ctx, command, batchArgs, r.Options)
			return nil // failures are inspected in batch order below
		})
	}
	_ = g.Wait()

	if err := firstSpawnError(ctx, command, results); err != nil {
		return process.Result{}, err
	}
	return Merge(results), nil
}

func firstSpawnError(ctx context.Context, command string, results []process.Result) error {
	for i, res := range results {
		switch {
		case res.Err != nil:
			return &SpawnError{Command: command, Batch: i, Err: res.Err}
		case res.Signal != "":
			err := ctx.Err()
			if err == nil {
				err = errors.New("killed by signal " + res.Signal)
			}
			return &SpawnError{Command: command, Batch: i, Signal: res.Signal, Err: err}
		}
	}
	return nil
}

// Merge combines batch results in the given order. Results must not carry
// launch errors; Run checks for those first.
func Merge(results []process.Result) process.Result {
	exitCode := 0
	stdout := make([][]byte, 0, len(results))
	stderr := make([][]byte, 0, len(results))

	for _, res := range results {
		if code := res.ExitCode(); exitCode == 0 && code != 0 {
			exitCode = code
		}
		stdout = append(stdout, res.Stdout)
		stderr = append(stderr, res.Stderr)
	}

	return process.Result{
		Status: &exitCode,
		Stdout: bytes.Join(stdout, []byte("\n")),
		Stderr: bytes.Join(stderr, []byte("\n")),
	}
}
