package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/raphi011/prehook/internal/log"
)

// Options are passed through to process creation unmodified.
type Options struct {
	Dir string   // working directory; empty means the current directory
	Env []string // environment in "KEY=value" form; nil inherits the parent's
}

// Exit describes how a started process terminated.
type Exit struct {
	Code   int    // exit code; -1 if terminated by a signal
	Signal string // terminating signal, empty if the process exited normally
}

// Result is the outcome of a blocking spawn.
type Result struct {
	Status *int   // exit code; nil if the process never started
	Signal string // terminating signal, if any
	Stdout []byte
	Stderr []byte
	Err    error // launch failure; always a *LaunchError when set
}

// ExitCode returns the exit code, or -1 if the process did not exit normally.
func (r Result) ExitCode() int {
	if r.Status == nil {
		return -1
	}
	return *r.Status
}

// SpawnFunc launches a process and blocks until it terminated.
// [SpawnSync] is the production implementation.
type SpawnFunc func(ctx context.Context, name string, args []string, opts Options) Result

// LaunchError reports that an executable could not be started at all.
type LaunchError struct {
	Name string // executable name as requested
	Code string // platform failure code: ENOENT, EACCES or EUNKNOWN
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s (%s): %v", e.Name, e.Code, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

func newLaunchError(name string, err error) *LaunchError {
	code := "EUNKNOWN"
	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		code = "ENOENT"
	case errors.Is(err, fs.ErrPermission):
		code = "EACCES"
	}
	return &LaunchError{Name: name, Code: code, Err: err}
}

// waitDelay bounds how long Wait blocks on output pipes after the process was
// killed, e.g. when a grandchild inherited them.
const waitDelay = time.Second

func command(ctx context.Context, name string, args []string, opts Options) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = opts.Dir
	cmd.Env = opts.Env
	cmd.WaitDelay = waitDelay
	return cmd
}

// exitOf extracts the exit code and signal from a finished command.
// A nil state means the command exited successfully.
func exitOf(state *exec.ExitError) Exit {
	if state == nil {
		return Exit{Code: 0}
	}
	exit := Exit{Code: state.ExitCode()}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		exit.Signal = ws.Signal().String()
	}
	return exit
}

// SpawnSync runs name with args and waits for it to terminate.
// It never returns an error: launch failures are reported in Result.Err.
func SpawnSync(ctx context.Context, name string, args []string, opts Options) Result {
	h := Spawn(ctx, name, args, opts)

	var stdout, stderr bytes.Buffer
	var wg sync.WaitGroup
	wg.Go(func() { io.Copy(&stdout, h.Stdout()) })
	wg.Go(func() { io.Copy(&stderr, h.Stderr()) })

	select {
	case err := <-h.Failed():
		wg.Wait()
		return Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes(), Err: err}
	case exit := <-h.Done():
		wg.Wait()
		return Result{
			Status: &exit.Code,
			Signal: exit.Signal,
			Stdout: stdout.Bytes(),
			Stderr: stderr.Bytes(),
		}
	}
}

// Handle is a process started by [Spawn].
//
// Exactly one of Done and Failed delivers a value. Callers must drain
// Stdout and Stderr, otherwise the process may block on a full pipe and
// never complete.
type Handle struct {
	stdout *io.PipeReader
	stderr *io.PipeReader
	done   chan Exit
	failed chan error
}

// Stdout streams the process' standard output. It reaches EOF when the process exits.
func (h *Handle) Stdout() io.Reader { return h.stdout }

// Stderr streams the process' standard error. It reaches EOF when the process exits.
func (h *Handle) Stderr() io.Reader { return h.stderr }

// Done delivers the exit status once the process terminated.
func (h *Handle) Done() <-chan Exit { return h.done }

// Failed delivers a *LaunchError if the process could not be started.
func (h *Handle) Failed() <-chan error { return h.failed }

// Spawn starts name with args without waiting for it.
func Spawn(ctx context.Context, name string, args []string, opts Options) *Handle {
	cmd := command(ctx, name, args, opts)

	outR, outW := io.Pipe()
	errR, errW := io.Pipe()
	cmd.Stdout = outW
	cmd.Stderr = errW

	h := &Handle{
		stdout: outR,
		stderr: errR,
		done:   make(chan Exit, 1),
		failed: make(chan error, 1),
	}

	done := log.FromContext(ctx).Command(opts.Dir, name, args...)
	start := time.Now()

	if err := cmd.Start(); err != nil {
		outW.Close()
		errW.Close()
		h.failed <- newLaunchError(name, err)
		return h
	}

	go func() {
		err := cmd.Wait()
		done(time.Since(start))
		outW.Close()
		errW.Close()

		var exitErr *exec.ExitError
		if err != nil && !errors.As(err, &exitErr) {
			// Wait failed without the process reporting an exit status,
			// e.g. copying its output broke.
			h.failed <- newLaunchError(name, err)
			return
		}
		h.done <- exitOf(exitErr)
	}()

	return h
}
