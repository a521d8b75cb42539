package runner

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphi011/prehook/internal/process"
)

func makeFiles(n int) []string {
	files := make([]string, n)
	for i := range files {
		files[i] = fmt.Sprintf("src/pkg%02d/file%03d.js", i%7, i)
	}
	return files
}

func commandLength(command string, args, batch []string) int {
	return len(strings.Join(slices.Concat([]string{command}, args, batch), " "))
}

func TestPartition(t *testing.T) {
	t.Parallel()

	files := makeFiles(200)
	args := []string{"-n", "-H", "pattern"}

	for _, maxLen := range []int{100, 250, 1000, DefaultMaxCommandLength} {
		batches := Partition("grep", args, files, maxLen)

		assert.Equal(t, files, slices.Concat(batches...), "maxLen %d: batches must reconstruct files", maxLen)
		for _, b := range batches {
			assert.NotEmpty(t, b)
			assert.LessOrEqual(t, commandLength("grep", args, b), maxLen, "maxLen %d", maxLen)
		}
	}

	assert.Len(t, Partition("grep", args, files, DefaultMaxCommandLength), 1)
	assert.Greater(t, len(Partition("grep", args, files, 250)), 1)
}

func TestPartition_OversizedFile(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 80)
	batches := Partition("cmd", nil, []string{"a", long, "b"}, 50)
	assert.Equal(t, [][]string{{"a"}, {long}, {"b"}}, batches)
}

func TestPartition_Empty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, Partition("cmd", []string{"-x"}, nil, 100))
}

// spy records every launch and answers with canned output.
type spy struct {
	mu     sync.Mutex
	calls  [][]string
	count  atomic.Int32
	answer func(args []string) process.Result
}

func (s *spy) spawn(_ context.Context, _ string, args []string, _ process.Options) process.Result {
	s.count.Add(1)
	s.mu.Lock()
	s.calls = append(s.calls, args)
	s.mu.Unlock()
	return s.answer(args)
}

func status(code int) *int { return &code }

func TestRun_MergesInBatchOrder(t *testing.T) {
	t.Parallel()

	files := makeFiles(60)
	s := &spy{answer: func(args []string) process.Result {
		// Earlier batches finish last.
		first := args[0]
		idx := slices.Index(files, first)
		time.Sleep(time.Duration(60-idx) * time.Millisecond / 4)
		return process.Result{
			Status: status(0),
			Stdout: []byte(strings.Join(args, ",")),
			Stderr: []byte("err:" + first),
		}
	}}

	r := &Runner{MaxCommandLength: 150, Spawn: s.spawn}
	res, err := r.Run(context.Background(), "lint", nil, files)
	require.NoError(t, err)

	batches := Partition("lint", nil, files, 150)
	require.Greater(t, len(batches), 1)
	assert.EqualValues(t, len(batches), s.count.Load(), "one process per batch")

	var wantOut, wantErr []string
	for _, b := range batches {
		wantOut = append(wantOut, strings.Join(b, ","))
		wantErr = append(wantErr, "err:"+b[0])
	}
	assert.Equal(t, strings.Join(wantOut, "\n"), string(res.Stdout))
	assert.Equal(t, strings.Join(wantErr, "\n"), string(res.Stderr))
	assert.Equal(t, 0, res.ExitCode())
}

func TestRun_PrependsArgs(t *testing.T) {
	t.Parallel()

	s := &spy{answer: func([]string) process.Result { return process.Result{Status: status(0)} }}
	r := &Runner{Spawn: s.spawn}

	_, err := r.Run(context.Background(), "grep", []string{"-n", "foo"}, []string{"a.js", "b.js"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"-n", "foo", "a.js", "b.js"}}, s.calls)
}

func TestRun_FirstNonZeroExitInBatchOrder(t *testing.T) {
	t.Parallel()

	files := []string{"aaaaaaaaaa", "bbbbbbbbbb", "cccccccccc"}
	codes := map[string]int{"aaaaaaaaaa": 0, "bbbbbbbbbb": 3, "cccccccccc": 1}
	s := &spy{answer: func(args []string) process.Result {
		code := codes[args[0]]
		if code == 1 {
			// Finishes first but comes last in batch order.
			return process.Result{Status: status(code)}
		}
		time.Sleep(20 * time.Millisecond)
		return process.Result{Status: status(code)}
	}}

	r := &Runner{MaxCommandLength: 15, Spawn: s.spawn}
	res, err := r.Run(context.Background(), "x", nil, files)
	require.NoError(t, err)
	assert.Equal(t, 3, res.ExitCode())
}

func TestRun_LaunchFailureIsError(t *testing.T) {
	t.Parallel()

	launchErr := &process.LaunchError{Name: "lint", Code: "ENOENT", Err: errors.New("not found")}
	s := &spy{answer: func(args []string) process.Result {
		if args[0] == "bbbbbbbbbb" {
			return process.Result{Err: launchErr}
		}
		return process.Result{Status: status(0), Stdout: []byte("output")}
	}}

	r := &Runner{MaxCommandLength: 15, Spawn: s.spawn}
	res, err := r.Run(context.Background(), "lint", nil, []string{"aaaaaaaaaa", "bbbbbbbbbb", "cccccccccc"})

	var spawnErr *SpawnError
	require.ErrorAs(t, err, &spawnErr)
	assert.Equal(t, 1, spawnErr.Batch)
	assert.ErrorIs(t, err, launchErr)
	assert.Empty(t, res.Stdout, "launch failures are never folded into output")
	assert.EqualValues(t, 3, s.count.Load(), "all batches still run to completion")
}

func TestRun_SignalIsError(t *testing.T) {
	t.Parallel()

	s := &spy{answer: func([]string) process.Result {
		return process.Result{Status: status(-1), Signal: "killed"}
	}}
	r := &Runner{Spawn: s.spawn}

	_, err := r.Run(context.Background(), "lint", nil, []string{"a"})
	var spawnErr *SpawnError
	require.ErrorAs(t, err, &spawnErr)
	assert.Equal(t, "killed", spawnErr.Signal)
}

func TestRun_NoFilesSpawnsNothing(t *testing.T) {
	t.Parallel()

	s := &spy{answer: func([]string) process.Result { panic("must not spawn") }}
	r := &Runner{Spawn: s.spawn}

	res, err := r.Run(context.Background(), "lint", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode())
	assert.Zero(t, s.count.Load())
}

// Real processes: echo prints its file arguments, so merged output must list
// every file exactly once and in order across batch boundaries.
func TestRun_RealProcessesPreserveOrder(t *testing.T) {
	t.Parallel()

	files := makeFiles(120)
	r := New(process.Options{})
	r.MaxCommandLength = 400

	res, err := r.Run(context.Background(), "echo", nil, files)
	require.NoError(t, err)
	require.Greater(t, len(Partition("echo", nil, files, 400)), 1)

	got := strings.Fields(string(res.Stdout))
	assert.Equal(t, files, got)
}

func TestRun_RealMissingExecutable(t *testing.T) {
	t.Parallel()

	r := New(process.Options{})
	_, err := r.Run(context.Background(), "someunknowncommandthatnooneshouldhaveinstalled", nil, []string{"a"})

	var launchErr *process.LaunchError
	require.ErrorAs(t, err, &launchErr)
	assert.Equal(t, "ENOENT", launchErr.Code)
}

func TestRun_TimeoutKillsProcesses(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	r := New(process.Options{})
	start := time.Now()
	_, err := r.Run(ctx, "sleep", nil, []string{"10"})

	var spawnErr *SpawnError
	require.ErrorAs(t, err, &spawnErr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}
