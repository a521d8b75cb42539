package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/raphi011/prehook/internal/process"
)

// gitArgs prepends -C <dir> to args if dir is non-empty.
func gitArgs(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}

// outputGit executes a git command with context support and verbose logging,
// returning stdout. Failures carry git's stderr when it wrote any.
func outputGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	res := process.SpawnSync(ctx, "git", gitArgs(dir, args), process.Options{})
	if res.Err != nil {
		return nil, res.Err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if res.ExitCode() != 0 {
		if errMsg := strings.TrimSpace(string(res.Stderr)); errMsg != "" {
			return nil, fmt.Errorf("%s", errMsg)
		}
		return nil, fmt.Errorf("git %s: exit status %d", strings.Join(args, " "), res.ExitCode())
	}
	return res.Stdout, nil
}

// runGit executes a git command with context support and verbose logging.
func runGit(ctx context.Context, dir string, args ...string) error {
	_, err := outputGit(ctx, dir, args...)
	return err
}

// RunGitCommand executes a git command in dir with verbose logging.
// Production code goes through the typed helpers of this package; this is
// for other packages' tests that need to build fixture repositories.
func RunGitCommand(ctx context.Context, dir string, args ...string) error {
	return runGit(ctx, dir, args...)
}
