package process

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/raphi011/prehook/internal/log"
)

// ExecSync runs command through the shell and returns its trimmed stdout.
// Returns ("", false) if the command exits non-zero or cannot be started.
func ExecSync(command string) (string, bool) {
	out, err := exec.Command("sh", "-c", command).Output()
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(out)), true
}

// ExecSyncResult runs command through the shell and returns its trimmed stdout.
// On failure the error carries stderr if the command wrote any.
func ExecSyncResult(ctx context.Context, command string) (string, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	done := log.FromContext(ctx).Command("", "sh", "-c", command)
	start := time.Now()
	out, err := cmd.Output()
	done(time.Since(start))

	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if errMsg := strings.TrimSpace(stderr.String()); errMsg != "" {
			return "", fmt.Errorf("%s: %s", command, errMsg)
		}
		return "", fmt.Errorf("%s: %w", command, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// LookPath reports whether name resolves to an executable on PATH.
func LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
