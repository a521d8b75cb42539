package process

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ParentPID returns the pid of the process that invoked prehook,
// typically git or the shell/editor git was started from.
// Returns "" if it cannot be determined.
func ParentPID() string {
	ppid := os.Getppid()
	if ppid <= 0 {
		return ""
	}
	return strconv.Itoa(ppid)
}

// ParentCommand returns the command line of the parent process.
// Returns "" if the process table is unsupported or inaccessible.
func ParentCommand() string {
	pid := ParentPID()
	if pid == "" {
		return ""
	}
	return commandLine(pid)
}

// commandLine reads /proc where available and falls back to ps.
func commandLine(pid string) string {
	if data, err := os.ReadFile(filepath.Join("/proc", pid, "cmdline")); err == nil && len(data) > 0 {
		args := bytes.Split(bytes.TrimRight(data, "\x00"), []byte{0})
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, string(a))
		}
		return strings.Join(parts, " ")
	}

	// pid is numeric, so it needs no quoting
	out, _ := ExecSync("ps -p " + pid + " -o command=")
	return out
}
