package hook

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// shimMarker identifies hook scripts written by prehook.
const shimMarker = "# managed by prehook"

// ErrHookExists is returned when a hook script not written by prehook is in
// the way of an install.
var ErrHookExists = errors.New("hook already exists")

// ShellQuote escapes a string for safe use in shell commands.
// It wraps the value in single quotes and escapes any embedded single quotes,
// e.g. "it's" becomes 'it'\''s'.
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}

// Shim returns the script git runs for hookType. It forwards git's arguments
// to `<exe> run <hookType>`.
func Shim(exe, hookType string) string {
	return fmt.Sprintf("#!/bin/sh\n%s\nexec %s run %s \"$@\"\n", shimMarker, ShellQuote(exe), hookType)
}

// IsManaged reports whether the hook script at path was written by prehook.
func IsManaged(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return bytes.Contains(data, []byte(shimMarker))
}

// Install writes a shim for hookType into hooksDir. An existing prehook shim
// is replaced; any other existing script is only replaced with force.
func Install(hooksDir, hookType, exe string, force bool) (string, error) {
	if err := Validate(hookType); err != nil {
		return "", err
	}

	path := filepath.Join(hooksDir, hookType)
	if _, err := os.Stat(path); err == nil && !force && !IsManaged(path) {
		return "", fmt.Errorf("%w: %s (use --force to overwrite)", ErrHookExists, path)
	}

	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create hooks directory: %w", err)
	}
	if err := writeExecutable(path, []byte(Shim(exe, hookType))); err != nil {
		return "", fmt.Errorf("failed to write hook: %w", err)
	}
	return path, nil
}

// writeExecutable writes data to a temp file next to path, then renames it
// into place so git never sees a half-written hook.
func writeExecutable(path string, data []byte) error {
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0755); err != nil {
		return err
	}
	// WriteFile keeps the mode of a leftover temp file
	if err := os.Chmod(tempPath, 0755); err != nil {
		os.Remove(tempPath)
		return err
	}
	return os.Rename(tempPath, path)
}

// Uninstall removes the prehook shim for hookType. Scripts not written by
// prehook are left alone. Reports whether a file was removed.
func Uninstall(hooksDir, hookType string) (bool, error) {
	if err := Validate(hookType); err != nil {
		return false, err
	}

	path := filepath.Join(hooksDir, hookType)
	if !IsManaged(path) {
		return false, nil
	}
	if err := os.Remove(path); err != nil {
		return false, fmt.Errorf("failed to remove hook: %w", err)
	}
	return true, nil
}
