package config

import (
	"errors"
	"os"
	"path/filepath"
)

// localTemplate is written by "prehook config init".
const localTemplate = `# prehook repo config
# Place this file at the root of your repository.
# Settings here override the global ~/.config/prehook/config.toml and the
# built-in defaults. Tables are merged key by key; lists replace the default.

# Run at most this many checks at once (0 = one per CPU)
# concurrency = 4

# Options for every pre-commit check
# [PreCommit.ALL]
# exclude = ["node_modules/**", "vendor/**", "dist/**"]

# [PreCommit.MochaOnly]
# enabled = true
# include = ["test/**/*.js"]   # glob patterns, ** crosses directories
# exclude = ["test/fixtures/**"]
# onFail = "warn"              # report failures without blocking the commit
# timeout = "30s"              # kill the check if it runs longer

# [PreCommit.ShellCheck]
# enabled = true
# command = ["shellcheck", "--severity=warning"]
# requiredExecutable = "shellcheck"
# installCommand = "brew install shellcheck"
`

// Template returns the commented config file written by [Init].
func Template() string {
	return localTemplate
}

// Init writes the config template to repoRoot/.prehook.toml.
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func Init(repoRoot string, force bool) (string, error) {
	path := filepath.Join(repoRoot, LocalConfigFileName)

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.WriteFile(path, []byte(localTemplate), 0644); err != nil {
		return "", err
	}

	return path, nil
}
