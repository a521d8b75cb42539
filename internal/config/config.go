package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// LocalConfigFileName is the per-repo config file at the repository root.
const LocalConfigFileName = ".prehook.toml"

// AllChecks is the table whose options apply to every check of a hook.
const AllChecks = "ALL"

//go:embed default.toml
var defaultConfig string

// Config holds the effective prehook configuration: built-in defaults with
// the global and repo-local files merged on top. It is read-only once loaded.
type Config struct {
	opts  Options
	files []string // config files that were merged, lowest priority first
}

// New wraps already merged options.
func New(opts Options) *Config {
	return &Config{opts: opts}
}

// Defaults returns the built-in default options.
func Defaults() Options {
	var opts Options
	if _, err := toml.Decode(defaultConfig, &opts); err != nil {
		panic(fmt.Sprintf("built-in config is invalid: %v", err))
	}
	return opts
}

// DefaultConfig returns the built-in defaults as a Config.
func DefaultConfig() *Config {
	return New(Defaults())
}

// globalPath returns the path of the user's global config file.
// PREHOOK_CONFIG overrides the default location.
func globalPath() (string, error) {
	if p := os.Getenv("PREHOOK_CONFIG"); p != "" {
		return expandPath(p)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "prehook", "config.toml"), nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// readFile decodes a TOML config file.
// Returns nil options (no error) if the file doesn't exist.
func readFile(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var opts Options
	if err := toml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return opts, nil
}

// Load resolves the configuration for the repository at repoRoot.
// Sources, highest priority first: repoRoot/.prehook.toml, the global config
// file, built-in defaults. Missing files are skipped.
func Load(repoRoot string) (*Config, error) {
	cfg := DefaultConfig()

	var paths []string
	if p, err := globalPath(); err == nil {
		paths = append(paths, p)
	}
	if repoRoot != "" {
		paths = append(paths, filepath.Join(repoRoot, LocalConfigFileName))
	}

	for _, p := range paths {
		layer, err := readFile(p)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		merged, err := Merge(layer, cfg.opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		cfg.opts = merged
		cfg.files = append(cfg.files, p)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Files returns the config files that contributed to cfg.
func (c *Config) Files() []string {
	return slices.Clone(c.files)
}

// Options returns a copy of the full option tree.
func (c *Config) Options() Options {
	return c.opts.Clone()
}

// Concurrency returns how many checks may run at once.
func (c *Config) Concurrency() int {
	n, err := c.opts.Int("concurrency")
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// SectionName converts a hook type to its config section name,
// e.g. "pre-commit" -> "PreCommit".
func SectionName(hookType string) string {
	var b strings.Builder
	for part := range strings.FieldsFuncSeq(hookType, func(r rune) bool { return r == '-' || r == '_' }) {
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// section returns the options table for a hook type.
func (c *Config) section(hookType string) Options {
	sec, _ := asOptions(c.opts[SectionName(hookType)])
	return sec
}

// CheckNames returns the sorted names of checks configured for hookType.
func (c *Config) CheckNames(hookType string) []string {
	var names []string
	for name, v := range c.section(hookType) {
		if name == AllChecks {
			continue
		}
		if _, ok := asOptions(v); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// CheckOptions returns the effective options of one check: its own table
// merged over the hook's ALL table.
func (c *Config) CheckOptions(hookType, name string) (Options, error) {
	sec := c.section(hookType)
	all, _ := asOptions(sec[AllChecks])
	own, ok := asOptions(sec[name])
	if !ok {
		return nil, &ConfigError{
			Key: SectionName(hookType) + "." + name,
			Msg: "no such check configured",
		}
	}
	return Merge(own, all)
}

type ctxKey struct{}

// WithConfig attaches a config to the context.
func WithConfig(ctx context.Context, c *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext returns the config stored in ctx, or the built-in defaults.
func FromContext(ctx context.Context) *Config {
	if c, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return c
	}
	return DefaultConfig()
}
