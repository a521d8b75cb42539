package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/raphi011/prehook/internal/filter"
)

// Valid enum values for configuration fields.
var (
	ValidOnFail = []string{"fail", "warn"}
)

// Validate checks every configured check of every hook section for
// malformed option values.
func (c *Config) Validate() error {
	for section, v := range c.opts {
		if _, ok := asOptions(v); !ok {
			continue
		}
		hookType := hookTypeOf(section)
		for _, name := range c.CheckNames(hookType) {
			opts, err := c.CheckOptions(hookType, name)
			if err != nil {
				return err
			}
			if err := ValidateCheck(opts); err != nil {
				return prefixKey(section+"."+name, err)
			}
		}
	}
	return nil
}

// ValidateCheck validates the options of a single check.
func ValidateCheck(opts Options) error {
	if _, err := opts.Bool("enabled", true); err != nil {
		return err
	}
	if _, err := opts.Bool("quiet", false); err != nil {
		return err
	}
	for _, key := range []string{"include", "exclude"} {
		patterns, err := opts.Strings(key)
		if err != nil {
			return err
		}
		if err := filter.ValidatePatterns(patterns); err != nil {
			return &ConfigError{Key: key, Msg: err.Error()}
		}
	}
	if _, err := opts.Strings("command"); err != nil {
		return err
	}
	if _, err := opts.Strings("flags"); err != nil {
		return err
	}
	for _, key := range []string{"requiredExecutable", "installCommand", "description"} {
		if _, err := opts.String(key); err != nil {
			return err
		}
	}
	onFail, err := opts.String("onFail")
	if err != nil {
		return err
	}
	if err := validateEnum(onFail, "onFail", ValidOnFail); err != nil {
		return err
	}
	_, err = opts.Duration("timeout")
	return err
}

// hookTypeOf converts a section name back to a hook type,
// e.g. "PreCommit" -> "pre-commit".
func hookTypeOf(section string) string {
	var b strings.Builder
	for i, r := range section {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// prefixKey qualifies the key of a *ConfigError with prefix.
func prefixKey(prefix string, err error) error {
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		return fmt.Errorf("%s: %w", prefix, err)
	}
	key := prefix
	if cfgErr.Key != "" {
		key += "." + cfgErr.Key
	}
	return &ConfigError{Key: key, Msg: cfgErr.Msg}
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
// Returns a *ConfigError mentioning the field name and allowed options.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return &ConfigError{Key: field, Msg: fmt.Sprintf("%q must be %s", value, formatOptions(allowed))}
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
