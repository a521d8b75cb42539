package config

import (
	"fmt"
	"strings"
)

// Options is a nested key/value mapping as decoded from TOML.
// Nested tables are Options (or map[string]any), lists are []any or []string.
type Options map[string]any

// ConfigError reports malformed options.
type ConfigError struct {
	Key string // dotted path of the offending key, empty for top-level problems
	Msg string
}

func (e *ConfigError) Error() string {
	if e.Key == "" {
		return "invalid config: " + e.Msg
	}
	return fmt.Sprintf("invalid config at %q: %s", e.Key, e.Msg)
}

// Merge resolves user options against defaults, returning a new Options
// without mutating either input.
//
// For every key in defaults: if both sides hold a mapping, they are merged
// recursively; otherwise the user value wins when present. Lists are replaced
// wholesale, never concatenated. Keys only present in user are kept as-is.
// A mapping on one side and a non-mapping on the other is a *ConfigError.
func Merge(user, defaults Options) (Options, error) {
	return merge(user, defaults, nil)
}

func merge(user, defaults Options, path []string) (Options, error) {
	result := make(Options, max(len(user), len(defaults)))

	for key, defVal := range defaults {
		userVal, ok := user[key]
		if !ok {
			result[key] = deepCopy(defVal)
			continue
		}

		defMap, defIsMap := asOptions(defVal)
		userMap, userIsMap := asOptions(userVal)
		keyPath := append(path[:len(path):len(path)], key)

		switch {
		case defIsMap && userIsMap:
			merged, err := merge(userMap, defMap, keyPath)
			if err != nil {
				return nil, err
			}
			if _, plain := defVal.(map[string]any); plain {
				result[key] = map[string]any(merged)
			} else {
				result[key] = merged
			}
		case defIsMap && userVal != nil:
			return nil, &ConfigError{
				Key: strings.Join(keyPath, "."),
				Msg: fmt.Sprintf("expected a table, got %T", userVal),
			}
		case userIsMap && defVal != nil:
			return nil, &ConfigError{
				Key: strings.Join(keyPath, "."),
				Msg: fmt.Sprintf("expected %T, got a table", defVal),
			}
		default:
			result[key] = deepCopy(userVal)
		}
	}

	// Keep options without defaults
	for key, userVal := range user {
		if _, ok := defaults[key]; !ok {
			result[key] = deepCopy(userVal)
		}
	}

	return result, nil
}

// asOptions reports whether v is a mapping and returns it as Options.
func asOptions(v any) (Options, bool) {
	switch m := v.(type) {
	case Options:
		return m, true
	case map[string]any:
		return Options(m), true
	}
	return nil, false
}

// deepCopy copies mappings and lists so the merged result shares no
// mutable state with its inputs.
func deepCopy(v any) any {
	switch t := v.(type) {
	case Options:
		out := make(Options, len(t))
		for k, val := range t {
			out[k] = deepCopy(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = deepCopy(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = deepCopy(val)
		}
		return out
	case []map[string]any: // TOML arrays of tables
		out := make([]map[string]any, len(t))
		for i, m := range t {
			out[i] = deepCopy(m).(map[string]any)
		}
		return out
	case []Options:
		out := make([]Options, len(t))
		for i, m := range t {
			out[i] = deepCopy(m).(Options)
		}
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	}
	return v
}

// Clone returns a deep copy of o.
func (o Options) Clone() Options {
	if o == nil {
		return nil
	}
	return deepCopy(o).(Options)
}
