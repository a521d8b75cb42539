package config

import (
	"fmt"
	"time"
)

// Has reports whether key is set.
func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// Bool returns the boolean at key, or def if unset.
func (o Options) Bool(key string, def bool) (bool, error) {
	v, ok := o[key]
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return def, &ConfigError{Key: key, Msg: fmt.Sprintf("expected a boolean, got %T", v)}
	}
	return b, nil
}

// String returns the string at key, or "" if unset.
func (o Options) String(key string) (string, error) {
	v, ok := o[key]
	if !ok {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &ConfigError{Key: key, Msg: fmt.Sprintf("expected a string, got %T", v)}
	}
	return s, nil
}

// Int returns the integer at key, or 0 if unset.
func (o Options) Int(key string) (int, error) {
	switch n := o[key].(type) {
	case nil:
		return 0, nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	default:
		return 0, &ConfigError{Key: key, Msg: fmt.Sprintf("expected an integer, got %T", n)}
	}
}

// Strings returns the list of strings at key. A single string is treated as
// a one-element list.
func (o Options) Strings(key string) ([]string, error) {
	switch v := o[key].(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []string:
		return append([]string(nil), v...), nil
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, &ConfigError{Key: fmt.Sprintf("%s[%d]", key, i), Msg: fmt.Sprintf("expected a string, got %T", item)}
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, &ConfigError{Key: key, Msg: fmt.Sprintf("expected a list of strings, got %T", v)}
	}
}

// Duration returns the Go duration string at key parsed, or 0 if unset.
func (o Options) Duration(key string) (time.Duration, error) {
	s, err := o.String(key)
	if err != nil || s == "" {
		return 0, err
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, &ConfigError{Key: key, Msg: err.Error()}
	}
	if d < 0 {
		return 0, &ConfigError{Key: key, Msg: "must not be negative"}
	}
	return d, nil
}
