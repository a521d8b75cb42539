// Package filter narrows a repository file set down to the files a check applies to.
//
// Patterns use path glob syntax: "*" matches within a path segment, "**"
// matches across segments, "?" matches one character, "[...]" matches a
// character class and "{a,b}" matches alternatives. Paths are slash-separated
// and relative to the repository root.
package filter

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// PatternError reports a malformed glob pattern.
type PatternError struct {
	Pattern string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid glob pattern %q", e.Pattern)
}

func (e *PatternError) Unwrap() error {
	return doublestar.ErrBadPattern
}

// ValidatePatterns returns a *PatternError for the first malformed pattern.
func ValidatePatterns(patterns []string) error {
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return &PatternError{Pattern: pat}
		}
	}
	return nil
}

// Applicable returns the files a check with the given include and exclude
// patterns acts on. A file is kept if include is empty or it matches at least
// one include pattern, and it matches no exclude pattern.
// The result preserves the order of files and is always a subset of it.
func Applicable(files, include, exclude []string) ([]string, error) {
	if err := ValidatePatterns(include); err != nil {
		return nil, err
	}
	if err := ValidatePatterns(exclude); err != nil {
		return nil, err
	}

	var applicable []string
	for _, f := range files {
		path := filepath.ToSlash(f)
		if len(include) > 0 && !matchesAny(include, path) {
			continue
		}
		if matchesAny(exclude, path) {
			continue
		}
		applicable = append(applicable, f)
	}
	return applicable, nil
}

func matchesAny(patterns []string, path string) bool {
	for _, pat := range patterns {
		// Patterns are validated up front, so the error is always nil here.
		if ok, _ := doublestar.Match(pat, path); ok {
			return true
		}
	}
	return false
}
