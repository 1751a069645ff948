package util

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// NormalizePatternPath cleans a path into the slash form used for glob matching.
func NormalizePatternPath(s string) string {
	trimmed := strings.TrimSpace(strings.ReplaceAll(s, "\\", "/"))
	clean := path.Clean(trimmed)
	if clean == "." {
		return ""
	}
	return strings.TrimPrefix(clean, "./")
}

// ContainsPathSeparator returns true when value includes either slash separator.
func ContainsPathSeparator(value string) bool {
	return strings.Contains(value, "/") || strings.Contains(value, "\\")
}

// SortedStringKeys returns the map's keys in sorted order.
func SortedStringKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// CompileGlobs compiles patterns with '/' as separator. label names the
// setting in error messages.
func CompileGlobs(patterns []string, label string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(NormalizePatternPath(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("%s: invalid pattern %q: %w", label, pattern, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// MatchAny reports whether the normalized path matches any compiled glob.
func MatchAny(globs []glob.Glob, p string) bool {
	p = NormalizePatternPath(p)
	for _, g := range globs {
		if g.Match(p) {
			return true
		}
	}
	return false
}
