package drivers

import (
	"path"
	"strings"
)

// DefaultStyleExtensions are the stylesheet suffixes recognised when none
// are configured.
var DefaultStyleExtensions = []string{".less"}

// JavaScriptResolver normalizes import specifiers found in JS/TS sources.
type JavaScriptResolver struct {
	extensions []string
}

func NewJavaScriptResolver(extensions []string) *JavaScriptResolver {
	return &JavaScriptResolver{extensions: NormalizeExtensions(extensions)}
}

// Extensions returns the recognised stylesheet suffixes, each with a leading dot.
func (r *JavaScriptResolver) Extensions() []string {
	return append([]string(nil), r.extensions...)
}

// NormalizeSpecifier strips surrounding whitespace and quote characters and
// converts double quotes to single quotes before taking the quoted segment.
func (r *JavaScriptResolver) NormalizeSpecifier(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.ReplaceAll(raw, "\"", "'")
	raw = strings.Trim(raw, "'`")
	return strings.TrimSpace(raw)
}

// IsStylesheet reports whether the specifier ends in a recognised extension.
func (r *JavaScriptResolver) IsStylesheet(specifier string) bool {
	ext := strings.ToLower(path.Ext(specifier))
	if ext == "" {
		return false
	}
	for _, candidate := range r.extensions {
		if ext == candidate {
			return true
		}
	}
	return false
}

// NormalizeExtensions lower-cases, dot-prefixes and de-duplicates suffixes,
// falling back to DefaultStyleExtensions when nothing usable remains.
func NormalizeExtensions(extensions []string) []string {
	seen := make(map[string]bool, len(extensions))
	out := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		ext = strings.TrimLeft(ext, ".")
		if ext == "" || strings.ContainsAny(ext, `/\`) {
			continue
		}
		ext = "." + ext
		if seen[ext] {
			continue
		}
		seen[ext] = true
		out = append(out, ext)
	}
	if len(out) == 0 {
		return append([]string(nil), DefaultStyleExtensions...)
	}
	return out
}
