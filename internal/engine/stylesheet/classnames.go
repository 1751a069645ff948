// Package stylesheet extracts class-selector tokens from raw stylesheet
// text. Extraction is pattern based; no stylesheet grammar is parsed.
package stylesheet

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// classSelector matches a '.' followed by a word run and any further
// word or hyphen runes, e.g. `.foo`, `.foo-bar-baz`, `.a--b`.
var classSelector = regexp.MustCompile(`\.\w[\w-]*`)

// ClassName pairs a literal selector token with its camelCase property name.
type ClassName struct {
	Name  string
	Camel string
}

// ClassNameSet holds distinct class names in first-occurrence order.
type ClassNameSet []ClassName

// Names returns the hyphenated tokens.
func (s ClassNameSet) Names() []string {
	out := make([]string, len(s))
	for i, c := range s {
		out[i] = c.Name
	}
	return out
}

// Extractor is the pattern-based class-name extractor.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract implements ports.ClassNameExtractor.
func (Extractor) Extract(content []byte) []string {
	return ExtractClassNames(string(content))
}

// ExtractClassNames returns distinct class-name tokens without the leading
// delimiter, ordered by first appearance. It returns nil when none match.
func ExtractClassNames(content string) []string {
	matches := classSelector.FindAllString(content, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	out := make([]string, 0, len(matches))
	for _, match := range matches {
		if seen[match] {
			continue
		}
		seen[match] = true
		out = append(out, strings.TrimPrefix(match, "."))
	}
	return out
}

// ToCamel converts hyphenated names index-for-index. Names without a hyphen
// pass through unchanged.
func ToCamel(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = CamelCase(name)
	}
	return out
}

// CamelCase upper-cases the leading rune of every hyphen segment after the
// first and joins the segments. Empty segments contribute nothing.
func CamelCase(name string) string {
	if !strings.Contains(name, "-") {
		return name
	}
	segments := strings.Split(name, "-")
	var b strings.Builder
	b.Grow(len(name))
	b.WriteString(segments[0])
	for _, seg := range segments[1:] {
		if seg == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(seg)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(seg[size:])
	}
	return b.String()
}

// NewClassNameSet extracts and pairs names with their camelCase forms.
func NewClassNameSet(names []string) ClassNameSet {
	if len(names) == 0 {
		return nil
	}
	camel := ToCamel(names)
	set := make(ClassNameSet, len(names))
	for i := range names {
		set[i] = ClassName{Name: names[i], Camel: camel[i]}
	}
	return set
}
