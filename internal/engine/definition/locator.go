// Package definition finds where a camelCase class property is declared in
// stylesheet text.
package definition

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var upperRune = regexp.MustCompile(`([A-Z])`)

// Position is a zero-based line/column pair. Column counts runes.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"character"`
}

// Match is a located selector token.
type Match struct {
	Position
	Selector string
}

// End is the position just past the selector on the same line.
func (m Match) End() Position {
	return Position{Line: m.Line, Column: m.Column + utf8.RuneCountInString(m.Selector)}
}

// ToSelector reverses the camelCase transform: every ASCII capital gets a '-'
// prefix, the result is lower-cased and prefixed with '.'. The transform is
// lossy for names whose segments begin with digits or carry inner capitals.
func ToSelector(camelName string) string {
	return "." + strings.ToLower(upperRune.ReplaceAllString(camelName, "-$1"))
}

// Locate converts camelName to its selector and returns the first line that
// declares it. A selector followed by a space wins; failing that, a selector
// followed by a non-name rune or the end of the line is accepted. Both passes
// reject prefix hits such as `.foo` inside `.foobar`.
func Locate(camelName, content string) (Match, bool) {
	if camelName == "" {
		return Match{}, false
	}
	selector := ToSelector(camelName)
	lines := strings.Split(content, "\n")

	needle := selector + " "
	for i, line := range lines {
		if idx := strings.Index(line, needle); idx >= 0 {
			return newMatch(i, line, idx, selector), true
		}
	}

	for i, line := range lines {
		if idx := indexBounded(strings.TrimSuffix(line, "\r"), selector); idx >= 0 {
			return newMatch(i, line, idx, selector), true
		}
	}
	return Match{}, false
}

func newMatch(line int, text string, byteIdx int, selector string) Match {
	return Match{
		Position: Position{Line: line, Column: utf8.RuneCountInString(text[:byteIdx])},
		Selector: selector,
	}
}

// indexBounded finds selector in line where the next byte is not a name byte.
func indexBounded(line, selector string) int {
	offset := 0
	for {
		idx := strings.Index(line[offset:], selector)
		if idx < 0 {
			return -1
		}
		at := offset + idx
		next := at + len(selector)
		if next >= len(line) || !isNameByte(line[next]) {
			return at
		}
		offset = at + 1
	}
}

func isNameByte(b byte) bool {
	return b == '-' || b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
