// Package identifier pulls accessor identifiers out of a single line of
// source text around a cursor column. Columns count runes, not bytes.
package identifier

// Delimiter is the member-access character that triggers completion.
const Delimiter = '.'

// Access is an object/member pair found at a definition request position.
type Access struct {
	Object string
	Member string
}

func isWord(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// wordStart returns the index of the first word rune in the run that ends
// right before end.
func wordStart(runes []rune, end int) int {
	start := end
	for start > 0 && isWord(runes[start-1]) {
		start--
	}
	return start
}

func truncate(line string, column int) []rune {
	runes := []rune(line)
	if column < 0 {
		return nil
	}
	if column > len(runes) {
		column = len(runes)
	}
	return runes[:column]
}

// ExtractBeforeDot returns the identifier immediately before the trailing
// delimiter of line[:column]. It reports false when the text is empty, is the
// bare delimiter, or carries no word before the delimiter.
func ExtractBeforeDot(line string, column int) (string, bool) {
	text := truncate(line, column)
	if len(text) == 0 || (len(text) == 1 && text[0] == Delimiter) {
		return "", false
	}
	end := len(text) - 1
	start := wordStart(text, end)
	if start == end {
		return "", false
	}
	return string(text[start:end]), true
}

// ObjectAt returns the import-bound object name for a definition request.
// prefix is the line truncated at the cursor. When the cursor sits inside a
// member name that follows a delimiter, the object left of the delimiter is
// returned instead of the member.
func ObjectAt(prefix string) (string, bool) {
	text := []rune(prefix)
	if len(text) == 0 {
		return "", false
	}

	end := len(text)
	if text[end-1] == Delimiter {
		end--
	}
	start := wordStart(text, end)

	if end == len(text) && start > 0 && text[start-1] == Delimiter {
		end = start - 1
		start = wordStart(text, end)
	}
	if start == end {
		return "", false
	}
	return string(text[start:end]), true
}

// WordAt returns the rune span [start, end) of the word containing column.
// A cursor just past the last rune of a word belongs to that word.
func WordAt(line string, column int) (start, end int, ok bool) {
	runes := []rune(line)
	if column < 0 || column > len(runes) {
		return 0, 0, false
	}
	start, end = column, column
	for start > 0 && isWord(runes[start-1]) {
		start--
	}
	for end < len(runes) && isWord(runes[end]) {
		end++
	}
	if start == end {
		return 0, 0, false
	}
	return start, end, true
}

// ExtractAtPosition resolves both halves of an `object.member` access at the
// cursor. Member is empty when the cursor is directly after the delimiter.
func ExtractAtPosition(line string, column int) (Access, bool) {
	prefix := string(truncate(line, column))
	object, ok := ObjectAt(prefix)
	if !ok {
		return Access{}, false
	}

	access := Access{Object: object}
	runes := []rune(line)
	if start, end, ok := WordAt(line, column); ok && start > 0 && runes[start-1] == Delimiter {
		access.Member = string(runes[start:end])
	}
	return access, true
}
