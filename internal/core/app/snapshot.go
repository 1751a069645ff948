package app

import (
	"os"
	"path/filepath"
	"strings"

	"cssmodules/internal/core/errors"
	"cssmodules/internal/core/ports"
	"cssmodules/internal/engine/identifier"
)

// Snapshot is an immutable document captured at request time.
type Snapshot struct {
	path  string
	text  string
	lines []string
}

var _ ports.Document = (*Snapshot)(nil)

func NewSnapshot(path, text string) *Snapshot {
	return &Snapshot{
		path:  path,
		text:  text,
		lines: strings.Split(text, "\n"),
	}
}

// LoadSnapshot reads path from disk. The stored path is absolute.
func LoadSnapshot(path string) (*Snapshot, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeValidationError, "invalid document path"), errors.CtxPath, path)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeNotFound, "document unreadable"), errors.CtxPath, abs)
	}
	return NewSnapshot(abs, string(data)), nil
}

func (s *Snapshot) Path() string { return s.path }

func (s *Snapshot) Text() string { return s.text }

func (s *Snapshot) LineAt(line int) (string, bool) {
	if line < 0 || line >= len(s.lines) {
		return "", false
	}
	return strings.TrimSuffix(s.lines[line], "\r"), true
}

// WordAt returns the word under column on line, if any.
func (s *Snapshot) WordAt(line, column int) (string, bool) {
	text, ok := s.LineAt(line)
	if !ok {
		return "", false
	}
	start, end, ok := identifier.WordAt(text, column)
	if !ok {
		return "", false
	}
	return string([]rune(text)[start:end]), true
}
