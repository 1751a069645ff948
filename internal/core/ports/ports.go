package ports

import (
	"context"

	"cssmodules/internal/engine/definition"
	"cssmodules/internal/engine/resolver"
)

// ImportFinder locates the stylesheet import bound to a local identifier.
// The pattern-based and syntax-tree implementations are interchangeable.
type ImportFinder interface {
	FindBinding(identifier string, source []byte, sourcePath string) (resolver.Binding, bool)
}

// ClassNameExtractor lists distinct class-name tokens of a stylesheet in
// first-occurrence order; nil when there are none.
type ClassNameExtractor interface {
	Extract(content []byte) []string
}

// Document is a read-only snapshot of an open source file.
type Document interface {
	Path() string
	Text() string
	// LineAt returns the text of a zero-based line without its terminator.
	LineAt(line int) (string, bool)
}

// CompletionItem is one suggested class property.
type CompletionItem struct {
	Label    string `json:"label"`
	Kind     string `json:"kind"`
	SortText string `json:"sortText"`
	Detail   string `json:"detail"`
}

// Range spans from Start up to End on the same line.
type Range struct {
	Start definition.Position `json:"start"`
	End   definition.Position `json:"end"`
}

// Location is a definition target.
type Location struct {
	Path  string `json:"path"`
	Range Range  `json:"range"`
}

// IntelliSenseService is the driving port used by the CLI and transports.
// Both operations return an empty result instead of an error.
type IntelliSenseService interface {
	Complete(ctx context.Context, doc Document, pos definition.Position) []CompletionItem
	Define(ctx context.Context, doc Document, pos definition.Position) *Location
}
