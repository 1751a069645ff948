package parser

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

const (
	LangJavaScript = "javascript"
	LangTypeScript = "typescript"
	LangTSX        = "tsx"
)

var extensionLanguages = map[string]string{
	".js":  LangJavaScript,
	".jsx": LangJavaScript,
	".mjs": LangJavaScript,
	".cjs": LangJavaScript,
	".ts":  LangTypeScript,
	".mts": LangTypeScript,
	".cts": LangTypeScript,
	".tsx": LangTSX,
}

// GrammarLoader owns one parser pool per source grammar.
type GrammarLoader struct {
	pools map[string]*ParserPool
}

func NewGrammarLoader() *GrammarLoader {
	return &GrammarLoader{
		pools: map[string]*ParserPool{
			LangJavaScript: NewParserPool(sitter.NewLanguage(tree_sitter_javascript.Language())),
			LangTypeScript: NewParserPool(sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())),
			LangTSX:        NewParserPool(sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())),
		},
	}
}

// LanguageForPath maps a file extension to a grammar id, "" when unsupported.
func LanguageForPath(path string) string {
	return extensionLanguages[strings.ToLower(filepath.Ext(path))]
}

// SupportedExtensions lists the source extensions with a grammar.
func (gl *GrammarLoader) SupportedExtensions() []string {
	out := make([]string, 0, len(extensionLanguages))
	for ext := range extensionLanguages {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Parse runs the grammar for lang over source and hands the tree's root to
// fn. The tree is released when fn returns.
func (gl *GrammarLoader) Parse(lang string, source []byte, fn func(root *sitter.Node)) error {
	pool := gl.pools[lang]
	if pool == nil {
		return fmt.Errorf("no grammar loaded for %q", lang)
	}
	sp := pool.Get()
	defer pool.Put(sp)

	tree := sp.Parse(source, nil)
	if tree == nil {
		return fmt.Errorf("parse failed for %q", lang)
	}
	defer tree.Close()

	fn(tree.RootNode())
	return nil
}

// Leased reports how many parsers for lang are checked out.
func (gl *GrammarLoader) Leased(lang string) int {
	if pool := gl.pools[lang]; pool != nil {
		return pool.Leased()
	}
	return 0
}
