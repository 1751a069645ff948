package parser

import (
	"log/slog"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"cssmodules/internal/engine/resolver"
	"cssmodules/internal/engine/resolver/drivers"
)

// SyntaxFinder locates stylesheet bindings from the JS/TS syntax tree.
// Sources without a grammar fall back to the pattern finder.
type SyntaxFinder struct {
	loader   *GrammarLoader
	js       *drivers.JavaScriptResolver
	fallback *resolver.PatternFinder
	engine   *ExtractorEngine
}

func NewSyntaxFinder(loader *GrammarLoader, extensions []string) *SyntaxFinder {
	if loader == nil {
		loader = NewGrammarLoader()
	}
	f := &SyntaxFinder{
		loader:   loader,
		js:       drivers.NewJavaScriptResolver(extensions),
		fallback: resolver.NewPatternFinder(extensions),
	}
	f.engine = NewExtractorEngine(map[string]NodeHandler{
		"import_statement":    f.handleImport,
		"variable_declarator": f.handleDeclarator,
	})
	return f
}

// FindBinding implements ports.ImportFinder.
func (f *SyntaxFinder) FindBinding(identifier string, source []byte, sourcePath string) (resolver.Binding, bool) {
	lang := LanguageForPath(sourcePath)
	if lang == "" || identifier == "" {
		return f.fallback.FindBinding(identifier, source, sourcePath)
	}

	ctx := &ExtractionContext{Source: source, Identifier: identifier}
	err := f.loader.Parse(lang, source, func(root *sitter.Node) {
		f.engine.Walk(ctx, root)
	})
	if err != nil {
		slog.Debug("syntax import lookup failed, using pattern finder", "path", sourcePath, "error", err)
		return f.fallback.FindBinding(identifier, source, sourcePath)
	}

	switch {
	case ctx.Import != "":
		return resolver.Binding{Identifier: identifier, Specifier: ctx.Import, Form: resolver.FormImport}, true
	case ctx.Require != "":
		return resolver.Binding{Identifier: identifier, Specifier: ctx.Require, Form: resolver.FormRequire}, true
	}
	return resolver.Binding{}, false
}

// handleImport matches `import X from '...'` and `import * as X from '...'`.
func (f *SyntaxFinder) handleImport(ctx *ExtractionContext, node *sitter.Node) bool {
	specifier := f.js.NormalizeSpecifier(ctx.Text(node.ChildByFieldName("source")))
	if !f.js.IsStylesheet(specifier) {
		return true
	}
	clause := ChildOfKind(node, "import_clause")
	if clause == nil {
		return true
	}
	if ctx.Text(ChildOfKind(clause, "identifier")) == ctx.Identifier {
		ctx.Import = specifier
		return true
	}
	if ns := ChildOfKind(clause, "namespace_import"); ns != nil && ctx.Text(ChildOfKind(ns, "identifier")) == ctx.Identifier {
		ctx.Import = specifier
	}
	return true
}

// handleDeclarator matches `X = require('...')` in any declaration kind.
func (f *SyntaxFinder) handleDeclarator(ctx *ExtractionContext, node *sitter.Node) bool {
	if ctx.Require != "" {
		return false
	}
	name := node.ChildByFieldName("name")
	value := node.ChildByFieldName("value")
	if name == nil || value == nil || name.Kind() != "identifier" || value.Kind() != "call_expression" {
		return false
	}
	if ctx.Text(name) != ctx.Identifier || ctx.Text(value.ChildByFieldName("function")) != "require" {
		return false
	}
	args := value.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return false
	}
	first := args.NamedChild(0)
	if first == nil || first.Kind() != "string" {
		return false
	}
	if specifier := f.js.NormalizeSpecifier(ctx.Text(first)); f.js.IsStylesheet(specifier) {
		ctx.Require = specifier
	}
	return true
}
