package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// NodeHandler inspects one node. Returning true skips the node's children.
type NodeHandler func(ctx *ExtractionContext, node *sitter.Node) bool

// ExtractionContext carries the source and the bindings found so far.
type ExtractionContext struct {
	Source     []byte
	Identifier string
	Import     string
	Require    string
}

// Done reports whether an import binding was found; imports win over
// require calls so the walk can stop early.
func (c *ExtractionContext) Done() bool {
	return c.Import != ""
}

// ExtractorEngine walks the syntax tree and dispatches node handlers by kind.
type ExtractorEngine struct {
	handlers map[string]NodeHandler
}

func NewExtractorEngine(handlers map[string]NodeHandler) *ExtractorEngine {
	return &ExtractorEngine{handlers: handlers}
}

func (e *ExtractorEngine) Walk(ctx *ExtractionContext, node *sitter.Node) {
	if node == nil || ctx.Done() {
		return
	}
	if handler, ok := e.handlers[node.Kind()]; ok && handler(ctx, node) {
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		e.Walk(ctx, node.Child(i))
	}
}

func (c *ExtractionContext) Text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(c.Source[node.StartByte():node.EndByte()])
}

// ChildOfKind returns the first direct child with the given kind.
func ChildOfKind(node *sitter.Node, kind string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}
