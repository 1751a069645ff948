package parser

import (
	"testing"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

func javascriptLanguage() *sitter.Language {
	return sitter.NewLanguage(tree_sitter_javascript.Language())
}

func TestParserPool_GetPut(t *testing.T) {
	pool := NewParserPool(javascriptLanguage())

	sp := pool.Get()
	if sp == nil {
		t.Fatal("expected non-nil parser from pool")
	}
	if pool.Leased() != 1 {
		t.Fatalf("expected 1 leased parser, got %d", pool.Leased())
	}
	pool.Put(sp)
	if pool.Leased() != 0 {
		t.Fatalf("expected 0 leased parsers, got %d", pool.Leased())
	}
}

func TestParserPool_PutNil(t *testing.T) {
	pool := NewParserPool(javascriptLanguage())
	pool.Put(nil)
	if pool.Leased() != 0 {
		t.Fatalf("Put(nil) changed lease count to %d", pool.Leased())
	}
}

func TestParserPool_ParsesImport(t *testing.T) {
	pool := NewParserPool(javascriptLanguage())

	sp := pool.Get()
	defer pool.Put(sp)

	tree := sp.Parse([]byte("import styles from './a.less';"), nil)
	if tree == nil {
		t.Fatal("expected a tree")
	}
	defer tree.Close()

	root := tree.RootNode()
	if ChildOfKind(root, "import_statement") == nil {
		t.Fatalf("expected import_statement under %s", root.Kind())
	}
}
