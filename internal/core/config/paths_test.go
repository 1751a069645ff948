package config

import (
	"path/filepath"
	"testing"
)

func TestResolveRelative(t *testing.T) {
	base := filepath.FromSlash("/proj")
	if got := ResolveRelative(base, "src"); got != filepath.Join(base, "src") {
		t.Fatalf("unexpected relative resolution: %q", got)
	}
	abs := filepath.FromSlash("/elsewhere/x")
	if got := ResolveRelative(base, abs); got != abs {
		t.Fatalf("absolute value should pass through, got %q", got)
	}
	if got := ResolveRelative(base, "  "); got != base {
		t.Fatalf("empty value should return base, got %q", got)
	}
}

func TestResolveWorkspaceRoot(t *testing.T) {
	cwd := t.TempDir()

	cfg := &Config{WorkspaceRoot: "."}
	got, err := ResolveWorkspaceRoot(cfg, "", cwd)
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Clean(cwd) {
		t.Fatalf("expected %q, got %q", cwd, got)
	}

	got, err = ResolveWorkspaceRoot(&Config{WorkspaceRoot: "app"}, filepath.Join("conf", DefaultFileName), cwd)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(cwd, "conf", "app"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	abs := filepath.Join(cwd, "abs")
	got, err = ResolveWorkspaceRoot(&Config{WorkspaceRoot: abs}, "ignored.toml", cwd)
	if err != nil {
		t.Fatal(err)
	}
	if got != abs {
		t.Fatalf("expected %q, got %q", abs, got)
	}

	if _, err := ResolveWorkspaceRoot(cfg, "", ""); err == nil {
		t.Fatal("expected error for empty cwd")
	}
}
