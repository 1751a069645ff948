package resolver

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"cssmodules/internal/engine/alias"
	"cssmodules/internal/engine/resolver/drivers"
)

// Binding associates a local identifier with the stylesheet specifier it
// was imported from, as written in the source.
type Binding struct {
	Identifier string `json:"identifier"`
	Specifier  string `json:"specifier"`
	Form       string `json:"form"`
}

const (
	FormImport  = "import"
	FormRequire = "require"
)

// PatternFinder locates import/require bindings with regular expressions
// over the raw source text.
type PatternFinder struct {
	js      *drivers.JavaScriptResolver
	extExpr string
}

func NewPatternFinder(extensions []string) *PatternFinder {
	js := drivers.NewJavaScriptResolver(extensions)
	quoted := make([]string, 0, len(js.Extensions()))
	for _, ext := range js.Extensions() {
		quoted = append(quoted, regexp.QuoteMeta(ext))
	}
	return &PatternFinder{
		js:      js,
		extExpr: "(?:" + strings.Join(quoted, "|") + ")",
	}
}

// FindBinding implements ports.ImportFinder. `import X from` statements take
// precedence over `require` calls.
func (f *PatternFinder) FindBinding(identifier string, source []byte, _ string) (Binding, bool) {
	if !isIdentifier(identifier) {
		return Binding{}, false
	}
	name := regexp.QuoteMeta(identifier)
	quoted := fmt.Sprintf(`(['"][^'"\n]*%s['"])`, f.extExpr)

	importExpr := regexp.MustCompile(`\bimport\s+(?:\*\s+as\s+)?` + name + `\s+from\s*` + quoted)
	if m := importExpr.FindSubmatch(source); m != nil {
		return f.binding(identifier, string(m[1]), FormImport)
	}

	requireExpr := regexp.MustCompile(`\b(?:const|let|var)\s+` + name + `\s*=\s*require\(\s*` + quoted)
	if m := requireExpr.FindSubmatch(source); m != nil {
		return f.binding(identifier, string(m[1]), FormRequire)
	}
	return Binding{}, false
}

func (f *PatternFinder) binding(identifier, quoted, form string) (Binding, bool) {
	specifier := f.js.NormalizeSpecifier(quoted)
	if specifier == "" || !f.js.IsStylesheet(specifier) {
		return Binding{}, false
	}
	return Binding{Identifier: identifier, Specifier: specifier, Form: form}, true
}

// ResolvePath turns a specifier into an absolute path. When the specifier
// has a separator and its first segment is an alias, the alias directory
// replaces that segment and no further resolution happens. Otherwise the
// specifier is resolved against the source file's directory.
func ResolvePath(specifier string, aliases alias.Map, sourcePath string) string {
	if strings.Contains(specifier, "/") {
		segments := strings.Split(specifier, "/")
		if dir, ok := aliases.Lookup(segments[0]); ok {
			return filepath.Join(append([]string{dir}, segments[1:]...)...)
		}
	}

	specifier = filepath.FromSlash(specifier)
	if filepath.IsAbs(specifier) {
		return filepath.Clean(specifier)
	}
	return filepath.Join(filepath.Dir(sourcePath), specifier)
}

// Resolve finds the stylesheet bound to identifier in fileText and returns
// its absolute path, using the pattern finder and the given extensions.
func Resolve(identifier, fileText string, aliases alias.Map, sourcePath string, extensions ...string) (string, bool) {
	binding, ok := NewPatternFinder(extensions).FindBinding(identifier, []byte(fileText), sourcePath)
	if !ok {
		return "", false
	}
	return ResolvePath(binding.Specifier, aliases, sourcePath), true
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
