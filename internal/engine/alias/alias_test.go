package alias

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cssmodules/internal/core/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestResolve_InlinePlaceholder(t *testing.T) {
	got := Resolve(map[string]string{"@": "${workspaceRoot}/src"}, "", "/proj")
	assert.Equal(t, Map{"@": filepath.FromSlash("/proj/src")}, got)
}

func TestResolve_InlineRelativeAndAbsolute(t *testing.T) {
	got := Resolve(map[string]string{
		"abs":   "/styles/shared",
		"rel":   "src/theme",
		"a/b":   "/ignored",
		"empty": "${workspaceRoot}",
	}, "", "/proj")
	assert.Equal(t, Map{
		"abs":   filepath.FromSlash("/styles/shared"),
		"rel":   filepath.FromSlash("/proj/src/theme"),
		"empty": filepath.FromSlash("/proj"),
	}, got)
}

func TestResolve_ConfigFileOverridesInline(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "config.json"), `{"alias": {"@": "./lib", "~": "${workspaceRoot}/shared"}}`)

	got := Resolve(map[string]string{"@": "${workspaceRoot}/src", "#": "${workspaceRoot}/inline"}, "config.json", root)
	assert.Equal(t, filepath.Join(root, "lib"), got["@"])
	assert.Equal(t, filepath.Join(root, "shared"), got["~"])
	assert.Equal(t, filepath.Join(root, "inline"), got["#"])
}

func TestResolve_ConfigRelativeToItsOwnDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "config", "aliases.json"), `{"alias": {"@": "../app/src"}}`)

	got := Resolve(nil, "config/aliases.json", root)
	assert.Equal(t, filepath.Join(root, "app", "src"), got["@"])
}

func TestResolveWithFile_MissingFile(t *testing.T) {
	root := t.TempDir()
	res, err := ResolveWithFile(map[string]string{"@": "${workspaceRoot}/src"}, "nope.json", root)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))
	assert.Nil(t, res.File)
	assert.Equal(t, filepath.Join(root, "src"), res.Alias["@"])
}

func TestResolveWithFile_MalformedFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bad.json"), `{"alias": `)

	res, err := ResolveWithFile(map[string]string{"@": "${workspaceRoot}/src"}, "bad.json", root)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeMalformedConfig))
	assert.Len(t, res.Alias, 1)
}

func TestResolveWithFile_SelectedClassname(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "c.json"), `{"selectedClassname": true}`)

	res, err := ResolveWithFile(nil, "c.json", root)
	require.NoError(t, err)
	require.NotNil(t, res.File)
	require.NotNil(t, res.File.SelectedClassname)
	assert.True(t, *res.File.SelectedClassname)
	assert.Empty(t, res.Alias)
}

func TestLoadFile_Formats(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.toml"), "selectedClassname = false\n[alias]\n\"@\" = \"./src\"\n")
	writeFile(t, filepath.Join(root, "a.yaml"), "alias:\n  \"@\": ./src\n")

	for _, name := range []string{"a.toml", "a.yaml"} {
		settings, err := LoadFile(filepath.Join(root, name))
		require.NoError(t, err, name)
		assert.Equal(t, "./src", settings.Alias["@"], name)
	}

	writeFile(t, filepath.Join(root, "empty.json"), "  \n")
	_, err := LoadFile(filepath.Join(root, "empty.json"))
	assert.True(t, errors.IsCode(err, errors.CodeMalformedConfig))
}

func TestNormalizeWorkspaceRoot(t *testing.T) {
	assert.Equal(t, filepath.FromSlash("/proj"), NormalizeWorkspaceRoot("/proj/"))
	assert.Equal(t, "", NormalizeWorkspaceRoot("  "))
	assert.Equal(t, filepath.FromSlash("c:/work/app"), NormalizeWorkspaceRoot("/c:/work/app"))
}
