// Package alias builds the alias-prefix to directory mapping used when
// resolving stylesheet imports.
package alias

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"cssmodules/internal/core/errors"
)

// WorkspaceRootToken is replaced by the workspace root in alias values.
const WorkspaceRootToken = "${workspaceRoot}"

// Map maps an alias prefix (no separators) to an absolute directory.
type Map map[string]string

// Lookup returns the directory for prefix.
func (m Map) Lookup(prefix string) (string, bool) {
	dir, ok := m[prefix]
	return dir, ok && dir != ""
}

// FileSettings is the external configuration file's content.
type FileSettings struct {
	Alias             map[string]string `json:"alias" yaml:"alias" toml:"alias"`
	SelectedClassname *bool             `json:"selectedClassname" yaml:"selectedClassname" toml:"selectedClassname"`
}

// Result is the merged alias state for one request.
type Result struct {
	Alias Map
	// File is nil when no external file was read.
	File *FileSettings
	// FilePath is the absolute external file path, empty when not configured.
	FilePath string
}

// Resolve merges the inline setting with the external file's `alias` field.
// File entries win on key collisions. A missing or malformed file only
// drops the file's contribution.
func Resolve(inline map[string]string, configPath, workspaceRoot string) Map {
	res, _ := ResolveWithFile(inline, configPath, workspaceRoot)
	return res.Alias
}

// ResolveWithFile is Resolve that also surfaces the file settings and the
// reason the file was skipped (CodeNotFound or CodeMalformedConfig).
func ResolveWithFile(inline map[string]string, configPath, workspaceRoot string) (Result, error) {
	root := NormalizeWorkspaceRoot(workspaceRoot)
	res := Result{Alias: Substitute(inline, root, "")}

	configPath = strings.TrimSpace(configPath)
	if configPath == "" {
		return res, nil
	}
	res.FilePath = resolveAgainst(root, configPath)

	settings, err := LoadFile(res.FilePath)
	if err != nil {
		return res, err
	}
	res.File = settings
	for key, value := range Substitute(settings.Alias, root, filepath.Dir(res.FilePath)) {
		res.Alias[key] = value
	}
	return res, nil
}

// LoadFile reads external settings. TOML and YAML are chosen by extension;
// anything else is decoded as JSON.
func LoadFile(path string) (*FileSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeNotFound, "alias config unreadable"), errors.CtxPath, path)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.AddContext(errors.New(errors.CodeMalformedConfig, "alias config is empty"), errors.CtxPath, path)
	}

	var settings FileSettings
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &settings)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &settings)
	default:
		err = json.Unmarshal(data, &settings)
	}
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeMalformedConfig, "alias config is not parseable"), errors.CtxPath, path)
	}
	return &settings, nil
}

// Substitute applies workspace-root substitution to every value. Values
// without the token are resolved against baseDir, or the workspace root when
// baseDir is empty. Keys holding a path separator are dropped.
func Substitute(setting map[string]string, workspaceRoot, baseDir string) Map {
	out := make(Map, len(setting))
	if baseDir == "" {
		baseDir = workspaceRoot
	}
	for key, value := range setting {
		key = strings.TrimSpace(key)
		if key == "" || strings.ContainsAny(key, `/\`) {
			continue
		}
		if strings.Contains(value, WorkspaceRootToken) {
			out[key] = absolute(strings.ReplaceAll(value, WorkspaceRootToken, workspaceRoot))
			continue
		}
		out[key] = resolveAgainst(baseDir, value)
	}
	return out
}

// NormalizeWorkspaceRoot strips the leading separator hosts put before a
// drive letter (`/c:/proj`) and cleans the result.
func NormalizeWorkspaceRoot(root string) string {
	root = strings.TrimSpace(root)
	if root == "" {
		return ""
	}
	if len(root) >= 3 && (root[0] == '/' || root[0] == '\\') && root[2] == ':' && isLetter(root[1]) {
		root = root[1:]
	}
	return filepath.Clean(filepath.FromSlash(root))
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func resolveAgainst(base, value string) string {
	value = filepath.FromSlash(strings.TrimSpace(value))
	if filepath.IsAbs(value) {
		return filepath.Clean(value)
	}
	return absolute(filepath.Join(base, value))
}

func absolute(p string) string {
	p = filepath.FromSlash(p)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
