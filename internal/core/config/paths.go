package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"cssmodules/internal/engine/alias"
)

// ResolveRelative joins value onto base unless value is already absolute.
func ResolveRelative(base, value string) string {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(raw) {
		return filepath.Clean(raw)
	}
	return filepath.Clean(filepath.Join(base, raw))
}

// ResolveWorkspaceRoot returns the absolute workspace root. A relative root
// is taken against the directory holding the config file, or cwd when the
// configuration did not come from a file.
func ResolveWorkspaceRoot(cfg *Config, configFile, cwd string) (string, error) {
	if strings.TrimSpace(cwd) == "" {
		return "", fmt.Errorf("cwd must not be empty")
	}
	root := alias.NormalizeWorkspaceRoot(cfg.WorkspaceRoot)
	if filepath.IsAbs(root) {
		return root, nil
	}
	base := cwd
	if strings.TrimSpace(configFile) != "" {
		base = filepath.Dir(ResolveRelative(cwd, configFile))
	}
	return ResolveRelative(base, root), nil
}
