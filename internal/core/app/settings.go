package app

import (
	"github.com/gobwas/glob"

	"cssmodules/internal/core/config"
	"cssmodules/internal/core/errors"
	"cssmodules/internal/engine/alias"
	"cssmodules/internal/shared/util"
)

// Settings is the read-only configuration snapshot a request runs against.
type Settings struct {
	WorkspaceRoot     string
	Alias             map[string]string
	ConfigPath        string
	SelectedClassname bool
	StyleExtensions   []string
	ImportParser      string

	include []glob.Glob
}

// NewSettings derives a request snapshot from cfg. workspaceRoot must be the
// already resolved root.
func NewSettings(cfg *config.Config, workspaceRoot string) (*Settings, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cfg = cfg.Clone()

	include, err := util.CompileGlobs(cfg.Languages.Include, "languages.include")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeValidationError, "invalid document selector")
	}
	return &Settings{
		WorkspaceRoot:     alias.NormalizeWorkspaceRoot(workspaceRoot),
		Alias:             cfg.Settings.Alias,
		ConfigPath:        cfg.Settings.ConfigPath,
		SelectedClassname: cfg.Settings.SelectedClassname,
		StyleExtensions:   cfg.Settings.StyleExtensions,
		ImportParser:      cfg.Settings.ImportParser,
		include:           include,
	}, nil
}

// Serves reports whether the document selector accepts path.
func (s *Settings) Serves(path string) bool {
	return util.MatchAny(s.include, path)
}
