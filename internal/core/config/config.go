package config

import (
	"time"
)

const (
	ImportParserPattern = "pattern"
	ImportParserSyntax  = "syntax"

	TraceExporterNone = "none"
	TraceExporterOTLP = "otlp"

	DefaultFileName = "cssmodules.toml"
)

type Config struct {
	Version       int           `toml:"version"`
	WorkspaceRoot string        `toml:"workspace_root"`
	Settings      Settings      `toml:"settings"`
	Languages     Languages     `toml:"languages"`
	Watch         Watch         `toml:"watch"`
	Transport     Transport     `toml:"transport"`
	Observability Observability `toml:"observability"`
}

// Settings mirrors the editor-level configuration consumed per request.
type Settings struct {
	Alias             map[string]string `toml:"alias"`
	ConfigPath        string            `toml:"config_path"`
	SelectedClassname bool              `toml:"selected_classname"`
	StyleExtensions   []string          `toml:"style_extensions"`
	ImportParser      string            `toml:"import_parser"`
}

// Languages selects which source documents are served.
type Languages struct {
	Include []string `toml:"include"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
}

type Transport struct {
	RateLimit RateLimit `toml:"rate_limit"`
}

type RateLimit struct {
	Enabled           bool `toml:"enabled"`
	RequestsPerMinute int  `toml:"requests_per_minute"`
	Burst             int  `toml:"burst"`
}

type Observability struct {
	MetricsAddr   string `toml:"metrics_addr"`
	TraceExporter string `toml:"trace_exporter"`
	OTLPEndpoint  string `toml:"otlp_endpoint"`
	OTLPInsecure  bool   `toml:"otlp_insecure"`
}

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Clone deep-copies the mutable fields so a snapshot can be shared safely.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	if c.Settings.Alias != nil {
		out.Settings.Alias = make(map[string]string, len(c.Settings.Alias))
		for k, v := range c.Settings.Alias {
			out.Settings.Alias[k] = v
		}
	}
	out.Settings.StyleExtensions = append([]string(nil), c.Settings.StyleExtensions...)
	out.Languages.Include = append([]string(nil), c.Languages.Include...)
	return &out
}
