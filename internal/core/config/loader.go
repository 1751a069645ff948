package config

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"cssmodules/internal/engine/resolver/drivers"
)

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	ApplyEnvOverrides(&cfg)
	applyDefaults(&cfg)
	normalizeSettings(&cfg)

	if err := validateVersion(&cfg); err != nil {
		return nil, err
	}
	if err := validateSettings(&cfg); err != nil {
		return nil, err
	}
	if err := validateLanguages(&cfg); err != nil {
		return nil, err
	}
	if err := validateTransport(&cfg); err != nil {
		return nil, err
	}
	if err := validateObservability(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrDefault loads path when it exists and falls back to defaults plus
// environment overrides otherwise.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := &Config{}
		ApplyEnvOverrides(cfg)
		applyDefaults(cfg)
		normalizeSettings(cfg)
		return cfg, nil
	}
	return Load(path)
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	if strings.TrimSpace(cfg.WorkspaceRoot) == "" {
		cfg.WorkspaceRoot = "."
	}
	if cfg.Settings.Alias == nil {
		cfg.Settings.Alias = map[string]string{}
	}
	if len(cfg.Settings.StyleExtensions) == 0 {
		cfg.Settings.StyleExtensions = append([]string(nil), drivers.DefaultStyleExtensions...)
	}
	if strings.TrimSpace(cfg.Settings.ImportParser) == "" {
		cfg.Settings.ImportParser = ImportParserPattern
	}
	if len(cfg.Languages.Include) == 0 {
		cfg.Languages.Include = []string{"**.js", "**.jsx", "**.ts", "**.tsx"}
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 100 * time.Millisecond
	}
	if cfg.Transport.RateLimit.RequestsPerMinute <= 0 {
		cfg.Transport.RateLimit.RequestsPerMinute = 600
	}
	if cfg.Transport.RateLimit.Burst <= 0 {
		cfg.Transport.RateLimit.Burst = 20
	}
	if strings.TrimSpace(cfg.Observability.TraceExporter) == "" {
		cfg.Observability.TraceExporter = TraceExporterNone
	}
	if strings.TrimSpace(cfg.Observability.OTLPEndpoint) == "" {
		cfg.Observability.OTLPEndpoint = "localhost:4317"
	}
}

func normalizeSettings(cfg *Config) {
	cfg.WorkspaceRoot = strings.TrimSpace(cfg.WorkspaceRoot)
	cfg.Settings.ConfigPath = strings.TrimSpace(cfg.Settings.ConfigPath)
	cfg.Settings.ImportParser = strings.ToLower(strings.TrimSpace(cfg.Settings.ImportParser))
	cfg.Settings.StyleExtensions = drivers.NormalizeExtensions(cfg.Settings.StyleExtensions)
	cfg.Observability.TraceExporter = strings.ToLower(strings.TrimSpace(cfg.Observability.TraceExporter))
	cfg.Observability.MetricsAddr = strings.TrimSpace(cfg.Observability.MetricsAddr)

	include := make([]string, 0, len(cfg.Languages.Include))
	for _, pattern := range cfg.Languages.Include {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		include = append(include, pattern)
	}
	cfg.Languages.Include = include
}
