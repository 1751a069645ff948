package config

import (
	"fmt"
	"strings"

	"cssmodules/internal/shared/util"
)

func validateVersion(cfg *Config) error {
	if cfg.Version < 1 {
		return fmt.Errorf("version must be >= 1, got %d", cfg.Version)
	}
	if cfg.Version > 1 {
		return fmt.Errorf("unsupported config version %d; supported version is 1", cfg.Version)
	}
	return nil
}

func validateSettings(cfg *Config) error {
	switch cfg.Settings.ImportParser {
	case ImportParserPattern, ImportParserSyntax:
	default:
		return fmt.Errorf("settings.import_parser must be one of: %s, %s (got %q)", ImportParserPattern, ImportParserSyntax, cfg.Settings.ImportParser)
	}
	for key := range cfg.Settings.Alias {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("settings.alias keys must not be empty")
		}
		if util.ContainsPathSeparator(key) {
			return fmt.Errorf("settings.alias key %q must not contain a path separator", key)
		}
	}
	return nil
}

func validateLanguages(cfg *Config) error {
	if len(cfg.Languages.Include) == 0 {
		return fmt.Errorf("languages.include must list at least one pattern")
	}
	if _, err := util.CompileGlobs(cfg.Languages.Include, "languages.include"); err != nil {
		return err
	}
	return nil
}

func validateTransport(cfg *Config) error {
	rl := cfg.Transport.RateLimit
	if !rl.Enabled {
		return nil
	}
	if rl.RequestsPerMinute <= 0 {
		return fmt.Errorf("transport.rate_limit.requests_per_minute must be > 0")
	}
	if rl.Burst <= 0 {
		return fmt.Errorf("transport.rate_limit.burst must be > 0")
	}
	return nil
}

func validateObservability(cfg *Config) error {
	switch cfg.Observability.TraceExporter {
	case TraceExporterNone:
	case TraceExporterOTLP:
		if strings.TrimSpace(cfg.Observability.OTLPEndpoint) == "" {
			return fmt.Errorf("observability.otlp_endpoint is required when trace_exporter is %q", TraceExporterOTLP)
		}
	default:
		return fmt.Errorf("observability.trace_exporter must be one of: %s, %s", TraceExporterNone, TraceExporterOTLP)
	}
	return nil
}
