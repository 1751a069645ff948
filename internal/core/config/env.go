package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides applies environment variable overrides to the configuration.
// Pattern: CSSMODULES_[SECTION]_[KEY] (e.g., CSSMODULES_SETTINGS_CONFIG_PATH).
func ApplyEnvOverrides(cfg *Config) {
	setEnvString(&cfg.WorkspaceRoot, "CSSMODULES_WORKSPACE_ROOT")

	// Settings
	setEnvString(&cfg.Settings.ConfigPath, "CSSMODULES_SETTINGS_CONFIG_PATH")
	setEnvBool(&cfg.Settings.SelectedClassname, "CSSMODULES_SETTINGS_SELECTED_CLASSNAME")
	setEnvString(&cfg.Settings.ImportParser, "CSSMODULES_SETTINGS_IMPORT_PARSER")
	setEnvList(&cfg.Settings.StyleExtensions, "CSSMODULES_SETTINGS_STYLE_EXTENSIONS")

	// Watch
	setEnvDuration(&cfg.Watch.Debounce, "CSSMODULES_WATCH_DEBOUNCE")

	// Transport
	setEnvBool(&cfg.Transport.RateLimit.Enabled, "CSSMODULES_TRANSPORT_RATE_LIMIT_ENABLED")
	setEnvInt(&cfg.Transport.RateLimit.RequestsPerMinute, "CSSMODULES_TRANSPORT_RATE_LIMIT_REQUESTS_PER_MINUTE")
	setEnvInt(&cfg.Transport.RateLimit.Burst, "CSSMODULES_TRANSPORT_RATE_LIMIT_BURST")

	// Observability
	setEnvString(&cfg.Observability.MetricsAddr, "CSSMODULES_OBSERVABILITY_METRICS_ADDR")
	setEnvString(&cfg.Observability.TraceExporter, "CSSMODULES_OBSERVABILITY_TRACE_EXPORTER")
	setEnvString(&cfg.Observability.OTLPEndpoint, "CSSMODULES_OBSERVABILITY_OTLP_ENDPOINT")
	setEnvBool(&cfg.Observability.OTLPInsecure, "CSSMODULES_OBSERVABILITY_OTLP_INSECURE")
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		log.Printf("Applying env override: %s=%s", key, val)
		*target = val
	}
}

func setEnvList(target *[]string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		log.Printf("Applying env override: %s=%s", key, val)
		parts := strings.Split(val, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		*target = out
	}
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			log.Printf("Applying env override: %s=%s", key, val)
			*target = i
		}
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(strings.ToLower(val))
		if err == nil {
			log.Printf("Applying env override: %s=%s", key, val)
			*target = b
		}
	}
}

func setEnvDuration(target *time.Duration, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			log.Printf("Applying env override: %s=%s", key, val)
			*target = d
		}
	}
}
