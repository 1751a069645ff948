package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
workspace_root = "/proj"

[settings]
alias = { "@" = "${workspaceRoot}/src", "~" = "src/shared" }
config_path = "cssmodules.json"
selected_classname = true
style_extensions = ["less", ".CSS"]
import_parser = "Syntax"

[languages]
include = ["**.tsx"]

[watch]
debounce = "250ms"

[transport.rate_limit]
enabled = true
requests_per_minute = 60
burst = 5

[observability]
metrics_addr = "127.0.0.1:9464"
trace_exporter = "otlp"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "/proj", cfg.WorkspaceRoot)
	assert.Equal(t, "${workspaceRoot}/src", cfg.Settings.Alias["@"])
	assert.Equal(t, "cssmodules.json", cfg.Settings.ConfigPath)
	assert.True(t, cfg.Settings.SelectedClassname)
	assert.Equal(t, []string{".less", ".css"}, cfg.Settings.StyleExtensions)
	assert.Equal(t, ImportParserSyntax, cfg.Settings.ImportParser)
	assert.Equal(t, []string{"**.tsx"}, cfg.Languages.Include)
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, RateLimit{Enabled: true, RequestsPerMinute: 60, Burst: 5}, cfg.Transport.RateLimit)
	assert.Equal(t, "127.0.0.1:9464", cfg.Observability.MetricsAddr)
	assert.Equal(t, TraceExporterOTLP, cfg.Observability.TraceExporter)
	assert.Equal(t, "localhost:4317", cfg.Observability.OTLPEndpoint)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ".", cfg.WorkspaceRoot)
	assert.Equal(t, []string{".less"}, cfg.Settings.StyleExtensions)
	assert.Equal(t, ImportParserPattern, cfg.Settings.ImportParser)
	assert.NotEmpty(t, cfg.Languages.Include)
	assert.NotNil(t, cfg.Settings.Alias)
	assert.Equal(t, TraceExporterNone, cfg.Observability.TraceExporter)
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := map[string]string{
		"version":        "version = 3\n",
		"import parser":  "[settings]\nimport_parser = \"ast\"\n",
		"alias key":      "[settings]\nalias = { \"a/b\" = \"/x\" }\n",
		"glob":           "[languages]\ninclude = [\"[\"]\n",
		"trace exporter": "[observability]\ntrace_exporter = \"zipkin\"\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MalformedToml(t *testing.T) {
	_, err := Load(writeConfig(t, "[settings\n"))
	assert.Error(t, err)
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, ImportParserPattern, cfg.Settings.ImportParser)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("CSSMODULES_WORKSPACE_ROOT", "/env/root")
	t.Setenv("CSSMODULES_SETTINGS_SELECTED_CLASSNAME", "true")
	t.Setenv("CSSMODULES_SETTINGS_STYLE_EXTENSIONS", ".scss, .less")
	t.Setenv("CSSMODULES_WATCH_DEBOUNCE", "2s")
	t.Setenv("CSSMODULES_TRANSPORT_RATE_LIMIT_BURST", "not-a-number")

	cfg, err := Load(writeConfig(t, "workspace_root = \"/file/root\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "/env/root", cfg.WorkspaceRoot)
	assert.True(t, cfg.Settings.SelectedClassname)
	assert.Equal(t, []string{".scss", ".less"}, cfg.Settings.StyleExtensions)
	assert.Equal(t, 2*time.Second, cfg.Watch.Debounce)
	assert.Equal(t, 20, cfg.Transport.RateLimit.Burst)
}

func TestClone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Settings.Alias["@"] = "/a"
	clone := cfg.Clone()
	clone.Settings.Alias["@"] = "/b"
	clone.Languages.Include[0] = "changed"

	assert.Equal(t, "/a", cfg.Settings.Alias["@"])
	assert.False(t, strings.EqualFold(cfg.Languages.Include[0], "changed"))
}

func TestLoad_ExampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "..", "cssmodules.example.toml"))
	require.NoError(t, err)
	assert.Equal(t, "${workspaceRoot}/src", cfg.Settings.Alias["@"])
	assert.Equal(t, ImportParserPattern, cfg.Settings.ImportParser)
	assert.Equal(t, 100*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, TraceExporterNone, cfg.Observability.TraceExporter)
}
