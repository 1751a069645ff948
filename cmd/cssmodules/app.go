package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"cssmodules/internal/core/app"
	"cssmodules/internal/core/config"
	"cssmodules/internal/engine/definition"
	"cssmodules/internal/mcp/runtime"
	"cssmodules/internal/mcp/transport"
	"cssmodules/internal/shared/observability"
)

// CLI wires configuration into the request service for one invocation.
type CLI struct {
	cfg        *config.Config
	configPath string
	cwd        string
	service    *app.Service
}

func NewCLI(configPath string) (*CLI, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", configPath, err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	// A relative workspace root follows the config file only when one was read.
	source := configPath
	if _, statErr := os.Stat(configPath); statErr != nil {
		source = ""
	}
	root, err := config.ResolveWorkspaceRoot(cfg, source, cwd)
	if err != nil {
		return nil, err
	}
	settings, err := app.NewSettings(cfg, root)
	if err != nil {
		return nil, err
	}

	slog.Debug("configuration loaded",
		"config", configPath,
		"workspace_root", settings.WorkspaceRoot,
		"import_parser", settings.ImportParser,
		"extensions", settings.StyleExtensions,
	)
	return &CLI{
		cfg:        cfg,
		configPath: source,
		cwd:        cwd,
		service:    app.NewService(settings),
	}, nil
}

// Query runs one completion or definition request against a file on disk
// and prints the JSON result.
func (c *CLI) Query(cmd, file, lineArg, columnArg string, out io.Writer) error {
	line, err := strconv.Atoi(lineArg)
	if err != nil || line < 0 {
		return fmt.Errorf("invalid line %q", lineArg)
	}
	column, err := strconv.Atoi(columnArg)
	if err != nil || column < 0 {
		return fmt.Errorf("invalid column %q", columnArg)
	}
	if !filepath.IsAbs(file) {
		file = filepath.Join(c.cwd, file)
	}
	doc, err := app.LoadSnapshot(file)
	if err != nil {
		return err
	}

	ctx := app.WithRequestID(context.Background(), "")
	pos := definition.Position{Line: line, Column: column}

	var result any
	if cmd == "complete" {
		result = c.service.Complete(ctx, doc, pos)
	} else {
		result = c.service.Define(ctx, doc, pos)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// Serve runs the stdio tool server until stdin closes or a signal arrives.
func (c *CLI) Serve(stdin io.Reader, stdout io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfig{
		Exporter:       c.cfg.Observability.TraceExporter,
		Endpoint:       c.cfg.Observability.OTLPEndpoint,
		Insecure:       c.cfg.Observability.OTLPInsecure,
		ServiceVersion: VERSION,
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			slog.Warn("tracing shutdown failed", "error", err)
		}
	}()

	if addr := c.cfg.Observability.MetricsAddr; addr != "" {
		obs := observability.NewServer(addr, app.NewHealthService(c.service))
		if err := obs.Start(ctx); err != nil {
			return fmt.Errorf("start observability server: %w", err)
		}
		defer obs.Stop(context.Background())
	}

	if c.configPath != "" {
		watcher := config.NewWatcher(c.configPath, c.cfg.Watch.Debounce, func(cfg *config.Config) {
			if err := c.service.ApplyConfig(cfg); err != nil {
				slog.Warn("reloaded config rejected", "error", err)
			}
		})
		if err := watcher.Start(ctx); err != nil {
			slog.Warn("config watcher unavailable", "error", err)
		} else {
			defer watcher.Stop()
		}
	}

	adapter, err := transport.NewStdio(c.cfg.Transport.RateLimit, stdin, stdout)
	if err != nil {
		return err
	}
	server, err := runtime.New(runtime.Dependencies{Service: c.service, BaseDir: c.cwd}, adapter)
	if err != nil {
		return err
	}
	defer server.Stop()

	if err := server.Start(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
