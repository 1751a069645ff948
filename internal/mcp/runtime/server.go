package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"cssmodules/internal/core/app"
	"cssmodules/internal/core/errors"
	"cssmodules/internal/core/ports"
	"cssmodules/internal/engine/definition"
	"cssmodules/internal/mcp/contracts"
	"cssmodules/internal/mcp/registry"
	"cssmodules/internal/mcp/transport"
	"cssmodules/internal/mcp/validate"
)

type Dependencies struct {
	Service ports.IntelliSenseService
	Logger  *slog.Logger
	// BaseDir anchors relative document paths. Defaults to the process cwd.
	BaseDir string
}

// Server routes transport tool calls to the completion and definition
// pipelines.
type Server struct {
	deps      Dependencies
	registry  *registry.Registry
	transport transport.Adapter

	mu      sync.Mutex
	running bool
}

func New(deps Dependencies, adapter transport.Adapter) (*Server, error) {
	if deps.Service == nil {
		return nil, fmt.Errorf("intellisense service dependency is required")
	}
	if adapter == nil {
		return nil, fmt.Errorf("transport is required")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.BaseDir == "" {
		if wd, err := filepath.Abs("."); err == nil {
			deps.BaseDir = wd
		}
	}

	s := &Server{deps: deps, registry: registry.New(), transport: adapter}
	if err := s.registerTools(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) registerTools() error {
	if err := s.registry.Register(contracts.ToolNameCompletion, s.handleCompletion); err != nil {
		return err
	}
	return s.registry.Register(contracts.ToolNameDefinition, s.handleDefinition)
}

func (s *Server) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		<-ctx.Done()
		return ctx.Err()
	}
	s.running = true
	s.mu.Unlock()

	s.deps.Logger.Info("mcp runtime active", "tools", s.registry.Tools())

	err := s.transport.Start(ctx, s.HandleToolCall)

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	return err
}

func (s *Server) Stop() error {
	return s.transport.Stop()
}

// HandleToolCall validates raw arguments and dispatches to the named tool.
func (s *Server) HandleToolCall(ctx context.Context, tool string, raw map[string]any) (any, error) {
	input, err := validate.ParseToolArgs(tool, raw)
	if err != nil {
		return nil, err
	}
	handler, ok := s.registry.HandlerFor(tool)
	if !ok {
		return nil, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: fmt.Sprintf("unsupported tool: %s", tool)}
	}

	ctx = app.WithRequestID(ctx, "")
	start := time.Now()
	result, err := handler(ctx, input)
	s.deps.Logger.Debug("tool call served",
		"request_id", app.RequestID(ctx),
		"tool", tool,
		"path", input.Path,
		"duration", time.Since(start),
		"error", err,
	)
	return result, err
}

func (s *Server) handleCompletion(ctx context.Context, input contracts.PositionInput) (any, error) {
	doc, err := s.document(input)
	if err != nil {
		return nil, err
	}
	items := s.deps.Service.Complete(ctx, doc, position(input))
	if items == nil {
		items = []ports.CompletionItem{}
	}
	return contracts.CompletionOutput{Items: items}, nil
}

func (s *Server) handleDefinition(ctx context.Context, input contracts.PositionInput) (any, error) {
	doc, err := s.document(input)
	if err != nil {
		return nil, err
	}
	return contracts.DefinitionOutput{Location: s.deps.Service.Define(ctx, doc, position(input))}, nil
}

func (s *Server) document(input contracts.PositionInput) (ports.Document, error) {
	path := input.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.deps.BaseDir, path)
	}
	if input.Text != nil {
		return app.NewSnapshot(filepath.Clean(path), *input.Text), nil
	}
	doc, err := app.LoadSnapshot(path)
	if err != nil {
		code := contracts.ErrorInternal
		if errors.IsCode(err, errors.CodeNotFound) {
			code = contracts.ErrorNotFound
		}
		return nil, contracts.ToolError{Code: code, Message: "document unreadable", Details: map[string]any{"path": path}}
	}
	return doc, nil
}

func position(input contracts.PositionInput) definition.Position {
	return definition.Position{Line: input.Line, Column: input.Character}
}
