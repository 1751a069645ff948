package app

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"cssmodules/internal/core/config"
	"cssmodules/internal/core/errors"
	"cssmodules/internal/core/ports"
	"cssmodules/internal/engine/alias"
	"cssmodules/internal/engine/definition"
	"cssmodules/internal/engine/identifier"
	"cssmodules/internal/engine/parser"
	"cssmodules/internal/engine/resolver"
	"cssmodules/internal/engine/stylesheet"
	"cssmodules/internal/shared/observability"
)

const (
	opComplete = "complete"
	opDefine   = "define"

	completionKind     = "variable"
	completionSortText = "01"
)

// state pairs a settings snapshot with the import finder built for it so a
// request never sees one without the other.
type state struct {
	settings *Settings
	finder   ports.ImportFinder
}

// Service runs the completion and definition pipelines.
type Service struct {
	current    atomic.Pointer[state]
	grammars   *parser.GrammarLoader
	classNames ports.ClassNameExtractor
}

var _ ports.IntelliSenseService = (*Service)(nil)

func NewService(settings *Settings) *Service {
	s := &Service{
		grammars:   parser.NewGrammarLoader(),
		classNames: stylesheet.NewExtractor(),
	}
	s.UpdateSettings(settings)
	return s
}

// Settings returns the active snapshot.
func (s *Service) Settings() *Settings {
	return s.current.Load().settings
}

// UpdateSettings swaps the snapshot used by subsequent requests.
func (s *Service) UpdateSettings(settings *Settings) {
	if settings == nil {
		settings, _ = NewSettings(nil, "")
	}
	var finder ports.ImportFinder
	if settings.ImportParser == config.ImportParserSyntax {
		finder = parser.NewSyntaxFinder(s.grammars, settings.StyleExtensions)
	} else {
		finder = resolver.NewPatternFinder(settings.StyleExtensions)
	}
	s.current.Store(&state{settings: settings, finder: finder})
}

// ApplyConfig rebuilds the snapshot from a reloaded configuration, keeping
// the workspace root already in effect.
func (s *Service) ApplyConfig(cfg *config.Config) error {
	settings, err := NewSettings(cfg, s.Settings().WorkspaceRoot)
	if err != nil {
		observability.ConfigReloadsTotal.WithLabelValues("rejected").Inc()
		return err
	}
	s.UpdateSettings(settings)
	observability.ConfigReloadsTotal.WithLabelValues("applied").Inc()
	return nil
}

// Complete lists the class properties of the stylesheet bound to the
// identifier before the '.' at pos. It returns nil when nothing applies.
func (s *Service) Complete(ctx context.Context, doc ports.Document, pos definition.Position) (items []ports.CompletionItem) {
	ctx, span := observability.Tracer.Start(ctx, "Service.Complete", trace.WithAttributes(
		attribute.String("path", doc.Path()),
		attribute.Int("line", pos.Line),
		attribute.Int("character", pos.Column),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			items = nil
			s.conclude(ctx, opComplete, doc, errors.New(errors.CodeInternal, fmt.Sprintf("panic: %v", r)))
		}
		observability.RequestDuration.WithLabelValues(opComplete).Observe(time.Since(start).Seconds())
	}()

	items, err := s.complete(ctx, doc, pos)
	s.conclude(ctx, opComplete, doc, err)
	if err != nil {
		return nil
	}
	return items
}

// Define finds the declaration of the class property under pos. It returns
// nil when nothing applies.
func (s *Service) Define(ctx context.Context, doc ports.Document, pos definition.Position) (loc *ports.Location) {
	ctx, span := observability.Tracer.Start(ctx, "Service.Define", trace.WithAttributes(
		attribute.String("path", doc.Path()),
		attribute.Int("line", pos.Line),
		attribute.Int("character", pos.Column),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			loc = nil
			s.conclude(ctx, opDefine, doc, errors.New(errors.CodeInternal, fmt.Sprintf("panic: %v", r)))
		}
		observability.RequestDuration.WithLabelValues(opDefine).Observe(time.Since(start).Seconds())
	}()

	loc, err := s.define(ctx, doc, pos)
	s.conclude(ctx, opDefine, doc, err)
	if err != nil {
		return nil
	}
	return loc
}

func (s *Service) complete(ctx context.Context, doc ports.Document, pos definition.Position) ([]ports.CompletionItem, error) {
	st := s.current.Load()
	if !st.settings.Serves(doc.Path()) {
		return nil, errors.New(errors.CodeNotSupported, "document not selected")
	}

	line, ok := doc.LineAt(pos.Line)
	if !ok {
		return nil, errors.NotFound("line out of range")
	}
	prefix := []rune(line)
	if pos.Column <= 0 || pos.Column > len(prefix) || prefix[pos.Column-1] != identifier.Delimiter {
		return nil, errors.NotFound("cursor is not after a delimiter")
	}
	object, ok := identifier.ExtractBeforeDot(line, pos.Column)
	if !ok {
		return nil, errors.NotFound("no identifier before cursor")
	}

	target, err := s.resolveStylesheet(ctx, st, doc, object)
	if err != nil {
		return nil, err
	}
	content, err := readStylesheet(ctx, target.path)
	if err != nil {
		return nil, err
	}

	set := stylesheet.NewClassNameSet(s.classNames.Extract(content))
	observability.ClassNamesExtracted.Observe(float64(len(set)))
	if len(set) == 0 {
		return nil, errors.AddContext(errors.NotFound("no class names in stylesheet"), errors.CtxPath, target.path)
	}

	items := make([]ports.CompletionItem, 0, len(set))
	for _, name := range set {
		items = append(items, ports.CompletionItem{
			Label:    name.Camel,
			Kind:     completionKind,
			SortText: completionSortText,
			Detail:   name.Name,
		})
	}
	return items, nil
}

func (s *Service) define(ctx context.Context, doc ports.Document, pos definition.Position) (*ports.Location, error) {
	st := s.current.Load()
	if !st.settings.Serves(doc.Path()) {
		return nil, errors.New(errors.CodeNotSupported, "document not selected")
	}

	line, ok := doc.LineAt(pos.Line)
	if !ok {
		return nil, errors.NotFound("line out of range")
	}
	access, ok := identifier.ExtractAtPosition(line, pos.Column)
	if !ok {
		return nil, errors.NotFound("no identifier at cursor")
	}
	member := access.Member
	if member == "" {
		start, end, ok := identifier.WordAt(line, pos.Column)
		if !ok {
			return nil, errors.NotFound("no word at cursor")
		}
		member = string([]rune(line)[start:end])
	}

	target, err := s.resolveStylesheet(ctx, st, doc, access.Object)
	if err != nil {
		return nil, err
	}
	content, err := readStylesheet(ctx, target.path)
	if err != nil {
		return nil, err
	}

	match, ok := definition.Locate(member, string(content))
	if !ok {
		return nil, errors.AddContext(errors.AddContext(errors.NotFound("selector not declared"), errors.CtxClassName, member), errors.CtxPath, target.path)
	}

	end := match.Position
	if target.selectedClassname {
		end = match.End()
	}
	return &ports.Location{
		Path:  target.path,
		Range: ports.Range{Start: match.Position, End: end},
	}, nil
}

type stylesheetTarget struct {
	path              string
	selectedClassname bool
}

// resolveStylesheet maps object to the absolute path of an existing
// stylesheet, merging aliases for this request only.
func (s *Service) resolveStylesheet(ctx context.Context, st *state, doc ports.Document, object string) (stylesheetTarget, error) {
	ctx, span := observability.Tracer.Start(ctx, "Service.resolveStylesheet", trace.WithAttributes(attribute.String("identifier", object)))
	defer span.End()

	settings := st.settings
	merged, err := alias.ResolveWithFile(settings.Alias, settings.ConfigPath, settings.WorkspaceRoot)
	switch {
	case err == nil:
	case errors.IsCode(err, errors.CodeMalformedConfig):
		logger(ctx).Warn("ignoring malformed alias config", "path", merged.FilePath, "error", err)
	default:
		logger(ctx).Debug("alias config not loaded", "path", merged.FilePath, "error", err)
	}

	target := stylesheetTarget{selectedClassname: settings.SelectedClassname}
	if merged.File != nil && merged.File.SelectedClassname != nil {
		target.selectedClassname = *merged.File.SelectedClassname
	}

	lookupStart := time.Now()
	binding, ok := st.finder.FindBinding(object, []byte(doc.Text()), doc.Path())
	observability.ImportLookupDuration.WithLabelValues(settings.ImportParser).Observe(time.Since(lookupStart).Seconds())
	if !ok {
		return target, errors.AddContext(errors.NotFound("no stylesheet import for identifier"), errors.CtxIdentifier, object)
	}

	target.path = resolver.ResolvePath(binding.Specifier, merged.Alias, doc.Path())
	if err := stylesheetExists(ctx, target.path); err != nil {
		return target, err
	}
	return target, nil
}

// stylesheetExists is the pipeline's only suspension point. Cancellation is
// reported as NotFound, the same as a missing file.
func stylesheetExists(ctx context.Context, path string) error {
	done := make(chan error, 1)
	go func() {
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			err = fmt.Errorf("%s is a directory", path)
		}
		done <- err
	}()

	select {
	case <-ctx.Done():
		return errors.AddContext(errors.Wrap(ctx.Err(), errors.CodeNotFound, "existence check abandoned"), errors.CtxPath, path)
	case err := <-done:
		if err != nil {
			return errors.AddContext(errors.Wrap(err, errors.CodeNotFound, "stylesheet missing"), errors.CtxPath, path)
		}
		return nil
	}
}

func readStylesheet(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeNotFound, "request abandoned")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeNotFound, "stylesheet unreadable"), errors.CtxPath, path)
	}
	return data, nil
}

// conclude logs and counts a request outcome. Only unexpected failures are
// logged above debug level.
func (s *Service) conclude(ctx context.Context, op string, doc ports.Document, err error) {
	log := logger(ctx).With("operation", op, "path", doc.Path())
	outcome := observability.OutcomeOK
	switch code := errors.CodeOf(err); {
	case err == nil:
	case code == errors.CodeNotFound:
		outcome = observability.OutcomeNotFound
		log.Debug("no result", "reason", err)
	case code == errors.CodeNotSupported:
		outcome = observability.OutcomeSkipped
		log.Debug("document skipped", "reason", err)
	default:
		outcome = observability.OutcomeError
		log.Error("request failed", "error", err)
	}
	observability.RequestsTotal.WithLabelValues(op, outcome).Inc()
}
