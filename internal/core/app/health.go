package app

import (
	"context"
	"fmt"
	"time"

	"cssmodules/internal/core/config"
	"cssmodules/internal/engine/parser"
	"cssmodules/internal/shared/observability"
)

type HealthService struct {
	service *Service
}

var _ observability.HealthChecker = (*HealthService)(nil)

func NewHealthService(service *Service) *HealthService {
	return &HealthService{service: service}
}

func (h *HealthService) Check(ctx context.Context) observability.HealthStatus {
	status := observability.HealthStatus{
		Status:     "up",
		Timestamp:  time.Now().UTC(),
		Components: make(map[string]string),
	}

	if h.service == nil || h.service.current.Load() == nil {
		status.Status = "degraded"
		status.Components["settings"] = "missing"
		return status
	}

	settings := h.service.Settings()
	if settings.WorkspaceRoot == "" {
		status.Status = "degraded"
		status.Components["settings"] = "workspace root unresolved"
	} else {
		status.Components["settings"] = fmt.Sprintf("ok (%d aliases, extensions %v)", len(settings.Alias), settings.StyleExtensions)
	}

	status.Components["import_parser"] = settings.ImportParser
	if settings.ImportParser == config.ImportParserSyntax {
		status.Components["grammars"] = fmt.Sprintf("ok (%d extensions, %d parsers leased)", len(h.service.grammars.SupportedExtensions()), h.leased())
	}
	return status
}

func (h *HealthService) leased() int {
	total := 0
	for _, lang := range []string{parser.LangJavaScript, parser.LangTypeScript, parser.LangTSX} {
		total += h.service.grammars.Leased(lang)
	}
	return total
}
