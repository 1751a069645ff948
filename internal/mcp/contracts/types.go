package contracts

import "cssmodules/internal/core/ports"

const (
	ServerName      = "cssmodules"
	ContractVersion = "v1"

	ToolNameCompletion = "css_completion"
	ToolNameDefinition = "css_definition"
)

// PositionInput addresses a cursor in a source document. Line and Character
// are zero based; Character counts runes. When Text is set it replaces the
// on-disk content of Path.
type PositionInput struct {
	Path      string  `json:"path"`
	Line      int     `json:"line"`
	Character int     `json:"character"`
	Text      *string `json:"text,omitempty"`
}

type CompletionOutput struct {
	Items []ports.CompletionItem `json:"items"`
}

type DefinitionOutput struct {
	Location *ports.Location `json:"location"`
}

type ToolError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e ToolError) Error() string {
	return e.Message
}

const (
	ErrorInvalidArgument = "invalid_argument"
	ErrorNotFound        = "not_found"
	ErrorInternal        = "internal"
	ErrorUnavailable     = "unavailable"
)
