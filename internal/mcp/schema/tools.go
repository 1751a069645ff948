package schema

import "cssmodules/internal/mcp/contracts"

type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	InputSchema map[string]any `json:"input_schema"`
	Version     string         `json:"version"`
}

func positionSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"path": map[string]any{
				"type":        "string",
				"description": "Source document path, absolute or relative to the server's working directory.",
			},
			"line": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"description": "Zero-based line of the cursor.",
			},
			"character": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"description": "Zero-based column of the cursor, in characters.",
			},
			"text": map[string]any{
				"type":        "string",
				"description": "Unsaved document content; the file at path is read when omitted.",
			},
		},
		"required": []string{"path", "line", "character"},
	}
}

func BuildToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        contracts.ToolNameCompletion,
			Description: "List the class names of the stylesheet imported by the identifier before the '.' at the cursor, as camelCase properties.",
			Version:     contracts.ContractVersion,
			InputSchema: positionSchema(),
		},
		{
			Name:        contracts.ToolNameDefinition,
			Description: "Locate the stylesheet selector declaring the class property under the cursor.",
			Version:     contracts.ContractVersion,
			InputSchema: positionSchema(),
		},
	}
}
