package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"cssmodules/internal/mcp/contracts"
)

const (
	maxPathLength = 4096
	maxTextBytes  = 8 << 20
	maxLineValue  = 1 << 24
)

// ParseToolArgs checks the tool name and decodes its position arguments.
func ParseToolArgs(tool string, raw map[string]any) (contracts.PositionInput, error) {
	if strings.TrimSpace(tool) == "" {
		return contracts.PositionInput{}, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: "tool name is required"}
	}
	switch tool {
	case contracts.ToolNameCompletion, contracts.ToolNameDefinition:
	default:
		return contracts.PositionInput{}, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: fmt.Sprintf("unsupported tool: %s", tool)}
	}
	if raw == nil {
		raw = map[string]any{}
	}

	var input contracts.PositionInput
	if err := decodeParams(raw, &input); err != nil {
		return contracts.PositionInput{}, err
	}

	input.Path = strings.TrimSpace(input.Path)
	if input.Path == "" {
		return contracts.PositionInput{}, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: "path is required"}
	}
	if len(input.Path) > maxPathLength {
		return contracts.PositionInput{}, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: "path is too long"}
	}
	if input.Line < 0 || input.Line > maxLineValue {
		return contracts.PositionInput{}, invalidRangeError("line")
	}
	if input.Character < 0 || input.Character > maxLineValue {
		return contracts.PositionInput{}, invalidRangeError("character")
	}
	if input.Text != nil && len(*input.Text) > maxTextBytes {
		return contracts.PositionInput{}, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: "text exceeds size limit"}
	}
	return input, nil
}

func decodeParams(params map[string]any, out any) error {
	data, err := json.Marshal(params)
	if err != nil {
		return contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: "invalid params encoding"}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: "invalid params", Details: map[string]any{"error": err.Error()}}
	}
	return nil
}

func invalidRangeError(field string) error {
	return contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: fmt.Sprintf("%s is out of range", field)}
}
