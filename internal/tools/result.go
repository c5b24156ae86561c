package tools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// jsonResult serializes v as indented JSON into a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("serializing result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// clamp bounds n to [0, max].
func clamp(n, max int) int {
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}

// clampLimit bounds a result-count argument to [1, max], falling back
// to def when the caller passed nothing useful.
func clampLimit(n, def, max int) int {
	if n < 1 {
		n = def
	}
	if n > max {
		return max
	}
	return n
}
