// Package tools implements the MCP tool handlers of the restaurant assistant.
//
// Each tool follows the same shape:
// - A struct with its collaborators injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a JSON text result
//
// Every result carries a success (or valid/available) flag and a message.
// Business rejections and malformed arguments are ordinary results;
// collaborator failures additionally set the MCP isError flag. A Go error
// is only returned for programming faults such as an unmarshalable payload.
package tools

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cast"
)

// status is the minimal payload shared by every tool.
type status struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// jsonResult renders v as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal tool result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// rejected is an unsuccessful result the agent should relay as-is.
func rejected(message string) (*mcp.CallToolResult, error) {
	return jsonResult(status{Message: message})
}

// collaboratorFailure reports an error from a store, calendar, catalog
// or notifier. The payload stays structured; isError is set on top.
func collaboratorFailure(prefix string, err error) (*mcp.CallToolResult, error) {
	res, rerr := jsonResult(status{Message: fmt.Sprintf("%s: %v", prefix, err)})
	if rerr != nil {
		return nil, rerr
	}
	res.IsError = true
	return res, nil
}

// stringArg returns a trimmed string argument.
func stringArg(req mcp.CallToolRequest, key string) string {
	return strings.TrimSpace(req.GetString(key, ""))
}

// intArg extracts an integer argument. JSON numbers arrive as float64 and
// some agents send numbers as strings; both are accepted. present is false
// when the key is absent or null.
func intArg(req mcp.CallToolRequest, key string) (n int, present bool, err error) {
	v, ok := req.GetArguments()[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
		return 0, false, nil
	}
	// cast would truncate a fractional float; reject it instead.
	if f, isFloat := v.(float64); isFloat && f != math.Trunc(f) {
		return 0, true, fmt.Errorf("%s must be an integer", key)
	}
	n, err = cast.ToIntE(v)
	if err != nil {
		return 0, true, fmt.Errorf("%s must be an integer", key)
	}
	return n, true, nil
}

// optionalBool extracts a tri-state boolean: nil when the key is absent
// or null.
func optionalBool(req mcp.CallToolRequest, key string) (*bool, error) {
	v, ok := req.GetArguments()[key]
	if !ok || v == nil {
		return nil, nil
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return nil, fmt.Errorf("%s must be true or false", key)
	}
	return &b, nil
}

// mapArg extracts an optional JSON object argument.
func mapArg(req mcp.CallToolRequest, key string) (map[string]any, error) {
	v, ok := req.GetArguments()[key]
	if !ok || v == nil {
		return nil, nil
	}
	m, err := cast.ToStringMapE(v)
	if err != nil {
		return nil, fmt.Errorf("%s must be an object", key)
	}
	return m, nil
}

// firstMissing returns the first argument in keys that is empty, or "".
func firstMissing(req mcp.CallToolRequest, keys ...string) string {
	for _, k := range keys {
		if stringArg(req, k) == "" {
			return k
		}
	}
	return ""
}

func missingArg(key string) (*mcp.CallToolResult, error) {
	return rejected(fmt.Sprintf("'%s' is required", key))
}
