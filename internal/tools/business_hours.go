package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lacabrera/cabrera-mcp/internal/catalog"
)

// BusinessHoursTool handles the get_business_hours MCP tool.
type BusinessHoursTool struct {
	source catalog.Source
}

// NewBusinessHoursTool creates a BusinessHoursTool.
func NewBusinessHoursTool(source catalog.Source) *BusinessHoursTool {
	return &BusinessHoursTool{source: source}
}

// Definition returns the MCP tool definition for get_business_hours.
func (t *BusinessHoursTool) Definition() mcp.Tool {
	return mcp.NewTool("get_business_hours",
		mcp.WithDescription("Get the current opening hours, by day."),
	)
}

type hoursPayload struct {
	Success bool              `json:"success"`
	Hours   map[string]string `json:"hours"`
	Message string            `json:"message"`
}

// Handle processes the get_business_hours tool call.
func (t *BusinessHoursTool) Handle(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	hours, err := t.source.BusinessHours(ctx)
	if err != nil {
		return collaboratorFailure("Error fetching business hours", err)
	}
	if len(hours) == 0 {
		return rejected(infoUnavailable)
	}
	return jsonResult(hoursPayload{Success: true, Hours: hours, Message: "Business hours"})
}
