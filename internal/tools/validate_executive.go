package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lacabrera/cabrera-mcp/internal/menu"
)

// ValidateExecutiveTool handles the validate_executive_menu MCP tool.
type ValidateExecutiveTool struct {
	engine *menu.Engine
}

// NewValidateExecutiveTool creates a ValidateExecutiveTool.
func NewValidateExecutiveTool(engine *menu.Engine) *ValidateExecutiveTool {
	return &ValidateExecutiveTool{engine: engine}
}

// Definition returns the MCP tool definition for validate_executive_menu.
func (t *ValidateExecutiveTool) Definition() mcp.Tool {
	return mcp.NewTool("validate_executive_menu",
		mcp.WithDescription(
			"Check whether the executive menu can be served at a date and time. "+
				"Monday to Friday, 12:30 to 16:30, Argentine residents only. "+
				"Present a rejection to the customer exactly as returned, with its alternatives.",
		),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date in YYYY-MM-DD format"),
		),
		mcp.WithString("time",
			mcp.Required(),
			mcp.Description("Time in HH:MM 24-hour format"),
		),
		mcp.WithBoolean("residente_argentino",
			mcp.Description("Whether the customer is an Argentine resident (default: false)"),
			mcp.DefaultBool(false),
		),
	)
}

// Handle processes the validate_executive_menu tool call.
func (t *ValidateExecutiveTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resident, err := optionalBool(req, "residente_argentino")
	if err != nil {
		return jsonResult(menu.Malformed(err))
	}
	isResident := resident != nil && *resident

	return jsonResult(t.engine.Executive(stringArg(req, "date"), stringArg(req, "time"), isResident))
}
