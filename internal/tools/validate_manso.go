package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lacabrera/cabrera-mcp/internal/menu"
)

// ValidateMansoTool handles the validate_manso_menu MCP tool.
type ValidateMansoTool struct {
	engine *menu.Engine
}

// NewValidateMansoTool creates a ValidateMansoTool.
func NewValidateMansoTool(engine *menu.Engine) *ValidateMansoTool {
	return &ValidateMansoTool{engine: engine}
}

// Definition returns the MCP tool definition for validate_manso_menu.
func (t *ValidateMansoTool) Definition() mcp.Tool {
	return mcp.NewTool("validate_manso_menu",
		mcp.WithDescription(
			"Check whether the manso menu can be served at a date and time. "+
				"Monday to Thursday only, 12:30 to 16:30 and 20:00 to 23:30. "+
				"Friday to Sunday it is never available, whatever the time.",
		),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date in YYYY-MM-DD format"),
		),
		mcp.WithString("time",
			mcp.Required(),
			mcp.Description("Time in HH:MM 24-hour format"),
		),
	)
}

// Handle processes the validate_manso_menu tool call.
func (t *ValidateMansoTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(t.engine.Manso(stringArg(req, "date"), stringArg(req, "time")))
}
