package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lacabrera/cabrera-mcp/internal/catalog"
)

// MenuDetailsTool handles the get_menu_details MCP tool.
type MenuDetailsTool struct {
	source catalog.Source
}

// NewMenuDetailsTool creates a MenuDetailsTool.
func NewMenuDetailsTool(source catalog.Source) *MenuDetailsTool {
	return &MenuDetailsTool{source: source}
}

// Definition returns the MCP tool definition for get_menu_details.
func (t *MenuDetailsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_menu_details",
		mcp.WithDescription(
			"Get the dishes of the full menu, or of one section. "+
				"An unknown section returns the whole menu.",
		),
		mcp.WithString("menu_section",
			mcp.Description("Menu section: entradas, principales, postres, bebidas"),
		),
	)
}

type menuPayload struct {
	Success bool                          `json:"success"`
	Menu    map[string][]catalog.MenuItem `json:"menu"`
	Message string                        `json:"message"`
}

// Handle processes the get_menu_details tool call.
func (t *MenuDetailsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	section := stringArg(req, "menu_section")

	menu, err := catalog.Sections(ctx, t.source, section)
	if err != nil {
		return collaboratorFailure("Error fetching menu details", err)
	}

	msg := "Full menu"
	if _, ok := menu[section]; ok && section != "" {
		msg = "Menu section " + section
	}
	return jsonResult(menuPayload{Success: true, Menu: menu, Message: msg})
}
