package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lacabrera/cabrera-mcp/internal/catalog"
)

// infoUnavailable is returned when the catalog has neither the requested
// category nor a general entry.
const infoUnavailable = "Information not available. Please check with the administration."

// RestaurantInfoTool handles the get_restaurant_info MCP tool.
type RestaurantInfoTool struct {
	source catalog.Source
}

// NewRestaurantInfoTool creates a RestaurantInfoTool.
func NewRestaurantInfoTool(source catalog.Source) *RestaurantInfoTool {
	return &RestaurantInfoTool{source: source}
}

// Definition returns the MCP tool definition for get_restaurant_info.
func (t *RestaurantInfoTool) Definition() mcp.Tool {
	return mcp.NewTool("get_restaurant_info",
		mcp.WithDescription(
			"Get current restaurant information from the catalog. "+
				"Falls back to the general description when the category is unknown.",
		),
		mcp.WithString("category",
			mcp.Description("Information category: general, ubicacion, telefono, horarios"),
			mcp.DefaultString(catalog.GeneralCategory),
		),
	)
}

type infoPayload struct {
	Success  bool   `json:"success"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Handle processes the get_restaurant_info tool call.
func (t *RestaurantInfoTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := stringArg(req, "category")
	if category == "" {
		category = catalog.GeneralCategory
	}

	text, ok, err := catalog.InfoFor(ctx, t.source, category)
	if err != nil {
		return collaboratorFailure("Error fetching information", err)
	}
	if !ok {
		return rejected(infoUnavailable)
	}
	return jsonResult(infoPayload{Success: true, Category: category, Message: text})
}
