package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lacabrera/cabrera-mcp/internal/catalog"
)

// MenuPricesTool handles the get_menu_prices MCP tool. Prices always come
// from the catalog; a missing price is reported, never guessed.
type MenuPricesTool struct {
	source catalog.Source
}

// NewMenuPricesTool creates a MenuPricesTool.
func NewMenuPricesTool(source catalog.Source) *MenuPricesTool {
	return &MenuPricesTool{source: source}
}

// Definition returns the MCP tool definition for get_menu_prices.
func (t *MenuPricesTool) Definition() mcp.Tool {
	return mcp.NewTool("get_menu_prices",
		mcp.WithDescription(
			"Get the current price and conditions of a menu. "+
				"NEVER quote a price that this tool did not return.",
		),
		mcp.WithString("menu_type",
			mcp.Required(),
			mcp.Description("Menu type: ejecutivo, manso or carta"),
		),
	)
}

type pricePayload struct {
	Success  bool   `json:"success"`
	MenuType string `json:"menu_type"`
	catalog.MenuPrice
	Message string `json:"message"`
}

// Handle processes the get_menu_prices tool call.
func (t *MenuPricesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	menuType := stringArg(req, "menu_type")
	if menuType == "" {
		return missingArg("menu_type")
	}

	key, price, ok, err := catalog.PriceFor(ctx, t.source, menuType)
	if err != nil {
		return collaboratorFailure("Error fetching prices", err)
	}
	if !ok {
		return rejected(fmt.Sprintf("Price not found for %s. Please check with the administration.", menuType))
	}

	msg := "Price found"
	if price.Price == nil {
		msg = "Price not published. Please check with the administration."
	}
	return jsonResult(pricePayload{Success: true, MenuType: key, MenuPrice: price, Message: msg})
}
