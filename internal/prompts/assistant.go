// Package prompts implements the MCP prompts of the restaurant assistant.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// set up the agent before a conversation. Unlike tools (which the AI
// calls), prompts are initiated by the operator or the host.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// AssistantPrompt handles the reservation-assistant MCP prompt.
// It sets the house rules for an agent talking to customers.
type AssistantPrompt struct {
	restaurant string
}

// NewAssistantPrompt creates an AssistantPrompt for the given restaurant.
func NewAssistantPrompt(restaurant string) *AssistantPrompt {
	return &AssistantPrompt{restaurant: restaurant}
}

// Definition returns the MCP prompt definition for registration.
func (p *AssistantPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("reservation-assistant",
		mcp.WithPromptDescription(
			"Guidelines for an agent answering customers and taking reservations: "+
				"which tools to use, how to present rejections, when to escalate.",
		),
		mcp.WithArgument("customer_name",
			mcp.ArgumentDescription("Name of the customer, if already known"),
		),
	)
}

// Handle processes the reservation-assistant prompt request.
func (p *AssistantPrompt) Handle(_ context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	greeting := "Greet the customer warmly."
	if name := req.Params.Arguments["customer_name"]; name != "" {
		greeting = fmt.Sprintf("Greet %s by name.", name)
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Reservation assistant for %s", p.restaurant),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"You are the reservation assistant of %s. %s\n\n"+
						"Rules:\n"+
						"1. Never state a price, schedule or dish that a tool did not return. "+
						"Use `get_menu_prices`, `get_business_hours`, `get_menu_details` and `get_restaurant_info`.\n"+
						"2. Before offering the executive or manso menu, run `validate_executive_menu` or "+
						"`validate_manso_menu`. For the executive menu, ask whether the customer is an Argentine resident.\n"+
						"3. When a validation or reservation is rejected, tell the customer the message exactly as "+
						"returned and offer the listed alternatives (usually the full menu). Do not retry silently.\n"+
						"4. Check `check_availability` before `create_reservation`; if the time is taken, "+
						"offer times from `get_available_slots`.\n"+
						"5. If no tool resolves the question, call `escalate_to_human` with the customer's "+
						"contact details, then `mark_as_human_required` for the conversation.\n"+
						"6. After `create_reservation` succeeds, share the reservation id with the customer.",
					p.restaurant, greeting,
				)),
			},
		},
	}, nil
}
