package prompts

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lacabrera/cabrera-mcp/internal/menu"
)

// IntakePrompt handles the reservation-intake MCP prompt: the checklist
// of fields to collect before calling create_reservation.
type IntakePrompt struct{}

// NewIntakePrompt creates an IntakePrompt.
func NewIntakePrompt() *IntakePrompt {
	return &IntakePrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *IntakePrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("reservation-intake",
		mcp.WithPromptDescription("Checklist of the details to collect before creating a reservation."),
		mcp.WithArgument("menu_type",
			mcp.ArgumentDescription("Menu the customer asked for: ejecutivo, manso or carta"),
		),
	)
}

// Handle processes the reservation-intake prompt request.
func (p *IntakePrompt) Handle(_ context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	var b strings.Builder
	b.WriteString("Collect these details, one or two at a time, before calling `create_reservation`:\n\n")
	b.WriteString("- nombre: full name\n")
	b.WriteString("- telefono: WhatsApp number\n")
	b.WriteString("- email\n")
	b.WriteString("- personas: party size (1 to 20; larger groups go to `escalate_to_human`)\n")
	b.WriteString("- fecha: date as YYYY-MM-DD\n")
	b.WriteString("- hora: time as HH:MM\n")
	b.WriteString("- tipo_menu (optional): ejecutivo, manso or carta\n")
	b.WriteString("- preferencias (optional): seating, allergies, occasion\n")

	switch menu.Classify(req.Params.Arguments["menu_type"]) {
	case menu.KindExecutive:
		b.WriteString("\nThe customer wants the executive menu: ask whether they are an Argentine resident " +
			"and pass `residente_argentino`. Without it the reservation is rejected.\n")
	case menu.KindManso:
		b.WriteString("\nThe customer wants the manso menu: it is only served Monday to Thursday. " +
			"Run `validate_manso_menu` as soon as you know the date and time.\n")
	}

	return &mcp.GetPromptResult{
		Description: "Reservation intake checklist",
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(b.String()),
			},
		},
	}, nil
}
