package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lacabrera/cabrera-mcp/internal/reservation"
)

// CreateReservationTool handles the create_reservation MCP tool.
type CreateReservationTool struct {
	service *reservation.Service
}

// NewCreateReservationTool creates a CreateReservationTool.
func NewCreateReservationTool(service *reservation.Service) *CreateReservationTool {
	return &CreateReservationTool{service: service}
}

// Definition returns the MCP tool definition for create_reservation.
func (t *CreateReservationTool) Definition() mcp.Tool {
	return mcp.NewTool("create_reservation",
		mcp.WithDescription(
			"Create a reservation after checking required fields and menu eligibility. "+
				"Collect every required field before calling. "+
				"For the executive menu, ask whether the customer is an Argentine resident first. "+
				"A rejection lists the offending fields or the menu rule and its alternatives.",
		),
		mcp.WithString("nombre",
			mcp.Required(),
			mcp.Description("Customer full name"),
		),
		mcp.WithString("telefono",
			mcp.Required(),
			mcp.Description("Customer WhatsApp phone number"),
		),
		mcp.WithString("email",
			mcp.Required(),
			mcp.Description("Customer email"),
		),
		mcp.WithNumber("personas",
			mcp.Required(),
			mcp.Description("Party size, 1 to 20"),
		),
		mcp.WithString("fecha",
			mcp.Required(),
			mcp.Description("Date in YYYY-MM-DD format"),
		),
		mcp.WithString("hora",
			mcp.Required(),
			mcp.Description("Time in HH:MM 24-hour format"),
		),
		mcp.WithString("tipo_menu",
			mcp.Description("Menu: ejecutivo, manso or carta (default: full menu)"),
		),
		mcp.WithString("preferencias",
			mcp.Description("Seating preferences, allergies or occasion"),
		),
		mcp.WithBoolean("residente_argentino",
			mcp.Description("Whether the customer is an Argentine resident. Required for the executive menu."),
		),
	)
}

// Handle processes the create_reservation tool call.
func (t *CreateReservationTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r := reservation.Request{
		Name:        stringArg(req, "nombre"),
		Phone:       stringArg(req, "telefono"),
		Email:       stringArg(req, "email"),
		Date:        stringArg(req, "fecha"),
		Time:        stringArg(req, "hora"),
		MenuType:    stringArg(req, "tipo_menu"),
		Preferences: stringArg(req, "preferencias"),
	}

	var argErrs []string
	n, _, err := intArg(req, "personas")
	if err != nil {
		argErrs = append(argErrs, "personas")
	}
	r.PartySize = n

	r.Resident, err = optionalBool(req, "residente_argentino")
	if err != nil {
		argErrs = append(argErrs, "residente_argentino")
	}

	if len(argErrs) > 0 {
		return jsonResult(reservation.DecodeFailure(r, argErrs))
	}

	out := t.service.Create(ctx, r)
	res, err := jsonResult(out)
	if err != nil {
		return nil, err
	}
	res.IsError = out.ErrorKind == reservation.KindCollaborator
	return res, nil
}
