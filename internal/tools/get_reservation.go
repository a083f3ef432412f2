package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lacabrera/cabrera-mcp/internal/reservation"
)

// GetReservationTool handles the get_reservation MCP tool.
type GetReservationTool struct {
	repo reservation.Repository
}

// NewGetReservationTool creates a GetReservationTool.
func NewGetReservationTool(repo reservation.Repository) *GetReservationTool {
	return &GetReservationTool{repo: repo}
}

// Definition returns the MCP tool definition for get_reservation.
func (t *GetReservationTool) Definition() mcp.Tool {
	return mcp.NewTool("get_reservation",
		mcp.WithDescription("Look up a confirmed reservation by its id (RES-...)."),
		mcp.WithString("reservation_id",
			mcp.Required(),
			mcp.Description("Reservation id returned by create_reservation"),
		),
	)
}

type reservationPayload struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message"`
	Reservation *reservation.Record `json:"reservation"`
}

// Handle processes the get_reservation tool call.
func (t *GetReservationTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := stringArg(req, "reservation_id")
	if id == "" {
		return missingArg("reservation_id")
	}

	rec, err := t.repo.GetReservation(ctx, id)
	if errors.Is(err, reservation.ErrNotFound) {
		return rejected(fmt.Sprintf("Reservation %s not found", id))
	}
	if err != nil {
		return collaboratorFailure("Error fetching reservation", err)
	}
	return jsonResult(reservationPayload{Success: true, Message: "Reservation found", Reservation: rec})
}
