package tools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lacabrera/cabrera-mcp/internal/calendar"
	"github.com/lacabrera/cabrera-mcp/internal/schedule"
)

// CheckAvailabilityTool handles the check_availability MCP tool.
type CheckAvailabilityTool struct {
	calendar calendar.Calendar
}

// NewCheckAvailabilityTool creates a CheckAvailabilityTool.
func NewCheckAvailabilityTool(cal calendar.Calendar) *CheckAvailabilityTool {
	return &CheckAvailabilityTool{calendar: cal}
}

// Definition returns the MCP tool definition for check_availability.
func (t *CheckAvailabilityTool) Definition() mcp.Tool {
	return mcp.NewTool("check_availability",
		mcp.WithDescription(
			"Check whether a table is available at a date and time. "+
				"When source is \"stub\" no calendar is connected and availability is assumed.",
		),
		mcp.WithString("fecha",
			mcp.Required(),
			mcp.Description("Date in YYYY-MM-DD format"),
		),
		mcp.WithString("hora",
			mcp.Required(),
			mcp.Description("Time in HH:MM 24-hour format"),
		),
	)
}

type availabilityPayload struct {
	calendar.Availability
	Date    string `json:"fecha"`
	Time    string `json:"hora"`
	Message string `json:"message"`
}

type unavailablePayload struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

// Handle processes the check_availability tool call.
func (t *CheckAvailabilityTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date := stringArg(req, "fecha")
	hhmm := stringArg(req, "hora")

	a, err := t.calendar.CheckAvailability(ctx, date, hhmm)
	if errors.Is(err, schedule.ErrMalformedInput) {
		return jsonResult(unavailablePayload{Message: "Could not check availability: " + err.Error()})
	}
	if err != nil {
		res, rerr := jsonResult(unavailablePayload{Message: "Error checking availability: " + err.Error()})
		if rerr != nil {
			return nil, rerr
		}
		res.IsError = true
		return res, nil
	}

	msg := "Availability confirmed"
	if !a.Available {
		msg = "Not available at the requested time"
	}
	return jsonResult(availabilityPayload{Availability: a, Date: date, Time: hhmm, Message: msg})
}
