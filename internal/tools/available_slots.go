package tools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lacabrera/cabrera-mcp/internal/calendar"
	"github.com/lacabrera/cabrera-mcp/internal/schedule"
)

// AvailableSlotsTool handles the get_available_slots MCP tool.
type AvailableSlotsTool struct {
	calendar calendar.Calendar
}

// NewAvailableSlotsTool creates an AvailableSlotsTool.
func NewAvailableSlotsTool(cal calendar.Calendar) *AvailableSlotsTool {
	return &AvailableSlotsTool{calendar: cal}
}

// Definition returns the MCP tool definition for get_available_slots.
func (t *AvailableSlotsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_available_slots",
		mcp.WithDescription(
			"List candidate start times on a date with their availability. "+
				"Use it to offer alternatives when the requested time is not available.",
		),
		mcp.WithString("fecha",
			mcp.Required(),
			mcp.Description("Date in YYYY-MM-DD format"),
		),
		mcp.WithNumber("duration_minutes",
			mcp.Description("How long the table is needed, in minutes (default: the configured slot length)"),
		),
	)
}

type slotsPayload struct {
	Success bool            `json:"success"`
	Date    string          `json:"fecha"`
	Blocked bool            `json:"blocked"`
	Slots   []calendar.Slot `json:"slots"`
	Message string          `json:"message"`
}

// Handle processes the get_available_slots tool call.
func (t *AvailableSlotsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date := stringArg(req, "fecha")
	if date == "" {
		return missingArg("fecha")
	}

	minutes, present, err := intArg(req, "duration_minutes")
	if err != nil {
		return rejected(err.Error())
	}
	var duration time.Duration
	if present {
		if minutes <= 0 {
			return rejected("duration_minutes must be positive")
		}
		duration = time.Duration(minutes) * time.Minute
	}

	blocked, err := t.calendar.IsDateBlocked(ctx, date)
	if err != nil {
		return collaboratorFailure("Error checking calendar", err)
	}
	slots, err := t.calendar.AvailableSlots(ctx, date, duration)
	if errors.Is(err, schedule.ErrMalformedInput) {
		return rejected("Could not list slots: " + err.Error())
	}
	if err != nil {
		return collaboratorFailure("Error listing slots", err)
	}

	open := 0
	for _, s := range slots {
		if s.Available {
			open++
		}
	}
	msg := fmt.Sprintf("%d of %d slots available", open, len(slots))
	if blocked {
		msg = "The restaurant does not take reservations on " + date
	}
	return jsonResult(slotsPayload{Success: true, Date: date, Blocked: blocked, Slots: slots, Message: msg})
}
