// Package resources implements the MCP resources of the restaurant
// assistant.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lacabrera/cabrera-mcp/internal/menu"
	"github.com/lacabrera/cabrera-mcp/internal/reservation"
)

// URIs served by Handler.
const (
	MenuRulesURI       = "restaurant://menu-rules"
	reservationScheme  = "reservations://"
	ReservationPattern = reservationScheme + "{id}"
)

// Handler serves the menu rules and stored reservations.
type Handler struct {
	rules menu.Rules
	repo  reservation.Repository
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(rules menu.Rules, repo reservation.Repository) *Handler {
	return &Handler{rules: rules, repo: repo}
}

// MenuRulesResource returns the MCP resource definition for the menu rules.
func (h *Handler) MenuRulesResource() mcp.Resource {
	return mcp.NewResource(
		MenuRulesURI,
		"Menu Rules",
		mcp.WithResourceDescription("Days, hours and requirements of the executive and manso menus"),
		mcp.WithMIMEType("application/json"),
	)
}

type menuRulesDoc struct {
	Executive   menuRule `json:"executive"`
	Manso       menuRule `json:"manso"`
	Alternative string   `json:"alternative"`
	Summary     string   `json:"summary"`
}

type menuRule struct {
	Days             string   `json:"days"`
	Windows          []string `json:"windows"`
	RequiresResident bool     `json:"requires_resident"`
}

// HandleMenuRules returns the rule table as JSON.
func (h *Handler) HandleMenuRules(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	manso := make([]string, 0, len(h.rules.MansoWindows))
	for _, w := range h.rules.MansoWindows {
		manso = append(manso, w.String())
	}
	doc := menuRulesDoc{
		Executive: menuRule{
			Days:             h.rules.ExecutiveDays.String(),
			Windows:          []string{h.rules.ExecutiveWindow.String()},
			RequiresResident: true,
		},
		Manso: menuRule{
			Days:    h.rules.MansoDays.String(),
			Windows: manso,
		},
		Alternative: menu.FullMenu,
		Summary:     h.rules.Describe(),
	}
	return jsonContents(req.Params.URI, doc)
}

// ReservationTemplate returns the MCP resource template for stored
// reservations.
func (h *Handler) ReservationTemplate() mcp.ResourceTemplate {
	return mcp.NewResourceTemplate(
		ReservationPattern,
		"Reservation",
		mcp.WithTemplateDescription("A confirmed reservation by id"),
		mcp.WithTemplateMIMEType("application/json"),
	)
}

// HandleReservation returns one stored reservation as JSON.
func (h *Handler) HandleReservation(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	id := strings.TrimPrefix(uri, reservationScheme)
	if id == "" || id == uri {
		return errorResource(uri, "expected "+ReservationPattern), nil
	}

	rec, err := h.repo.GetReservation(ctx, id)
	if errors.Is(err, reservation.ErrNotFound) {
		return errorResource(uri, fmt.Sprintf("reservation %s not found", id)), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading reservation %s: %w", id, err)
	}
	return jsonContents(uri, rec)
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
