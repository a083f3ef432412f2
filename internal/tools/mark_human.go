package tools

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lacabrera/cabrera-mcp/internal/escalation"
)

// MarkHumanTool handles the mark_as_human_required MCP tool.
type MarkHumanTool struct {
	store escalation.HandoffStore
}

// NewMarkHumanTool creates a MarkHumanTool.
func NewMarkHumanTool(store escalation.HandoffStore) *MarkHumanTool {
	return &MarkHumanTool{store: store}
}

// Definition returns the MCP tool definition for mark_as_human_required.
func (t *MarkHumanTool) Definition() mcp.Tool {
	return mcp.NewTool("mark_as_human_required",
		mcp.WithDescription(
			"Flag a conversation so a staff member takes it over. "+
				"Marking the same conversation again updates the reason.",
		),
		mcp.WithString("conversation_id",
			mcp.Required(),
			mcp.Description("Conversation identifier from the messaging channel"),
		),
		mcp.WithString("reason",
			mcp.Required(),
			mcp.Description("Why a human is needed"),
		),
	)
}

type handoffPayload struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id"`
	MarkedForHuman bool   `json:"marked_for_human"`
	Reason         string `json:"reason"`
	Timestamp      string `json:"timestamp"`
}

// Handle processes the mark_as_human_required tool call.
func (t *MarkHumanTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if k := firstMissing(req, "conversation_id", "reason"); k != "" {
		return missingArg(k)
	}

	h, err := t.store.MarkHumanRequired(ctx, stringArg(req, "conversation_id"), stringArg(req, "reason"))
	if err != nil {
		return collaboratorFailure("Error marking conversation", err)
	}
	return jsonResult(handoffPayload{
		Success:        true,
		Message:        "Conversation marked for human attention",
		ConversationID: h.ConversationID,
		MarkedForHuman: true,
		Reason:         h.Reason,
		Timestamp:      h.MarkedAt.Format(time.RFC3339),
	})
}
