package tools

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lacabrera/cabrera-mcp/internal/escalation"
	"github.com/lacabrera/cabrera-mcp/internal/notify"
)

// EscalateTool handles the escalate_to_human MCP tool. The formatted
// block is returned to the agent and delivered to the admin channel.
type EscalateTool struct {
	formatter escalation.Formatter
	notifier  notify.Notifier
	now       func() time.Time
}

// NewEscalateTool creates an EscalateTool.
func NewEscalateTool(formatter escalation.Formatter, notifier notify.Notifier) *EscalateTool {
	return &EscalateTool{formatter: formatter, notifier: notifier, now: time.Now}
}

// Definition returns the MCP tool definition for escalate_to_human.
func (t *EscalateTool) Definition() mcp.Tool {
	return mcp.NewTool("escalate_to_human",
		mcp.WithDescription(
			"Hand an unresolved customer query to the staff. "+
				"Use it when no other tool answers the question. "+
				"Include whatever contact details the customer has given.",
		),
		mcp.WithString("customer_query",
			mcp.Required(),
			mcp.Description("The customer's question, as asked"),
		),
		mcp.WithString("name",
			mcp.Description("Customer name"),
		),
		mcp.WithString("phone",
			mcp.Description("Customer WhatsApp number"),
		),
		mcp.WithString("email",
			mcp.Description("Customer email"),
		),
	)
}

type escalationPayload struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	AdminMessage   string `json:"admin_message"`
	Timestamp      string `json:"timestamp"`
	NotificationID string `json:"notification_id"`
}

// Handle processes the escalate_to_human tool call.
func (t *EscalateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := stringArg(req, "customer_query")
	if query == "" {
		return missingArg("customer_query")
	}

	customer := escalation.Customer{
		Name:  stringArg(req, "name"),
		Phone: stringArg(req, "phone"),
		Email: stringArg(req, "email"),
	}
	msg := t.formatter.Format(query, customer, t.now())

	n := notify.New(msg.Subject, msg.Body, notify.PriorityHigh, customerData(customer))
	d, err := t.notifier.Send(ctx, n)
	if err != nil {
		return collaboratorFailure("Error escalating query", err)
	}

	return jsonResult(escalationPayload{
		Success:        true,
		Message:        "Query escalated to the administration",
		AdminMessage:   msg.Body,
		Timestamp:      msg.Timestamp,
		NotificationID: d.NotificationID,
	})
}

func customerData(c escalation.Customer) map[string]any {
	data := map[string]any{}
	if c.Name != "" {
		data["name"] = c.Name
	}
	if c.Phone != "" {
		data["phone"] = c.Phone
	}
	if c.Email != "" {
		data["email"] = c.Email
	}
	return data
}
