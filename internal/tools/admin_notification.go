package tools

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lacabrera/cabrera-mcp/internal/notify"
)

// AdminNotificationTool handles the send_admin_notification MCP tool.
type AdminNotificationTool struct {
	notifier notify.Notifier
}

// NewAdminNotificationTool creates an AdminNotificationTool.
func NewAdminNotificationTool(notifier notify.Notifier) *AdminNotificationTool {
	return &AdminNotificationTool{notifier: notifier}
}

// Definition returns the MCP tool definition for send_admin_notification.
func (t *AdminNotificationTool) Definition() mcp.Tool {
	return mcp.NewTool("send_admin_notification",
		mcp.WithDescription("Send a notification to the restaurant administration."),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("Notification subject"),
		),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Detailed message"),
		),
		mcp.WithString("priority",
			mcp.Description("Priority level"),
			mcp.Enum(notify.Priorities...),
			mcp.DefaultString(string(notify.PriorityNormal)),
		),
		mcp.WithObject("customer_data",
			mcp.Description("Additional customer data (name, phone, email, ...)"),
		),
	)
}

type notificationPayload struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	NotificationID string `json:"notification_id"`
	Channel        string `json:"channel"`
	SentAt         string `json:"sent_at"`
}

// Handle processes the send_admin_notification tool call.
func (t *AdminNotificationTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if k := firstMissing(req, "subject", "message"); k != "" {
		return missingArg(k)
	}

	priority, err := notify.ParsePriority(stringArg(req, "priority"))
	if err != nil {
		return rejected(err.Error())
	}
	data, err := mapArg(req, "customer_data")
	if err != nil {
		return rejected(err.Error())
	}

	n := notify.New(stringArg(req, "subject"), stringArg(req, "message"), priority, data)
	d, err := t.notifier.Send(ctx, n)
	if err != nil {
		return collaboratorFailure("Error sending notification", err)
	}
	return jsonResult(notificationPayload{
		Success:        true,
		Message:        "Notification sent to the administration",
		NotificationID: d.NotificationID,
		Channel:        d.Channel,
		SentAt:         d.SentAt.Format(time.RFC3339),
	})
}
