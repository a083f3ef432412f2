// Package notify delivers administrative notifications to restaurant staff.
//
// The channel is chosen at composition time: LogNotifier writes to the
// process log only, WebhookNotifier posts to an n8n workflow, and
// SMTPNotifier emails the admin address.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Priority of a notification.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities lists every accepted priority, lowest first.
var Priorities = []string{string(PriorityLow), string(PriorityNormal), string(PriorityHigh), string(PriorityUrgent)}

// ParsePriority validates s. The empty string means normal.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PriorityNormal, nil
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return p, nil
	default:
		return "", fmt.Errorf("unknown priority %q: must be one of %s", s, strings.Join(Priorities, ", "))
	}
}

// Notification is one message for the admin team.
type Notification struct {
	ID           string         `json:"id"`
	Subject      string         `json:"subject"`
	Message      string         `json:"message"`
	Priority     Priority       `json:"priority"`
	CustomerData map[string]any `json:"customer_data"`
	CreatedAt    time.Time      `json:"timestamp"`
}

// New builds a Notification with a fresh id and timestamp.
func New(subject, message string, priority Priority, customer map[string]any) Notification {
	if customer == nil {
		customer = map[string]any{}
	}
	return Notification{
		ID:           "NOTIF-" + uuid.NewString(),
		Subject:      subject,
		Message:      message,
		Priority:     priority,
		CustomerData: customer,
		CreatedAt:    time.Now().UTC(),
	}
}

// Delivery confirms a notification left this process.
type Delivery struct {
	NotificationID string    `json:"notification_id"`
	Channel        string    `json:"channel"`
	SentAt         time.Time `json:"sent_at"`
}

// Notifier sends notifications. Implementations make one attempt and
// report failure; retry policy belongs to the caller.
type Notifier interface {
	Send(ctx context.Context, n Notification) (Delivery, error)
}
