package tools

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lacabrera/cabrera-mcp/internal/menu"
	"github.com/lacabrera/cabrera-mcp/internal/notify"
	"github.com/lacabrera/cabrera-mcp/internal/reservation"
)

// NotifyBridge tells the administration about every confirmed
// reservation. It implements reservation.Observer.
type NotifyBridge struct {
	notifier notify.Notifier
	log      zerolog.Logger
}

// NewNotifyBridge creates a bridge that sends an admin notification per
// confirmed reservation. Returns nil if notifier is nil; callers should
// check before passing it to Service.SetObserver.
func NewNotifyBridge(notifier notify.Notifier, log zerolog.Logger) *NotifyBridge {
	if notifier == nil {
		return nil
	}
	return &NotifyBridge{notifier: notifier, log: log}
}

// OnConfirmed sends a normal-priority notification for rec.
//
// Best-effort: delivery failures are logged but don't propagate, because
// the reservation is already stored.
func (b *NotifyBridge) OnConfirmed(ctx context.Context, rec reservation.Record) {
	menuType := rec.MenuType
	if menuType == "" {
		menuType = menu.FullMenu
	}

	subject := fmt.Sprintf("New reservation %s", rec.ID)
	body := fmt.Sprintf("%s booked a table for %d on %s at %s (%s).",
		rec.Name, rec.PartySize, rec.Date, rec.Time, menuType)
	if rec.Preferences != "" {
		body += "\nPreferences: " + rec.Preferences
	}

	n := notify.New(subject, body, notify.PriorityNormal, map[string]any{
		"reservation_id": rec.ID,
		"name":           rec.Name,
		"phone":          rec.Phone,
		"email":          rec.Email,
	})
	if _, err := b.notifier.Send(ctx, n); err != nil {
		b.log.Warn().Err(err).Str("reservation_id", rec.ID).Msg("notify bridge: send reservation notice")
	}
}
