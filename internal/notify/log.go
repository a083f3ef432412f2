package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ChannelLog is the channel name reported by LogNotifier.
const ChannelLog = "log"

// LogNotifier writes notifications to the structured log. Nobody is
// paged; it's the default when no delivery channel is configured.
type LogNotifier struct {
	log zerolog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("component", "notify").Logger()}
}

// Send implements Notifier.
func (l *LogNotifier) Send(_ context.Context, n Notification) (Delivery, error) {
	l.log.Warn().
		Str("notification_id", n.ID).
		Str("priority", string(n.Priority)).
		Str("subject", n.Subject).
		Interface("customer_data", n.CustomerData).
		Msg(n.Message)
	return Delivery{NotificationID: n.ID, Channel: ChannelLog, SentAt: time.Now().UTC()}, nil
}
