package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ChannelSMTP is the channel name reported by SMTPNotifier.
const ChannelSMTP = "smtp"

// SMTPConfig holds the mail relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string
}

// SMTPNotifier emails notifications to a single admin address.
type SMTPNotifier struct {
	cfg      SMTPConfig
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPNotifier creates an SMTPNotifier. From defaults to User.
func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	return &SMTPNotifier{cfg: cfg, sendMail: smtp.SendMail}
}

// Send implements Notifier. net/smtp has no context support, so ctx is
// only checked before dialing.
func (s *SMTPNotifier) Send(ctx context.Context, n Notification) (Delivery, error) {
	if err := ctx.Err(); err != nil {
		return Delivery{}, err
	}

	var auth smtp.Auth
	if s.cfg.User != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	}
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	if err := s.sendMail(addr, auth, s.cfg.From, []string{s.cfg.To}, buildMessage(s.cfg.From, s.cfg.To, n)); err != nil {
		return Delivery{}, fmt.Errorf("notify: send mail via %s: %w", addr, err)
	}
	return Delivery{NotificationID: n.ID, Channel: ChannelSMTP, SentAt: time.Now().UTC()}, nil
}

func buildMessage(from, to string, n Notification) []byte {
	subject := n.Subject
	if n.Priority == PriorityHigh || n.Priority == PriorityUrgent {
		subject = "[" + strings.ToUpper(string(n.Priority)) + "] " + subject
	}

	var sb strings.Builder
	sb.WriteString("From: " + from + "\r\n")
	sb.WriteString("To: " + to + "\r\n")
	sb.WriteString("Subject: " + subject + "\r\n")
	sb.WriteString("Date: " + n.CreatedAt.Format(time.RFC1123Z) + "\r\n")
	sb.WriteString("X-Notification-ID: " + n.ID + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	sb.WriteString(strings.ReplaceAll(n.Message, "\n", "\r\n"))
	sb.WriteString("\r\n")

	if len(n.CustomerData) > 0 {
		keys := make([]string, 0, len(n.CustomerData))
		for k := range n.CustomerData {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString("\r\nCustomer data:\r\n")
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("  %s: %v\r\n", k, n.CustomerData[k]))
		}
	}
	return []byte(sb.String())
}
