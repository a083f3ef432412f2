package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ChannelWebhook is the channel name reported by WebhookNotifier.
const ChannelWebhook = "webhook"

// WebhookNotifier posts notifications as JSON to an n8n webhook.
type WebhookNotifier struct {
	url    string
	apiKey string
	client *http.Client
}

// NewWebhookNotifier creates a WebhookNotifier. apiKey is sent as
// X-N8N-API-KEY when non-empty.
func NewWebhookNotifier(url, apiKey string, client *http.Client) *WebhookNotifier {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &WebhookNotifier{url: url, apiKey: apiKey, client: client}
}

// Send implements Notifier.
func (w *WebhookNotifier) Send(ctx context.Context, n Notification) (Delivery, error) {
	body, err := json.Marshal(n)
	if err != nil {
		return Delivery{}, fmt.Errorf("notify: encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return Delivery{}, fmt.Errorf("notify: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if w.apiKey != "" {
		req.Header.Set("X-N8N-API-KEY", w.apiKey)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return Delivery{}, fmt.Errorf("notify: post webhook: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Delivery{}, fmt.Errorf("notify: webhook returned %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	return Delivery{NotificationID: n.ID, Channel: ChannelWebhook, SentAt: time.Now().UTC()}, nil
}
