// Package notify forwards lead events to an outbound webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/lead-studio/backend/internal/events"
	"github.com/lead-studio/backend/internal/metrics"
	"github.com/lead-studio/backend/internal/models"
	"go.uber.org/zap"
)

// Message is the webhook body.
type Message struct {
	Type    string         `json:"type"`
	Text    string         `json:"text"`
	At      time.Time      `json:"at"`
	Payload map[string]any `json:"payload"`
}

type Forwarder struct {
	url    string
	client *http.Client
	log    *zap.Logger
}

func NewForwarder(url string, timeout time.Duration, log *zap.Logger) *Forwarder {
	return &Forwarder{url: url, client: &http.Client{Timeout: timeout}, log: log}
}

// Text renders a one-line summary of a lead event.
func Text(event events.Event) string {
	p := event.Payload
	switch event.Type {
	case events.EventLeadCaptured:
		return fmt.Sprintf("New lead: %v is interested in %v (%v)", p["name"], p["vehicle_interest"], p["timeframe"])
	case events.EventLeadStatusChanged:
		from, _ := p["old_status"].(string)
		to, _ := p["new_status"].(string)
		return fmt.Sprintf("Lead #%v moved from %s to %s", p["lead_id"],
			models.LeadStatus(from).Label(), models.LeadStatus(to).Label())
	case events.EventLeadNoteAdded:
		return fmt.Sprintf("Note added to lead #%v", p["lead_id"])
	default:
		return fmt.Sprintf("Event: %s", event.Type)
	}
}

// Forward posts the event to the webhook. Any non-2xx response is an error.
func (f *Forwarder) Forward(ctx context.Context, event events.Event) error {
	body, err := json.Marshal(Message{Type: event.Type, Text: Text(event), At: event.At, Payload: event.Payload})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		metrics.NotificationsForwardedTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.NotificationsForwardedTotal.WithLabelValues("rejected").Inc()
		return fmt.Errorf("webhook returned %d", resp.StatusCode)
	}
	metrics.NotificationsForwardedTotal.WithLabelValues("ok").Inc()
	return nil
}

// Handle is an events subscriber callback; failures are logged and dropped.
func (f *Forwarder) Handle(ctx context.Context) func(events.Event) {
	return func(event events.Event) {
		if err := f.Forward(ctx, event); err != nil {
			f.log.Warn("failed to forward notification", zap.String("type", event.Type), zap.Error(err))
			return
		}
		f.log.Info("notification forwarded", zap.String("type", event.Type))
	}
}
