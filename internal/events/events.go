package events

import (
	"context"
	"time"
)

// Streams
const (
	StreamLeads   = "events:lead"
	StreamContent = "events:content"
)

// Event types
const (
	EventLeadCaptured          = "lead_captured"
	EventLeadStatusChanged     = "lead_status_changed"
	EventLeadNoteAdded         = "lead_note_added"
	EventContentPackageCreated = "content_package_created"
)

type Event struct {
	Type    string         `json:"type"`
	At      time.Time      `json:"at"`
	Payload map[string]any `json:"payload"`
}

func New(eventType string, payload map[string]any) Event {
	return Event{Type: eventType, At: time.Now().UTC(), Payload: payload}
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
