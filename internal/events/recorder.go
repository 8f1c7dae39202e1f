package events

import (
	"context"
	"sync"
)

// Recorder is an in-process Publisher that keeps every published event.
type Recorder struct {
	mu     sync.Mutex
	events map[string][]Event
}

func NewRecorder() *Recorder {
	return &Recorder{events: make(map[string][]Event)}
}

func (r *Recorder) Publish(_ context.Context, stream string, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[stream] = append(r.events[stream], event)
	return nil
}

func (r *Recorder) Events(stream string) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events[stream]))
	copy(out, r.events[stream])
	return out
}
