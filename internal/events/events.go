package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event names double as broker routing keys.
const (
	ListingSubmitted     = "listing.submitted"
	ListingUpdated       = "listing.updated"
	ListingStatusChanged = "listing.status_changed"
	ListingPremiumSet    = "listing.premium_changed"
	ListingPhotoQueued   = "listing.photo_submitted"
	ListingPhotoReviewed = "listing.photo_moderated"
	ReviewSubmitted      = "review.submitted"
	ReviewStatusChanged  = "review.status_changed"
	LeadCaptured         = "lead.captured"
	PurchaseCompleted    = "purchase.completed"
)

// Event is a domain fact published after a successful write.
type Event struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	OccurredAt time.Time      `json:"occurredAt"`
	Payload    map[string]any `json:"payload"`
}

// New stamps an event with a fresh id and the current time.
func New(name string, payload map[string]any) Event {
	return Event{
		ID:         uuid.NewString(),
		Name:       name,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Publisher delivers events. Implementations log delivery failures instead of
// returning them; a failed publish never fails the write that produced it.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) {}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Names returns the recorded event names in publish order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.events))
	for _, e := range r.events {
		names = append(names, e.Name)
	}
	return names
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
