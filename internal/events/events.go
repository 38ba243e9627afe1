// Package events publishes appointment lifecycle events after the change
// that caused them has committed. Publishing is best effort: callers log
// failures and never roll back a booking because of them.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tbourn/go-booking-backend/internal/domain"
)

// Event types.
const (
	TypeCreated       = "appointment.created"
	TypeStatusChanged = "appointment.status_changed"
	TypeDeleted       = "appointment.deleted"
)

// Event is the payload written to the bus.
type Event struct {
	ID          string             `json:"id"`
	Type        string             `json:"type"`
	OccurredAt  time.Time          `json:"occurred_at"`
	Appointment domain.Appointment `json:"appointment"`
	From        domain.Status      `json:"from,omitempty"`
}

// New stamps an Event with a fresh id and the current UTC time.
func New(typ string, a domain.Appointment, from domain.Status) Event {
	return Event{
		ID:          uuid.NewString(),
		Type:        typ,
		OccurredAt:  time.Now().UTC(),
		Appointment: a,
		From:        from,
	}
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Noop discards every event.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }

// Recorder keeps events in memory. Useful in tests and local runs.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	Err    error // returned from Publish when set
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events = append(r.events, e)
	return nil
}

func (r *Recorder) Close() error { return nil }

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
