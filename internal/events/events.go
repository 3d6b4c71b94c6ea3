// Package events publishes domain events about site activity so other
// systems (CRM sync, notification mailers) can react to them.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Type is the routing key of an event.
type Type string

const (
	CandidateRegistered Type = "candidate.registered"
	MessageReceived     Type = "message.received"
	JobCreated          Type = "job.created"
	JobUpdated          Type = "job.updated"
	JobDeleted          Type = "job.deleted"
)

// Exchange is the topic exchange events are published to.
const Exchange = "talentsite-events"

// Event is the JSON envelope sent to the broker.
type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       Type      `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	SubjectID  uuid.UUID `json:"subject_id"`
	Payload    any       `json:"payload,omitempty"`
}

// New builds an event about subject.
func New(t Type, subject uuid.UUID, payload any) Event {
	return Event{
		ID:         uuid.New(),
		Type:       t,
		OccurredAt: time.Now().UTC(),
		SubjectID:  subject,
		Payload:    payload,
	}
}

// Publisher sends events somewhere.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *Recorder) Close() error { return nil }

// Events returns a copy of what has been published so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Types returns the types of the recorded events in publish order.
func (r *Recorder) Types() []Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Type, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}
