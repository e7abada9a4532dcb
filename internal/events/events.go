// Package events publishes domain notifications after group mutations are
// committed. Publishing is best-effort: a failed publish is logged and never
// rolls back the mutation that produced it.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Type names a domain event. It doubles as the routing key suffix.
type Type string

const (
	GroupCreated  Type = "group.created"
	GroupUpdated  Type = "group.updated"
	GroupDeleted  Type = "group.deleted"
	MemberJoined  Type = "member.joined"
	MemberRemoved Type = "member.removed"
	ExpenseAdded  Type = "expense.added"
	DebtsRebuilt  Type = "debts.recalculated"
	DebtSettled   Type = "debt.settled"
	DebtDisputed  Type = "debt.disputed"
	CommentAdded  Type = "comment.added"
)

// Event is one committed change to a group.
type Event struct {
	Type      Type           `json:"type"`
	GroupID   string         `json:"group_id"`
	ActorID   string         `json:"actor_id,omitempty"`
	Version   int64          `json:"version"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
}

// ToJSON converts the event to JSON bytes
func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// FromJSON decodes an event from JSON bytes.
func FromJSON(data []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Publisher delivers events to subscribers.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }

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

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Types returns the type of every published event, in order.
func (r *Recorder) Types() []Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]Type, len(r.events))
	for i, e := range r.events {
		types[i] = e.Type
	}
	return types
}
