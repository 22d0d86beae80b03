// internal/events/events.go
package events

import (
	"context"
	"time"
)

type EventType string

const (
	ProductCreated  EventType = "product.created"
	ProductUpdated  EventType = "product.updated"
	ProductDeleted  EventType = "product.deleted"
	CategoryCreated EventType = "category.created"
	CategoryDeleted EventType = "category.deleted"
)

// Event is a catalog change notification.
type Event struct {
	Type       EventType `json:"type"`
	EntityID   string    `json:"id"`
	Name       string    `json:"name,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewEvent(t EventType, id, name string) Event {
	return Event{Type: t, EntityID: id, Name: name, OccurredAt: time.Now().UTC()}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type noopPublisher struct{}

// NewNoopPublisher drops every event. It is used when no brokers are configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, Event) error { return nil }

func (noopPublisher) Close() error { return nil }
