package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/griddrop/internal/event/topic"
)

// Event is a published notification with a typed payload.
type Event[T any] struct {
	// Type is the event topic, e.g. "drag.started".
	Type topic.Topic

	// Payload carries the event data.
	Payload T

	// Metadata is attached by NewEvent.
	Metadata Metadata
}

// Metadata contains standard information attached to every event.
type Metadata struct {
	// ID is unique per event.
	ID string

	// Timestamp is when the event was created.
	Timestamp time.Time

	// Source names the component that published the event.
	Source string
}

// NewEvent creates an event with fresh metadata.
func NewEvent[T any](eventType topic.Topic, payload T, source string) Event[T] {
	return Event[T]{
		Type:    eventType,
		Payload: payload,
		Metadata: Metadata{
			ID:        uuid.NewString(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}

// EventTopic returns the event's topic for type-erased handling.
func (e Event[T]) EventTopic() topic.Topic {
	return e.Type
}

// TopicProvider is implemented by anything the bus can route.
type TopicProvider interface {
	EventTopic() topic.Topic
}
