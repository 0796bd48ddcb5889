package event

import (
	"context"

	"github.com/dshills/griddrop/internal/event/topic"
)

// Topics published by the drag engine.
const (
	TopicDragStarted   topic.Topic = "drag.started"
	TopicDragMoved     topic.Topic = "drag.moved"
	TopicDragEnded     topic.Topic = "drag.ended"
	TopicDragCancelled topic.Topic = "drag.cancelled"

	TopicTraverseStarted   topic.Topic = "traverse.started"
	TopicTraverseEnded     topic.Topic = "traverse.ended"
	TopicTraverseCommitted topic.Topic = "traverse.committed"

	TopicZoneRegistered topic.Topic = "zone.registered"
	TopicZoneRemoved    topic.Topic = "zone.removed"

	TopicConfigReloaded topic.Topic = "config.reloaded"
)

// Emit publishes payload as an Event[T]. A nil bus is a no-op.
func Emit[T any](ctx context.Context, bus *Bus, t topic.Topic, payload T, source string) error {
	if bus == nil {
		return nil
	}
	return bus.Publish(ctx, NewEvent(t, payload, source))
}
