package app

import (
	"context"
	"sync"

	"github.com/dshills/griddrop/internal/dnd"
	"github.com/dshills/griddrop/internal/event"
	"github.com/dshills/griddrop/internal/event/topic"
	"github.com/dshills/griddrop/internal/gesture"
	"github.com/dshills/griddrop/internal/traverse"
)

// Event topics published by the application.
const (
	// TopicBoardReordered carries a Reorder after the board applied it.
	TopicBoardReordered topic.Topic = "board.reordered"
)

// subscriptionManager manages event bus subscriptions for the application.
type subscriptionManager struct {
	mu            sync.Mutex
	subscriptions []*event.Subscription
	app           *Application
}

// newSubscriptionManager creates a new subscription manager.
func newSubscriptionManager(app *Application) *subscriptionManager {
	return &subscriptionManager{app: app}
}

// setupSubscriptions registers all event subscriptions.
func (sm *subscriptionManager) setupSubscriptions() error {
	if sm.app.eventBus == nil {
		return nil
	}

	m := sm.app.metrics
	log := sm.app.Logger().WithComponent("events")

	dragEvents := []struct {
		topic  topic.Topic
		record func()
		verb   string
	}{
		{event.TopicDragStarted, m.RecordDragStarted, "started"},
		{event.TopicDragEnded, m.RecordDragEnded, "ended"},
		{event.TopicDragCancelled, m.RecordDragCancelled, "cancelled"},
	}
	for _, de := range dragEvents {
		if err := sm.subscribe(de.topic, event.PayloadFunc(func(_ context.Context, e dnd.DragEvent) error {
			de.record()
			log.Debug("drag %s %s at (%g, %g)", e.ID, de.verb, e.State.Coordinates.X, e.State.Coordinates.Y)
			return nil
		})); err != nil {
			return err
		}
	}

	if err := sm.subscribe(event.TopicTraverseStarted, event.PayloadFunc(func(context.Context, traverse.Traversal) error {
		m.RecordTraversal()
		return nil
	})); err != nil {
		return err
	}

	if err := sm.subscribe(TopicBoardReordered, event.PayloadFunc(func(_ context.Context, r Reorder) error {
		m.RecordReorder()
		log.Info("moved %s from %s[%d] to %s[%d]", r.Item, r.SourceID, r.SourceIndex, r.TargetID, r.TargetIndex)
		return nil
	})); err != nil {
		return err
	}

	return sm.subscribe(event.TopicConfigReloaded, event.PayloadFunc(func(_ context.Context, cfg gesture.Config) error {
		m.RecordConfigReload()
		log.Info("sensor policy reloaded: delay=%v distance=%v", cfg.Delay, cfg.Distance)
		return nil
	}))
}

func (sm *subscriptionManager) subscribe(t topic.Topic, h event.Handler) error {
	sub, err := sm.app.eventBus.Subscribe(t, h)
	if err != nil {
		return err
	}
	sm.mu.Lock()
	sm.subscriptions = append(sm.subscriptions, sub)
	sm.mu.Unlock()
	return nil
}

// closeAll removes every subscription.
func (sm *subscriptionManager) closeAll() {
	sm.mu.Lock()
	subs := sm.subscriptions
	sm.subscriptions = nil
	sm.mu.Unlock()

	for _, sub := range subs {
		_ = sm.app.eventBus.Unsubscribe(sub)
	}
}
