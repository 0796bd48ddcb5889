// Package event is the notification bus of the drag engine.
//
// Components publish lifecycle events (a drag starting, a traversal into a
// foreign zone, a configuration reload) without knowing who listens. The
// demo application subscribes to update its status line and metrics.
//
// # Topics
//
// Event names are hierarchical and subscriptions may use wildcards; see the
// topic package:
//
//	bus.SubscribeFunc("traverse.*", func(ctx context.Context, ev any) error {
//	    ...
//	})
//
// # Delivery
//
// Delivery is synchronous: Publish returns after every matching handler ran.
// The engine is driven from a single event loop, so handlers observe events
// in publication order. Handler errors and panics are collected and returned
// from Publish; a failing handler never prevents delivery to the next one.
//
// # Typed Payloads
//
// Events carry a typed payload. PayloadFunc adapts a payload handler and
// skips events of other payload types:
//
//	bus.Subscribe(event.TopicTraverseCommitted,
//	    event.PayloadFunc(func(ctx context.Context, t traverse.Traversal) error {
//	        ...
//	    }))
package event
