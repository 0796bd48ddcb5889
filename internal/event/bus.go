package event

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/griddrop/internal/event/topic"
)

// Bus delivers events synchronously, in the publisher's goroutine, to every
// subscription whose pattern matches the event topic. Handlers run in
// priority order, then subscription order. A handler panic is recovered and
// reported as a *PanicError; it does not stop delivery to the others.
type Bus struct {
	mu     sync.RWMutex
	subs   []*Subscription
	seq    uint64
	closed bool

	eventsPublished  atomic.Uint64
	handlersExecuted atomic.Uint64
	handlerErrors    atomic.Uint64
	handlerPanics    atomic.Uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers handler for every topic matching pattern.
func (b *Bus) Subscribe(pattern topic.Topic, handler Handler, opts ...SubscriptionOption) (*Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if !pattern.IsValid() {
		return nil, ErrInvalidTopic
	}

	cfg := SubscriptionConfig{Priority: PriorityNormal}
	for _, opt := range opts {
		opt(&cfg)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrBusClosed
	}

	b.seq++
	sub := &Subscription{
		id:      uuid.NewString(),
		pattern: pattern,
		handler: handler,
		config:  cfg,
		seq:     b.seq,
	}

	subs := make([]*Subscription, len(b.subs), len(b.subs)+1)
	copy(subs, b.subs)
	subs = append(subs, sub)
	sort.SliceStable(subs, func(i, j int) bool {
		if subs[i].config.Priority != subs[j].config.Priority {
			return subs[i].config.Priority < subs[j].config.Priority
		}
		return subs[i].seq < subs[j].seq
	})
	b.subs = subs
	return sub, nil
}

// SubscribeFunc is Subscribe for a function handler.
func (b *Bus) SubscribeFunc(pattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (*Subscription, error) {
	return b.Subscribe(pattern, fn, opts...)
}

// Unsubscribe removes a subscription.
func (b *Bus) Unsubscribe(sub *Subscription) error {
	if sub == nil || !sub.cancel() {
		return ErrSubscriptionNotFound
	}
	b.remove(sub)
	return nil
}

func (b *Bus) remove(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	kept := make([]*Subscription, 0, len(b.subs))
	for _, s := range b.subs {
		if s != sub {
			kept = append(kept, s)
		}
	}
	b.subs = kept
}

// Publish delivers event to every matching subscription. It returns the
// joined handler errors, if any.
func (b *Bus) Publish(ctx context.Context, event any) error {
	tp, ok := event.(TopicProvider)
	if !ok || !tp.EventTopic().IsValid() {
		return ErrInvalidEvent
	}
	name := tp.EventTopic()

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrBusClosed
	}
	subs := b.subs
	b.mu.RUnlock()

	b.eventsPublished.Add(1)

	var errs []error
	for _, sub := range subs {
		if !sub.IsActive() || !name.Matches(sub.pattern) || !sub.shouldDeliver(event) {
			continue
		}
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		err := b.deliver(ctx, sub, name, event)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if sub.config.Once && sub.cancel() {
			b.remove(sub)
		}
	}
	return errors.Join(errs...)
}

// deliver runs one handler, converting a panic into an error.
func (b *Bus) deliver(ctx context.Context, sub *Subscription, name topic.Topic, event any) (err error) {
	b.handlersExecuted.Add(1)
	defer func() {
		if r := recover(); r != nil {
			b.handlerPanics.Add(1)
			err = &PanicError{SubscriptionID: sub.id, Topic: name.String(), Value: r}
		}
	}()

	if herr := sub.handler.Handle(ctx, event); herr != nil {
		b.handlerErrors.Add(1)
		return &HandlerError{SubscriptionID: sub.id, Topic: name.String(), Err: herr}
	}
	return nil
}

// Close drops every subscription. Later calls to Publish and Subscribe fail
// with ErrBusClosed.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, s := range b.subs {
		s.cancel()
	}
	b.subs = nil
	b.closed = true
}

// Stats returns current bus counters.
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	active := len(b.subs)
	b.mu.RUnlock()

	return Stats{
		EventsPublished:   b.eventsPublished.Load(),
		HandlersExecuted:  b.handlersExecuted.Load(),
		HandlerErrors:     b.handlerErrors.Load(),
		HandlerPanics:     b.handlerPanics.Load(),
		ActiveSubscribers: active,
	}
}
