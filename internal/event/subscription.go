package event

import (
	"sync/atomic"

	"github.com/dshills/griddrop/internal/event/topic"
)

// Subscription is a handler bound to a topic pattern.
type Subscription struct {
	id        string
	pattern   topic.Topic
	handler   Handler
	config    SubscriptionConfig
	seq       uint64
	cancelled atomic.Bool
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string { return s.id }

// Topic returns the subscribed pattern.
func (s *Subscription) Topic() topic.Topic { return s.pattern }

// IsActive returns true until the subscription is cancelled.
func (s *Subscription) IsActive() bool { return !s.cancelled.Load() }

// cancel marks the subscription dead. It reports whether this call did it.
func (s *Subscription) cancel() bool {
	return s.cancelled.CompareAndSwap(false, true)
}

// shouldDeliver applies the subscription filter.
func (s *Subscription) shouldDeliver(event any) bool {
	return s.config.Filter == nil || s.config.Filter(event)
}

// SubscriptionConfig configures a subscription.
type SubscriptionConfig struct {
	// Priority orders handlers; lower runs first.
	Priority Priority

	// Filter drops events for which it returns false.
	Filter FilterFunc

	// Once cancels the subscription after its first successful delivery.
	Once bool
}

// SubscriptionOption configures a subscription.
type SubscriptionOption func(*SubscriptionConfig)

// WithPriority sets the subscription priority.
func WithPriority(p Priority) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Priority = p
	}
}

// WithFilter sets a filter predicate.
func WithFilter(f FilterFunc) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Filter = f
	}
}

// WithOnce makes the subscription fire at most once.
func WithOnce() SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Once = true
	}
}
