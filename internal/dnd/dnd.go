// Package dnd connects a gesture sensor to the drag session store.
//
// A Context owns one gesture.Sensor. When the sensor starts a drag, the
// context finds the registered draggable under the press position, records
// it in the store and forwards the gesture to the application callbacks.
// Moves, releases and cancellations update the store in the same way.
//
// The rendering layer registers draggables and droppables through the
// context; each registration returns a function that removes it again, and
// a removal whose key was superseded by a newer registration is ignored.
package dnd

import (
	"context"

	"github.com/dshills/griddrop/internal/event"
	"github.com/dshills/griddrop/internal/event/topic"
	"github.com/dshills/griddrop/internal/gesture"
	"github.com/dshills/griddrop/internal/input/pointer"
	"github.com/dshills/griddrop/internal/store"
)

// Callbacks are the application hooks of a Context. Every field is optional.
type Callbacks struct {
	// ShouldStart may veto the drag of the draggable with the given id.
	ShouldStart func(id string) bool

	OnDragStart  func(id string, state gesture.State, ev *pointer.Event)
	OnDragMove   func(id string, state gesture.State, ev *pointer.Event)
	OnDragEnd    func(id string, state gesture.State, ev *pointer.Event)
	OnDragCancel func(id string, state gesture.State)
}

// Logger receives debug output.
type Logger interface {
	Debug(msg string, args ...any)
}

// Option configures a Context.
type Option func(*Context)

// WithBus publishes drag lifecycle events on bus.
func WithBus(bus *event.Bus) Option {
	return func(c *Context) {
		c.bus = bus
	}
}

// WithLogger sets a logger for the context and its sensor.
func WithLogger(l Logger) Option {
	return func(c *Context) {
		c.logger = l
	}
}

// WithSensorOptions passes options through to the sensor.
func WithSensorOptions(opts ...gesture.Option) Option {
	return func(c *Context) {
		c.sensorOpts = append(c.sensorOpts, opts...)
	}
}

// DragEvent is the payload of the drag.* events.
type DragEvent struct {
	ID          string
	DroppableID string
	State       gesture.State
}

// Context is the drag-and-drop root of one pointer.
type Context struct {
	store  *store.Store
	sensor *gesture.Sensor
	cb     Callbacks

	bus        *event.Bus
	logger     Logger
	sensorOpts []gesture.Option

	pending string
}

// NewContext creates a context that binds its session listeners on target.
// It panics if st is nil and returns the sensor's configuration error if cfg
// is invalid.
func NewContext(st *store.Store, target *pointer.Target, cfg gesture.Config, cb Callbacks, opts ...Option) (*Context, error) {
	if st == nil {
		panic("dnd: NewContext called without a store")
	}

	c := &Context{store: st, cb: cb}
	for _, opt := range opts {
		opt(c)
	}

	sensorOpts := c.sensorOpts
	if c.logger != nil {
		sensorOpts = append([]gesture.Option{gesture.WithLogger(c.logger)}, sensorOpts...)
	}

	sensor, err := gesture.New(target, cfg, gesture.Options{
		ShouldStart: c.shouldStart,
		OnStart:     c.onStart,
		OnMove:      c.onMove,
		OnEnd:       c.onEnd,
		OnCancel:    c.onCancel,
	}, sensorOpts...)
	if err != nil {
		return nil, err
	}
	c.sensor = sensor
	return c, nil
}

// Store returns the context's store.
func (c *Context) Store() *store.Store {
	return c.store
}

// Sensor returns the context's gesture sensor.
func (c *Context) Sensor() *gesture.Sensor {
	return c.sensor
}

// Press forwards a press on a draggable to the sensor.
func (c *Context) Press(ev *pointer.Event) {
	c.sensor.Press(ev)
}

// Close tears down the sensor and clears a drag in progress from the store.
// No drag callbacks fire.
func (c *Context) Close() {
	c.sensor.Close()
	c.pending = ""
	if c.ActiveID() != "" {
		c.store.Dispatch(store.DragCancel{})
	}
}

// ActiveID returns the id of the item being dragged, or "".
func (c *Context) ActiveID() string {
	return c.store.State().Draggable.ActiveID
}

// RegisterDraggable makes ref draggable under id.
func (c *Context) RegisterDraggable(id string, ref store.Node) (unregister func()) {
	key := store.DraggableKey(id)
	c.store.Dispatch(store.RegisterDraggable{Node: store.DraggableNode{ID: id, Key: key, Ref: ref}})
	return func() {
		c.store.Dispatch(store.UnregisterDraggable{ID: id, Key: key})
	}
}

// RegisterDroppable makes ref a drop container under id.
func (c *Context) RegisterDroppable(id string, ref store.Node, disabled bool) (unregister func()) {
	key := store.DroppableKey(id)
	c.store.Dispatch(store.RegisterDroppable{Container: store.DroppableContainer{ID: id, Key: key, Disabled: disabled, Ref: ref}})
	return func() {
		c.store.Dispatch(store.UnregisterDroppable{ID: id, Key: key})
	}
}

// SetDroppableDisabled toggles a drop container.
func (c *Context) SetDroppableDisabled(id string, disabled bool) {
	c.store.Dispatch(store.SetDroppableDisabled{ID: id, Key: store.DroppableKey(id), Disabled: disabled})
}

// HitTest returns the draggable under p. Later registrations are drawn on top
// and win.
func (c *Context) HitTest(p pointer.Coordinates) (string, bool) {
	return hitTest(c.store.State().Draggable.Nodes, p)
}

// DroppableAt returns the enabled drop container under p.
func (c *Context) DroppableAt(p pointer.Coordinates) (string, bool) {
	var found string
	c.store.State().Droppable.Containers.Each(func(id string, dc store.DroppableContainer) bool {
		if dc.Disabled || dc.Ref == nil {
			return true
		}
		b := dc.Ref.Bounds()
		if p.X >= b.Left && p.X < b.Right && p.Y >= b.Top && p.Y < b.Bottom {
			found = id
			return false
		}
		return true
	})
	return found, found != ""
}

func hitTest(nodes store.Map[store.DraggableNode], p pointer.Coordinates) (string, bool) {
	var found string
	nodes.Each(func(id string, n store.DraggableNode) bool {
		if n.Ref == nil {
			return true
		}
		b := n.Ref.Bounds()
		if p.X >= b.Left && p.X < b.Right && p.Y >= b.Top && p.Y < b.Bottom {
			found = id
		}
		return true
	})
	return found, found != ""
}

func (c *Context) shouldStart(s gesture.State, _ *pointer.Event) bool {
	id, ok := c.HitTest(s.Initial)
	if !ok {
		return false
	}
	if c.cb.ShouldStart != nil && !c.cb.ShouldStart(id) {
		return false
	}
	c.pending = id
	return true
}

func (c *Context) onStart(s gesture.State, ev *pointer.Event) {
	id := c.pending
	c.pending = ""
	if id == "" {
		return
	}

	droppableID, _ := c.DroppableAt(s.Initial)
	c.store.Dispatch(store.DragStart{ID: id, DroppableID: droppableID, Initial: s.Initial})
	c.debug("dnd: drag %s started in %q", id, droppableID)
	c.emit(event.TopicDragStarted, DragEvent{ID: id, DroppableID: droppableID, State: s})

	if c.cb.OnDragStart != nil {
		c.cb.OnDragStart(id, s, ev)
	}
}

func (c *Context) onMove(s gesture.State, ev *pointer.Event) {
	id := c.ActiveID()
	if id == "" {
		return
	}
	c.store.Dispatch(store.DragMove{Coordinates: s.Coordinates})
	c.emit(event.TopicDragMoved, DragEvent{ID: id, State: s})

	if c.cb.OnDragMove != nil {
		c.cb.OnDragMove(id, s, ev)
	}
}

func (c *Context) onEnd(s gesture.State, ev *pointer.Event) {
	id := c.ActiveID()
	c.pending = ""
	c.store.Dispatch(store.DragEnd{})
	if id == "" {
		return
	}
	c.emit(event.TopicDragEnded, DragEvent{ID: id, State: s})

	if c.cb.OnDragEnd != nil {
		c.cb.OnDragEnd(id, s, ev)
	}
}

func (c *Context) onCancel(s gesture.State) {
	id := c.ActiveID()
	c.pending = ""
	c.store.Dispatch(store.DragCancel{})
	if id == "" {
		return
	}
	c.emit(event.TopicDragCancelled, DragEvent{ID: id, State: s})

	if c.cb.OnDragCancel != nil {
		c.cb.OnDragCancel(id, s)
	}
}

func (c *Context) emit(t topic.Topic, payload DragEvent) {
	if err := event.Emit(context.Background(), c.bus, t, payload, "dnd"); err != nil {
		c.debug("dnd: publish %s: %v", t, err)
	}
}

func (c *Context) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
