package traverse

import (
	"context"
	"sync"

	"github.com/dshills/griddrop/internal/event"
	"github.com/dshills/griddrop/internal/event/topic"
	"github.com/dshills/griddrop/internal/grid"
	"github.com/dshills/griddrop/internal/store"
)

// Registration is what a drop zone tells the coordinator about itself.
type Registration struct {
	// Bounds is the cached on-screen rectangle of the zone.
	Bounds grid.Bounds

	// Count is the number of items in the zone.
	Count int

	// Grid is the zone's cell layout.
	Grid grid.Settings

	// DropDisabled keeps the zone from being resolved as a drop target.
	DropDisabled bool

	// Refresh measures the zone again. It may be nil.
	Refresh func() grid.Bounds
}

// Traversal is the state of a drag hovering over a zone other than its
// origin.
type Traversal struct {
	SourceID    string
	TargetID    string
	SourceIndex int
	TargetIndex int

	// RX and RY are the target slot's position in source-zone coordinates.
	RX, RY float64

	// TX and TY are the pointer position in target-zone coordinates.
	TX, TY float64

	// Execute is set once the traversal is being committed.
	Execute bool
}

// ChangeFunc applies a reorder. targetID is empty for a move within the
// source zone.
type ChangeFunc func(sourceID string, sourceIndex, targetIndex int, targetID string)

// Logger receives debug output from the coordinator.
type Logger interface {
	Debug(msg string, args ...any)
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithBus publishes traversal events on bus.
func WithBus(bus *event.Bus) Option {
	return func(c *Coordinator) {
		c.bus = bus
	}
}

// WithLogger sets a logger.
func WithLogger(l Logger) Option {
	return func(c *Coordinator) {
		c.logger = l
	}
}

// Coordinator tracks the registered drop zones and the active traversal.
type Coordinator struct {
	mu        sync.Mutex
	zones     store.Map[Registration]
	traversal *Traversal
	onChange  ChangeFunc

	bus    *event.Bus
	logger Logger
}

// New creates a coordinator that reports committed reorders to onChange.
func New(onChange ChangeFunc, opts ...Option) *Coordinator {
	c := &Coordinator{onChange: onChange}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register adds or updates a zone. An id that is already registered keeps its
// position in resolution order.
func (c *Coordinator) Register(id string, r Registration) {
	c.mu.Lock()
	_, existed := c.zones.Get(id)
	c.zones = c.zones.With(id, r)
	c.mu.Unlock()

	if !existed {
		emit(c, event.TopicZoneRegistered, id)
	}
}

// Remove forgets a zone.
func (c *Coordinator) Remove(id string) {
	c.mu.Lock()
	existed := c.zones.Has(id)
	c.zones = c.zones.Without(id)
	c.mu.Unlock()

	if existed {
		emit(c, event.TopicZoneRemoved, id)
	}
}

// Zone returns the registration of id.
func (c *Coordinator) Zone(id string) (Registration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zones.Get(id)
}

// Zones returns the registered ids in resolution order.
func (c *Coordinator) Zones() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zones.Keys()
}

// MeasureAll refreshes the cached bounds of every zone that can measure
// itself, recomputing column widths for the new sizes.
func (c *Coordinator) MeasureAll() {
	c.mu.Lock()
	zones := c.zones
	c.mu.Unlock()

	type measured struct {
		id     string
		bounds grid.Bounds
	}
	var updates []measured
	zones.Each(func(id string, r Registration) bool {
		if r.Refresh != nil {
			updates = append(updates, measured{id: id, bounds: r.Refresh()})
		}
		return true
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, u := range updates {
		r, ok := c.zones.Get(u.id)
		if !ok {
			continue
		}
		r.Bounds = u.bounds
		if r.Grid.BoxesPerRow > 0 {
			r.Grid = r.Grid.Resize(u.bounds.Width)
		}
		c.zones = c.zones.With(u.id, r)
	}
}

// ResolveDropContainer converts (x, y), relative to the source zone, into
// document space and returns the first registered zone that accepts drops
// and strictly contains the point.
func (c *Coordinator) ResolveDropContainer(sourceID string, x, y float64) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fx, fy := c.fixedLocked(sourceID, x, y)

	var found string
	c.zones.Each(func(id string, r Registration) bool {
		if !r.DropDisabled && r.Bounds.Contains(fx, fy) {
			found = id
			return false
		}
		return true
	})
	return found, found != ""
}

// StartTraversal records that the item at sourceIndex of sourceID is
// hovering over targetID at (x, y), relative to the source zone. The target
// slot is chosen by the item's center. Calling it again for the same target
// zone and slot changes nothing.
func (c *Coordinator) StartTraversal(sourceID, targetID string, x, y float64, sourceIndex int) {
	c.mu.Lock()

	target, ok := c.zones.Get(targetID)
	if !ok {
		c.mu.Unlock()
		return
	}

	fx, fy := c.fixedLocked(sourceID, x, y)
	tx, ty := fx-target.Bounds.Left, fy-target.Bounds.Top

	targetIndex := grid.IndexFromCoordinates(
		tx+target.Grid.ColumnWidth/2,
		ty+target.Grid.RowHeight/2,
		target.Grid,
		target.Count,
	)

	if t := c.traversal; t != nil && t.TargetID == targetID && t.TargetIndex == targetIndex {
		c.mu.Unlock()
		return
	}

	slot := grid.PositionForIndex(targetIndex, target.Grid, nil)
	dx, dy := c.diffLocked(sourceID, targetID)

	t := &Traversal{
		SourceID:    sourceID,
		TargetID:    targetID,
		SourceIndex: sourceIndex,
		TargetIndex: targetIndex,
		RX:          slot.X + dx,
		RY:          slot.Y + dy,
		TX:          tx,
		TY:          ty,
	}
	c.traversal = t
	snap := *t
	c.mu.Unlock()

	c.debug("traverse: %s[%d] -> %s[%d]", sourceID, sourceIndex, targetID, targetIndex)
	emit(c, event.TopicTraverseStarted, snap)
}

// EndTraversal clears the active traversal.
func (c *Coordinator) EndTraversal() {
	c.mu.Lock()
	had := c.traversal != nil
	c.traversal = nil
	c.mu.Unlock()

	if had {
		emit(c, event.TopicTraverseEnded, struct{}{})
	}
}

// Traversal returns the active traversal.
func (c *Coordinator) Traversal() (Traversal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.traversal == nil {
		return Traversal{}, false
	}
	return *c.traversal, true
}

// Commit marks the active traversal as executing and then reports the
// reorder to the change callback.
func (c *Coordinator) Commit(sourceID string, sourceIndex, targetIndex int, targetID string) {
	c.mu.Lock()
	var snap Traversal
	if c.traversal != nil {
		t := *c.traversal
		t.Execute = true
		c.traversal = &t
		snap = t
	}
	onChange := c.onChange
	c.mu.Unlock()

	c.debug("commit: %s[%d] -> %q[%d]", sourceID, sourceIndex, targetID, targetIndex)
	if snap.Execute {
		emit(c, event.TopicTraverseCommitted, snap)
	}
	if onChange != nil {
		onChange(sourceID, sourceIndex, targetIndex, targetID)
	}
}

// fixedLocked converts source-relative coordinates to document space. An
// unknown source leaves them unchanged.
func (c *Coordinator) fixedLocked(sourceID string, x, y float64) (float64, float64) {
	src, ok := c.zones.Get(sourceID)
	if !ok {
		return x, y
	}
	return src.Bounds.Left + x, src.Bounds.Top + y
}

// diffLocked returns the offset from the source origin to the target origin.
func (c *Coordinator) diffLocked(sourceID, targetID string) (float64, float64) {
	src, _ := c.zones.Get(sourceID)
	dst, _ := c.zones.Get(targetID)
	return dst.Bounds.Left - src.Bounds.Left, dst.Bounds.Top - src.Bounds.Top
}

// emit publishes a typed payload if a bus is attached.
func emit[T any](c *Coordinator, t topic.Topic, payload T) {
	if c.bus == nil {
		return
	}
	if err := event.Emit(context.Background(), c.bus, t, payload, "traverse"); err != nil {
		c.debug("publish %s: %v", t, err)
	}
}

func (c *Coordinator) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
