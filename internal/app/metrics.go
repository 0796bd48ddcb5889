package app

import (
	"sync/atomic"
	"time"
)

// Metrics tracks application performance and drag activity.
type Metrics struct {
	// Frame timing
	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64
	frameMinNs   atomic.Int64
	frameMaxNs   atomic.Int64
	lastFrameNs  atomic.Int64

	// Event processing
	eventCount   atomic.Uint64
	eventTotalNs atomic.Int64
	panics       atomic.Uint64

	// Drag activity
	dragsStarted   atomic.Uint64
	dragsEnded     atomic.Uint64
	dragsCancelled atomic.Uint64
	traversals     atomic.Uint64
	reorders       atomic.Uint64
	configReloads  atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),
	}
	// Initialize min to max int64 so first frame will be smaller
	m.frameMinNs.Store(1<<63 - 1)
	return m
}

// RecordFrame records how long a redraw took.
func (m *Metrics) RecordFrame(duration time.Duration) {
	ns := duration.Nanoseconds()

	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)
	m.lastFrameNs.Store(ns)

	for {
		old := m.frameMinNs.Load()
		if ns >= old || m.frameMinNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordEvent records event processing timing.
func (m *Metrics) RecordEvent(duration time.Duration) {
	m.eventCount.Add(1)
	m.eventTotalNs.Add(duration.Nanoseconds())
}

// RecordPanic records a panic recovered in the event loop.
func (m *Metrics) RecordPanic() { m.panics.Add(1) }

// RecordDragStarted records a drag entering the dragging phase.
func (m *Metrics) RecordDragStarted() { m.dragsStarted.Add(1) }

// RecordDragEnded records a drag released normally.
func (m *Metrics) RecordDragEnded() { m.dragsEnded.Add(1) }

// RecordDragCancelled records a cancelled drag.
func (m *Metrics) RecordDragCancelled() { m.dragsCancelled.Add(1) }

// RecordTraversal records a drag entering another zone.
func (m *Metrics) RecordTraversal() { m.traversals.Add(1) }

// RecordReorder records a committed reorder.
func (m *Metrics) RecordReorder() { m.reorders.Add(1) }

// RecordConfigReload records an applied config reload.
func (m *Metrics) RecordConfigReload() { m.configReloads.Add(1) }

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frameCount := m.frameCount.Load()
	eventCount := m.eventCount.Load()

	var avgFrameNs int64
	if frameCount > 0 {
		avgFrameNs = m.frameTotalNs.Load() / int64(frameCount)
	}

	var avgEventNs int64
	if eventCount > 0 {
		avgEventNs = m.eventTotalNs.Load() / int64(eventCount)
	}

	minFrameNs := m.frameMinNs.Load()
	if minFrameNs == 1<<63-1 {
		minFrameNs = 0
	}

	return MetricsSnapshot{
		Uptime:         time.Since(m.startTime),
		FrameCount:     frameCount,
		AvgFrameTimeNs: avgFrameNs,
		MinFrameTimeNs: minFrameNs,
		MaxFrameTimeNs: m.frameMaxNs.Load(),
		LastFrameNs:    m.lastFrameNs.Load(),
		EventCount:     eventCount,
		AvgEventNs:     avgEventNs,
		Panics:         m.panics.Load(),
		DragsStarted:   m.dragsStarted.Load(),
		DragsEnded:     m.dragsEnded.Load(),
		DragsCancelled: m.dragsCancelled.Load(),
		Traversals:     m.traversals.Load(),
		Reorders:       m.reorders.Load(),
		ConfigReloads:  m.configReloads.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime         time.Duration
	FrameCount     uint64
	AvgFrameTimeNs int64
	MinFrameTimeNs int64
	MaxFrameTimeNs int64
	LastFrameNs    int64
	EventCount     uint64
	AvgEventNs     int64
	Panics         uint64
	DragsStarted   uint64
	DragsEnded     uint64
	DragsCancelled uint64
	Traversals     uint64
	Reorders       uint64
	ConfigReloads  uint64
}

// AvgFPS returns the average redraws per second of draw time.
func (s MetricsSnapshot) AvgFPS() float64 {
	if s.AvgFrameTimeNs == 0 {
		return 0
	}
	return 1e9 / float64(s.AvgFrameTimeNs)
}

// CancelRate returns the percentage of finished drags that were cancelled.
func (s MetricsSnapshot) CancelRate() float64 {
	total := s.DragsEnded + s.DragsCancelled
	if total == 0 {
		return 0
	}
	return float64(s.DragsCancelled) / float64(total) * 100
}

// Metrics returns the application's metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}
