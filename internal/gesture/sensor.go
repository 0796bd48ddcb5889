package gesture

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/griddrop/internal/input/pointer"
)

// Options are the callbacks of a Sensor. Every field is optional.
type Options struct {
	// ShouldStart is asked before the drag starts. Returning false abandons
	// the session: Dragging is never entered, but the session keeps its
	// listeners until the release or cancel that ends it.
	ShouldStart func(state State, ev *pointer.Event) bool

	// OnStart fires when the session enters Dragging.
	OnStart func(state State, ev *pointer.Event)

	// ShouldMove gates each move while Dragging. Returning false suppresses
	// that move only.
	ShouldMove func(state State, ev *pointer.Event) bool

	// OnMove fires for every accepted move while Dragging.
	OnMove func(state State, ev *pointer.Event)

	// OnEnd fires when the session is released.
	OnEnd func(state State, ev *pointer.Event)

	// OnCancel fires when the session is cancelled.
	OnCancel func(state State)
}

// Logger receives debug output from the sensor.
type Logger interface {
	Debug(msg string, args ...any)
}

// Option configures a Sensor.
type Option func(*Sensor)

// WithClock sets the clock used for timestamps and the activation timer.
func WithClock(c Clock) Option {
	return func(s *Sensor) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger sets a logger for session transitions.
func WithLogger(l Logger) Option {
	return func(s *Sensor) {
		s.logger = l
	}
}

// session owns the resources acquired by one press.
type session struct {
	id        uuid.UUID
	unbind    func()
	timer     Timer
	abandoned bool
}

// Sensor is the drag gesture state machine for one pointer.
type Sensor struct {
	mu     sync.Mutex
	target *pointer.Target
	config Config
	opts   Options
	clock  Clock
	logger Logger

	state   State
	session *session
	closed  bool
}

// New creates a sensor that binds its session listeners on target.
// It fails if the config is invalid.
func New(target *pointer.Target, cfg Config, opts Options, options ...Option) (*Sensor, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creating sensor: %w", err)
	}

	s := &Sensor{
		target: target,
		config: cfg,
		opts:   opts,
		clock:  SystemClock{},
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Config returns the sensor's activation policy.
func (s *Sensor) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// SetConfig replaces the activation policy. The change applies from the next
// press; an active session keeps the policy it started with.
func (s *Sensor) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
	return nil
}

// State returns a snapshot of the current or most recent session.
func (s *Sensor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Active returns true while a session is Pressed or Dragging.
func (s *Sensor) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session != nil && s.state.Phase.Active()
}

// Press handles a press on the draggable element. Secondary-button presses,
// and mouse presses when the mouse is disabled, are ignored.
func (s *Sensor) Press(ev *pointer.Event) {
	if ev == nil || !ev.IsPrimaryPress() {
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if ev.Device == pointer.DeviceMouse && !s.config.EnableMouse {
		s.mu.Unlock()
		return
	}

	// A press while another session is alive means its release was lost.
	if prev := s.session; prev != nil {
		s.mu.Unlock()
		s.cancel(prev)
		s.mu.Lock()
	}

	cfg := s.config
	c := pointer.Extract(ev)
	sess := &session{id: uuid.New()}
	s.session = sess
	s.state = State{
		SessionID:   sess.id,
		Phase:       PhasePressed,
		Coordinates: c,
		Initial:     c,
		Previous:    c,
		Local:       s.state.LastLocal,
		LastLocal:   s.state.LastLocal,
		Time:        s.eventTime(ev),
	}

	sess.unbind = s.target.Bind(
		pointer.Binding{Kind: pointer.KindMove, Fn: func(e *pointer.Event) { s.move(sess, cfg, e) }},
		pointer.Binding{Kind: pointer.KindRelease, Fn: func(e *pointer.Event) { s.end(sess, e) }},
		pointer.Binding{Kind: pointer.KindTouchCancel, Fn: func(*pointer.Event) { s.cancel(sess) }},
		pointer.Binding{Kind: pointer.KindVisibilityChange, Fn: func(*pointer.Event) { s.cancel(sess) }},
		pointer.Binding{Kind: pointer.KindResize, Fn: func(*pointer.Event) { s.cancel(sess) }},
		pointer.Binding{Kind: pointer.KindContextMenu, Fn: func(e *pointer.Event) { e.PreventDefault() }},
	)
	s.debug("session %s pressed at (%g, %g)", sess.id, c.X, c.Y)

	switch {
	case cfg.Distance.IsSet():
		s.mu.Unlock()
		return
	case cfg.Delay > 0:
		sess.timer = s.clock.AfterFunc(cfg.Delay, func() { s.start(sess, ev) })
		s.mu.Unlock()
		return
	}

	s.mu.Unlock()
	s.start(sess, ev)
}

// Close tears down any active session without firing callbacks and stops
// the sensor from accepting new presses. A session torn down this way ends
// in PhaseCancelled.
func (s *Sensor) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.session != nil {
		s.teardownLocked()
		s.state.Phase = PhaseCancelled
		s.state.Time = s.clock.Now()
		s.state.LastLocal = s.state.Local
	}
}

// start moves a Pressed session into Dragging.
func (s *Sensor) start(sess *session, ev *pointer.Event) {
	s.mu.Lock()
	if s.session != sess || s.state.Phase != PhasePressed || sess.abandoned {
		s.mu.Unlock()
		return
	}
	sess.timer = nil
	snap := s.state
	s.mu.Unlock()

	if s.opts.ShouldStart != nil && !s.opts.ShouldStart(snap, ev) {
		s.mu.Lock()
		if s.session == sess {
			sess.abandoned = true
			s.debug("session %s abandoned before start", sess.id)
		}
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	if s.session != sess || s.state.Phase != PhasePressed {
		s.mu.Unlock()
		return
	}
	s.state.Phase = PhaseDragging
	snap = s.state
	s.debug("session %s dragging", sess.id)
	s.mu.Unlock()

	if s.opts.OnStart != nil {
		s.opts.OnStart(snap, ev)
	}
}

// move handles pointer motion for a session.
func (s *Sensor) move(sess *session, cfg Config, ev *pointer.Event) {
	s.mu.Lock()
	if s.session != sess || !s.state.Phase.Active() {
		s.mu.Unlock()
		return
	}

	s.sampleLocked(ev, cfg.Axis)
	ev.PreventDefault()

	if s.state.Phase == PhasePressed {
		if sess.abandoned {
			s.mu.Unlock()
			return
		}

		offset, distance := s.state.Offset, s.state.Distance
		if cfg.Delay > 0 && cfg.Tolerance.Exceeded(offset, distance) {
			s.mu.Unlock()
			s.cancel(sess)
			return
		}
		if cfg.Distance.IsSet() && cfg.Distance.Exceeded(offset, distance) {
			if cfg.Tolerance.Exceeded(offset, distance) {
				s.mu.Unlock()
				s.cancel(sess)
				return
			}
			s.mu.Unlock()
			s.start(sess, ev)
			s.deliverMove(sess, ev)
			return
		}

		s.mu.Unlock()
		return
	}

	s.mu.Unlock()
	s.deliverMove(sess, ev)
}

// deliverMove fires OnMove for a Dragging session.
func (s *Sensor) deliverMove(sess *session, ev *pointer.Event) {
	s.mu.Lock()
	if s.session != sess || s.state.Phase != PhaseDragging {
		s.mu.Unlock()
		return
	}
	snap := s.state
	s.mu.Unlock()

	if s.opts.ShouldMove != nil && !s.opts.ShouldMove(snap, ev) {
		return
	}
	if s.opts.OnMove != nil {
		s.opts.OnMove(snap, ev)
	}
}

// end handles the release that finishes a session.
func (s *Sensor) end(sess *session, ev *pointer.Event) {
	s.mu.Lock()
	if s.session != sess {
		s.mu.Unlock()
		return
	}

	ev.PreventDefault()
	s.teardownLocked()
	s.state.Phase = PhaseEnded
	s.state.Time = s.eventTime(ev)
	s.state.LastLocal = s.state.Local
	snap := s.state
	s.debug("session %s ended", sess.id)
	s.mu.Unlock()

	if s.opts.OnEnd != nil {
		s.opts.OnEnd(snap, ev)
	}
}

// cancel aborts a session.
func (s *Sensor) cancel(sess *session) {
	s.mu.Lock()
	if s.session != sess {
		s.mu.Unlock()
		return
	}

	s.teardownLocked()
	s.state.Phase = PhaseCancelled
	s.state.Time = s.clock.Now()
	s.state.LastLocal = s.state.Local
	snap := s.state
	s.debug("session %s cancelled", sess.id)
	s.mu.Unlock()

	if s.opts.OnCancel != nil {
		s.opts.OnCancel(snap)
	}
}

// teardownLocked releases the session's listeners and timer.
// Caller must hold s.mu.
func (s *Sensor) teardownLocked() {
	sess := s.session
	if sess == nil {
		return
	}
	if sess.timer != nil {
		sess.timer.Stop()
		sess.timer = nil
	}
	if sess.unbind != nil {
		sess.unbind()
		sess.unbind = nil
	}
	s.session = nil
}

// sampleLocked records a new pointer sample and recomputes kinematics.
// Caller must hold s.mu.
func (s *Sensor) sampleLocked(ev *pointer.Event, axis Axis) {
	prev := s.state
	c := pointer.Extract(ev)
	now := s.eventTime(ev)

	offset := mask(c.Sub(prev.Initial), axis)
	distance := offset.Len()

	elapsed := float64(now.Sub(prev.Time)) / float64(time.Millisecond)
	if elapsed < 1 {
		elapsed = 1
	}

	s.state.Coordinates = c
	s.state.Previous = prev.Coordinates
	s.state.Offset = offset
	s.state.Local = prev.LastLocal.Add(offset)
	s.state.Distance = distance
	s.state.Velocity = distance / elapsed
	s.state.Time = now
}

// eventTime returns the event timestamp, or the clock time if it has none.
func (s *Sensor) eventTime(ev *pointer.Event) time.Time {
	if ev != nil && !ev.Timestamp.IsZero() {
		return ev.Timestamp
	}
	return s.clock.Now()
}

func (s *Sensor) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
