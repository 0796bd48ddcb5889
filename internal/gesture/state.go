package gesture

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/griddrop/internal/input/pointer"
)

// Phase is the lifecycle phase of a drag session.
type Phase uint8

const (
	// PhaseIdle means no session has been pressed yet.
	PhaseIdle Phase = iota
	// PhasePressed means the pointer is down but the drag has not started.
	PhasePressed
	// PhaseDragging means the drag is active.
	PhaseDragging
	// PhaseEnded means the session finished with a release.
	PhaseEnded
	// PhaseCancelled means the session was aborted.
	PhaseCancelled
)

// String returns a string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhasePressed:
		return "pressed"
	case PhaseDragging:
		return "dragging"
	case PhaseEnded:
		return "ended"
	case PhaseCancelled:
		return "cancelled"
	default:
		return "idle"
	}
}

// Active returns true for Pressed and Dragging.
func (p Phase) Active() bool {
	return p == PhasePressed || p == PhaseDragging
}

// Terminal returns true for Ended and Cancelled.
func (p Phase) Terminal() bool {
	return p == PhaseEnded || p == PhaseCancelled
}

// State is a snapshot of one drag session.
type State struct {
	// SessionID identifies the session; it changes on every press.
	SessionID uuid.UUID

	// Phase is the lifecycle phase.
	Phase Phase

	// Coordinates is the latest pointer position.
	Coordinates pointer.Coordinates

	// Initial is the press position.
	Initial pointer.Coordinates

	// Previous is the position of the sample before Coordinates.
	Previous pointer.Coordinates

	// Offset is Coordinates - Initial with the locked axis zeroed.
	Offset pointer.Coordinates

	// Local is LastLocal + Offset: the cumulative offset across sessions.
	Local pointer.Coordinates

	// LastLocal is Local as committed by the previous session.
	LastLocal pointer.Coordinates

	// Distance is the Euclidean length of Offset.
	Distance float64

	// Velocity is Distance divided by the milliseconds since the previous sample.
	Velocity float64

	// Time is the timestamp of the latest sample.
	Time time.Time
}

// mask zeroes the component of c that the axis lock excludes.
func mask(c pointer.Coordinates, axis Axis) pointer.Coordinates {
	switch axis {
	case AxisX:
		c.Y = 0
	case AxisY:
		c.X = 0
	}
	return c
}
