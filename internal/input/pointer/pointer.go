package pointer

import (
	"math"
	"time"
)

// Kind identifies what an input event means to a drag session.
type Kind uint8

const (
	// KindNone indicates an unknown or empty event.
	KindNone Kind = iota
	// KindPress is a button press or touch start.
	KindPress
	// KindMove is pointer motion, with or without a button held.
	KindMove
	// KindRelease is a button release or touch end.
	KindRelease
	// KindTouchCancel is raised when the platform aborts a touch sequence.
	KindTouchCancel
	// KindVisibilityChange is raised when the host loses visibility or focus.
	KindVisibilityChange
	// KindResize is raised when the host surface changes size.
	KindResize
	// KindContextMenu is raised when the host would open a context menu.
	KindContextMenu
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindPress:
		return "press"
	case KindMove:
		return "move"
	case KindRelease:
		return "release"
	case KindTouchCancel:
		return "touch-cancel"
	case KindVisibilityChange:
		return "visibility-change"
	case KindResize:
		return "resize"
	case KindContextMenu:
		return "context-menu"
	default:
		return "none"
	}
}

// Device identifies the input device that produced an event.
type Device uint8

const (
	// DeviceMouse is a mouse or other button-based pointer.
	DeviceMouse Device = iota
	// DeviceTouch is a touch surface.
	DeviceTouch
)

// String returns a string representation of the device.
func (d Device) String() string {
	if d == DeviceTouch {
		return "touch"
	}
	return "mouse"
}

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonPrimary is the primary (left) mouse button.
	ButtonPrimary
	// ButtonMiddle is the middle mouse button.
	ButtonMiddle
	// ButtonSecondary is the secondary (right) mouse button.
	ButtonSecondary
	// ButtonBack is the back navigation button.
	ButtonBack
	// ButtonForward is the forward navigation button.
	ButtonForward
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonMiddle:
		return "middle"
	case ButtonSecondary:
		return "secondary"
	case ButtonBack:
		return "back"
	case ButtonForward:
		return "forward"
	default:
		return "none"
	}
}

// Modifier represents keyboard modifier keys held during a pointer event.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0
	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota
	// ModCtrl indicates the Control key.
	ModCtrl
	// ModAlt indicates the Alt key.
	ModAlt
	// ModMeta indicates the Meta key.
	ModMeta
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// Coordinates is a position in document space.
type Coordinates struct {
	X float64
	Y float64
}

// Add returns c translated by o.
func (c Coordinates) Add(o Coordinates) Coordinates {
	return Coordinates{X: c.X + o.X, Y: c.Y + o.Y}
}

// Sub returns the vector from o to c.
func (c Coordinates) Sub(o Coordinates) Coordinates {
	return Coordinates{X: c.X - o.X, Y: c.Y - o.Y}
}

// Len returns the Euclidean norm of c.
func (c Coordinates) Len() float64 {
	return math.Hypot(c.X, c.Y)
}

// IsZero returns true if both components are zero.
func (c Coordinates) IsZero() bool {
	return c.X == 0 && c.Y == 0
}

// Touch is a single touch point.
type Touch struct {
	ID int
	X  float64
	Y  float64
}

// Coordinates returns the touch point position.
func (t Touch) Coordinates() Coordinates {
	return Coordinates{X: t.X, Y: t.Y}
}

// Event represents one pointer input event.
type Event struct {
	// Kind is what the event means to a drag session.
	Kind Kind

	// Device is the device that produced the event.
	Device Device

	// Button is the mouse button involved (mouse events only).
	Button Button

	// X and Y are the mouse position (mouse events only).
	X, Y float64

	// Touches are the currently active touch points.
	Touches []Touch

	// ChangedTouches are the touch points that changed in this event.
	ChangedTouches []Touch

	// Modifiers are any keyboard modifiers held during the event.
	Modifiers Modifier

	// Timestamp is when the event occurred.
	Timestamp time.Time

	// Cancelable reports whether the default action can be suppressed.
	Cancelable bool

	prevented bool
}

// PreventDefault suppresses the host's default action for a cancelable event.
// It has no effect on events that are not cancelable.
func (e *Event) PreventDefault() {
	if e.Cancelable {
		e.prevented = true
	}
}

// DefaultPrevented reports whether PreventDefault took effect.
func (e *Event) DefaultPrevented() bool {
	return e.prevented
}

// IsPrimaryPress returns true for a press that may start a drag: a primary
// mouse button press or any touch start.
func (e *Event) IsPrimaryPress() bool {
	if e.Kind != KindPress {
		return false
	}
	if e.Device == DeviceTouch {
		return true
	}
	return e.Button == ButtonPrimary
}

// NewMouse creates a cancelable mouse event at the given position.
func NewMouse(kind Kind, button Button, x, y float64, ts time.Time) *Event {
	return &Event{
		Kind:       kind,
		Device:     DeviceMouse,
		Button:     button,
		X:          x,
		Y:          y,
		Timestamp:  ts,
		Cancelable: true,
	}
}

// NewTouch creates a cancelable touch event with a single changed touch point.
func NewTouch(kind Kind, x, y float64, ts time.Time) *Event {
	t := Touch{X: x, Y: y}
	ev := &Event{
		Kind:           kind,
		Device:         DeviceTouch,
		ChangedTouches: []Touch{t},
		Timestamp:      ts,
		Cancelable:     true,
	}
	if kind != KindRelease && kind != KindTouchCancel {
		ev.Touches = []Touch{t}
	}
	return ev
}

// NewSignal creates a non-positional event such as a resize or visibility change.
func NewSignal(kind Kind, ts time.Time) *Event {
	return &Event{Kind: kind, Timestamp: ts}
}
