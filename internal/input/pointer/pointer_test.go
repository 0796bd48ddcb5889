package pointer

import (
	"testing"
	"time"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindNone, "none"},
		{KindPress, "press"},
		{KindMove, "move"},
		{KindRelease, "release"},
		{KindTouchCancel, "touch-cancel"},
		{KindVisibilityChange, "visibility-change"},
		{KindResize, "resize"},
		{KindContextMenu, "context-menu"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestButtonString(t *testing.T) {
	tests := []struct {
		button   Button
		expected string
	}{
		{ButtonNone, "none"},
		{ButtonPrimary, "primary"},
		{ButtonMiddle, "middle"},
		{ButtonSecondary, "secondary"},
		{ButtonBack, "back"},
		{ButtonForward, "forward"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.button.String(); got != tt.expected {
				t.Errorf("Button.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCoordinatesMath(t *testing.T) {
	a := Coordinates{X: 10, Y: 20}
	b := Coordinates{X: 13, Y: 24}

	if got := b.Sub(a); got != (Coordinates{X: 3, Y: 4}) {
		t.Errorf("Sub = %v, want {3 4}", got)
	}
	if got := b.Sub(a).Len(); got != 5 {
		t.Errorf("Len = %v, want 5", got)
	}
	if got := a.Add(Coordinates{X: 1, Y: 1}); got != (Coordinates{X: 11, Y: 21}) {
		t.Errorf("Add = %v, want {11 21}", got)
	}
	if !(Coordinates{}).IsZero() {
		t.Error("zero coordinates should report IsZero")
	}
}

func TestExtract(t *testing.T) {
	tests := map[string]struct {
		ev       *Event
		expected Coordinates
	}{
		"nil event": {
			ev:       nil,
			expected: Coordinates{},
		},
		"mouse": {
			ev:       &Event{Device: DeviceMouse, X: 12, Y: 34},
			expected: Coordinates{X: 12, Y: 34},
		},
		"changed touch wins": {
			ev: &Event{
				Device:         DeviceTouch,
				ChangedTouches: []Touch{{X: 1, Y: 2}, {X: 9, Y: 9}},
				Touches:        []Touch{{X: 5, Y: 6}},
			},
			expected: Coordinates{X: 1, Y: 2},
		},
		"falls back to active touch": {
			ev: &Event{
				Device:  DeviceTouch,
				Touches: []Touch{{X: 5, Y: 6}},
			},
			expected: Coordinates{X: 5, Y: 6},
		},
		"no touches": {
			ev:       &Event{Device: DeviceTouch},
			expected: Coordinates{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := Extract(tt.ev); got != tt.expected {
				t.Errorf("Extract() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestPreventDefault(t *testing.T) {
	ev := &Event{Kind: KindRelease}
	ev.PreventDefault()
	if ev.DefaultPrevented() {
		t.Error("non-cancelable event should not be prevented")
	}

	ev = NewMouse(KindRelease, ButtonPrimary, 0, 0, time.Now())
	ev.PreventDefault()
	if !ev.DefaultPrevented() {
		t.Error("cancelable event should be prevented")
	}
}

func TestIsPrimaryPress(t *testing.T) {
	now := time.Now()
	tests := map[string]struct {
		ev       *Event
		expected bool
	}{
		"primary mouse":   {NewMouse(KindPress, ButtonPrimary, 0, 0, now), true},
		"secondary mouse": {NewMouse(KindPress, ButtonSecondary, 0, 0, now), false},
		"touch start":     {NewTouch(KindPress, 0, 0, now), true},
		"move":            {NewMouse(KindMove, ButtonPrimary, 0, 0, now), false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.ev.IsPrimaryPress(); got != tt.expected {
				t.Errorf("IsPrimaryPress() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNewTouchRelease(t *testing.T) {
	ev := NewTouch(KindRelease, 3, 4, time.Now())
	if len(ev.Touches) != 0 {
		t.Errorf("release should have no active touches, got %d", len(ev.Touches))
	}
	if got := Extract(ev); got != (Coordinates{X: 3, Y: 4}) {
		t.Errorf("Extract() = %v, want {3 4}", got)
	}
}

func TestTargetBindDispatch(t *testing.T) {
	target := NewTarget()
	var moves, releases int

	unbind := target.Bind(
		Binding{Kind: KindMove, Fn: func(*Event) { moves++ }},
		Binding{Kind: KindRelease, Fn: func(*Event) { releases++ }},
		Binding{Kind: KindResize, Fn: nil},
	)

	if got := target.ListenerCount(); got != 2 {
		t.Fatalf("ListenerCount() = %d, want 2", got)
	}

	target.Dispatch(&Event{Kind: KindMove})
	target.Dispatch(&Event{Kind: KindMove})
	target.Dispatch(&Event{Kind: KindRelease})
	target.Dispatch(&Event{Kind: KindResize})
	target.Dispatch(nil)

	if moves != 2 || releases != 1 {
		t.Errorf("moves=%d releases=%d, want 2 and 1", moves, releases)
	}

	unbind()
	unbind()

	if target.ListenerCount() != 0 {
		t.Errorf("ListenerCount() after unbind = %d, want 0", target.ListenerCount())
	}
	if target.Has(KindMove) {
		t.Error("Has(KindMove) should be false after unbind")
	}

	target.Dispatch(&Event{Kind: KindMove})
	if moves != 2 {
		t.Errorf("listener fired after unbind: moves=%d", moves)
	}
}

func TestTargetUnbindDuringDispatch(t *testing.T) {
	target := NewTarget()
	var second int
	var unbind func()

	unbind = target.Bind(
		Binding{Kind: KindRelease, Fn: func(*Event) { unbind() }},
		Binding{Kind: KindRelease, Fn: func(*Event) { second++ }},
	)

	target.Dispatch(&Event{Kind: KindRelease})

	if second != 0 {
		t.Errorf("listener removed mid-dispatch fired %d times", second)
	}
}

func TestTargetIndependentBindings(t *testing.T) {
	target := NewTarget()
	var a, b int

	unbindA := target.Bind(Binding{Kind: KindMove, Fn: func(*Event) { a++ }})
	unbindB := target.Bind(Binding{Kind: KindMove, Fn: func(*Event) { b++ }})
	defer unbindB()

	unbindA()
	target.Dispatch(&Event{Kind: KindMove})

	if a != 0 || b != 1 {
		t.Errorf("a=%d b=%d, want 0 and 1", a, b)
	}
}
