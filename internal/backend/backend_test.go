package backend

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/griddrop/internal/input/pointer"
)

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(20, 5)
	b.Init()

	cell := Cell{Rune: 'X', Style: Style{Fg: ColorRed, Bg: ColorDefault}}
	b.SetCell(3, 2, cell)

	if got := b.GetCell(3, 2); got != cell {
		t.Errorf("cell mismatch: expected %+v, got %+v", cell, got)
	}

	// Out of bounds should be ignored/return empty
	b.SetCell(-1, 0, cell)
	b.SetCell(100, 0, cell)
	if got := b.GetCell(-1, 0); got != EmptyCell() {
		t.Error("out of bounds should return empty cell")
	}
}

func TestNullBackendFill(t *testing.T) {
	b := NewNullBackend(10, 4)
	b.Init()

	b.Fill(Rect{Left: -2, Top: 1, Right: 3, Bottom: 3}, Cell{Rune: '#', Style: DefaultStyle})

	want := []string{"          ", "###       ", "###       ", "          "}
	for y, row := range want {
		if got := b.Row(y); got != row {
			t.Errorf("row %d = %q, want %q", y, got, row)
		}
	}
}

func TestDrawText(t *testing.T) {
	b := NewNullBackend(10, 1)
	b.Init()

	end := DrawText(b, 2, 0, "abc", DefaultStyle)
	if end != 5 {
		t.Errorf("DrawText returned %d, want 5", end)
	}
	if got := b.Row(0); got != "  abc     " {
		t.Errorf("row = %q", got)
	}
}

func TestNullBackendPostFunc(t *testing.T) {
	b := NewNullBackend(10, 1)
	b.Init()

	called := false
	if err := b.PostFunc(func() { called = true }); err != nil {
		t.Fatalf("PostFunc: %v", err)
	}
	ev := b.PollEvent()
	if ev.Type != EventInterrupt {
		t.Fatalf("event type = %v, want EventInterrupt", ev.Type)
	}
	ev.Fn()
	if !called {
		t.Error("posted function not returned")
	}

	b.Shutdown()
	if err := b.PostFunc(func() {}); err != ErrClosed {
		t.Errorf("PostFunc after Shutdown = %v, want ErrClosed", err)
	}
}

func TestNullBackendResize(t *testing.T) {
	b := NewNullBackend(10, 1)
	b.Init()

	b.Resize(30, 8)
	if w, h := b.Size(); w != 30 || h != 8 {
		t.Errorf("Size = (%d, %d), want (30, 8)", w, h)
	}
	ev := b.PollEvent()
	if ev.Type != EventResize || ev.Width != 30 || ev.Height != 8 {
		t.Errorf("resize event = %+v", ev)
	}
}

func kinds(events []*pointer.Event) []pointer.Kind {
	out := make([]pointer.Kind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}

func equalKinds(a, b []pointer.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMouseTracker(t *testing.T) {
	now := time.Unix(100, 0)

	tests := []struct {
		name    string
		reports []tcell.ButtonMask
		pos     [][2]int
		want    []pointer.Kind // events from the last report
	}{
		{
			name:    "first report is a move",
			reports: []tcell.ButtonMask{tcell.ButtonNone},
			pos:     [][2]int{{1, 1}},
			want:    []pointer.Kind{pointer.KindMove},
		},
		{
			name:    "press",
			reports: []tcell.ButtonMask{tcell.ButtonNone, tcell.Button1},
			pos:     [][2]int{{1, 1}, {1, 1}},
			want:    []pointer.Kind{pointer.KindPress},
		},
		{
			name:    "drag while held",
			reports: []tcell.ButtonMask{tcell.Button1, tcell.Button1},
			pos:     [][2]int{{1, 1}, {4, 2}},
			want:    []pointer.Kind{pointer.KindMove},
		},
		{
			name:    "held without moving",
			reports: []tcell.ButtonMask{tcell.Button1, tcell.Button1},
			pos:     [][2]int{{1, 1}, {1, 1}},
			want:    nil,
		},
		{
			name:    "release in place",
			reports: []tcell.ButtonMask{tcell.Button1, tcell.ButtonNone},
			pos:     [][2]int{{1, 1}, {1, 1}},
			want:    []pointer.Kind{pointer.KindRelease},
		},
		{
			name:    "release after moving",
			reports: []tcell.ButtonMask{tcell.Button1, tcell.ButtonNone},
			pos:     [][2]int{{1, 1}, {3, 3}},
			want:    []pointer.Kind{pointer.KindMove, pointer.KindRelease},
		},
		{
			name:    "press after moving",
			reports: []tcell.ButtonMask{tcell.ButtonNone, tcell.Button1},
			pos:     [][2]int{{1, 1}, {5, 5}},
			want:    []pointer.Kind{pointer.KindPress},
		},
		{
			name:    "secondary press opens a context menu",
			reports: []tcell.ButtonMask{tcell.ButtonNone, tcell.Button2},
			pos:     [][2]int{{1, 1}, {1, 1}},
			want:    []pointer.Kind{pointer.KindPress, pointer.KindContextMenu},
		},
		{
			name:    "button swap releases first",
			reports: []tcell.ButtonMask{tcell.Button1, tcell.Button3},
			pos:     [][2]int{{1, 1}, {1, 1}},
			want:    []pointer.Kind{pointer.KindRelease, pointer.KindPress},
		},
		{
			name:    "wheel is ignored",
			reports: []tcell.ButtonMask{tcell.ButtonNone, tcell.WheelUp},
			pos:     [][2]int{{1, 1}, {1, 1}},
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m mouseTracker
			var got []*pointer.Event
			for i, b := range tt.reports {
				got = m.update(b, tt.pos[i][0], tt.pos[i][1], pointer.ModNone, now)
			}
			if !equalKinds(kinds(got), tt.want) {
				t.Errorf("kinds = %v, want %v", kinds(got), tt.want)
			}
		})
	}
}

func TestMouseTrackerEventFields(t *testing.T) {
	now := time.Unix(100, 0)
	var m mouseTracker

	got := m.update(tcell.Button1, 7, 3, pointer.ModShift, now)
	if len(got) != 1 {
		t.Fatalf("expected one event, got %d", len(got))
	}
	ev := got[0]
	if ev.Kind != pointer.KindPress || ev.Button != pointer.ButtonPrimary {
		t.Errorf("event = %v/%v, want press/primary", ev.Kind, ev.Button)
	}
	if ev.X != 7 || ev.Y != 3 {
		t.Errorf("position = (%v, %v), want (7, 3)", ev.X, ev.Y)
	}
	if !ev.Modifiers.Has(pointer.ModShift) {
		t.Error("modifiers not carried")
	}
	if !ev.Timestamp.Equal(now) || !ev.Cancelable {
		t.Errorf("timestamp/cancelable = %v/%v", ev.Timestamp, ev.Cancelable)
	}
	if !ev.IsPrimaryPress() {
		t.Error("left button press should be a primary press")
	}
}

func TestMouseTrackerReleaseCarriesFinalPosition(t *testing.T) {
	now := time.Unix(100, 0)
	var m mouseTracker

	m.update(tcell.Button1, 2, 2, pointer.ModNone, now)
	got := m.update(tcell.ButtonNone, 9, 4, pointer.ModNone, now)
	if len(got) != 2 {
		t.Fatalf("expected move and release, got %v", kinds(got))
	}
	for _, ev := range got {
		if ev.X != 9 || ev.Y != 4 {
			t.Errorf("%v at (%v, %v), want (9, 4)", ev.Kind, ev.X, ev.Y)
		}
	}
	if got[0].Kind != pointer.KindMove || got[1].Kind != pointer.KindRelease {
		t.Errorf("kinds = %v, want [move release]", kinds(got))
	}
}

func newSimTerminal(t *testing.T) *Terminal {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	screen.SetSize(40, 10)
	t.Cleanup(term.Shutdown)
	return term
}

// pollType polls until an event of the given type arrives.
func pollType(t *testing.T, term *Terminal, want EventType) Event {
	t.Helper()
	ch := make(chan Event, 1)
	go func() {
		for {
			ev := term.PollEvent()
			if ev.Type == want {
				ch <- ev
				return
			}
		}
	}()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for event type %v", want)
		return Event{}
	}
}

func TestTerminalCells(t *testing.T) {
	term := newSimTerminal(t)

	style := Style{Fg: ColorGreen, Bg: ColorDefault, Bold: true}
	term.SetCell(2, 1, Cell{Rune: 'Z', Style: style})
	got := term.GetCell(2, 1)
	if got.Rune != 'Z' || got.Style != style {
		t.Errorf("GetCell = %+v, want Z with %+v", got, style)
	}

	term.Fill(Rect{Left: 0, Top: 0, Right: 3, Bottom: 1}, Cell{Rune: '-', Style: DefaultStyle})
	for x := 0; x < 3; x++ {
		if r := term.GetCell(x, 0).Rune; r != '-' {
			t.Errorf("cell %d = %q, want '-'", x, r)
		}
	}

	term.Clear()
	if r := term.GetCell(2, 1).Rune; r != ' ' {
		t.Errorf("cell after Clear = %q", r)
	}
}

func TestTerminalPostFunc(t *testing.T) {
	term := newSimTerminal(t)

	ran := make(chan struct{}, 1)
	if err := term.PostFunc(func() { ran <- struct{}{} }); err != nil {
		t.Fatalf("PostFunc: %v", err)
	}
	ev := pollType(t, term, EventInterrupt)
	ev.Fn()
	select {
	case <-ran:
	default:
		t.Error("posted function was not delivered")
	}
}

func TestTerminalMouseTranslation(t *testing.T) {
	term := newSimTerminal(t)
	screen := term.screen.(tcell.SimulationScreen)

	screen.InjectMouse(5, 2, tcell.Button1, tcell.ModNone)
	ev := pollType(t, term, EventPointer)
	if ev.Pointer.Kind != pointer.KindPress || ev.Pointer.X != 5 || ev.Pointer.Y != 2 {
		t.Errorf("first pointer event = %v at (%v, %v)", ev.Pointer.Kind, ev.Pointer.X, ev.Pointer.Y)
	}

	screen.InjectMouse(9, 2, tcell.Button1, tcell.ModNone)
	ev = pollType(t, term, EventPointer)
	if ev.Pointer.Kind != pointer.KindMove || ev.Pointer.X != 9 {
		t.Errorf("second pointer event = %v at x=%v", ev.Pointer.Kind, ev.Pointer.X)
	}

	screen.InjectMouse(9, 2, tcell.ButtonNone, tcell.ModNone)
	ev = pollType(t, term, EventPointer)
	if ev.Pointer.Kind != pointer.KindRelease || ev.Pointer.Button != pointer.ButtonPrimary {
		t.Errorf("third pointer event = %v/%v", ev.Pointer.Kind, ev.Pointer.Button)
	}
}

func TestTerminalKey(t *testing.T) {
	term := newSimTerminal(t)
	screen := term.screen.(tcell.SimulationScreen)

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	ev := pollType(t, term, EventKey)
	if ev.Key != KeyRune || ev.Rune != 'q' {
		t.Errorf("key event = %v %q", ev.Key, ev.Rune)
	}
}
