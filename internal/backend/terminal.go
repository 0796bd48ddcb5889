package backend

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/griddrop/internal/input/pointer"
)

// Terminal implements Backend using tcell.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex

	// Owned by the polling goroutine.
	mouse   mouseTracker
	pending []Event
}

// NewTerminal creates a terminal backend on the controlling terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen), nil
}

// NewTerminalWithScreen wraps an existing screen, such as a
// tcell.SimulationScreen in tests.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	// Motion reporting is needed to see drags, not only clicks.
	t.screen.EnableMouse(tcell.MouseMotionEvents)
	t.screen.EnableFocus()
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) SetCell(x, y int, cell Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetContent(x, y, cell.Rune, nil, convertStyle(cell.Style))
}

func (t *Terminal) GetCell(x, y int) Cell {
	t.mu.Lock()
	defer t.mu.Unlock()

	mainc, _, style, _ := t.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	if mainc == 0 {
		mainc = ' '
	}
	return Cell{Rune: mainc, Style: convertTcellStyle(style)}
}

func (t *Terminal) Fill(rect Rect, cell Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	style := convertStyle(cell.Style)
	width, height := t.screen.Size()
	for y := max(rect.Top, 0); y < rect.Bottom && y < height; y++ {
		for x := max(rect.Left, 0); x < rect.Right && x < width; x++ {
			t.screen.SetContent(x, y, cell.Rune, nil, style)
		}
	}
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

// PollEvent returns the next event. A single mouse report can produce
// several pointer events; the extras are queued and returned by the
// following calls.
func (t *Terminal) PollEvent() Event {
	for {
		if len(t.pending) > 0 {
			ev := t.pending[0]
			t.pending = t.pending[1:]
			return ev
		}
		ev := t.screen.PollEvent()
		if ev == nil {
			return Event{Type: EventNone}
		}
		events := t.convertEvent(ev)
		if len(events) == 0 {
			continue
		}
		t.pending = append(t.pending, events...)
	}
}

func (t *Terminal) PostFunc(fn func()) error {
	if err := t.screen.PostEvent(tcell.NewEventInterrupt(fn)); err != nil {
		return ErrClosed
	}
	return nil
}

// convertEvent converts a tcell event into zero or more backend events.
func (t *Terminal) convertEvent(ev tcell.Event) []Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return []Event{{
			Type: EventKey,
			Key:  convertKey(e.Key()),
			Rune: e.Rune(),
			Mod:  convertMod(e.Modifiers()),
		}}

	case *tcell.EventMouse:
		x, y := e.Position()
		ptrs := t.mouse.update(e.Buttons(), x, y, convertPointerMod(e.Modifiers()), e.When())
		out := make([]Event, 0, len(ptrs))
		for _, p := range ptrs {
			out = append(out, Event{Type: EventPointer, Pointer: p})
		}
		return out

	case *tcell.EventResize:
		w, h := e.Size()
		return []Event{{Type: EventResize, Width: w, Height: h}}

	case *tcell.EventFocus:
		return []Event{{Type: EventFocus, Focused: e.Focused}}

	case *tcell.EventInterrupt:
		fn, ok := e.Data().(func())
		if !ok {
			return nil
		}
		return []Event{{Type: EventInterrupt, Fn: fn}}

	default:
		return nil
	}
}

// mouseTracker turns tcell's button-state reports into press, move and
// release transitions.
type mouseTracker struct {
	buttons tcell.ButtonMask
	x, y    int
	seen    bool
}

var trackedButtons = []struct {
	mask   tcell.ButtonMask
	button pointer.Button
}{
	{tcell.Button1, pointer.ButtonPrimary},
	{tcell.Button2, pointer.ButtonSecondary},
	{tcell.Button3, pointer.ButtonMiddle},
	{tcell.Button4, pointer.ButtonBack},
	{tcell.Button5, pointer.ButtonForward},
}

const buttonMask = tcell.Button1 | tcell.Button2 | tcell.Button3 | tcell.Button4 | tcell.Button5

// update records a report and returns the pointer events it implies.
// Motion while a button was held comes first, so a drag sees the final
// position before its release. Releases come before presses; a secondary
// press is followed by a context menu event. Wheel-only reports produce
// nothing.
func (m *mouseTracker) update(buttons tcell.ButtonMask, x, y int, mods pointer.Modifier, when time.Time) []*pointer.Event {
	buttons &= buttonMask
	held := m.buttons
	moved := !m.seen || x != m.x || y != m.y
	released := m.buttons &^ buttons
	pressed := buttons &^ m.buttons
	m.buttons = buttons
	m.x, m.y = x, y
	m.seen = true

	fx, fy := float64(x), float64(y)
	var out []*pointer.Event
	emit := func(kind pointer.Kind, b pointer.Button) {
		ev := pointer.NewMouse(kind, b, fx, fy, when)
		ev.Modifiers = mods
		out = append(out, ev)
	}

	if moved && (held != 0 || released == 0 && pressed == 0) {
		emit(pointer.KindMove, pointer.ButtonNone)
	}
	for _, tb := range trackedButtons {
		if released&tb.mask != 0 {
			emit(pointer.KindRelease, tb.button)
		}
	}
	for _, tb := range trackedButtons {
		if pressed&tb.mask != 0 {
			emit(pointer.KindPress, tb.button)
			if tb.button == pointer.ButtonSecondary {
				emit(pointer.KindContextMenu, tb.button)
			}
		}
	}
	return out
}

// convertStyle converts our Style to tcell.Style.
func convertStyle(s Style) tcell.Style {
	style := tcell.StyleDefault
	if s.Fg != ColorDefault {
		style = style.Foreground(tcell.PaletteColor(int(s.Fg)))
	}
	if s.Bg != ColorDefault {
		style = style.Background(tcell.PaletteColor(int(s.Bg)))
	}
	return style.Bold(s.Bold).Dim(s.Dim).Reverse(s.Reverse)
}

// convertTcellStyle converts tcell.Style back to our Style.
func convertTcellStyle(ts tcell.Style) Style {
	fg, bg, attrs := ts.Decompose()
	return Style{
		Fg:      convertTcellColor(fg),
		Bg:      convertTcellColor(bg),
		Bold:    attrs&tcell.AttrBold != 0,
		Dim:     attrs&tcell.AttrDim != 0,
		Reverse: attrs&tcell.AttrReverse != 0,
	}
}

func convertTcellColor(tc tcell.Color) Color {
	if tc == tcell.ColorDefault || tc < tcell.ColorValid || tc >= tcell.ColorIsRGB {
		return ColorDefault
	}
	return Color(tc - tcell.ColorValid)
}

func convertKey(k tcell.Key) Key {
	switch k {
	case tcell.KeyRune:
		return KeyRune
	case tcell.KeyEscape:
		return KeyEscape
	case tcell.KeyEnter:
		return KeyEnter
	case tcell.KeyTab:
		return KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyBackspace
	case tcell.KeyUp:
		return KeyUp
	case tcell.KeyDown:
		return KeyDown
	case tcell.KeyLeft:
		return KeyLeft
	case tcell.KeyRight:
		return KeyRight
	case tcell.KeyCtrlC:
		return KeyCtrlC
	case tcell.KeyCtrlR:
		return KeyCtrlR
	default:
		return KeyNone
	}
}

func convertMod(m tcell.ModMask) ModMask {
	var result ModMask
	if m&tcell.ModShift != 0 {
		result |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= ModMeta
	}
	return result
}

func convertPointerMod(m tcell.ModMask) pointer.Modifier {
	var result pointer.Modifier
	if m&tcell.ModShift != 0 {
		result |= pointer.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= pointer.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= pointer.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= pointer.ModMeta
	}
	return result
}
