// Package backend provides the terminal abstraction the drag surface draws
// to and reads pointer input from.
package backend

import (
	"errors"
	"sync"

	"github.com/dshills/griddrop/internal/input/pointer"
)

// ErrClosed is returned when posting to a backend that has shut down.
var ErrClosed = errors.New("backend closed")

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventPointer
	EventResize
	EventFocus
	// EventInterrupt carries a function to run on the polling goroutine.
	EventInterrupt
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Pointer is the translated mouse event.
	Pointer *pointer.Event

	// Resize event fields
	Width, Height int

	// Focus event fields
	Focused bool

	// Fn is the function posted with PostFunc.
	Fn func()
}

// Key represents a keyboard key.
type Key int

const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyCtrlR
)

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// Color is a palette color index.
type Color int16

// ColorDefault is the terminal's default color.
const ColorDefault Color = -1

// The basic ANSI palette.
const (
	ColorBlack Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorGray
)

// Style is the visual style of a cell.
type Style struct {
	Fg      Color
	Bg      Color
	Bold    bool
	Dim     bool
	Reverse bool
}

// DefaultStyle uses the terminal's default colors.
var DefaultStyle = Style{Fg: ColorDefault, Bg: ColorDefault}

// Cell is a single screen cell.
type Cell struct {
	Rune  rune
	Style Style
}

// EmptyCell is a blank cell with the default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Style: DefaultStyle}
}

// Rect is a screen rectangle; Right and Bottom are exclusive.
type Rect struct {
	Left, Top, Right, Bottom int
}

// Backend defines the interface for terminal backends.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetCell sets a single cell at the given position.
	// Positions outside the terminal are silently ignored.
	SetCell(x, y int, cell Cell)

	// GetCell returns the cell at the given position.
	GetCell(x, y int) Cell

	// Fill fills a rectangular region with the given cell.
	Fill(rect Rect, cell Cell)

	// Clear clears the entire screen with the default style.
	Clear()

	// Show flushes pending changes to the display.
	Show()

	// PollEvent waits for and returns the next event. It must be called
	// from a single goroutine.
	PollEvent() Event

	// PostFunc queues fn to be returned from PollEvent as an
	// EventInterrupt. It is safe to call from any goroutine.
	PostFunc(fn func()) error
}

// DrawText draws s starting at (x, y) and returns the column after the
// last cell drawn.
func DrawText(b Backend, x, y int, s string, style Style) int {
	for _, r := range s {
		b.SetCell(x, y, Cell{Rune: r, Style: style})
		x += runeWidth(r)
	}
	return x
}

// NullBackend is an in-memory backend for testing.
type NullBackend struct {
	mu            sync.Mutex
	width, height int
	cells         [][]Cell
	events        chan Event
	closed        bool
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
	}
}

func (b *NullBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cells = newCells(b.width, b.height)
	return nil
}

func (b *NullBackend) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *NullBackend) SetCell(x, y int, cell Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x >= 0 && x < b.width && y >= 0 && y < b.height && b.cells != nil {
		b.cells[y][x] = cell
	}
}

func (b *NullBackend) GetCell(x, y int) Cell {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x >= 0 && x < b.width && y >= 0 && y < b.height && b.cells != nil {
		return b.cells[y][x]
	}
	return EmptyCell()
}

func (b *NullBackend) Fill(rect Rect, cell Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for y := max(rect.Top, 0); y < rect.Bottom && y < b.height; y++ {
		for x := max(rect.Left, 0); x < rect.Right && x < b.width; x++ {
			b.cells[y][x] = cell
		}
	}
}

func (b *NullBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cells = newCells(b.width, b.height)
}

func (b *NullBackend) Show() {}

func (b *NullBackend) PollEvent() Event {
	return <-b.events
}

func (b *NullBackend) PostFunc(fn func()) error {
	return b.Post(Event{Type: EventInterrupt, Fn: fn})
}

// Post queues an event for PollEvent. Events are dropped when the queue
// is full.
func (b *NullBackend) Post(ev Event) error {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return ErrClosed
	}
	select {
	case b.events <- ev:
	default:
	}
	return nil
}

// Resize simulates a terminal resize and queues an EventResize.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width = width
	b.height = height
	b.cells = newCells(width, height)
	b.mu.Unlock()
	_ = b.Post(Event{Type: EventResize, Width: width, Height: height})
}

// Row returns row y as a string, for assertions.
func (b *NullBackend) Row(y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= b.height || b.cells == nil {
		return ""
	}
	out := make([]rune, b.width)
	for x, c := range b.cells[y] {
		out[x] = c.Rune
	}
	return string(out)
}

func newCells(width, height int) [][]Cell {
	cells := make([][]Cell, height)
	for i := range cells {
		cells[i] = make([]Cell, width)
		for j := range cells[i] {
			cells[i][j] = EmptyCell()
		}
	}
	return cells
}
