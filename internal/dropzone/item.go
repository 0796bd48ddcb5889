package dropzone

import (
	"github.com/dshills/griddrop/internal/gesture"
	"github.com/dshills/griddrop/internal/grid"
	"github.com/dshills/griddrop/internal/input/pointer"
)

// Item follows the drag of one item of a zone.
type Item struct {
	zone     *Zone
	index    int
	start    grid.Point
	offset   pointer.Coordinates
	dragging bool
}

// Item returns the drag handle for item i.
func (z *Zone) Item(i int) *Item {
	return &Item{zone: z, index: i}
}

// Index returns the item's index in its zone.
func (it *Item) Index() int {
	return it.index
}

// Dragging reports whether Begin accepted a drag that has not ended.
func (it *Item) Dragging() bool {
	return it.dragging
}

// Begin starts a drag of the item. It returns false when the zone disables
// dragging. Every zone is measured again before the drag starts.
func (it *Item) Begin() bool {
	z := it.zone
	if z.opts.DisableDrag || it.index < 0 || it.index >= z.count {
		return false
	}

	z.coord.MeasureAll()
	it.start = it.restingPosition()
	it.offset = pointer.Coordinates{}
	it.dragging = true
	return true
}

// Move advances the drag by the pointer offset since the press.
func (it *Item) Move(offset pointer.Coordinates) {
	if !it.dragging {
		return
	}
	it.offset = offset
	p := it.Position()
	it.zone.move(it.index, p.X, p.Y, offset.X, offset.Y)
}

// End drops the item at the pointer offset since the press.
func (it *Item) End(offset pointer.Coordinates) {
	if !it.dragging {
		return
	}
	it.offset = offset
	p := it.Position()
	it.dragging = false
	it.zone.end(it.index, p.X, p.Y, offset.X, offset.Y)
}

// Cancel abandons the drag. Nothing is reordered.
func (it *Item) Cancel() {
	if !it.dragging {
		return
	}
	it.dragging = false
	it.offset = pointer.Coordinates{}
	it.zone.cancel()
}

// Position returns where the item is drawn relative to its zone: under the
// pointer while dragging, otherwise its resting slot.
func (it *Item) Position() grid.Point {
	if !it.dragging {
		return it.restingPosition()
	}
	return grid.Point{X: it.start.X + it.offset.X, Y: it.start.Y + it.offset.Y}
}

func (it *Item) restingPosition() grid.Point {
	for _, s := range it.zone.Layout() {
		if s.Index == it.index {
			return s.Position
		}
	}
	return grid.PositionForIndex(it.index, it.zone.grid, nil)
}

// Options adapts the item to a gesture.Sensor of its own.
func (it *Item) Options() gesture.Options {
	return gesture.Options{
		ShouldStart: func(gesture.State, *pointer.Event) bool { return it.Begin() },
		OnMove:      func(s gesture.State, _ *pointer.Event) { it.Move(s.Offset) },
		OnEnd:       func(s gesture.State, _ *pointer.Event) { it.End(s.Offset) },
		OnCancel:    func(gesture.State) { it.Cancel() },
	}
}
