// Package grid maps between pixel coordinates and slot indexes in a
// multi-row grid of equally sized cells, and reorders the slices backing it.
package grid

import "math"

// Settings describes the cell layout of a grid.
type Settings struct {
	BoxesPerRow int
	RowHeight   float64
	ColumnWidth float64
}

// NewSettings derives the column width from the container width.
func NewSettings(width float64, boxesPerRow int, rowHeight float64) Settings {
	s := Settings{BoxesPerRow: boxesPerRow, RowHeight: rowHeight}
	if boxesPerRow > 0 {
		s.ColumnWidth = width / float64(boxesPerRow)
	}
	return s
}

// Valid returns true if every dimension of the grid is positive.
func (s Settings) Valid() bool {
	return s.BoxesPerRow > 0 && s.RowHeight > 0 && s.ColumnWidth > 0
}

// Resize returns s with the column width recomputed for a new container width.
func (s Settings) Resize(width float64) Settings {
	return NewSettings(width, s.BoxesPerRow, s.RowHeight)
}

// Point is a position relative to the grid origin.
type Point struct {
	X float64
	Y float64
}

// IndexFromCoordinates returns the slot under (x, y). An index at or past
// count collapses to count, meaning "append at the end". A degenerate grid
// always yields 0.
func IndexFromCoordinates(x, y float64, g Settings, count int) int {
	if !g.Valid() {
		return 0
	}
	index := int(math.Floor(y/g.RowHeight))*g.BoxesPerRow + int(math.Floor(x/g.ColumnWidth))
	if index >= count {
		return count
	}
	return index
}

// PositionForIndex returns the top-left corner of slot i. When displaced is
// non-nil, every index at or after *displaced moves one slot forward to
// leave room for an incoming item.
func PositionForIndex(i int, g Settings, displaced *int) Point {
	if g.BoxesPerRow <= 0 {
		return Point{}
	}
	index := i
	if displaced != nil && i >= *displaced {
		index = i + 1
	}
	return Point{
		X: float64(index%g.BoxesPerRow) * g.ColumnWidth,
		Y: float64(index/g.BoxesPerRow) * g.RowHeight,
	}
}

// DragPosition returns where the item that started in slot index sits after
// being dragged by (dx, dy). With center set the point is the item's center
// instead of its top-left corner.
func DragPosition(index int, g Settings, dx, dy float64, center bool) Point {
	p := PositionForIndex(index, g, nil)
	p.X += dx
	p.Y += dy
	if center {
		p.X += g.ColumnWidth / 2
		p.Y += g.RowHeight / 2
	}
	return p
}

// TargetIndex returns the slot an item dragged from startIndex by (dx, dy)
// should land in. The hit test uses the item's center.
func TargetIndex(startIndex int, g Settings, count int, dx, dy float64) int {
	p := DragPosition(startIndex, g, dx, dy, true)
	return IndexFromCoordinates(p.X, p.Y, g, count)
}
