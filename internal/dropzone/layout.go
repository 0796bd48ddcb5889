package dropzone

import "github.com/dshills/griddrop/internal/grid"

// Slot is where an item is drawn.
type Slot struct {
	// Index is the item's index in the zone's backing list.
	Index int

	// Position is the item's resting place relative to the zone origin.
	Position grid.Point

	// Dragging is set for the item being dragged.
	Dragging bool

	// TraverseTarget is set for the item whose index an incoming traversal
	// has reserved.
	TraverseTarget bool
}

// Layout returns the resting position of every item. Items make room for a
// drag in progress, whether it started in this zone or is traversing into
// it. A zone without a usable grid has no layout.
func (z *Zone) Layout() []Slot {
	if !z.grid.Valid() {
		return nil
	}

	indexes := grid.Indexes(z.count)
	order := indexes
	if z.placeholder != nil {
		order = grid.Swap(indexes, z.placeholder.startIndex, z.placeholder.targetIndex)
	}

	displaced := z.traverseIndex()
	slots := make([]Slot, z.count)
	for i := range slots {
		slots[i] = Slot{
			Index:          i,
			Position:       grid.PositionForIndex(grid.IndexOf(order, i), z.grid, displaced),
			Dragging:       i == z.draggingIndex,
			TraverseTarget: displaced != nil && *displaced == i,
		}
	}
	return slots
}

// PlaceholderPosition returns where an item entering this zone through a
// traversal would rest.
func (z *Zone) PlaceholderPosition() (grid.Point, bool) {
	displaced := z.traverseIndex()
	if displaced == nil || !z.grid.Valid() {
		return grid.Point{}, false
	}
	return grid.PositionForIndex(*displaced, z.grid, nil), true
}
