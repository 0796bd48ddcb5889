package dropzone

import (
	"github.com/dshills/griddrop/internal/grid"
	"github.com/dshills/griddrop/internal/traverse"
)

// Options configure a Zone.
type Options struct {
	// BoxesPerRow is the number of columns.
	BoxesPerRow int

	// RowHeight is the height of one row.
	RowHeight float64

	// DisableDrag keeps the zone's items from being dragged.
	DisableDrag bool

	// DisableDrop keeps items from other zones from being dropped here.
	DisableDrop bool

	// Measure returns the zone's current bounds. When set, the zone is
	// measured again at the start of every drag.
	Measure func() grid.Bounds
}

// placeholder is the reorder a drag would produce if it ended now.
type placeholder struct {
	startIndex  int
	targetIndex int
}

// Zone is a grid drop zone.
type Zone struct {
	id    string
	coord *traverse.Coordinator
	opts  Options

	bounds grid.Bounds
	count  int
	grid   grid.Settings

	placeholder   *placeholder
	draggingIndex int
	closed        bool
}

// New creates a zone and registers it with coord. It panics if coord is nil:
// a zone can only exist inside a coordinator.
func New(coord *traverse.Coordinator, id string, opts Options) *Zone {
	if coord == nil {
		panic("dropzone: zone " + id + " created without a traverse.Coordinator")
	}

	z := &Zone{
		id:            id,
		coord:         coord,
		opts:          opts,
		draggingIndex: -1,
	}
	if opts.Measure != nil {
		z.bounds = opts.Measure()
	}
	z.grid = grid.NewSettings(z.bounds.Width, opts.BoxesPerRow, opts.RowHeight)
	z.register()
	return z
}

// ID returns the zone id.
func (z *Zone) ID() string {
	return z.id
}

// Bounds returns the zone's cached bounds.
func (z *Zone) Bounds() grid.Bounds {
	return z.bounds
}

// Grid returns the zone's grid settings.
func (z *Zone) Grid() grid.Settings {
	return z.grid
}

// Count returns the number of items.
func (z *Zone) Count() int {
	return z.count
}

// DragDisabled reports whether the zone's items can be dragged.
func (z *Zone) DragDisabled() bool {
	return z.opts.DisableDrag
}

// SetBounds updates the zone's rectangle and derived column width.
func (z *Zone) SetBounds(b grid.Bounds) {
	z.bounds = b
	z.grid = grid.NewSettings(b.Width, z.opts.BoxesPerRow, z.opts.RowHeight)
	z.register()
}

// SetCount updates the number of items.
func (z *Zone) SetCount(n int) {
	if n < 0 {
		n = 0
	}
	z.count = n
	z.register()
}

// SetDisableDrag toggles dragging of the zone's items.
func (z *Zone) SetDisableDrag(disabled bool) {
	z.opts.DisableDrag = disabled
}

// SetDisableDrop toggles whether other zones may drop into this one.
func (z *Zone) SetDisableDrop(disabled bool) {
	z.opts.DisableDrop = disabled
	z.register()
}

// Close removes the zone from its coordinator.
func (z *Zone) Close() {
	if z.closed {
		return
	}
	z.closed = true
	z.coord.Remove(z.id)
}

// DraggingIndex returns the index of the item being dragged, or -1.
func (z *Zone) DraggingIndex() int {
	return z.draggingIndex
}

// register pushes the zone's current geometry to the coordinator.
func (z *Zone) register() {
	if z.closed {
		return
	}
	r := traverse.Registration{
		Bounds:       z.bounds,
		Count:        z.count,
		Grid:         z.grid,
		DropDisabled: z.opts.DisableDrop,
	}
	if z.opts.Measure != nil {
		r.Refresh = z.refresh
	}
	z.coord.Register(z.id, r)
}

// refresh measures the zone for the coordinator.
func (z *Zone) refresh() grid.Bounds {
	z.bounds = z.opts.Measure()
	z.grid = grid.NewSettings(z.bounds.Width, z.opts.BoxesPerRow, z.opts.RowHeight)
	return z.bounds
}

// traverseIndex returns the slot reserved by a traversal into this zone.
func (z *Zone) traverseIndex() *int {
	t, ok := z.coord.Traversal()
	if !ok || t.Execute || t.TargetID != z.id {
		return nil
	}
	i := t.TargetIndex
	return &i
}

// targetFor resolves where an item whose top-left corner is at (x, y) after
// moving (dx, dy) from slot i would land. It returns the zone under the
// item's center and the index the item would take in this zone; when the
// item is outside this zone the index is Count (the end).
func (z *Zone) targetFor(i int, x, y, dx, dy float64) (string, int) {
	dropID, _ := z.coord.ResolveDropContainer(z.id, x+z.grid.ColumnWidth/2, y+z.grid.RowHeight/2)
	if dropID != z.id {
		return dropID, z.count
	}
	return dropID, grid.TargetIndex(i, z.grid, z.count, dx, dy)
}

// move handles a drag step of item i.
func (z *Zone) move(i int, x, y, dx, dy float64) {
	z.draggingIndex = i

	dropID, targetIndex := z.targetFor(i, x, y, dx, dy)
	if dropID != "" && dropID != z.id {
		z.coord.StartTraversal(z.id, dropID, x, y, i)
	} else {
		z.coord.EndTraversal()
	}

	if targetIndex != i {
		if z.placeholder == nil || z.placeholder.targetIndex != targetIndex {
			z.placeholder = &placeholder{startIndex: i, targetIndex: targetIndex}
		}
	} else {
		z.placeholder = nil
	}
}

// end finishes the drag of item i and commits the reorder. An item released
// outside every zone goes back to its slot.
func (z *Zone) end(i int, x, y, dx, dy float64) {
	dropID, targetIndex := z.targetFor(i, x, y, dx, dy)
	if dropID == "" {
		targetIndex = i
	}

	if t, ok := z.coord.Traversal(); ok {
		z.coord.Commit(t.SourceID, t.SourceIndex, t.TargetIndex, t.TargetID)
		z.coord.EndTraversal()
	} else {
		z.coord.Commit(z.id, i, targetIndex, "")
	}

	z.placeholder = nil
	z.draggingIndex = -1
}

// cancel abandons the drag without reordering.
func (z *Zone) cancel() {
	if _, ok := z.coord.Traversal(); ok {
		z.coord.EndTraversal()
	}
	z.placeholder = nil
	z.draggingIndex = -1
}
