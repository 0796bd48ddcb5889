// Package dropzone lays out a grid of draggable items and turns their drags
// into reorders.
//
// A Zone owns the layout of one container: its bounds, item count and grid
// settings. It registers itself with a traverse.Coordinator so drags from
// other zones can find it. Each Item of a zone follows one dragged element:
//
//	z := dropzone.New(coord, "left", dropzone.Options{BoxesPerRow: 4, RowHeight: 3})
//	z.SetBounds(grid.Rect(0, 0, 40, 12))
//	z.SetCount(len(items))
//
//	it := z.Item(i)
//	if it.Begin() {
//	    it.Move(offset)
//	    it.End(offset)
//	}
//
// While an item is dragged inside its zone the other items make room for it:
// Layout reports the order the zone would have if the drag ended now. When
// the item hovers over another zone, this zone lets it go (the item's slot
// moves to the end) and the coordinator's traversal reserves a slot in the
// target. On release the zone commits through the coordinator, which calls
// the application's change callback with the source and target indexes.
//
// A Zone is not safe for concurrent use. Drive it from the goroutine that
// delivers pointer events.
package dropzone
