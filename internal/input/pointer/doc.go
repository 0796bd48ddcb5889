// Package pointer models raw pointer input for the drag engine.
//
// The package covers three concerns that sit below gesture recognition:
//
//   - Event: a single press, move, release or cancel-equivalent input carrying
//     either mouse coordinates or a list of touch points.
//   - Extract: turns any Event into one Coordinates pair.
//   - Target: a listener registry that plays the role of the window during a
//     drag session. Binding listeners returns a disposer that releases them.
//
// # Coordinate Extraction
//
// Mouse events carry their position directly. Touch events use the first
// changed touch, falling back to the first active touch and finally to the
// origin:
//
//	c := pointer.Extract(ev)
//
// # Scoped Listeners
//
// A gesture session binds the listeners it needs when the press arrives and
// holds on to the returned disposer:
//
//	unbind := target.Bind(
//	    pointer.Binding{Kind: pointer.KindMove, Fn: onMove},
//	    pointer.Binding{Kind: pointer.KindRelease, Fn: onRelease},
//	)
//	defer unbind()
//
// The disposer is idempotent; once it returns, none of its listeners fire
// again, even for an event that is currently being dispatched.
//
// # Thread Safety
//
// Target is safe for concurrent use. Event values are not; a single event is
// delivered on one goroutine.
package pointer
