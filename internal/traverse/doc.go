// Package traverse coordinates drags that leave their origin grid zone.
//
// Drop zones register their cached bounds, item count and grid layout with a
// Coordinator. While an item is dragged, its zone asks the coordinator which
// registered zone lies under the pointer (ResolveDropContainer). When that is
// a different zone, StartTraversal records a Traversal: the slot the item
// would take in the target zone and the offset between the two zone origins,
// so the target can reserve the slot and the item can be drawn there.
//
// At most one traversal is active. Repeating StartTraversal for the same
// target slot is a no-op, since it runs on every pointer move. Commit is the
// only externally visible mutation: it marks the traversal as executing and
// hands the reorder to the change callback exactly once per completed drag.
package traverse
