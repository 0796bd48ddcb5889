// Package store holds the authoritative state of a drag session.
//
// State changes only through Reduce, a pure function of the previous State
// and an Action. The active draggable is set by DragStart, translated by
// DragMove and cleared by DragEnd or DragCancel. Droppable containers and
// draggable nodes are registered under an (id, key) pair; disabling or
// unregistering with a key that no longer matches the stored entry is
// silently ignored, so a stale unmount cannot remove a fresh registration
// that reused the same id.
//
// Registries are persistent maps: every transition produces a new snapshot
// and existing snapshots are never modified.
package store
