package store

import (
	"fmt"

	"github.com/dshills/griddrop/internal/grid"
	"github.com/dshills/griddrop/internal/input/pointer"
)

// Node is the rendered element behind a draggable or droppable. The store
// only holds it; the rendering layer owns its lifetime.
type Node interface {
	Bounds() grid.Bounds
}

// DraggableNode is a draggable element registered by the rendering layer.
type DraggableNode struct {
	ID  string
	Key string
	Ref Node
}

// DroppableContainer is a region that can receive a dragged item.
type DroppableContainer struct {
	ID       string
	Key      string
	Disabled bool
	Ref      Node
}

// DraggableKey returns the registration key for a draggable id.
func DraggableKey(id string) string {
	return fmt.Sprintf("draggable-%s", id)
}

// DroppableKey returns the registration key for a droppable id.
func DroppableKey(id string) string {
	return fmt.Sprintf("droppable-%s", id)
}

// DraggableState is the draggable half of State.
type DraggableState struct {
	// ActiveID is the id of the item being dragged, or "" when idle.
	ActiveID string

	// DroppableID is the container the active item started in.
	DroppableID string

	// Initial is where the drag started.
	Initial pointer.Coordinates

	// Translate is the current pointer position relative to Initial.
	Translate pointer.Coordinates

	// Nodes are the registered draggable elements.
	Nodes Map[DraggableNode]
}

// DroppableState is the droppable half of State.
type DroppableState struct {
	Containers Map[DroppableContainer]
}

// State is an immutable snapshot of the drag session.
type State struct {
	Draggable DraggableState
	Droppable DroppableState
}

// Dragging returns true while an item is active.
func (s State) Dragging() bool {
	return s.Draggable.ActiveID != ""
}

// ActiveNode returns the registered node of the active item.
func (s State) ActiveNode() (DraggableNode, bool) {
	if !s.Dragging() {
		return DraggableNode{}, false
	}
	return s.Draggable.Nodes.Get(s.Draggable.ActiveID)
}
