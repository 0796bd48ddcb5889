package store

import "github.com/dshills/griddrop/internal/input/pointer"

// Reduce returns the state that results from applying a to s. It never
// modifies s. Actions that do not apply (a move with no active drag, or a
// registration change whose key is stale) return s unchanged.
func Reduce(s State, a Action) State {
	next, _ := reduce(s, a)
	return next
}

// reduce is Reduce that also reports whether anything changed.
func reduce(s State, a Action) (State, bool) {
	switch a := a.(type) {
	case DragStart:
		s.Draggable.ActiveID = a.ID
		s.Draggable.DroppableID = a.DroppableID
		s.Draggable.Initial = a.Initial
		return s, true

	case DragMove:
		if !s.Dragging() {
			return s, false
		}
		s.Draggable.Translate = a.Coordinates.Sub(s.Draggable.Initial)
		return s, true

	case DragEnd, DragCancel:
		s.Draggable.ActiveID = ""
		s.Draggable.DroppableID = ""
		s.Draggable.Initial = pointer.Coordinates{}
		s.Draggable.Translate = pointer.Coordinates{}
		return s, true

	case RegisterDroppable:
		s.Droppable.Containers = s.Droppable.Containers.With(a.Container.ID, a.Container)
		return s, true

	case SetDroppableDisabled:
		c, ok := s.Droppable.Containers.Get(a.ID)
		if !ok || c.Key != a.Key {
			return s, false
		}
		c.Disabled = a.Disabled
		s.Droppable.Containers = s.Droppable.Containers.With(a.ID, c)
		return s, true

	case UnregisterDroppable:
		c, ok := s.Droppable.Containers.Get(a.ID)
		if !ok || c.Key != a.Key {
			return s, false
		}
		s.Droppable.Containers = s.Droppable.Containers.Without(a.ID)
		return s, true

	case RegisterDraggable:
		s.Draggable.Nodes = s.Draggable.Nodes.With(a.Node.ID, a.Node)
		return s, true

	case UnregisterDraggable:
		n, ok := s.Draggable.Nodes.Get(a.ID)
		if !ok || n.Key != a.Key {
			return s, false
		}
		s.Draggable.Nodes = s.Draggable.Nodes.Without(a.ID)
		return s, true
	}

	return s, false
}
