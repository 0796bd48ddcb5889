package store

import (
	"reflect"
	"testing"

	"github.com/dshills/griddrop/internal/grid"
	"github.com/dshills/griddrop/internal/input/pointer"
)

type rectNode grid.Bounds

func (r rectNode) Bounds() grid.Bounds { return grid.Bounds(r) }

func TestDragLifecycle(t *testing.T) {
	var s State

	s = Reduce(s, DragStart{ID: "a", DroppableID: "left", Initial: pointer.Coordinates{X: 10, Y: 20}})
	if !s.Dragging() || s.Draggable.ActiveID != "a" || s.Draggable.DroppableID != "left" {
		t.Fatalf("after DragStart: %+v", s.Draggable)
	}

	s = Reduce(s, DragMove{Coordinates: pointer.Coordinates{X: 15, Y: 10}})
	if s.Draggable.Translate != (pointer.Coordinates{X: 5, Y: -10}) {
		t.Errorf("Translate = %v, want {5 -10}", s.Draggable.Translate)
	}

	s = Reduce(s, DragStart{ID: "b", Initial: pointer.Coordinates{X: 1, Y: 1}})
	if s.Draggable.ActiveID != "b" || s.Draggable.DroppableID != "" {
		t.Errorf("second DragStart should win: %+v", s.Draggable)
	}

	for _, end := range []Action{DragEnd{}, DragCancel{}} {
		got := Reduce(s, end)
		if got.Dragging() {
			t.Errorf("%s left drag active", end.Type())
		}
		if got.Draggable.Translate != (pointer.Coordinates{}) || got.Draggable.Initial != (pointer.Coordinates{}) {
			t.Errorf("%s did not reset coordinates: %+v", end.Type(), got.Draggable)
		}
	}
}

func TestDragMoveWithoutActiveDrag(t *testing.T) {
	s := New()
	if s.Dispatch(DragMove{Coordinates: pointer.Coordinates{X: 3, Y: 3}}) {
		t.Error("DragMove with no active drag should be ignored")
	}
	if got := s.State().Draggable.Translate; got != (pointer.Coordinates{}) {
		t.Errorf("Translate = %v, want zero", got)
	}
}

func TestDroppableKeyChecks(t *testing.T) {
	var s State
	s = Reduce(s, RegisterDroppable{Container: DroppableContainer{ID: "z", Key: "k1"}})

	tests := []struct {
		name     string
		action   Action
		present  bool
		disabled bool
	}{
		{"disable stale key", SetDroppableDisabled{ID: "z", Key: "old", Disabled: true}, true, false},
		{"disable matching key", SetDroppableDisabled{ID: "z", Key: "k1", Disabled: true}, true, true},
		{"disable unknown id", SetDroppableDisabled{ID: "nope", Key: "k1", Disabled: true}, true, false},
		{"unregister stale key", UnregisterDroppable{ID: "z", Key: "old"}, true, false},
		{"unregister matching key", UnregisterDroppable{ID: "z", Key: "k1"}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, _ := reduce(s, tt.action)
			c, ok := next.Droppable.Containers.Get("z")
			if ok != tt.present {
				t.Fatalf("present = %v, want %v", ok, tt.present)
			}
			if ok && c.Disabled != tt.disabled {
				t.Errorf("Disabled = %v, want %v", c.Disabled, tt.disabled)
			}
		})
	}
}

func TestStaleUnmountAfterRemount(t *testing.T) {
	var s State
	s = Reduce(s, RegisterDroppable{Container: DroppableContainer{ID: "z", Key: "mount-1"}})
	s = Reduce(s, RegisterDroppable{Container: DroppableContainer{ID: "z", Key: "mount-2"}})

	s = Reduce(s, UnregisterDroppable{ID: "z", Key: "mount-1"})

	c, ok := s.Droppable.Containers.Get("z")
	if !ok || c.Key != "mount-2" {
		t.Errorf("remounted container lost to stale unmount: %+v ok=%v", c, ok)
	}
}

func TestDraggableRegistry(t *testing.T) {
	var s State
	node := DraggableNode{ID: "a", Key: DraggableKey("a"), Ref: rectNode(grid.Rect(0, 0, 10, 10))}

	s = Reduce(s, RegisterDraggable{Node: node})
	if got, ok := s.Draggable.Nodes.Get("a"); !ok || got.Key != "draggable-a" {
		t.Fatalf("node not registered: %+v", got)
	}

	s = Reduce(s, UnregisterDraggable{ID: "a", Key: "draggable-b"})
	if !s.Draggable.Nodes.Has("a") {
		t.Error("unregister with wrong key removed the node")
	}

	s = Reduce(s, DragStart{ID: "a"})
	if n, ok := s.ActiveNode(); !ok || n.Ref.Bounds().Width != 10 {
		t.Errorf("ActiveNode() = %+v, %v", n, ok)
	}

	s = Reduce(s, UnregisterDraggable{ID: "a", Key: "draggable-a"})
	if s.Draggable.Nodes.Has("a") {
		t.Error("unregister with matching key kept the node")
	}
}

func TestSnapshotsAreImmutable(t *testing.T) {
	var s0 State
	s1 := Reduce(s0, RegisterDroppable{Container: DroppableContainer{ID: "a", Key: "a"}})
	s2 := Reduce(s1, RegisterDroppable{Container: DroppableContainer{ID: "b", Key: "b"}})
	s3 := Reduce(s2, SetDroppableDisabled{ID: "a", Key: "a", Disabled: true})
	s4 := Reduce(s3, UnregisterDroppable{ID: "b", Key: "b"})

	if s0.Droppable.Containers.Len() != 0 {
		t.Errorf("s0 modified: %v", s0.Droppable.Containers.Keys())
	}
	if got := s1.Droppable.Containers.Keys(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("s1 keys = %v", got)
	}
	if got := s2.Droppable.Containers.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("s2 keys = %v", got)
	}
	if c, _ := s2.Droppable.Containers.Get("a"); c.Disabled {
		t.Error("s2 saw a later SetDroppableDisabled")
	}
	if got := s4.Droppable.Containers.Keys(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("s4 keys = %v", got)
	}
	if c, _ := s4.Droppable.Containers.Get("a"); !c.Disabled {
		t.Error("s4 lost disabled flag")
	}
}

func TestMapKeepsPositionOnReplace(t *testing.T) {
	var m Map[int]
	m = m.With("a", 1).With("b", 2).With("c", 3)
	m = m.With("a", 10)

	if got := m.Keys(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Keys() = %v", got)
	}
	if v, _ := m.Get("a"); v != 10 {
		t.Errorf("Get(a) = %d, want 10", v)
	}

	var visited []string
	m.Each(func(id string, _ int) bool {
		visited = append(visited, id)
		return id != "b"
	})
	if !reflect.DeepEqual(visited, []string{"a", "b"}) {
		t.Errorf("Each stopped at %v", visited)
	}

	if same := m.Without("missing"); same.Len() != 3 {
		t.Errorf("Without(missing).Len() = %d", same.Len())
	}
}

func TestStoreSubscribe(t *testing.T) {
	s := New()

	var got []ActionType
	unsubscribe := s.Subscribe(func(prev, next State, a Action) {
		got = append(got, a.Type())
		if a.Type() == ActionDragStart && (prev.Dragging() || !next.Dragging()) {
			t.Errorf("listener saw wrong snapshots for DragStart")
		}
	})

	s.Dispatch(DragStart{ID: "a"})
	s.Dispatch(DragMove{Coordinates: pointer.Coordinates{X: 1}})
	s.Dispatch(UnregisterDroppable{ID: "missing", Key: "k"})
	s.Dispatch(DragEnd{})
	s.Dispatch(DragMove{Coordinates: pointer.Coordinates{X: 2}})

	unsubscribe()
	unsubscribe()
	s.Dispatch(DragStart{ID: "b"})

	want := []ActionType{ActionDragStart, ActionDragMove, ActionDragEnd}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("notified for %v, want %v", got, want)
	}
}

func TestKeys(t *testing.T) {
	if DraggableKey("x") != "draggable-x" {
		t.Errorf("DraggableKey = %q", DraggableKey("x"))
	}
	if DroppableKey("x") != "droppable-x" {
		t.Errorf("DroppableKey = %q", DroppableKey("x"))
	}
}
