package app

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/griddrop/internal/config"
	"github.com/dshills/griddrop/internal/grid"
	"github.com/dshills/griddrop/internal/input/pointer"
)

func testZonesConfig() config.ZonesConfig {
	return config.ZonesConfig{
		Names:       []string{"a", "b"},
		Items:       4,
		BoxesPerRow: 2,
		RowHeight:   3,
		ColumnWidth: 8,
		Gap:         2,
	}
}

func newTestBoard(t *testing.T) (*Board, *[]Reorder) {
	t.Helper()
	b := NewBoard(testZonesConfig(), nil, nil)
	var got []Reorder
	b.OnReorder(func(r Reorder) { got = append(got, r) })
	b.Layout()
	t.Cleanup(b.Close)
	return b, &got
}

func TestNewBoard(t *testing.T) {
	b, _ := newTestBoard(t)

	if got := b.ZoneIDs(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("ZoneIDs = %v", got)
	}
	if got := b.Items("a"); !reflect.DeepEqual(got, []string{"a-1", "a-2", "a-3", "a-4"}) {
		t.Errorf("Items(a) = %v", got)
	}
	if got := b.Items("missing"); got != nil {
		t.Errorf("Items(missing) = %v, want nil", got)
	}
	if got := b.Coordinator().Zones(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("coordinator zones = %v", got)
	}
}

func TestBoard_Layout(t *testing.T) {
	b, _ := newTestBoard(t)

	// 8 items at 2 per row need 4 rows.
	tests := []struct {
		zone string
		want grid.Bounds
	}{
		{"a", grid.Rect(1, 2, 16, 12)},
		{"b", grid.Rect(19, 2, 16, 12)},
	}
	for _, tt := range tests {
		z, ok := b.Zone(tt.zone)
		if !ok {
			t.Fatalf("Zone(%q) not found", tt.zone)
		}
		if got := z.Bounds(); got != tt.want {
			t.Errorf("Bounds(%s) = %+v, want %+v", tt.zone, got, tt.want)
		}
	}
}

func TestBoard_ItemBounds(t *testing.T) {
	b, _ := newTestBoard(t)

	tests := []struct {
		item string
		want grid.Bounds
	}{
		{"a-1", grid.Rect(1, 2, 8, 3)},
		{"a-2", grid.Rect(9, 2, 8, 3)},
		{"a-3", grid.Rect(1, 5, 8, 3)},
		{"b-4", grid.Rect(27, 5, 8, 3)},
	}
	for _, tt := range tests {
		got, ok := b.ItemBounds(tt.item)
		if !ok {
			t.Errorf("ItemBounds(%s) not found", tt.item)
			continue
		}
		if got != tt.want {
			t.Errorf("ItemBounds(%s) = %+v, want %+v", tt.item, got, tt.want)
		}
	}
	if _, ok := b.ItemBounds("nope"); ok {
		t.Error("ItemBounds found an unknown item")
	}
}

func TestBoard_Locate(t *testing.T) {
	b, _ := newTestBoard(t)

	zone, index, ok := b.Locate("b-3")
	if !ok || zone != "b" || index != 2 {
		t.Errorf("Locate(b-3) = %q, %d, %v, want b, 2, true", zone, index, ok)
	}
	if _, _, ok := b.Locate("c-1"); ok {
		t.Error("Locate found an unknown item")
	}
}

func TestBoard_DragWithinZone(t *testing.T) {
	b, reorders := newTestBoard(t)

	if !b.Begin("a-1") {
		t.Fatal("Begin(a-1) = false")
	}
	if got := b.ActiveItem(); got != "a-1" {
		t.Errorf("ActiveItem = %q", got)
	}

	// One row down lands on a-3's slot.
	b.Move(pointer.Coordinates{X: 0, Y: 3})
	bounds, _ := b.ItemBounds("a-1")
	if bounds != grid.Rect(1, 5, 8, 3) {
		t.Errorf("dragged bounds = %+v", bounds)
	}
	b.End(pointer.Coordinates{X: 0, Y: 3})

	if got := b.Items("a"); !reflect.DeepEqual(got, []string{"a-2", "a-3", "a-1", "a-4"}) {
		t.Errorf("Items(a) = %v", got)
	}
	want := []Reorder{{Item: "a-1", SourceID: "a", SourceIndex: 0, TargetID: "a", TargetIndex: 2}}
	if !reflect.DeepEqual(*reorders, want) {
		t.Errorf("reorders = %+v, want %+v", *reorders, want)
	}
	if b.ActiveItem() != "" {
		t.Error("item active after End")
	}
}

func TestBoard_DragAcrossZones(t *testing.T) {
	b, reorders := newTestBoard(t)

	if !b.Begin("a-2") {
		t.Fatal("Begin(a-2) = false")
	}
	// a-2 rests at x=8 in zone a; zone b starts 18 cells to the right.
	b.Move(pointer.Coordinates{X: 10, Y: 0})
	tr, ok := b.Coordinator().Traversal()
	if !ok {
		t.Fatal("no traversal over zone b")
	}
	if tr.SourceID != "a" || tr.TargetID != "b" || tr.TargetIndex != 0 {
		t.Errorf("traversal = %+v", tr)
	}
	b.End(pointer.Coordinates{X: 10, Y: 0})

	if got := b.Items("a"); !reflect.DeepEqual(got, []string{"a-1", "a-3", "a-4"}) {
		t.Errorf("Items(a) = %v", got)
	}
	if got := b.Items("b"); !reflect.DeepEqual(got, []string{"a-2", "b-1", "b-2", "b-3", "b-4"}) {
		t.Errorf("Items(b) = %v", got)
	}
	za, _ := b.Zone("a")
	zb, _ := b.Zone("b")
	if za.Count() != 3 || zb.Count() != 5 {
		t.Errorf("counts = %d, %d, want 3, 5", za.Count(), zb.Count())
	}
	if len(*reorders) != 1 || (*reorders)[0].TargetID != "b" {
		t.Errorf("reorders = %+v", *reorders)
	}
}

func TestBoard_Cancel(t *testing.T) {
	b, reorders := newTestBoard(t)

	b.Begin("a-1")
	b.Move(pointer.Coordinates{X: 20, Y: 0})
	b.Cancel()

	if got := b.Items("a"); !reflect.DeepEqual(got, []string{"a-1", "a-2", "a-3", "a-4"}) {
		t.Errorf("Items(a) = %v", got)
	}
	if len(*reorders) != 0 {
		t.Errorf("reorders = %+v, want none", *reorders)
	}
	if _, ok := b.Coordinator().Traversal(); ok {
		t.Error("traversal left behind by Cancel")
	}
	// Moves after a cancel are ignored.
	b.Move(pointer.Coordinates{X: 8, Y: 0})
	b.End(pointer.Coordinates{X: 8, Y: 0})
	if len(*reorders) != 0 {
		t.Errorf("reorders after cancel = %+v", *reorders)
	}
}

func TestBoard_SetDisableDrag(t *testing.T) {
	b, _ := newTestBoard(t)

	if err := b.SetDisableDrag("a", true); err != nil {
		t.Fatalf("SetDisableDrag: %v", err)
	}
	if b.Begin("a-1") {
		t.Error("Begin succeeded in a zone with dragging disabled")
	}
	if !b.Begin("b-1") {
		t.Error("Begin failed in an enabled zone")
	}
	b.Cancel()

	if err := b.SetDisableDrag("zz", true); !errors.Is(err, ErrUnknownZone) {
		t.Errorf("SetDisableDrag(zz) = %v, want ErrUnknownZone", err)
	}
	if b.Begin("zz-1") {
		t.Error("Begin succeeded for an unknown item")
	}
}

func TestBoard_Apply(t *testing.T) {
	tests := []struct {
		name        string
		sourceID    string
		sourceIndex int
		targetIndex int
		targetID    string
		wantA       []string
		wantB       []string
		reordered   bool
	}{
		{"same index", "a", 1, 1, "", []string{"a-1", "a-2", "a-3", "a-4"}, []string{"b-1", "b-2", "b-3", "b-4"}, false},
		{"within zone", "a", 0, 3, "", []string{"a-2", "a-3", "a-4", "a-1"}, []string{"b-1", "b-2", "b-3", "b-4"}, true},
		{"target past end", "a", 3, 9, "", []string{"a-1", "a-2", "a-3", "a-4"}, []string{"b-1", "b-2", "b-3", "b-4"}, false},
		{"to other zone end", "b", 0, 4, "a", []string{"a-1", "a-2", "a-3", "a-4", "b-1"}, []string{"b-2", "b-3", "b-4"}, true},
		{"unknown source", "x", 0, 1, "", []string{"a-1", "a-2", "a-3", "a-4"}, []string{"b-1", "b-2", "b-3", "b-4"}, false},
		{"unknown target", "a", 0, 0, "x", []string{"a-1", "a-2", "a-3", "a-4"}, []string{"b-1", "b-2", "b-3", "b-4"}, false},
		{"source index out of range", "a", 7, 0, "", []string{"a-1", "a-2", "a-3", "a-4"}, []string{"b-1", "b-2", "b-3", "b-4"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, reorders := newTestBoard(t)
			b.apply(tt.sourceID, tt.sourceIndex, tt.targetIndex, tt.targetID)

			if got := b.Items("a"); !reflect.DeepEqual(got, tt.wantA) {
				t.Errorf("Items(a) = %v, want %v", got, tt.wantA)
			}
			if got := b.Items("b"); !reflect.DeepEqual(got, tt.wantB) {
				t.Errorf("Items(b) = %v, want %v", got, tt.wantB)
			}
			if got := len(*reorders) > 0; got != tt.reordered {
				t.Errorf("reordered = %v, want %v", got, tt.reordered)
			}
		})
	}
}
