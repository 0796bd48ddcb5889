package grid

import (
	"reflect"
	"slices"
	"testing"
)

func demoGrid() Settings {
	return NewSettings(400, 4, 100)
}

func TestNewSettings(t *testing.T) {
	g := NewSettings(400, 4, 100)
	if g.ColumnWidth != 100 {
		t.Errorf("ColumnWidth = %v, want 100", g.ColumnWidth)
	}
	if !g.Valid() {
		t.Error("expected grid to be valid")
	}

	if z := NewSettings(400, 0, 100); z.ColumnWidth != 0 || z.Valid() {
		t.Errorf("zero boxes per row = %+v, want invalid with zero column width", z)
	}

	if r := g.Resize(800); r.ColumnWidth != 200 || r.BoxesPerRow != 4 || r.RowHeight != 100 {
		t.Errorf("Resize(800) = %+v", r)
	}
}

func TestIndexFromCoordinates(t *testing.T) {
	g := demoGrid()

	tests := []struct {
		name     string
		x, y     float64
		count    int
		expected int
	}{
		{"origin", 0, 0, 6, 0},
		{"first row third column", 250, 50, 6, 2},
		{"second row first column", 10, 150, 6, 4},
		{"past count clamps", 250, 150, 6, 6},
		{"far away clamps", 5000, 5000, 6, 6},
		{"exact count", 50, 150, 4, 4},
		{"empty grid", 50, 50, 0, 0},
		{"negative", -10, -10, 6, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IndexFromCoordinates(tt.x, tt.y, g, tt.count)
			if got != tt.expected {
				t.Errorf("IndexFromCoordinates(%v, %v) = %d, want %d", tt.x, tt.y, got, tt.expected)
			}
		})
	}
}

func TestIndexFromCoordinatesDegenerate(t *testing.T) {
	for _, g := range []Settings{{}, NewSettings(0, 4, 100), NewSettings(400, 4, 0), NewSettings(400, 0, 100)} {
		if got := IndexFromCoordinates(250, 150, g, 6); got != 0 {
			t.Errorf("IndexFromCoordinates on %+v = %d, want 0", g, got)
		}
	}
}

func TestIndexNeverExceedsCount(t *testing.T) {
	g := NewSettings(300, 3, 40)
	for count := 0; count < 10; count++ {
		for x := -50.0; x < 500; x += 17 {
			for y := -50.0; y < 500; y += 13 {
				if got := IndexFromCoordinates(x, y, g, count); got > count {
					t.Fatalf("IndexFromCoordinates(%v, %v, count=%d) = %d", x, y, count, got)
				}
			}
		}
	}
}

func TestIndexRoundTrip(t *testing.T) {
	grids := []Settings{
		demoGrid(),
		NewSettings(300, 3, 40),
		NewSettings(90, 1, 10),
		NewSettings(700, 7, 33),
	}

	for _, g := range grids {
		const count = 20
		for i := 0; i < count; i++ {
			p := PositionForIndex(i, g, nil)
			if got := IndexFromCoordinates(p.X, p.Y, g, count); got != i {
				t.Errorf("grid %+v: round trip of %d gave %d", g, i, got)
			}
		}
	}
}

func TestPositionForIndex(t *testing.T) {
	g := demoGrid()
	two := 2

	tests := []struct {
		name      string
		i         int
		displaced *int
		expected  Point
	}{
		{"first", 0, nil, Point{0, 0}},
		{"end of row", 3, nil, Point{300, 0}},
		{"wraps", 5, nil, Point{100, 100}},
		{"before displaced", 1, &two, Point{100, 0}},
		{"at displaced shifts", 2, &two, Point{300, 0}},
		{"after displaced shifts", 3, &two, Point{0, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PositionForIndex(tt.i, g, tt.displaced); got != tt.expected {
				t.Errorf("PositionForIndex(%d) = %v, want %v", tt.i, got, tt.expected)
			}
		})
	}
}

func TestDragPosition(t *testing.T) {
	g := demoGrid()

	if got := DragPosition(1, g, 10, 20, false); got != (Point{110, 20}) {
		t.Errorf("DragPosition() = %v, want {110 20}", got)
	}
	if got := DragPosition(1, g, 10, 20, true); got != (Point{160, 70}) {
		t.Errorf("DragPosition(center) = %v, want {160 70}", got)
	}
}

func TestTargetIndex(t *testing.T) {
	g := demoGrid()

	tests := []struct {
		name     string
		start    int
		dx, dy   float64
		expected int
	}{
		{"no movement", 0, 0, 0, 0},
		{"under half a cell", 0, 49, 0, 0},
		{"past half a cell", 0, 51, 0, 1},
		{"two columns right", 0, 200, 0, 2},
		{"down a row", 1, 0, 100, 5},
		{"back up", 5, 0, -100, 1},
		{"off the end", 0, 0, 300, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TargetIndex(tt.start, g, 6, tt.dx, tt.dy); got != tt.expected {
				t.Errorf("TargetIndex(%d, %v, %v) = %d, want %d", tt.start, tt.dx, tt.dy, got, tt.expected)
			}
		})
	}
}

func TestSwap(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6}

	tests := []struct {
		name     string
		from, to int
		expected []int
	}{
		{"right shift", 0, 2, []int{2, 3, 1, 4, 5, 6}},
		{"left shift", 4, 1, []int{1, 5, 2, 3, 4, 6}},
		{"to end", 0, 5, []int{2, 3, 4, 5, 6, 1}},
		{"to start", 5, 0, []int{6, 1, 2, 3, 4, 5}},
		{"neighbors", 2, 3, []int{1, 2, 4, 3, 5, 6}},
		{"same index", 3, 3, []int{1, 2, 3, 4, 5, 6}},
		{"past the end", 0, 9, []int{2, 3, 4, 5, 6, 1}},
		{"negative", 0, -1, []int{1, 2, 3, 4, 5, 6}},
		{"bad source", 7, 1, []int{1, 2, 3, 4, 5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Swap(items, tt.from, tt.to)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Swap(%d, %d) = %v, want %v", tt.from, tt.to, got, tt.expected)
			}
		})
	}

	if !reflect.DeepEqual(items, []int{1, 2, 3, 4, 5, 6}) {
		t.Errorf("Swap modified its input: %v", items)
	}
}

func TestSwapInverse(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}
	for i := range items {
		for j := range items {
			if i == j {
				continue
			}
			back := Swap(Swap(items, i, j), j, i)
			if !reflect.DeepEqual(back, items) {
				t.Errorf("Swap(Swap(a, %d, %d), %d, %d) = %v", i, j, j, i, back)
			}
		}
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name         string
		source, dest []string
		from, to     int
		wantSource   []string
		wantDest     []string
	}{
		{"into middle", []string{"a", "b", "c"}, []string{"x", "y"}, 1, 1, []string{"a", "c"}, []string{"x", "b", "y"}},
		{"append", []string{"a"}, []string{"x"}, 0, 1, []string{}, []string{"x", "a"}},
		{"past end appends", []string{"a", "b"}, []string{}, 0, 5, []string{"b"}, []string{"a"}},
		{"bad source index", []string{"a"}, []string{"x"}, 3, 0, []string{"a"}, []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := slices.Clone(tt.source)
			dst := slices.Clone(tt.dest)

			gotSource, gotDest := Move(src, dst, tt.from, tt.to)
			if !reflect.DeepEqual(gotSource, tt.wantSource) {
				t.Errorf("source = %v, want %v", gotSource, tt.wantSource)
			}
			if !reflect.DeepEqual(gotDest, tt.wantDest) {
				t.Errorf("dest = %v, want %v", gotDest, tt.wantDest)
			}
			if !slices.Equal(src, tt.source) || !slices.Equal(dst, tt.dest) {
				t.Error("Move modified its inputs")
			}
		})
	}
}

// Items [1..6] in a 4-wide grid of 100x100 cells; dragging the first item two
// columns right lands it in slot 2.
//
// The point checked is (250, 50), in the first row. (250, 150) is in the
// second row and maps to slot 6 under floor(y/rh)*bpr + floor(x/cw), so it
// is not the drop point of this reorder.
func TestDragAcrossRowReorders(t *testing.T) {
	g := demoGrid()
	items := []int{1, 2, 3, 4, 5, 6}

	target := IndexFromCoordinates(250, 50, g, len(items))
	if target != 2 {
		t.Fatalf("target = %d, want 2", target)
	}
	if got := TargetIndex(0, g, len(items), 200, 0); got != target {
		t.Fatalf("TargetIndex() = %d, want %d", got, target)
	}

	got := Swap(items, 0, target)
	if !reflect.DeepEqual(got, []int{2, 3, 1, 4, 5, 6}) {
		t.Errorf("Swap() = %v, want [2 3 1 4 5 6]", got)
	}
}

func TestBoundsContains(t *testing.T) {
	b := Rect(400, 0, 400, 200)

	tests := []struct {
		name     string
		x, y     float64
		expected bool
	}{
		{"inside", 420, 20, true},
		{"left edge", 400, 20, false},
		{"right edge", 800, 20, false},
		{"top edge", 420, 0, false},
		{"outside", 100, 100, false},
	}

	for _, tt := range tests {
		if got := b.Contains(tt.x, tt.y); got != tt.expected {
			t.Errorf("%s: Contains(%v, %v) = %v, want %v", tt.name, tt.x, tt.y, got, tt.expected)
		}
	}
}

func TestIndexHelpers(t *testing.T) {
	if got := Indexes(4); !reflect.DeepEqual(got, []int{0, 1, 2, 3}) {
		t.Errorf("Indexes(4) = %v", got)
	}
	if got := IndexOf([]int{5, 6, 7}, 7); got != 2 {
		t.Errorf("IndexOf() = %d, want 2", got)
	}
	if got := IndexOf([]int{5, 6, 7}, 9); got != -1 {
		t.Errorf("IndexOf() = %d, want -1", got)
	}
}
