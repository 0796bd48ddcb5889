package grid

// Bounds is the on-screen rectangle of a container in document space.
type Bounds struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
	Width  float64
	Height float64
}

// Rect builds bounds from an origin and size.
func Rect(left, top, width, height float64) Bounds {
	return Bounds{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
		Width:  width,
		Height: height,
	}
}

// Contains reports whether (x, y) lies strictly inside b. Points on an edge
// belong to neither neighbor.
func (b Bounds) Contains(x, y float64) bool {
	return x > b.Left && x < b.Right && y > b.Top && y < b.Bottom
}

// Origin returns the top-left corner.
func (b Bounds) Origin() Point {
	return Point{X: b.Left, Y: b.Top}
}
