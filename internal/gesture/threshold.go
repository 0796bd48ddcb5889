package gesture

import (
	"fmt"
	"math"

	"github.com/dshills/griddrop/internal/input/pointer"
)

// ThresholdKind tags the shape of a Threshold.
type ThresholdKind uint8

const (
	// ThresholdNone means no threshold is configured.
	ThresholdNone ThresholdKind = iota
	// ThresholdScalar compares against the total distance.
	ThresholdScalar
	// ThresholdX compares against the absolute horizontal offset.
	ThresholdX
	// ThresholdY compares against the absolute vertical offset.
	ThresholdY
	// ThresholdXY requires both axes to exceed their component.
	ThresholdXY
)

// String returns a string representation of the kind.
func (k ThresholdKind) String() string {
	switch k {
	case ThresholdScalar:
		return "scalar"
	case ThresholdX:
		return "x"
	case ThresholdY:
		return "y"
	case ThresholdXY:
		return "xy"
	default:
		return "none"
	}
}

// Threshold is a distance measurement used for activation and tolerance.
// The zero value is an unset threshold that is never exceeded.
type Threshold struct {
	kind ThresholdKind
	x    float64
	y    float64
}

// Scalar returns a threshold on the total distance.
func Scalar(d float64) Threshold {
	return Threshold{kind: ThresholdScalar, x: d}
}

// OnX returns a threshold on the horizontal offset only.
func OnX(x float64) Threshold {
	return Threshold{kind: ThresholdX, x: x}
}

// OnY returns a threshold on the vertical offset only.
func OnY(y float64) Threshold {
	return Threshold{kind: ThresholdY, y: y}
}

// OnXY returns a threshold that needs both axes to exceed their component.
func OnXY(x, y float64) Threshold {
	return Threshold{kind: ThresholdXY, x: x, y: y}
}

// Kind returns the threshold shape.
func (t Threshold) Kind() ThresholdKind {
	return t.kind
}

// IsSet returns true if a threshold is configured.
func (t Threshold) IsSet() bool {
	return t.kind != ThresholdNone
}

// Components returns the x and y components. A scalar threshold reports its
// value as x.
func (t Threshold) Components() (x, y float64) {
	return t.x, t.y
}

// Exceeded reports whether the offset (and its total distance) is strictly
// beyond the threshold. An unset threshold is never exceeded.
func (t Threshold) Exceeded(offset pointer.Coordinates, distance float64) bool {
	dx := math.Abs(offset.X)
	dy := math.Abs(offset.Y)

	switch t.kind {
	case ThresholdScalar:
		return distance > t.x
	case ThresholdX:
		return dx > t.x
	case ThresholdY:
		return dy > t.y
	case ThresholdXY:
		return dx > t.x && dy > t.y
	default:
		return false
	}
}

// validate checks that no component is negative.
func (t Threshold) validate() error {
	if t.x < 0 || t.y < 0 {
		return fmt.Errorf("%w: %s", ErrNegativeThreshold, t)
	}
	return nil
}

// String returns a compact representation such as "15", "{x:4}" or "{x:4 y:6}".
func (t Threshold) String() string {
	switch t.kind {
	case ThresholdScalar:
		return fmt.Sprintf("%g", t.x)
	case ThresholdX:
		return fmt.Sprintf("{x:%g}", t.x)
	case ThresholdY:
		return fmt.Sprintf("{y:%g}", t.y)
	case ThresholdXY:
		return fmt.Sprintf("{x:%g y:%g}", t.x, t.y)
	default:
		return "none"
	}
}
