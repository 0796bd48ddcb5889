package gesture

import (
	"fmt"
	"strings"
	"time"
)

// Axis restricts offset computation to one or both axes.
type Axis uint8

const (
	// AxisXY tracks both axes.
	AxisXY Axis = iota
	// AxisX tracks horizontal movement only.
	AxisX
	// AxisY tracks vertical movement only.
	AxisY
)

// String returns the configuration name of the axis.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "xy"
	}
}

// ParseAxis parses "xy", "x" or "y". The empty string means AxisXY.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "xy":
		return AxisXY, nil
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	default:
		return AxisXY, fmt.Errorf("%w: %q", ErrInvalidAxis, s)
	}
}

// Config is the activation policy of a Sensor.
type Config struct {
	// EnableMouse accepts mouse presses. Touch presses are always accepted.
	EnableMouse bool

	// Delay is how long a press must be held before the drag starts.
	Delay time.Duration

	// Tolerance is how far the pointer may move before activation without
	// cancelling the session.
	Tolerance Threshold

	// Distance is how far the pointer must move before the drag starts.
	Distance Threshold

	// Axis locks movement to one axis.
	Axis Axis
}

// DefaultConfig returns a config that starts dragging on press.
func DefaultConfig() Config {
	return Config{
		EnableMouse: true,
		Axis:        AxisXY,
	}
}

// Validate checks the config for contradictory or out-of-range settings.
func (c Config) Validate() error {
	if c.Delay < 0 {
		return ErrNegativeDelay
	}
	if c.Delay > 0 && c.Distance.IsSet() {
		return ErrDelayAndDistance
	}
	if err := c.Tolerance.validate(); err != nil {
		return fmt.Errorf("tolerance: %w", err)
	}
	if err := c.Distance.validate(); err != nil {
		return fmt.Errorf("distance: %w", err)
	}
	if c.Axis > AxisY {
		return fmt.Errorf("%w: %d", ErrInvalidAxis, c.Axis)
	}
	return nil
}
