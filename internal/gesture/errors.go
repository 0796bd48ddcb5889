package gesture

import "errors"

// Configuration errors returned by New and Config.Validate.
var (
	// ErrDelayAndDistance indicates both Delay and Distance were configured.
	ErrDelayAndDistance = errors.New(`gesture: "distance" and "delay" are mutually exclusive`)

	// ErrNegativeDelay indicates a negative activation delay.
	ErrNegativeDelay = errors.New("gesture: delay must not be negative")

	// ErrNegativeThreshold indicates a threshold with a negative component.
	ErrNegativeThreshold = errors.New("gesture: threshold must not be negative")

	// ErrInvalidAxis indicates an unknown axis name.
	ErrInvalidAxis = errors.New("gesture: invalid axis")

	// ErrNilTarget indicates a sensor was created without a listener target.
	ErrNilTarget = errors.New("gesture: nil listener target")
)
