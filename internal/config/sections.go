package config

import (
	"fmt"
	"time"

	"github.com/dshills/griddrop/internal/config/loader"
	"github.com/dshills/griddrop/internal/gesture"
)

// Section accessor methods return snapshot structs. Mutating the returned
// struct does not modify the underlying configuration.

// SensorConfig provides type-safe access to drag activation settings.
type SensorConfig struct {
	// EnableMouse accepts mouse presses. Touch is always accepted.
	EnableMouse bool

	// Delay is how long a press must be held before dragging starts.
	Delay time.Duration

	// Tolerance is how far the pointer may drift before activation.
	Tolerance gesture.Threshold

	// Distance is how far the pointer must move before dragging starts.
	Distance gesture.Threshold

	// Axis locks movement to "xy", "x" or "y".
	Axis string
}

// Gesture converts the section to a validated sensor policy.
func (s SensorConfig) Gesture() (gesture.Config, error) {
	axis, err := gesture.ParseAxis(s.Axis)
	if err != nil {
		return gesture.Config{}, err
	}
	cfg := gesture.Config{
		EnableMouse: s.EnableMouse,
		Delay:       s.Delay,
		Tolerance:   s.Tolerance,
		Distance:    s.Distance,
		Axis:        axis,
	}
	if err := cfg.Validate(); err != nil {
		return gesture.Config{}, err
	}
	return cfg, nil
}

// ZonesConfig provides type-safe access to the demo's drop zones.
type ZonesConfig struct {
	// Names are the zone identifiers, left to right.
	Names []string

	// Items is the number of items each zone starts with.
	Items int

	// BoxesPerRow is the number of grid columns in a zone.
	BoxesPerRow int

	// RowHeight is the height of a grid row in cells.
	RowHeight float64

	// ColumnWidth is the width of a grid column in cells.
	ColumnWidth float64

	// Gap is the number of cells between zones.
	Gap int
}

// Width returns the width of one zone in cells.
func (z ZonesConfig) Width() float64 {
	return float64(z.BoxesPerRow) * z.ColumnWidth
}

// LoggingConfig provides type-safe access to logging settings.
type LoggingConfig struct {
	// Level is the minimum level logged: "debug", "info", "warn" or "error".
	Level string

	// File is the log file. Empty disables logging, since the terminal
	// belongs to the UI.
	File string
}

// UIConfig provides type-safe access to UI settings.
type UIConfig struct {
	// Title is shown in the status bar.
	Title string

	// ShowStatusBar shows the status bar at the bottom.
	ShowStatusBar bool
}

// Sensor returns type-safe access to drag activation settings.
func (c *Config) Sensor() SensorConfig {
	return SensorConfig{
		EnableMouse: c.getBoolOr("sensor.enableMouse", true),
		Delay:       c.getDurationOr("sensor.delay", 0),
		Tolerance:   c.getThresholdOr("sensor.tolerance"),
		Distance:    c.getThresholdOr("sensor.distance"),
		Axis:        c.getStringOr("sensor.axis", "xy"),
	}
}

// Zones returns type-safe access to drop zone settings.
func (c *Config) Zones() ZonesConfig {
	names := c.getStringSliceOr("zones.names", []string{"left", "right"})
	return ZonesConfig{
		Names:       append([]string(nil), names...),
		Items:       c.getIntOr("zones.items", 9),
		BoxesPerRow: c.getIntOr("zones.boxesPerRow", 3),
		RowHeight:   c.getFloatOr("zones.rowHeight", 3),
		ColumnWidth: c.getFloatOr("zones.columnWidth", 8),
		Gap:         c.getIntOr("zones.gap", 2),
	}
}

// Logging returns type-safe access to logging settings.
func (c *Config) Logging() LoggingConfig {
	return LoggingConfig{
		Level: c.getStringOr("logging.level", "info"),
		File:  c.getStringOr("logging.file", ""),
	}
}

// UI returns type-safe access to UI settings.
func (c *Config) UI() UIConfig {
	return UIConfig{
		Title:         c.getStringOr("ui.title", "griddrop"),
		ShowStatusBar: c.getBoolOr("ui.showStatusBar", true),
	}
}

// validateSensor checks the sensor section as a whole; per-field type
// errors are reported by validate.
func validateSensor(m map[string]any) error {
	raw, ok := m["sensor"].(map[string]any)
	if !ok {
		return nil
	}
	var s SensorConfig
	if v, ok := raw["delay"]; ok {
		s.Delay, _ = asDuration("sensor.delay", v)
	}
	if v, ok := raw["distance"]; ok {
		s.Distance, _ = asThreshold("sensor.distance", v)
	}
	if s.Delay > 0 && s.Distance.IsSet() {
		return &ValidationError{
			Path:    "sensor",
			Message: `"distance" and "delay" are mutually exclusive`,
			Value:   fmt.Sprintf("delay=%v distance=%v", s.Delay, s.Distance),
			Code:    ErrCodeConflict,
		}
	}
	return nil
}

func (c *Config) getStringOr(path string, defaultValue string) string {
	v, err := c.GetString(path)
	if err != nil {
		if err != ErrSettingNotFound {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getIntOr(path string, defaultValue int) int {
	v, err := c.GetInt(path)
	if err != nil {
		if err != ErrSettingNotFound {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getBoolOr(path string, defaultValue bool) bool {
	v, err := c.GetBool(path)
	if err != nil {
		if err != ErrSettingNotFound {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getFloatOr(path string, defaultValue float64) float64 {
	v, err := c.GetFloat(path)
	if err != nil {
		if err != ErrSettingNotFound {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getDurationOr(path string, defaultValue time.Duration) time.Duration {
	v, err := c.GetDuration(path)
	if err != nil {
		if err != ErrSettingNotFound {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getStringSliceOr(path string, defaultValue []string) []string {
	v, err := c.GetStringSlice(path)
	if err != nil {
		if err != ErrSettingNotFound {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

// getThresholdOr returns the unset threshold when the path is absent.
func (c *Config) getThresholdOr(path string) gesture.Threshold {
	v, ok := c.Get(path)
	if !ok {
		return gesture.Threshold{}
	}
	t, err := asThreshold(path, v)
	if err != nil {
		c.recordConfigError(path, err)
		return gesture.Threshold{}
	}
	return t
}

// Set overrides a single setting in memory, for command-line flags. It
// does not survive a reload.
func (c *Config) Set(path string, value any) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrSettingNotFound)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	next := loader.Clone(c.merged)
	loader.DeepMerge(next, nest(path, value))
	if err := validate(next); err != nil {
		return err
	}
	c.merged = next
	return nil
}

// nest builds {"a": {"b": value}} from "a.b".
func nest(path string, value any) map[string]any {
	out := make(map[string]any)
	cur := out
	start := 0
	for i := 0; i < len(path); i++ {
		if path[i] == '.' {
			next := make(map[string]any)
			cur[path[start:i]] = next
			cur = next
			start = i + 1
		}
	}
	cur[path[start:]] = value
	return out
}
