// Package config provides the configuration system for griddrop.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← GRIDDROP_SENSOR_DISTANCE=3
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ~/.config/griddrop/griddrop.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// The config file may be TOML or YAML; the extension decides. Command-line
// flags are applied on top with Set.
//
// # Sub-packages
//
//   - loader: TOML, YAML and environment sources, DeepMerge
//   - watcher: fsnotify-based change detection for live reload
//
// # Basic Usage
//
//	cfg := config.New(config.WithWatcher(true))
//	if err := cfg.Load(ctx); err != nil {
//	    return err
//	}
//	defer cfg.Close()
//
//	policy, err := cfg.Sensor().Gesture()
//
// # Sensor Settings
//
// Thresholds are either a number (total distance) or a table with x
// and/or y:
//
//	[sensor]
//	delay = 250          # milliseconds, or "250ms"
//	tolerance = { x = 4, y = 6 }
//	axis = "xy"
//
// delay and distance are mutually exclusive; setting both fails Load.
//
// # Live Reload
//
// With WithWatcher(true), edits to the config file are reloaded and every
// OnReload handler runs with the new settings. A file that fails to parse
// or validate is reported to OnError and the previous settings stay.
package config
