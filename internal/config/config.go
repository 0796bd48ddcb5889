package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dshills/griddrop/internal/config/loader"
	"github.com/dshills/griddrop/internal/config/watcher"
)

// FileNames are the config file names looked up in the config directory,
// in order.
var FileNames = []string{"griddrop.toml", "griddrop.yaml", "griddrop.yml"}

// ReloadHandler is called after a watched config file was reloaded.
type ReloadHandler func(c *Config)

// Config provides layered access to griddrop settings.
//
// Layers, lowest priority first: built-in defaults, the config file
// (TOML or YAML), environment variables.
type Config struct {
	mu sync.RWMutex

	merged map[string]any

	fs        loader.FileSystem
	file      string
	configDir string

	enableEnv bool
	envPrefix string

	enableWatcher bool
	watcher       *watcher.Watcher
	onReload      []ReloadHandler
	onError       func(error)

	// configErrors stores errors encountered during configuration access,
	// so type mismatches in the file surface instead of silently defaulting.
	configErrors map[string]error
}

// Option configures a Config instance.
type Option func(*Config)

// WithFile sets an explicit config file. Its extension picks the format.
func WithFile(path string) Option {
	return func(c *Config) {
		c.file = path
	}
}

// WithConfigDir sets the directory searched for FileNames.
func WithConfigDir(dir string) Option {
	return func(c *Config) {
		c.configDir = dir
	}
}

// WithEnv enables or disables the environment layer.
func WithEnv(enable bool) Option {
	return func(c *Config) {
		c.enableEnv = enable
	}
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithWatcher enables file watching for live reload.
func WithWatcher(enable bool) Option {
	return func(c *Config) {
		c.enableWatcher = enable
	}
}

// WithFS sets the file system config files are read from.
func WithFS(fs loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fs
	}
}

// New creates a Config holding only the built-in defaults.
func New(opts ...Option) *Config {
	c := &Config{
		merged:       defaultConfig(),
		fs:           loader.DefaultFS(),
		enableEnv:    true,
		envPrefix:    loader.DefaultEnvPrefix,
		configErrors: make(map[string]error),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.configDir == "" {
		c.configDir = defaultUserConfigDir()
	}
	return c
}

// Load loads configuration from all sources, validates it and, when
// enabled, starts watching the config file. A watcher that fails to start
// is reported through OnError and does not fail the load.
func (c *Config) Load(_ context.Context) error {
	merged, err := c.build()
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.merged = merged
	c.configErrors = make(map[string]error)
	start := c.enableWatcher && c.watcher == nil
	c.mu.Unlock()

	if start {
		if err := c.startWatcher(); err != nil {
			c.reportError(err)
		}
	}
	return nil
}

// build reads and merges every layer into a fresh map.
func (c *Config) build() (map[string]any, error) {
	merged := defaultConfig()

	path := c.Path()
	l, err := loader.ForPathWithFS(c.fs, path)
	if err != nil {
		return nil, err
	}
	data, err := l.Load()
	if err != nil {
		return nil, err
	}
	merged = loader.DeepMerge(merged, data)

	if c.enableEnv {
		env, err := loader.NewEnvLoader(c.envPrefix).Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, env)
	}

	if err := validate(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// Path returns the config file in use: the explicit file if one was set,
// otherwise the first of FileNames present in the config directory, or
// the TOML name when none is.
func (c *Config) Path() string {
	if c.file != "" {
		return c.file
	}
	for _, name := range FileNames {
		p := filepath.Join(c.configDir, name)
		if data, err := c.fs.ReadFile(p); err == nil && data != nil {
			return p
		}
	}
	return filepath.Join(c.configDir, FileNames[0])
}

// OnReload registers a handler called after every successful reload.
func (c *Config) OnReload(h ReloadHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onReload = append(c.onReload, h)
}

// OnError sets the callback for reload failures. The previous settings stay
// in effect when a reload fails.
func (c *Config) OnError(fn func(error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onError = fn
}

// Close stops the file watcher.
func (c *Config) Close() {
	c.mu.Lock()
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()

	if w != nil {
		_ = w.Close()
	}
}

func (c *Config) startWatcher() error {
	w, err := watcher.New(watcher.WithErrorHandler(c.reportError))
	if err != nil {
		return fmt.Errorf("starting config watcher: %w", err)
	}
	if err := w.Watch(c.Path()); err != nil {
		_ = w.Close()
		return fmt.Errorf("watching %s: %w", c.Path(), err)
	}
	w.OnChange(c.handleFileChange)

	c.mu.Lock()
	c.watcher = w
	c.mu.Unlock()
	return nil
}

// handleFileChange rebuilds the configuration after the file changed. A
// removed file falls back to defaults and environment.
func (c *Config) handleFileChange(event watcher.Event) {
	merged, err := c.build()
	if err != nil {
		c.reportError(err)
		return
	}

	c.mu.Lock()
	c.merged = merged
	c.configErrors = make(map[string]error)
	handlers := make([]ReloadHandler, len(c.onReload))
	copy(handlers, c.onReload)
	c.mu.Unlock()

	for _, h := range handlers {
		h(c)
	}
}

func (c *Config) reportError(err error) {
	c.mu.RLock()
	fn := c.onError
	c.mu.RUnlock()
	if fn != nil {
		fn(err)
	}
}

// Get returns the value at the given path from the merged configuration.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.Lookup(c.merged, path)
}

// Merged returns a copy of the merged configuration.
func (c *Config) Merged() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.Clone(c.merged)
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	return asString(path, v)
}

// GetInt returns an integer value at the given path.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	return asInt(path, v)
}

// GetBool returns a boolean value at the given path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	return asBool(path, v)
}

// GetFloat returns a float64 value at the given path.
func (c *Config) GetFloat(path string) (float64, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	return asFloat(path, v)
}

// GetDuration returns a duration at the given path. Plain numbers are
// milliseconds; strings use time.ParseDuration syntax ("250ms").
func (c *Config) GetDuration(path string) (time.Duration, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	return asDuration(path, v)
}

// GetStringSlice returns a string slice at the given path.
func (c *Config) GetStringSlice(path string) ([]string, error) {
	v, ok := c.Get(path)
	if !ok {
		return nil, ErrSettingNotFound
	}
	return asStringSlice(path, v)
}

// ConfigErrors returns the errors recorded by section accessors since the
// last load, keyed by setting path.
func (c *Config) ConfigErrors() map[string]error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]error, len(c.configErrors))
	for k, v := range c.configErrors {
		out[k] = v
	}
	return out
}

func (c *Config) recordConfigError(path string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.configErrors[path] = err
}

// defaultUserConfigDir returns the default user configuration directory.
func defaultUserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "griddrop")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "griddrop")
}

// defaultConfig returns the default configuration values.
func defaultConfig() map[string]any {
	return map[string]any{
		"sensor": map[string]any{
			"enableMouse": true,
			"delay":       int64(0),
			"axis":        "xy",
		},
		"zones": map[string]any{
			"names":       []any{"left", "right"},
			"items":       int64(9),
			"boxesPerRow": int64(3),
			"rowHeight":   int64(3),
			"columnWidth": int64(8),
			"gap":         int64(2),
		},
		"logging": map[string]any{
			"level": "info",
			"file":  "",
		},
		"ui": map[string]any{
			"title":         "griddrop",
			"showStatusBar": true,
		},
	}
}

// validate checks types and ranges of the settings griddrop reads.
func validate(m map[string]any) error {
	var errs []error

	check := func(path string, fn func(any) error) {
		v, ok := loader.Lookup(m, path)
		if !ok {
			return
		}
		if err := fn(v); err != nil {
			errs = append(errs, err)
		}
	}
	positive := func(path string) func(any) error {
		return func(v any) error {
			n, err := asFloat(path, v)
			if err != nil {
				return err
			}
			if n <= 0 {
				return &ValidationError{Path: path, Message: "must be positive", Value: v, Code: ErrCodeOutOfRange}
			}
			return nil
		}
	}

	check("sensor.enableMouse", func(v any) error { _, err := asBool("sensor.enableMouse", v); return err })
	check("sensor.delay", func(v any) error {
		d, err := asDuration("sensor.delay", v)
		if err == nil && d < 0 {
			return &ValidationError{Path: "sensor.delay", Message: "must not be negative", Value: v, Code: ErrCodeOutOfRange}
		}
		return err
	})
	check("sensor.tolerance", func(v any) error { _, err := asThreshold("sensor.tolerance", v); return err })
	check("sensor.distance", func(v any) error { _, err := asThreshold("sensor.distance", v); return err })
	check("sensor.axis", func(v any) error {
		s, err := asString("sensor.axis", v)
		if err != nil {
			return err
		}
		switch strings.ToLower(s) {
		case "", "xy", "x", "y":
			return nil
		}
		return &ValidationError{Path: "sensor.axis", Message: `must be "xy", "x" or "y"`, Value: v, Code: ErrCodeInvalidEnum}
	})
	check("zones.names", func(v any) error { _, err := asStringSlice("zones.names", v); return err })
	check("zones.items", func(v any) error {
		n, err := asInt("zones.items", v)
		if err == nil && n < 0 {
			return &ValidationError{Path: "zones.items", Message: "must not be negative", Value: v, Code: ErrCodeOutOfRange}
		}
		return err
	})
	check("zones.boxesPerRow", positive("zones.boxesPerRow"))
	check("zones.rowHeight", positive("zones.rowHeight"))
	check("zones.columnWidth", positive("zones.columnWidth"))
	check("logging.level", func(v any) error {
		s, err := asString("logging.level", v)
		if err != nil {
			return err
		}
		switch strings.ToLower(s) {
		case "debug", "info", "warn", "error":
			return nil
		}
		return &ValidationError{Path: "logging.level", Message: "unknown log level", Value: v, Code: ErrCodeInvalidEnum}
	})

	if err := validateSensor(m); err != nil {
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return nil
	}
	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Error() < errs[j].Error() })
	return fmt.Errorf("%w: %w", ErrValidationFailed, errors.Join(errs...))
}
