// Package app provides the main application structure and coordination
// for griddrop. It wires the drag engine to a terminal backend and manages
// the application lifecycle.
package app

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dshills/griddrop/internal/backend"
	"github.com/dshills/griddrop/internal/config"
	"github.com/dshills/griddrop/internal/dnd"
	"github.com/dshills/griddrop/internal/event"
	"github.com/dshills/griddrop/internal/gesture"
	"github.com/dshills/griddrop/internal/input/pointer"
	"github.com/dshills/griddrop/internal/store"
)

// Application is the central coordinator for all griddrop components.
// It manages component lifecycles, wiring, and the main event loop.
type Application struct {
	mu sync.RWMutex

	// Core infrastructure
	eventBus *event.Bus
	config   *config.Config
	logger   *Logger
	logFile  *os.File
	metrics  *Metrics
	subs     *subscriptionManager

	// Drag engine
	store      *store.Store
	target     *pointer.Target
	board      *Board
	dnd        *dnd.Context
	unregister []func()

	backend backend.Backend

	// Loop state, owned by the event loop goroutine
	status string

	// State
	running      atomic.Bool
	done         chan struct{}
	doneOnce     sync.Once
	shutdownOnce sync.Once

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is an explicit config file. Empty looks in ConfigDir.
	ConfigPath string

	// ConfigDir overrides the config directory.
	ConfigDir string

	// DisableEnv ignores GRIDDROP_* environment variables.
	DisableEnv bool

	// Watch reloads the config file when it changes.
	Watch bool

	// Overrides are applied on top of the loaded config, keyed by setting
	// path. They are lost when the file is reloaded.
	Overrides map[string]any

	// LogLevel overrides the configured log level.
	LogLevel string

	// LogOutput overrides the configured log file.
	LogOutput io.Writer

	// Clock overrides the sensor clock. By default sensor timers fire on
	// the event loop.
	Clock gesture.Clock
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts: opts,
		done: make(chan struct{}),
	}

	if err := newBootstrapper(app, opts).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Run initializes the backend and runs the event loop until the user quits
// or Shutdown is called. Components are torn down when it returns.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)
	defer app.shutdown()

	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b == nil {
		return ErrNoBackend
	}

	select {
	case <-app.done:
		return nil
	default:
	}

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()

	app.board.Layout()
	app.Logger().Info("running with zones %v", app.board.ZoneIDs())
	return app.eventLoop()
}

// Shutdown asks the event loop to stop. Without a running loop it tears
// the components down directly. It is safe to call more than once.
func (app *Application) Shutdown() {
	app.doneOnce.Do(func() { close(app.done) })

	if app.running.Load() {
		// Wake PollEvent so the loop sees done.
		_ = app.post(func() {})
		return
	}
	app.shutdown()
}

// shutdown performs cleanup in reverse initialization order.
func (app *Application) shutdown() {
	app.shutdownOnce.Do(func() {
		if app.dnd != nil {
			app.dnd.Close()
		}
		for i := len(app.unregister) - 1; i >= 0; i-- {
			app.unregister[i]()
		}
		if app.board != nil {
			app.board.Close()
		}
		if app.config != nil {
			app.config.Close()
		}
		if app.subs != nil {
			app.subs.closeAll()
		}
		if app.eventBus != nil {
			app.eventBus.Close()
		}
		if app.logFile != nil {
			_ = app.logFile.Close()
		}
	})
}

// post queues fn to run on the event loop.
func (app *Application) post(fn func()) error {
	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b == nil {
		return ErrNoBackend
	}
	return b.PostFunc(fn)
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// EventBus returns the event bus.
func (app *Application) EventBus() *event.Bus {
	return app.eventBus
}

// Config returns the configuration system.
func (app *Application) Config() *config.Config {
	return app.config
}

// Store returns the drag session store.
func (app *Application) Store() *store.Store {
	return app.store
}

// Board returns the board model.
func (app *Application) Board() *Board {
	return app.board
}

// DnD returns the drag-and-drop context.
func (app *Application) DnD() *dnd.Context {
	return app.dnd
}
