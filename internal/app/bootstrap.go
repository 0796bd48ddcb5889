package app

import (
	"context"
	"sort"

	"github.com/dshills/griddrop/internal/config"
	"github.com/dshills/griddrop/internal/dnd"
	"github.com/dshills/griddrop/internal/event"
	"github.com/dshills/griddrop/internal/gesture"
	"github.com/dshills/griddrop/internal/input/pointer"
	"github.com/dshills/griddrop/internal/store"
)

// bootstrapper handles component initialization with proper cleanup on failure.
type bootstrapper struct {
	app       *Application
	opts      Options
	initOrder []string
}

// newBootstrapper creates a new bootstrapper for the application.
func newBootstrapper(app *Application, opts Options) *bootstrapper {
	return &bootstrapper{
		app:       app,
		opts:      opts,
		initOrder: make([]string, 0, 8),
	}
}

// bootstrap initializes all components in dependency order.
// On failure, it cleans up already-initialized components.
func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		b.initEventBus,
		b.initConfig,
		b.initLogger,
		b.initSubscriptions,
		b.initStore,
		b.initBoard,
		b.initDnD,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			b.cleanup()
			return err
		}
	}
	b.app.Logger().Debug("bootstrap complete: %v", b.initOrder)
	return nil
}

// initEventBus initializes the event bus.
func (b *bootstrapper) initEventBus() error {
	b.app.eventBus = event.NewBus()
	b.initOrder = append(b.initOrder, "eventBus")
	return nil
}

// initConfig loads the configuration and applies command-line overrides.
func (b *bootstrapper) initConfig() error {
	configOpts := []config.Option{
		config.WithEnv(!b.opts.DisableEnv),
		config.WithWatcher(b.opts.Watch),
	}
	if b.opts.ConfigPath != "" {
		configOpts = append(configOpts, config.WithFile(b.opts.ConfigPath))
	}
	if b.opts.ConfigDir != "" {
		configOpts = append(configOpts, config.WithConfigDir(b.opts.ConfigDir))
	}

	cfg := config.New(configOpts...)
	// Handlers are registered before Load so a watcher started by Load
	// never reloads without them.
	cfg.OnReload(func(c *config.Config) {
		if err := b.app.post(func() { b.app.applyConfig(c) }); err != nil {
			b.app.logComponentError("config", err)
		}
	})
	cfg.OnError(func(err error) {
		b.app.logComponentError("config", err)
		_ = b.app.post(func() { b.app.status = "config error: " + err.Error() })
	})

	if err := cfg.Load(context.Background()); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	b.app.config = cfg
	b.initOrder = append(b.initOrder, "config")

	paths := make([]string, 0, len(b.opts.Overrides))
	for p := range b.opts.Overrides {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		if err := cfg.Set(p, b.opts.Overrides[p]); err != nil {
			return &InitError{Component: "config", Err: WrapError(err, "override %s", p)}
		}
	}
	return nil
}

// initLogger creates the logger. Without a log file or output, logging is
// disabled.
func (b *bootstrapper) initLogger() error {
	lc := b.app.config.Logging()
	levelName := lc.Level
	if b.opts.LogLevel != "" {
		levelName = b.opts.LogLevel
	}
	level := ParseLogLevel(levelName)

	out := b.opts.LogOutput
	if out == nil && lc.File != "" {
		f, err := OpenLogFile(lc.File)
		if err != nil {
			return &InitError{Component: "logger", Err: err}
		}
		b.app.logFile = f
		out = f
	}
	if out == nil {
		b.app.logger = NullLogger
	} else {
		cfg := DefaultLoggerConfig()
		cfg.Level = level
		cfg.Output = out
		b.app.logger = NewLogger(cfg)
	}
	b.initOrder = append(b.initOrder, "logger")
	return nil
}

// initSubscriptions wires bus events to metrics and logging.
func (b *bootstrapper) initSubscriptions() error {
	b.app.metrics = NewMetrics()
	b.app.subs = newSubscriptionManager(b.app)
	if err := b.app.subs.setupSubscriptions(); err != nil {
		return &InitError{Component: "subscriptions", Err: err}
	}
	b.initOrder = append(b.initOrder, "subscriptions")
	return nil
}

// initStore creates the drag session store and the pointer target.
func (b *bootstrapper) initStore() error {
	b.app.store = store.New()
	b.app.store.SetLogger(b.app.Logger().WithComponent("store"))
	b.app.target = pointer.NewTarget()
	b.initOrder = append(b.initOrder, "store")
	return nil
}

// initBoard creates the zones and their coordinator.
func (b *bootstrapper) initBoard() error {
	b.app.board = NewBoard(b.app.config.Zones(), b.app.eventBus, b.app.Logger().WithComponent("traverse"))
	b.app.board.OnReorder(b.app.handleReorder)
	b.initOrder = append(b.initOrder, "board")
	return nil
}

// initDnD creates the drag context and registers every zone and item.
func (b *bootstrapper) initDnD() error {
	policy, err := b.app.config.Sensor().Gesture()
	if err != nil {
		return &InitError{Component: "sensor", Err: err}
	}

	clock := b.opts.Clock
	if clock == nil {
		clock = loopClock{
			post:   b.app.post,
			onDrop: func(err error) { b.app.logComponentError("sensor", err) },
		}
	}

	board := b.app.board
	ctx, err := dnd.NewContext(b.app.store, b.app.target, policy, dnd.Callbacks{
		ShouldStart: board.Begin,
		OnDragMove: func(_ string, s gesture.State, _ *pointer.Event) {
			board.Move(s.Offset)
		},
		OnDragEnd: func(_ string, s gesture.State, _ *pointer.Event) {
			board.End(s.Offset)
		},
		OnDragCancel: func(string, gesture.State) {
			board.Cancel()
		},
	},
		dnd.WithBus(b.app.eventBus),
		dnd.WithLogger(b.app.Logger().WithComponent("dnd")),
		dnd.WithSensorOptions(gesture.WithClock(clock)),
	)
	if err != nil {
		return &InitError{Component: "dnd", Err: err}
	}
	b.app.dnd = ctx

	for _, zoneID := range board.ZoneIDs() {
		bz := board.byID[zoneID]
		b.app.unregister = append(b.app.unregister, ctx.RegisterDroppable(zoneID, zoneNode{zone: bz}, false))
		for _, itemID := range bz.items {
			b.app.unregister = append(b.app.unregister, ctx.RegisterDraggable(itemID, itemNode{board: board, id: itemID}))
		}
	}
	b.initOrder = append(b.initOrder, "dnd")
	return nil
}

// cleanup releases components in reverse initialization order.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		b.cleanupComponent(b.initOrder[i])
	}
}

// cleanupComponent releases a single component.
func (b *bootstrapper) cleanupComponent(name string) {
	switch name {
	case "eventBus":
		b.app.eventBus.Close()
	case "config":
		b.app.config.Close()
	case "logger":
		if b.app.logFile != nil {
			_ = b.app.logFile.Close()
			b.app.logFile = nil
		}
	case "subscriptions":
		b.app.subs.closeAll()
	case "board":
		b.app.board.Close()
	case "dnd":
		b.app.dnd.Close()
	}
}
