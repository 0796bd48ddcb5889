package app

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/dshills/griddrop/internal/backend"
	"github.com/dshills/griddrop/internal/config"
	"github.com/dshills/griddrop/internal/event"
	"github.com/dshills/griddrop/internal/input/pointer"
)

// eventLoop is the main application loop. Every component of the drag
// engine is only touched from here.
func (app *Application) eventLoop() error {
	app.draw()
	for {
		ev := app.backend.PollEvent()
		select {
		case <-app.done:
			return nil
		default:
		}

		start := time.Now()
		err := app.safeHandle(ev)
		app.metrics.RecordEvent(time.Since(start))

		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			app.logComponentError("eventloop", err)
		}
		app.draw()
	}
}

// safeHandle handles one event, converting a panic into an error.
func (app *Application) safeHandle(ev backend.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			app.metrics.RecordPanic()
			err = NewRecoveredPanicError(r, string(debug.Stack()))
		}
	}()
	return app.handleBackendEvent(ev)
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventPointer:
		return app.handlePointerEvent(ev.Pointer)
	case backend.EventResize:
		return app.handleResize(ev)
	case backend.EventFocus:
		return app.handleFocusEvent(ev)
	case backend.EventInterrupt:
		if ev.Fn != nil {
			ev.Fn()
		}
		return nil
	default:
		return nil
	}
}

// handleKeyEvent processes keyboard input. Escape cancels a drag in
// progress, Ctrl-R reloads the config file, and q or Ctrl-C quits.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	switch ev.Key {
	case backend.KeyCtrlC:
		return ErrQuit
	case backend.KeyCtrlR:
		app.reloadConfig()
		return nil
	case backend.KeyEscape:
		if app.dnd.Sensor().Active() {
			app.cancelDrag()
		}
		return nil
	case backend.KeyRune:
		switch ev.Rune {
		case 'q', 'Q':
			return ErrQuit
		}
	}
	return nil
}

// handlePointerEvent dispatches a pointer event to the session listeners.
// A press is offered to the sensor after dispatch, so the listeners it binds
// only see later events.
func (app *Application) handlePointerEvent(p *pointer.Event) error {
	if p == nil {
		return nil
	}
	app.target.Dispatch(p)
	if p.Kind == pointer.KindPress {
		app.dnd.Press(p)
	}
	return nil
}

// handleResize relays out the board. The resize also cancels a drag in
// progress, since every measured position is stale.
func (app *Application) handleResize(_ backend.Event) error {
	app.board.Layout()
	app.target.Dispatch(pointer.NewSignal(pointer.KindResize, time.Now()))
	return nil
}

// handleFocusEvent cancels a drag when the terminal loses focus.
func (app *Application) handleFocusEvent(ev backend.Event) error {
	if !ev.Focused {
		app.target.Dispatch(pointer.NewSignal(pointer.KindVisibilityChange, time.Now()))
	}
	return nil
}

// cancelDrag cancels the active session the way a hidden page would.
func (app *Application) cancelDrag() {
	app.target.Dispatch(pointer.NewSignal(pointer.KindVisibilityChange, time.Now()))
	app.status = "drag cancelled"
}

// handleReorder is told about every reorder the board applied.
func (app *Application) handleReorder(r Reorder) {
	app.status = "moved " + r.Item + " to " + r.TargetID
	if err := event.Emit(context.Background(), app.eventBus, TopicBoardReordered, r, "board"); err != nil {
		app.logComponentError("board", err)
	}
}

// reloadConfig reads the config file again. Command-line overrides are
// dropped, as with a watched reload.
func (app *Application) reloadConfig() {
	if err := app.config.Load(context.Background()); err != nil {
		app.logComponentError("config", err)
		app.status = "config error: " + err.Error()
		return
	}
	app.applyConfig(app.config)
}

// applyConfig applies a reloaded configuration. The new sensor policy takes
// effect from the next press.
func (app *Application) applyConfig(c *config.Config) {
	policy, err := c.Sensor().Gesture()
	if err != nil {
		app.logComponentError("config", err)
		app.status = "config error: " + err.Error()
		return
	}
	if err := app.dnd.Sensor().SetConfig(policy); err != nil {
		app.logComponentError("sensor", err)
		return
	}
	if app.opts.LogLevel == "" {
		app.Logger().SetLevel(ParseLogLevel(c.Logging().Level))
	}
	app.status = "config reloaded"
	if err := event.Emit(context.Background(), app.eventBus, event.TopicConfigReloaded, policy, "config"); err != nil {
		app.logComponentError("config", err)
	}
}
