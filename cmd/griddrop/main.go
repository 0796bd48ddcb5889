// Package main is the entry point for the griddrop board.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dshills/griddrop/internal/app"
	"github.com/dshills/griddrop/internal/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() app.Options {
	var opts app.Options
	var showVersion, showHelp bool
	var distance float64
	var delay time.Duration
	var axis string
	var touchOnly bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&opts.Watch, "watch", false, "Reload the configuration file when it changes")
	flag.BoolVar(&opts.DisableEnv, "no-env", false, "Ignore GRIDDROP_* environment variables")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.Float64Var(&distance, "distance", 0, "Start dragging after the pointer moves this many cells")
	flag.DurationVar(&delay, "delay", 0, "Start dragging after the button is held this long")
	flag.StringVar(&axis, "axis", "", "Restrict dragging to an axis (xy, x, y)")
	flag.BoolVar(&touchOnly, "touch-only", false, "Ignore mouse presses")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "griddrop - drag and drop between grid zones\n\n")
		fmt.Fprintf(os.Stderr, "Usage: griddrop [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  griddrop                   Drag on press\n")
		fmt.Fprintf(os.Stderr, "  griddrop -distance 2       Drag after moving two cells\n")
		fmt.Fprintf(os.Stderr, "  griddrop -delay 250ms      Drag after a long press\n")
		fmt.Fprintf(os.Stderr, "  griddrop -c board.toml -watch\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if showVersion {
		fmt.Printf("griddrop %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	// Only flags given on the command line override the config file.
	overrides := make(map[string]any)
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "distance":
			overrides["sensor.distance"] = distance
		case "delay":
			overrides["sensor.delay"] = delay.String()
		case "axis":
			overrides["sensor.axis"] = axis
		case "touch-only":
			overrides["sensor.enableMouse"] = !touchOnly
		}
	})
	if len(overrides) > 0 {
		opts.Overrides = overrides
	}

	return opts
}
