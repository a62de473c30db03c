// Package config handles application configuration and setup
package config

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/retroenv/chip8vm/internal/frontend"
	"github.com/retroenv/chip8vm/internal/frontend/headless"
	"github.com/retroenv/chip8vm/internal/frontend/sdl"
	"github.com/retroenv/chip8vm/internal/frontend/terminal"
	"github.com/retroenv/chip8vm/internal/keymap"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateFrontend creates the frontend selected by the options.
func CreateFrontend(logger *log.Logger, opts options.Program) (frontend.Frontend, error) {
	layout, err := keymap.Lookup(opts.Layout)
	if err != nil {
		return nil, err
	}

	switch opts.Frontend {
	case frontend.Headless:
		return headless.New(), nil
	case frontend.Terminal:
		return terminal.New(layout), nil
	case frontend.SDL:
		return sdl.New(logger, layout), nil
	default:
		return nil, fmt.Errorf("unsupported frontend: %s", opts.Frontend)
	}
}

// CreateMachine creates a virtual machine configured by the options.
func CreateMachine(logger *log.Logger, opts options.Program) *vm.VM {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Debug("Random number generator", log.Int("seed", int(seed)))

	machine := vm.New(
		vm.WithLogger(logger),
		vm.WithRandom(rand.New(rand.NewSource(seed))),
		vm.WithTrace(opts.Trace),
	)
	for _, address := range opts.BreakpointAddresses {
		machine.SetBreakpoint(address)
	}
	return machine
}

// RunnerOptions returns the runner timing of the options.
func RunnerOptions(opts options.Program) runner.Options {
	return runner.Options{
		StepsPerTick: opts.StepsPerTick,
		TickRate:     opts.TickRate,
		Frames:       opts.Frames,
	}
}
