// Package runner drives a virtual machine: it interleaves instruction steps
// with timer ticks at a fixed rate and connects the machine to a frontend.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/retroenv/chip8vm/internal/frontend"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// Default timing.
const (
	DefaultStepsPerTick = 10
	DefaultTickRate     = 60
)

// Options controls the timing of the runner.
type Options struct {
	StepsPerTick int // instructions executed per timer tick
	TickRate     int // timer ticks per second
	Frames       int // frames to run before stopping, 0 runs until quit
}

// Runner executes a machine frame by frame.
type Runner struct {
	logger  *log.Logger
	machine *vm.VM
	front   frontend.Frontend
	opts    Options

	frames int
}

// New returns a new runner. Zero timing options are replaced by the defaults.
func New(logger *log.Logger, machine *vm.VM, front frontend.Frontend, opts Options) *Runner {
	if opts.StepsPerTick <= 0 {
		opts.StepsPerTick = DefaultStepsPerTick
	}
	if opts.TickRate <= 0 {
		opts.TickRate = DefaultTickRate
	}

	return &Runner{
		logger:  logger,
		machine: machine,
		front:   front,
		opts:    opts,
	}
}

// Run opens the frontend and runs frames at the tick rate until the user
// quits, the frame limit is reached, the context is canceled or the machine
// faults.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.front.Open(); err != nil {
		return fmt.Errorf("opening %s frontend: %w", r.front.Name(), err)
	}
	defer func() {
		if err := r.front.Close(); err != nil {
			r.logger.Error("Closing frontend failed", log.Err(err))
		}
	}()

	r.logger.Debug("Running program",
		log.String("frontend", r.front.Name()),
		log.Int("steps_per_tick", r.opts.StepsPerTick),
		log.Int("tick_rate", r.opts.TickRate))

	ticker := time.NewTicker(time.Second / time.Duration(r.opts.TickRate))
	defer ticker.Stop()

	for {
		quit, err := r.Frame()
		if err != nil {
			return err
		}
		if quit {
			r.logger.Info("Quit requested", log.Int("frames", r.frames))
			return nil
		}
		if r.opts.Frames > 0 && r.frames >= r.opts.Frames {
			r.logger.Debug("Frame limit reached", log.Int("frames", r.frames))
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Frame processes the input, executes up to StepsPerTick instructions, ticks
// the timers once and renders the display if it changed. Stepping ends early
// while the program waits for a key or when a breakpoint is reached.
// It returns whether the user requested to quit.
func (r *Runner) Frame() (bool, error) {
	quit, err := r.front.Poll(r.machine)
	if err != nil {
		return false, fmt.Errorf("polling input: %w", err)
	}
	if quit {
		return true, nil
	}

	if err := r.steps(); err != nil {
		return false, err
	}

	r.machine.Tick()
	if r.machine.OnBeepEdge() {
		r.front.Beep()
	}

	if r.machine.IsRedrawOwed() {
		if err := r.front.Render(r.machine); err != nil {
			return false, fmt.Errorf("rendering: %w", err)
		}
	}

	r.frames++
	return false, nil
}

func (r *Runner) steps() error {
	for i := 0; i < r.opts.StepsPerTick; i++ {
		result, err := r.machine.Step()

		switch result {
		case vm.Executed:
			continue

		case vm.Waiting:
			return nil

		case vm.Breakpoint:
			regs := r.machine.Registers()
			r.logger.Info("Breakpoint reached",
				log.Hex("pc", regs.PC),
				log.Hex("i", regs.I),
				log.Uint8("sp", regs.SP),
				log.String("v", fmt.Sprintf("% X", regs.V[:])))
			return nil

		default:
			return fmt.Errorf("executing program: %w", err)
		}
	}
	return nil
}

// Frames returns the number of completed frames.
func (r *Runner) Frames() int {
	return r.frames
}
