// Package headless implements a frontend without any host output. It records
// the rendered frames and replays scripted key events, which makes it useful
// for automated runs and tests.
package headless

import (
	"github.com/retroenv/chip8vm/internal/frontend"
	"github.com/retroenv/chip8vm/internal/vm"
)

// Compile-time check to ensure Frontend implements frontend.Frontend.
var _ frontend.Frontend = (*Frontend)(nil)

// KeyEvent is a scripted key state change that is delivered on the given poll.
type KeyEvent struct {
	Poll    int
	Key     uint8
	Pressed bool
}

// Frame is a captured display image.
type Frame [vm.ScreenHeight][vm.ScreenWidth]bool

// Frontend is a frontend that keeps all output in memory.
type Frontend struct {
	script []KeyEvent
	quitAt int // poll number that requests a quit, 0 disables it

	polls   int
	renders int
	beeps   int
	last    Frame
	opened  bool
}

// Option configures the headless frontend.
type Option func(*Frontend)

// WithKeyEvents sets scripted key events, they are delivered in order.
func WithKeyEvents(events ...KeyEvent) Option {
	return func(f *Frontend) {
		f.script = append(f.script, events...)
	}
}

// WithQuitAt requests a quit on the given poll, counted from 1.
func WithQuitAt(poll int) Option {
	return func(f *Frontend) {
		f.quitAt = poll
	}
}

// New returns a new headless frontend.
func New(options ...Option) *Frontend {
	f := &Frontend{}
	for _, option := range options {
		option(f)
	}
	return f
}

// Name returns the name of the frontend.
func (f *Frontend) Name() string {
	return frontend.Headless
}

// Open marks the frontend as opened.
func (f *Frontend) Open() error {
	f.opened = true
	return nil
}

// Poll delivers the scripted key events that are due.
func (f *Frontend) Poll(keys frontend.Keypad) (bool, error) {
	f.polls++

	for len(f.script) > 0 && f.script[0].Poll <= f.polls {
		event := f.script[0]
		f.script = f.script[1:]
		keys.SetKey(event.Key, event.Pressed)
	}

	return f.quitAt > 0 && f.polls >= f.quitAt, nil
}

// Render captures the display.
func (f *Frontend) Render(display frontend.Display) error {
	f.renders++
	for y := 0; y < vm.ScreenHeight; y++ {
		for x := 0; x < vm.ScreenWidth; x++ {
			f.last[y][x] = display.PixelAt(x, y)
		}
	}
	return nil
}

// Beep counts the beep.
func (f *Frontend) Beep() {
	f.beeps++
}

// Close marks the frontend as closed.
func (f *Frontend) Close() error {
	f.opened = false
	return nil
}

// Polls returns the number of Poll calls.
func (f *Frontend) Polls() int {
	return f.polls
}

// Renders returns the number of rendered frames.
func (f *Frontend) Renders() int {
	return f.renders
}

// Beeps returns the number of beeps.
func (f *Frontend) Beeps() int {
	return f.beeps
}

// LastFrame returns the last rendered frame.
func (f *Frontend) LastFrame() Frame {
	return f.last
}

// Opened returns whether the frontend is between Open and Close.
func (f *Frontend) Opened() bool {
	return f.opened
}
