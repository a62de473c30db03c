// Package terminal implements a frontend that renders into a text terminal
// using tcell. Two display rows share one character cell through half block
// characters.
package terminal

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell"
	"github.com/retroenv/chip8vm/internal/frontend"
	"github.com/retroenv/chip8vm/internal/keymap"
	"github.com/retroenv/chip8vm/internal/vm"
)

// Compile-time check to ensure Frontend implements frontend.Frontend.
var _ frontend.Frontend = (*Frontend)(nil)

// DefaultHoldTime is how long a key stays pressed after its last event.
// Terminals only report key presses, a release is assumed once the
// repeated events of a held key stop arriving.
const DefaultHoldTime = 150 * time.Millisecond

const eventQueueSize = 64

var cells = [4]rune{' ', '▀', '▄', '█'}

// Frontend renders into a terminal screen.
type Frontend struct {
	layout   keymap.Layout
	holdTime time.Duration
	bell     io.Writer
	now      func() time.Time

	screen tcell.Screen
	events chan tcell.Event
	done   chan struct{}

	released map[uint8]time.Time // release deadline of pressed keys
	style    tcell.Style
}

// Option configures the terminal frontend.
type Option func(*Frontend)

// WithScreen sets the screen to render into instead of the terminal.
func WithScreen(screen tcell.Screen) Option {
	return func(f *Frontend) {
		f.screen = screen
	}
}

// WithHoldTime sets the time a key stays pressed after its last event.
func WithHoldTime(d time.Duration) Option {
	return func(f *Frontend) {
		f.holdTime = d
	}
}

// WithBell sets the writer that receives the terminal bell on a beep.
func WithBell(w io.Writer) Option {
	return func(f *Frontend) {
		f.bell = w
	}
}

// New returns a new terminal frontend.
func New(layout keymap.Layout, options ...Option) *Frontend {
	f := &Frontend{
		layout:   layout,
		holdTime: DefaultHoldTime,
		bell:     os.Stderr,
		now:      time.Now,
		released: map[uint8]time.Time{},
		style:    tcell.StyleDefault,
	}
	for _, option := range options {
		option(f)
	}
	return f
}

// Name returns the name of the frontend.
func (f *Frontend) Name() string {
	return frontend.Terminal
}

// Open initializes the screen and starts reading terminal events.
func (f *Frontend) Open() error {
	if f.screen == nil {
		tcell.SetEncodingFallback(tcell.EncodingFallbackASCII)

		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("creating screen: %w", err)
		}
		f.screen = screen
	}

	if err := f.screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	f.screen.HideCursor()
	f.screen.DisableMouse()
	f.screen.Clear()

	f.events = make(chan tcell.Event, eventQueueSize)
	f.done = make(chan struct{})
	go f.pollEvents(f.screen, f.events, f.done)
	return nil
}

// pollEvents forwards screen events until the screen is finalized.
func (f *Frontend) pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}

		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// Poll forwards the pending key events to the keypad.
func (f *Frontend) Poll(keys frontend.Keypad) (bool, error) {
	for {
		select {
		case ev := <-f.events:
			if f.handleEvent(ev, keys) {
				return true, nil
			}
		default:
			f.releaseKeys(keys)
			return false, nil
		}
	}
}

// handleEvent processes a single event and returns whether to quit.
func (f *Frontend) handleEvent(ev tcell.Event, keys frontend.Keypad) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			index, ok := f.layout.Key(ev.Rune())
			if !ok {
				return false
			}
			keys.SetKey(index, true)
			f.released[index] = f.now().Add(f.holdTime)
		}

	case *tcell.EventResize:
		f.screen.Sync()
	}
	return false
}

// releaseKeys releases all keys whose hold time expired.
func (f *Frontend) releaseKeys(keys frontend.Keypad) {
	now := f.now()
	for index, deadline := range f.released {
		if now.Before(deadline) {
			continue
		}
		keys.SetKey(index, false)
		delete(f.released, index)
	}
}

// Render draws the display, each cell covers two vertically adjacent pixels.
func (f *Frontend) Render(display frontend.Display) error {
	for y := 0; y < vm.ScreenHeight; y += 2 {
		for x := 0; x < vm.ScreenWidth; x++ {
			var index int
			if display.PixelAt(x, y) {
				index |= 1
			}
			if display.PixelAt(x, y+1) {
				index |= 2
			}
			f.screen.SetContent(x, y/2, cells[index], nil, f.style)
		}
	}
	f.screen.Show()
	return nil
}

// Beep rings the terminal bell.
func (f *Frontend) Beep() {
	_, _ = io.WriteString(f.bell, "\a")
}

// Close restores the terminal.
func (f *Frontend) Close() error {
	if f.screen == nil {
		return nil
	}
	if f.done != nil {
		close(f.done)
		f.done = nil
	}
	f.screen.Fini()
	return nil
}
