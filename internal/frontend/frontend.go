// Package frontend defines the host side collaborators of the machine: a
// renderer for the framebuffer, a source of key events and a beeper.
package frontend

import "errors"

// Frontend names.
const (
	Headless = "headless"
	Terminal = "terminal"
	SDL      = "sdl"
)

// Names lists all frontend names in the order they are shown to the user.
var Names = []string{Headless, Terminal, SDL}

// ErrNotAvailable is returned when a frontend was not compiled into the binary.
var ErrNotAvailable = errors.New("frontend not available in this build")

// Display is the read-only view of the framebuffer that a frontend renders.
type Display interface {
	PixelAt(x, y int) bool
}

// Keypad receives the key state changes produced by a frontend.
type Keypad interface {
	SetKey(index uint8, pressed bool)
}

// Frontend defines the interface that the different host backends implement.
type Frontend interface {
	// Name returns the name of the frontend.
	Name() string
	// Open acquires the host resources like windows or terminals.
	Open() error
	// Poll forwards all pending input events to the keypad and returns
	// whether the user requested to quit.
	Poll(keys Keypad) (bool, error)
	// Render draws the full display.
	Render(display Display) error
	// Beep signals the end of a sound.
	Beep()
	// Close releases the host resources.
	Close() error
}
