//go:build !sdl

// Package sdl implements a frontend that renders into an SDL window. This
// build does not include SDL support, build with the sdl tag to enable it.
package sdl

import (
	"github.com/retroenv/chip8vm/internal/frontend"
	"github.com/retroenv/chip8vm/internal/keymap"
	"github.com/retroenv/retrogolib/log"
)

// Compile-time check to ensure Frontend implements frontend.Frontend.
var _ frontend.Frontend = (*Frontend)(nil)

// Frontend is a placeholder that fails to open.
type Frontend struct{}

// New returns a frontend that reports that SDL is not available.
func New(_ *log.Logger, _ keymap.Layout) *Frontend {
	return &Frontend{}
}

// Name returns the name of the frontend.
func (f *Frontend) Name() string {
	return frontend.SDL
}

// Open returns frontend.ErrNotAvailable.
func (f *Frontend) Open() error {
	return frontend.ErrNotAvailable
}

// Poll does nothing.
func (f *Frontend) Poll(_ frontend.Keypad) (bool, error) {
	return false, frontend.ErrNotAvailable
}

// Render does nothing.
func (f *Frontend) Render(_ frontend.Display) error {
	return frontend.ErrNotAvailable
}

// Beep does nothing.
func (f *Frontend) Beep() {}

// Close does nothing.
func (f *Frontend) Close() error {
	return nil
}
