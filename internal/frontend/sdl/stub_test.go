//go:build !sdl

package sdl

import (
	"errors"
	"testing"

	"github.com/retroenv/chip8vm/internal/frontend"
	"github.com/retroenv/chip8vm/internal/keymap"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestStubNotAvailable(t *testing.T) {
	layout, err := keymap.Lookup(keymap.Azerty)
	assert.NoError(t, err)

	f := New(log.NewTestLogger(t), layout)
	assert.Equal(t, frontend.SDL, f.Name())
	assert.True(t, errors.Is(f.Open(), frontend.ErrNotAvailable))
	assert.NoError(t, f.Close())
}
