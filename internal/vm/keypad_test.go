package vm

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeypad(t *testing.T) {
	var k Keypad

	_, ok := k.firstPressed()
	assert.False(t, ok)

	k.Set(0xC, true)
	k.Set(0x7, true)
	k.Set(0x10, true)

	assert.True(t, k.Pressed(0xC))
	assert.True(t, k.Pressed(0x17))
	assert.False(t, k.Pressed(0x0))

	key, ok := k.firstPressed()
	assert.True(t, ok)
	assert.Equal(t, uint8(0x7), key)

	k.Set(0x7, false)
	key, ok = k.firstPressed()
	assert.True(t, ok)
	assert.Equal(t, uint8(0xC), key)
}
