package keymap

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		layout string
		key    rune
		want   uint8
	}{
		{Qwerty, '1', 0x1},
		{Qwerty, '4', 0xC},
		{Qwerty, 'q', 0x4},
		{Qwerty, 'w', 0x5},
		{Qwerty, 'r', 0xD},
		{Qwerty, 'a', 0x7},
		{Qwerty, 'f', 0xE},
		{Qwerty, 'z', 0xA},
		{Qwerty, 'x', 0x0},
		{Qwerty, 'c', 0xB},
		{Qwerty, 'V', 0xF},
		{Azerty, 'a', 0x4},
		{Azerty, 'z', 0x5},
		{Azerty, 'e', 0x6},
		{Azerty, 'q', 0x7},
		{Azerty, 'w', 0xA},
		{Azerty, 'x', 0x0},
		{Azerty, 'v', 0xF},
	}

	for _, tt := range tests {
		t.Run(tt.layout+" "+string(tt.key), func(t *testing.T) {
			l, err := Lookup(tt.layout)
			assert.NoError(t, err)

			index, ok := l.Key(tt.key)
			assert.True(t, ok)
			assert.Equal(t, tt.want, index)
		})
	}
}

func TestLookupCoversKeypad(t *testing.T) {
	for _, name := range Names() {
		l, err := Lookup(name)
		assert.NoError(t, err)
		assert.Equal(t, name, l.Name())

		seen := map[uint8]bool{}
		for _, index := range l.keys {
			seen[index] = true
		}
		assert.Equal(t, 16, len(seen))
	}
}

func TestLookupUnmappedKey(t *testing.T) {
	l, err := Lookup("QWERTY")
	assert.NoError(t, err)

	_, ok := l.Key('p')
	assert.False(t, ok)
	_, ok = l.Key('5')
	assert.False(t, ok)
}

func TestLookupUnknownLayout(t *testing.T) {
	_, err := Lookup("dvorak")
	assert.True(t, errors.Is(err, ErrUnknownLayout))
	assert.ErrorContains(t, err, "azerty, qwerty")
}
