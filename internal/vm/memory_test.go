package vm

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestMemoryFont(t *testing.T) {
	var m Memory
	m.reset()

	for i, value := range fontSet {
		b, err := m.ReadByte(FontStart + uint16(i))
		assert.NoError(t, err)
		assert.Equal(t, value, b)
	}

	// glyph "F"
	b, err := m.ReadByte(glyphAddress(0xF))
	assert.NoError(t, err)
	assert.Equal(t, byte(0xF0), b)
	b, err = m.ReadByte(glyphAddress(0xF) + 4)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x80), b)
}

func TestMemoryBounds(t *testing.T) {
	var m Memory

	assert.NoError(t, m.WriteByte(0xFFF, 0x12))
	b, err := m.ReadByte(0xFFF)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x12), b)

	_, err = m.ReadByte(0x1000)
	assert.True(t, errors.Is(err, ErrAddressOutOfRange))
	assert.ErrorContains(t, err, "reading $1000")

	err = m.WriteByte(0xFFFF, 0)
	assert.True(t, errors.Is(err, ErrAddressOutOfRange))
	assert.ErrorContains(t, err, "writing $FFFF")
}

func TestMemoryReadWord(t *testing.T) {
	var m Memory
	assert.NoError(t, m.load([]byte{0x12, 0x34, 0xAB}))

	word, err := m.ReadWord(ProgramStart)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x1234), word)

	word, err = m.ReadWord(ProgramStart + 1)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x34AB), word)

	_, err = m.ReadWord(MemorySize - 1)
	assert.True(t, errors.Is(err, ErrAddressOutOfRange))
}

func TestMemoryLoadTooLarge(t *testing.T) {
	var m Memory
	err := m.load(make([]byte, MaxProgramSize+1))

	assert.True(t, errors.Is(err, ErrProgramTooLarge))
	assert.ErrorContains(t, err, "3585 bytes exceed the 3584 byte limit")
}
