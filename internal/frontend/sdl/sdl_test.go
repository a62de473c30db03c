//go:build sdl

package sdl

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestSquareWave(t *testing.T) {
	samples := squareWave()

	assert.Len(t, samples, toneLength)
	assert.Equal(t, byte(0x80+toneVolume), samples[0])

	halfPeriod := audioFrequency / toneFrequency / 2
	assert.Equal(t, byte(0x80-toneVolume), samples[halfPeriod])
	assert.Equal(t, byte(0x80+toneVolume), samples[2*halfPeriod])
}
