package runner

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/retroenv/chip8vm/internal/frontend"
	"github.com/retroenv/chip8vm/internal/frontend/headless"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newTestMachine(t *testing.T, words ...uint16) *vm.VM {
	t.Helper()

	data := make([]byte, 0, len(words)*vm.InstructionSize)
	for _, w := range words {
		data = append(data, byte(w>>8), byte(w))
	}

	machine := vm.New(vm.WithLogger(log.NewTestLogger(t)), vm.WithRandom(rand.New(rand.NewSource(1))))
	assert.NoError(t, machine.LoadProgram(data))
	return machine
}

func runFrames(t *testing.T, r *Runner, count int) {
	t.Helper()

	for i := 0; i < count; i++ {
		quit, err := r.Frame()
		assert.NoError(t, err)
		assert.False(t, quit)
	}
}

func TestNewDefaults(t *testing.T) {
	r := New(log.NewTestLogger(t), newTestMachine(t), headless.New(), Options{})

	assert.Equal(t, DefaultStepsPerTick, r.opts.StepsPerTick)
	assert.Equal(t, DefaultTickRate, r.opts.TickRate)
	assert.Equal(t, 0, r.opts.Frames)
}

func TestFrameStepsPerTick(t *testing.T) {
	tests := []struct {
		stepsPerTick int
		frames       int
		want         uint8
	}{
		{10, 1, 5},
		{10, 3, 15},
		{4, 3, 6},
		{1, 4, 2},
	}

	for _, tt := range tests {
		machine := newTestMachine(t, 0x7001, 0x1200)
		r := New(log.NewTestLogger(t), machine, headless.New(), Options{StepsPerTick: tt.stepsPerTick})

		runFrames(t, r, tt.frames)
		assert.Equal(t, tt.want, machine.Registers().V[0])
		assert.Equal(t, tt.frames, r.Frames())
	}
}

func TestFrameStopsWhileWaitingForKey(t *testing.T) {
	machine := newTestMachine(t, 0xF00A, 0x7101, 0x1202)
	front := headless.New(headless.WithKeyEvents(headless.KeyEvent{Poll: 2, Key: 0x7, Pressed: true}))
	r := New(log.NewTestLogger(t), machine, front, Options{})

	runFrames(t, r, 1)
	regs := machine.Registers()
	assert.Equal(t, uint16(0x200), regs.PC)
	assert.Equal(t, uint8(0), regs.V[1])

	runFrames(t, r, 1)
	regs = machine.Registers()
	assert.Equal(t, uint8(0x7), regs.V[0])
	assert.Equal(t, uint8(5), regs.V[1])
}

func TestFrameTicksTimersAndBeeps(t *testing.T) {
	machine := newTestMachine(t, 0x6002, 0xF018, 0x6005, 0xF015, 0x1208)
	front := headless.New()
	r := New(log.NewTestLogger(t), machine, front, Options{})

	runFrames(t, r, 1)
	assert.True(t, machine.SoundActive())
	assert.Equal(t, 0, front.Beeps())

	runFrames(t, r, 1)
	assert.False(t, machine.SoundActive())
	assert.Equal(t, 1, front.Beeps())

	runFrames(t, r, 5)
	assert.Equal(t, 1, front.Beeps())
}

func TestFrameRendersWhenOwed(t *testing.T) {
	// draw the "0" glyph once, then loop
	machine := newTestMachine(t, 0xA000, 0xD005, 0x1204)
	front := headless.New()
	r := New(log.NewTestLogger(t), machine, front, Options{StepsPerTick: 1})

	runFrames(t, r, 1)
	assert.Equal(t, 1, front.Renders())
	assert.False(t, front.LastFrame()[0][0])

	runFrames(t, r, 1)
	assert.Equal(t, 2, front.Renders())
	frame := front.LastFrame()
	assert.True(t, frame[0][0])
	assert.True(t, frame[4][3])

	runFrames(t, r, 3)
	assert.Equal(t, 2, front.Renders())
}

func TestFrameBreakpoint(t *testing.T) {
	machine := newTestMachine(t, 0x7001, 0x7001, 0x1200)
	machine.SetBreakpoint(0x202)
	r := New(log.NewTestLogger(t), machine, headless.New(), Options{})

	runFrames(t, r, 1)
	assert.Equal(t, uint8(1), machine.Registers().V[0])

	runFrames(t, r, 1)
	assert.Equal(t, uint8(3), machine.Registers().V[0])
}

func TestFrameFault(t *testing.T) {
	machine := newTestMachine(t, 0x00EE)
	r := New(log.NewTestLogger(t), machine, headless.New(), Options{})

	_, err := r.Frame()
	assert.True(t, errors.Is(err, vm.ErrStackUnderflow))
	assert.ErrorContains(t, err, "executing program: fault at pc $0200 opcode $00EE")

	var fault *vm.Fault
	assert.True(t, errors.As(err, &fault))
	assert.Equal(t, uint16(0x200), fault.PC)
}

func TestRunFrameLimit(t *testing.T) {
	machine := newTestMachine(t, 0x7001, 0x1200)
	front := headless.New()
	r := New(log.NewTestLogger(t), machine, front, Options{TickRate: 1000, Frames: 5})

	assert.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 5, r.Frames())
	assert.Equal(t, uint8(25), machine.Registers().V[0])
	assert.False(t, front.Opened())
}

func TestRunQuit(t *testing.T) {
	machine := newTestMachine(t, 0x1200)
	front := headless.New(headless.WithQuitAt(3))
	r := New(log.NewTestLogger(t), machine, front, Options{TickRate: 1000})

	assert.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 2, r.Frames())
	assert.Equal(t, 3, front.Polls())
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	machine := newTestMachine(t, 0x1200)
	r := New(log.NewTestLogger(t), machine, headless.New(), Options{})

	err := r.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 1, r.Frames())
}

func TestRunFault(t *testing.T) {
	machine := newTestMachine(t, 0x00EE)
	front := headless.New()
	r := New(log.NewTestLogger(t), machine, front, Options{TickRate: 1000})

	err := r.Run(context.Background())
	assert.True(t, errors.Is(err, vm.ErrStackUnderflow))
	assert.False(t, front.Opened())
}

type failingFrontend struct {
	*headless.Frontend
}

func (failingFrontend) Open() error {
	return frontend.ErrNotAvailable
}

func TestRunOpenFailure(t *testing.T) {
	r := New(log.NewTestLogger(t), newTestMachine(t), failingFrontend{headless.New()}, Options{})

	err := r.Run(context.Background())
	assert.True(t, errors.Is(err, frontend.ErrNotAvailable))
	assert.ErrorContains(t, err, "opening headless frontend")
}
