package config

import (
	"testing"

	"github.com/retroenv/chip8vm/internal/frontend"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(false, false))
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
}

func TestCreateFrontend(t *testing.T) {
	logger := log.NewTestLogger(t)

	for _, name := range frontend.Names {
		t.Run(name, func(t *testing.T) {
			opts := options.Program{Flags: options.Flags{Frontend: name, Layout: "qwerty"}}

			front, err := CreateFrontend(logger, opts)
			assert.NoError(t, err)
			assert.Equal(t, name, front.Name())
		})
	}

	_, err := CreateFrontend(logger, options.Program{Flags: options.Flags{Frontend: "vga", Layout: "qwerty"}})
	assert.ErrorContains(t, err, "unsupported frontend: vga")

	_, err = CreateFrontend(logger, options.Program{Flags: options.Flags{Frontend: "headless", Layout: "dvorak"}})
	assert.Error(t, err)
}

func TestCreateMachine(t *testing.T) {
	opts := options.Program{
		Flags:      options.Flags{Seed: 7},
		DebugFlags: options.DebugFlags{BreakpointAddresses: []uint16{0x200}},
	}
	machine := CreateMachine(log.NewTestLogger(t), opts)

	result, err := machine.Step()
	assert.NoError(t, err)
	assert.Equal(t, vm.Breakpoint, result)
}

func TestCreateMachineSeedIsDeterministic(t *testing.T) {
	program := []byte{0xC0, 0xFF, 0xC1, 0xFF, 0xC2, 0xFF}
	opts := options.Program{Flags: options.Flags{Seed: 99}}

	var results [2][3]uint8
	for i := range results {
		machine := CreateMachine(log.NewTestLogger(t), opts)
		assert.NoError(t, machine.LoadProgram(program))
		for step := 0; step < 3; step++ {
			_, err := machine.Step()
			assert.NoError(t, err)
		}
		regs := machine.Registers()
		copy(results[i][:], regs.V[:3])
	}
	assert.Equal(t, results[0], results[1])
}

func TestRunnerOptions(t *testing.T) {
	opts := options.Program{Timing: options.Timing{StepsPerTick: 12, TickRate: 50, Frames: 3}}

	got := RunnerOptions(opts)
	assert.Equal(t, 12, got.StepsPerTick)
	assert.Equal(t, 50, got.TickRate)
	assert.Equal(t, 3, got.Frames)
}
