package fileprocessor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/afero"
)

func TestProcessFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(fs, "loop.ch8", []byte{0x00, 0xE0, 0x12, 0x02}, 0o644))

	opts := options.DisasmProgram{
		Input:  "loop.ch8",
		Output: "out/loop.asm",
		Quiet:  true,
	}
	assert.NoError(t, fs.MkdirAll("out", 0o755))

	err := ProcessFile(context.Background(), log.NewTestLogger(t), fs, opts, options.Disassembler{})
	assert.NoError(t, err)

	listing, err := afero.ReadFile(fs, opts.Output)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(string(listing), "Start:\n    cls\n\n_label_0202:\n    jp _label_0202\n"))
}

func TestProcessFileErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(fs, "huge.ch8", make([]byte, vm.MaxProgramSize+1), 0o644))

	tests := []struct {
		name  string
		input string
		check func(t *testing.T, err error)
	}{
		{
			name:  "missing input",
			input: "missing.ch8",
			check: func(t *testing.T, err error) {
				t.Helper()
				assert.ErrorContains(t, err, "loading program missing.ch8")
			},
		},
		{
			name:  "program too large",
			input: "huge.ch8",
			check: func(t *testing.T, err error) {
				t.Helper()
				assert.True(t, errors.Is(err, vm.ErrProgramTooLarge))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.DisasmProgram{Input: tt.input, Output: "out.asm", Quiet: true}
			err := ProcessFile(context.Background(), log.NewTestLogger(t), fs, opts, options.Disassembler{})
			assert.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestProcessFileCanceled(t *testing.T) {
	fs := afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(fs, "cls.ch8", []byte{0x00, 0xE0}, 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := options.DisasmProgram{Input: "cls.ch8", Output: "cls.asm", Quiet: true}
	err := ProcessFile(ctx, log.NewTestLogger(t), fs, opts, options.NewDisassembler())
	assert.True(t, errors.Is(err, context.Canceled))
}
