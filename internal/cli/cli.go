// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/chip8vm/internal/frontend"
	"github.com/retroenv/chip8vm/internal/keymap"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/chip8vm/internal/vm"
)

// ParseFlags parses the emulator command line flags.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags, usage: "chip8vm [options] <program to run>"}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}
	opts.Input = args[0]

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// ParseDisasmFlags parses the disassembler command line flags.
func ParseDisasmFlags() (options.DisasmProgram, options.Disassembler, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.DisasmProgram
	disasmOptions := options.NewDisassembler()
	var noHexComments, noOffsets bool
	readDisasmFlags(flags, &opts, &disasmOptions)
	flags.BoolVar(&noHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&noOffsets, "nooffsets", false, "do not output offsets in comments")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	disasmOptions.HexComments = !noHexComments
	disasmOptions.OffsetComments = !noOffsets
	if err != nil || len(args) == 0 {
		return opts, disasmOptions, &UsageError{flags: flags, usage: "chip8disasm [options] <program to disassemble>"}
	}

	if err := validateArgs(args); err != nil {
		return opts, disasmOptions, err
	}
	opts.Input = args[0]

	return opts, disasmOptions, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	usage string
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage line and the flag defaults.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: %s\n\n", e.usage)
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after program file, please pass the program file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	if !isValidFrontend(opts.Frontend) {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(frontend.Names, ", "))
	}

	if _, err := keymap.Lookup(opts.Layout); err != nil {
		return err
	}
	opts.Layout = strings.ToLower(opts.Layout)

	if opts.StepsPerTick <= 0 {
		return fmt.Errorf("steps per tick must be positive, got %d", opts.StepsPerTick)
	}
	if opts.TickRate <= 0 {
		return fmt.Errorf("tick rate must be positive, got %d", opts.TickRate)
	}
	if opts.Frames < 0 {
		return fmt.Errorf("frame limit must not be negative, got %d", opts.Frames)
	}

	if opts.Trace {
		opts.Debug = true
	}

	addresses, err := ParseAddresses(opts.Breakpoints)
	if err != nil {
		return fmt.Errorf("parsing breakpoints: %w", err)
	}
	opts.BreakpointAddresses = addresses
	return nil
}

func isValidFrontend(name string) bool {
	for _, valid := range frontend.Names {
		if name == valid {
			return true
		}
	}
	return false
}

// ParseAddresses parses a comma separated list of hexadecimal addresses.
// Addresses can be prefixed by 0x or $.
func ParseAddresses(list string) ([]uint16, error) {
	var addresses []uint16

	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		s := strings.TrimPrefix(field, "$")
		s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
		value, err := strconv.ParseUint(s, 16, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid address '%s': %w", field, err)
		}
		if value >= vm.MemorySize {
			return nil, fmt.Errorf("address '%s' is outside of memory", field)
		}
		addresses = append(addresses, uint16(value))
	}
	return addresses, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Frontend, "f", frontend.Terminal, "frontend to use (headless/terminal/sdl), sdl requires a build with the sdl tag")
	flags.StringVar(&opts.Layout, "layout", keymap.Qwerty, "keyboard layout (qwerty/azerty)")
	flags.Int64Var(&opts.Seed, "seed", 0, "seed of the random number generator, time based if not given")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.IntVar(&opts.StepsPerTick, "steps", runner.DefaultStepsPerTick, "instructions executed per timer tick")
	flags.IntVar(&opts.TickRate, "rate", runner.DefaultTickRate, "timer ticks per second")
	flags.IntVar(&opts.Frames, "frames", 0, "stop after this many frames, 0 runs until quit")
	flags.StringVar(&opts.Breakpoints, "break", "", "comma separated breakpoint addresses, for example 0x2A0,$300")
}

func readDisasmFlags(flags *flag.FlagSet, opts *options.DisasmProgram, disasmOptions *options.Disassembler) {
	flags.StringVar(&opts.Output, "o", "", "name of the output .asm file, printed on console if no name given")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&disasmOptions.ZeroBytes, "z", false, "output the trailing zero bytes of the program")
}
