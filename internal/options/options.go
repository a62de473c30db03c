// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input string `arg:"positional" usage:"program file to run"`
}

// Flags contains behavior options.
type Flags struct {
	Frontend string `flag:"f" usage:"frontend: headless, terminal, sdl" default:"terminal"`
	Layout   string `flag:"layout" usage:"keyboard layout: qwerty, azerty" default:"qwerty"`
	Seed     int64  `flag:"seed" usage:"random number generator seed (default: time based)"`
	Debug    bool   `flag:"debug" usage:"enable debug logging"`
	Quiet    bool   `flag:"q" usage:"quiet mode"`
	Trace    bool   `flag:"trace" usage:"log every executed instruction, implies -debug"`
}

// Timing contains the driver timing options.
type Timing struct {
	StepsPerTick int `flag:"steps" usage:"instructions executed per timer tick" default:"10"`
	TickRate     int `flag:"rate" usage:"timer ticks per second" default:"60"`
	Frames       int `flag:"frames" usage:"stop after this many frames, 0 runs until quit"`
}

// DebugFlags contains debugging options.
type DebugFlags struct {
	Breakpoints string `flag:"break" usage:"comma separated breakpoint addresses, e.g. 0x2A0,$300"`

	BreakpointAddresses []uint16 // parsed Breakpoints
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	Timing
	DebugFlags
}

// DisasmProgram options of the disassembler.
type DisasmProgram struct {
	Input  string `arg:"positional" usage:"program file to disassemble"`
	Output string `flag:"o" usage:"output .asm file (default: stdout)"`
	Debug  bool   `flag:"debug" usage:"enable debug logging"`
	Quiet  bool   `flag:"q" usage:"quiet mode"`
}

// Disassembler defines options to control the listing output.
type Disassembler struct {
	HexComments    bool // output the opcode bytes as hex values in comments
	OffsetComments bool // output the address of every line in comments
	ZeroBytes      bool // output the trailing zero bytes of the program
}

// NewDisassembler returns a new options instance with default options.
func NewDisassembler() Disassembler {
	return Disassembler{
		HexComments:    true,
		OffsetComments: true,
	}
}
