package vm

import (
	"math/rand"
	"time"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// StepResult describes the outcome of a single Step call.
type StepResult int

const (
	// Executed means an instruction was executed.
	Executed StepResult = iota
	// Waiting means FX0A is blocked on a key press, the instruction is retried on the next step.
	Waiting
	// Breakpoint means the program counter reached a breakpoint, the instruction
	// at it is executed on the next step.
	Breakpoint
	// Faulted means the step failed, the returned error describes the fault.
	Faulted
)

func (s StepResult) String() string {
	switch s {
	case Executed:
		return "executed"
	case Waiting:
		return "waiting"
	case Breakpoint:
		return "breakpoint"
	case Faulted:
		return "faulted"
	default:
		return "unknown"
	}
}

// Option configures a VM.
type Option func(*VM)

// WithLogger sets the logger used for diagnostics and tracing.
func WithLogger(logger *log.Logger) Option {
	return func(v *VM) {
		v.logger = logger
	}
}

// WithRandom sets the random number generator used by CXNN.
func WithRandom(rnd *rand.Rand) Option {
	return func(v *VM) {
		v.rnd = rnd
	}
}

// WithTrace enables logging of every executed instruction at debug level.
func WithTrace(enabled bool) Option {
	return func(v *VM) {
		v.trace = enabled
	}
}

// VM is a CHIP-8 virtual machine instance.
type VM struct {
	logger *log.Logger
	rnd    *rand.Rand
	trace  bool

	memory Memory
	regs   Registers
	screen Framebuffer
	keys   Keypad
	timers Timers

	program []byte // loaded program, kept for Reset

	breakpoints set.Set[uint16]
	breakHit    bool // breakpoint at the current PC was already reported
}

// New returns a new VM with an empty program space.
func New(options ...Option) *VM {
	v := &VM{
		breakpoints: set.New[uint16](),
	}
	for _, option := range options {
		option(v)
	}

	if v.logger == nil {
		v.logger = log.NewWithConfig(log.DefaultConfig())
	}
	if v.rnd == nil {
		v.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	v.Reset()
	return v
}

// LoadProgram copies the program into memory starting at ProgramStart and
// resets the machine. Programs larger than MaxProgramSize are rejected and
// leave the machine unchanged.
func (v *VM) LoadProgram(program []byte) error {
	if err := checkProgramSize(program); err != nil {
		return err
	}

	v.program = append([]byte(nil), program...)
	v.Reset()
	return nil
}

// Reset restores the state directly after loading the current program.
func (v *VM) Reset() {
	v.memory.reset()
	_ = v.memory.load(v.program) // size was checked by LoadProgram

	v.regs = Registers{PC: ProgramStart}
	v.screen = Framebuffer{redraw: true}
	v.keys = Keypad{}
	v.timers = Timers{}
	v.breakHit = false
}

// Step executes the instruction at the program counter.
func (v *VM) Step() (StepResult, error) {
	pc := v.regs.PC

	if !v.breakHit && v.breakpoints.Contains(pc) {
		v.breakHit = true
		return Breakpoint, nil
	}

	raw, err := v.memory.ReadWord(pc)
	if err != nil {
		return Faulted, &Fault{PC: pc, Err: err}
	}

	ins := Decode(raw)
	if v.trace {
		v.logger.Debug("Executing",
			log.Hex("pc", pc),
			log.Hex("opcode", raw),
			log.String("instruction", ins.String()))
	}

	done, err := v.execute(ins)
	if err != nil {
		return Faulted, &Fault{PC: pc, Opcode: raw, Err: err}
	}
	if !done {
		return Waiting, nil
	}

	v.breakHit = false
	return Executed, nil
}

// Tick decrements the delay and sound timers by one unit.
func (v *VM) Tick() {
	v.timers.tick()
}

// OnBeepEdge returns true once after the tick on which the sound timer reached zero.
func (v *VM) OnBeepEdge() bool {
	return v.timers.takeBeepEdge()
}

// SoundActive returns whether the sound timer is running.
func (v *VM) SoundActive() bool {
	return v.timers.Sound > 0
}

// IsRedrawOwed returns whether the framebuffer changed since the last call
// and resets the pending redraw.
func (v *VM) IsRedrawOwed() bool {
	return v.screen.takeRedraw()
}

// PixelAt returns whether the pixel at x, y is set.
func (v *VM) PixelAt(x, y int) bool {
	return v.screen.Pixel(x, y)
}

// SetKey updates the pressed state of a keypad key.
func (v *VM) SetKey(index uint8, pressed bool) {
	v.keys.Set(index, pressed)
}

// Registers returns a copy of the register file.
func (v *VM) Registers() Registers {
	return v.regs
}

// SetBreakpoint makes Step stop before executing the instruction at address.
func (v *VM) SetBreakpoint(address uint16) {
	v.breakpoints.Add(address)
}

// ClearBreakpoints removes all breakpoints.
func (v *VM) ClearBreakpoints() {
	v.breakpoints = set.New[uint16]()
	v.breakHit = false
}
