// Package vm implements the CHIP-8 interpreter core.
//
// # Machine Model
//
// The virtual machine owns all emulated state:
//   - 4KB address space, the font glyphs live at FontStart, programs load at ProgramStart
//   - 16 general-purpose 8-bit registers V0-VF, VF doubles as the flag register
//   - the address register I, the program counter and a 16 level call stack
//   - a 64x32 monochrome framebuffer drawn with XOR semantics
//   - a 16 key keypad written by the host
//   - delay and sound timers decremented by Tick
//
// # Driving the Machine
//
// A driver calls Step at its instruction cadence and Tick at the timer cadence,
// nominally 60 Hz. Step returns Waiting while FX0A blocks on a key press, the
// same instruction is retried by the next Step call. Faults are returned as
// *Fault values that wrap one of the sentinel errors.
//
// The VM performs no synchronization, a concurrent host must serialize all
// calls into it.
package vm
