package vm

import (
	"errors"
	"fmt"
)

var (
	// ErrProgramTooLarge is returned when a program does not fit into the program area.
	ErrProgramTooLarge = errors.New("program too large")
	// ErrAddressOutOfRange is returned for accesses outside of the 4KB address space.
	ErrAddressOutOfRange = errors.New("address out of range")
	// ErrStackOverflow is returned when a call exceeds the stack depth.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when a return is executed with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
)

// Fault is a fatal execution error of a single instruction.
type Fault struct {
	PC     uint16 // address of the failing instruction
	Opcode uint16 // raw instruction word, 0 if it could not be fetched
	Err    error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("fault at pc $%04X opcode $%04X: %s", f.PC, f.Opcode, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
