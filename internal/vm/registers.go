package vm

const (
	// RegisterCount is the number of general-purpose registers.
	RegisterCount = 16

	// FlagRegister is the index of VF which receives carry, borrow, shift and collision flags.
	FlagRegister = 0xF

	// StackDepth is the maximum number of nested subroutine calls.
	StackDepth = 16
)

// Registers is the register file of the machine.
type Registers struct {
	V     [RegisterCount]uint8
	I     uint16
	PC    uint16
	SP    uint8
	Stack [StackDepth]uint16
}

// push saves a return address on the stack.
func (r *Registers) push(address uint16) error {
	if int(r.SP) >= StackDepth {
		return ErrStackOverflow
	}
	r.Stack[r.SP] = address
	r.SP++
	return nil
}

// pop returns the most recently saved return address.
func (r *Registers) pop() (uint16, error) {
	if r.SP == 0 {
		return 0, ErrStackUnderflow
	}
	r.SP--
	return r.Stack[r.SP], nil
}

func flag(set bool) uint8 {
	if set {
		return 1
	}
	return 0
}
