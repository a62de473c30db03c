package disasm

import "github.com/retroenv/chip8vm/internal/vm"

// OffsetType defines the type of a program offset.
type OffsetType uint8

// offset types.
const (
	UnknownOffset OffsetType = 0
	CodeOffset    OffsetType = 1 << iota // first byte of an instruction
	CodeOperand                          // second byte of an instruction
	DataOffset                           // referenced by ld I
	CallDestination
	JumpDestination
)

// Offset contains the disassembly information of one program byte.
type Offset struct {
	Type    OffsetType
	Label   string
	Comment string
	Data    []byte // opcode bytes for code, the single byte otherwise

	Instruction vm.Instruction
}

// IsType returns whether the offset is of given type.
func (o *Offset) IsType(typ OffsetType) bool {
	return o.Type&typ != 0
}

// SetType sets the type of the offset.
func (o *Offset) SetType(typ OffsetType) {
	o.Type |= typ
}
