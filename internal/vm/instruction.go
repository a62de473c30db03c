package vm

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// InstructionSize is the size of every instruction in bytes.
const InstructionSize = 2

// Op identifies a decoded operation.
type Op int

// Operations of the base instruction set.
const (
	OpUnknown   Op = iota
	OpSys          // 0NNN
	OpCls          // 00E0
	OpRet          // 00EE
	OpJump         // 1NNN
	OpCall         // 2NNN
	OpSkipEqImm    // 3XNN
	OpSkipNeImm    // 4XNN
	OpSkipEqReg    // 5XY0
	OpLoadImm      // 6XNN
	OpAddImm       // 7XNN
	OpMove         // 8XY0
	OpOr           // 8XY1
	OpAnd          // 8XY2
	OpXor          // 8XY3
	OpAddReg       // 8XY4
	OpSub          // 8XY5
	OpShr          // 8XY6
	OpSubn         // 8XY7
	OpShl          // 8XYE
	OpSkipNeReg    // 9XY0
	OpLoadIndex    // ANNN
	OpJumpV0       // BNNN
	OpRandom       // CXNN
	OpDraw         // DXYN
	OpSkipKey      // EX9E
	OpSkipNoKey    // EXA1
	OpLoadDelay    // FX07
	OpWaitKey      // FX0A
	OpSetDelay     // FX15
	OpSetSound     // FX18
	OpAddIndex     // FX1E
	OpLoadFont     // FX29
	OpStoreBCD     // FX33
	OpStoreRegs    // FX55
	OpLoadRegs     // FX65
)

// instructions maps operations to the shared CHIP-8 instruction definitions.
var instructions = map[Op]*chip8.Instruction{
	OpCls:       chip8.Cls,
	OpRet:       chip8.Ret,
	OpJump:      chip8.Jp,
	OpCall:      chip8.Call,
	OpSkipEqImm: chip8.Se,
	OpSkipNeImm: chip8.Sne,
	OpSkipEqReg: chip8.Se,
	OpLoadImm:   chip8.Ld,
	OpAddImm:    chip8.Add,
	OpMove:      chip8.Ld,
	OpOr:        chip8.Or,
	OpAnd:       chip8.And,
	OpXor:       chip8.Xor,
	OpAddReg:    chip8.Add,
	OpSub:       chip8.Sub,
	OpShr:       chip8.Shr,
	OpSubn:      chip8.Subn,
	OpShl:       chip8.Shl,
	OpSkipNeReg: chip8.Sne,
	OpLoadIndex: chip8.Ld,
	OpJumpV0:    chip8.Jp,
	OpRandom:    chip8.Rnd,
	OpDraw:      chip8.Drw,
	OpSkipKey:   chip8.Skp,
	OpSkipNoKey: chip8.Sknp,
	OpLoadDelay: chip8.Ld,
	OpWaitKey:   chip8.Ld,
	OpSetDelay:  chip8.Ld,
	OpSetSound:  chip8.Ld,
	OpAddIndex:  chip8.Add,
	OpLoadFont:  chip8.Ld,
	OpStoreBCD:  chip8.Ld,
	OpStoreRegs: chip8.Ld,
	OpLoadRegs:  chip8.Ld,
}

// Mnemonic returns the assembler name of the operation.
func (o Op) Mnemonic() string {
	if o == OpSys {
		return "sys"
	}
	ins, ok := instructions[o]
	if !ok {
		return ""
	}
	return ins.Name
}

// Instruction is a decoded instruction word with all operand fields extracted.
type Instruction struct {
	Op  Op
	Raw uint16

	X   uint8  // bits 8-11
	Y   uint8  // bits 4-7
	N   uint8  // bits 0-3
	NN  uint8  // bits 0-7
	NNN uint16 // bits 0-11
}

// Decode decodes an instruction word.
func Decode(raw uint16) Instruction {
	ins := Instruction{
		Raw: raw,
		X:   uint8(raw>>8) & 0x0F,
		Y:   uint8(raw>>4) & 0x0F,
		N:   uint8(raw) & 0x0F,
		NN:  uint8(raw),
		NNN: raw & 0x0FFF,
	}
	ins.Op = decodeOp(raw>>12, ins)
	return ins
}

func decodeOp(family uint16, ins Instruction) Op {
	switch family {
	case 0x0:
		switch ins.Raw {
		case 0x00E0:
			return OpCls
		case 0x00EE:
			return OpRet
		}
		return OpSys
	case 0x1:
		return OpJump
	case 0x2:
		return OpCall
	case 0x3:
		return OpSkipEqImm
	case 0x4:
		return OpSkipNeImm
	case 0x5:
		if ins.N == 0 {
			return OpSkipEqReg
		}
	case 0x6:
		return OpLoadImm
	case 0x7:
		return OpAddImm
	case 0x8:
		return decodeALU(ins.N)
	case 0x9:
		if ins.N == 0 {
			return OpSkipNeReg
		}
	case 0xA:
		return OpLoadIndex
	case 0xB:
		return OpJumpV0
	case 0xC:
		return OpRandom
	case 0xD:
		return OpDraw
	case 0xE:
		switch ins.NN {
		case 0x9E:
			return OpSkipKey
		case 0xA1:
			return OpSkipNoKey
		}
	case 0xF:
		return decodeMisc(ins.NN)
	}
	return OpUnknown
}

var aluOps = map[uint8]Op{
	0x0: OpMove,
	0x1: OpOr,
	0x2: OpAnd,
	0x3: OpXor,
	0x4: OpAddReg,
	0x5: OpSub,
	0x6: OpShr,
	0x7: OpSubn,
	0xE: OpShl,
}

func decodeALU(n uint8) Op {
	if op, ok := aluOps[n]; ok {
		return op
	}
	return OpUnknown
}

var miscOps = map[uint8]Op{
	0x07: OpLoadDelay,
	0x0A: OpWaitKey,
	0x15: OpSetDelay,
	0x18: OpSetSound,
	0x1E: OpAddIndex,
	0x29: OpLoadFont,
	0x33: OpStoreBCD,
	0x55: OpStoreRegs,
	0x65: OpLoadRegs,
}

func decodeMisc(nn uint8) Op {
	if op, ok := miscOps[nn]; ok {
		return op
	}
	return OpUnknown
}

// IsBranch returns true for instructions that transfer control to NNN.
func (i Instruction) IsBranch() bool {
	return i.Op == OpJump || i.Op == OpCall
}

// String returns the instruction in assembler syntax.
func (i Instruction) String() string {
	name := i.Op.Mnemonic()
	if params := i.params(); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	if name == "" {
		return fmt.Sprintf(".word $%04X", i.Raw)
	}
	return name
}

// params formats the operands of the instruction.
func (i Instruction) params() string {
	switch i.Op {
	case OpSys, OpJump, OpCall, OpLoadIndex:
		return i.formatAddress()
	case OpJumpV0:
		return fmt.Sprintf("V0, $%03X", i.NNN)
	case OpSkipEqImm, OpSkipNeImm, OpLoadImm, OpAddImm, OpRandom:
		return fmt.Sprintf("V%X, $%02X", i.X, i.NN)
	case OpSkipEqReg, OpSkipNeReg, OpMove, OpOr, OpAnd, OpXor, OpAddReg, OpSub, OpSubn:
		return fmt.Sprintf("V%X, V%X", i.X, i.Y)
	case OpShr, OpShl, OpSkipKey, OpSkipNoKey:
		return fmt.Sprintf("V%X", i.X)
	case OpDraw:
		return fmt.Sprintf("V%X, V%X, $%X", i.X, i.Y, i.N)
	}
	return i.formatMisc()
}

func (i Instruction) formatAddress() string {
	if i.Op == OpLoadIndex {
		return fmt.Sprintf("I, $%03X", i.NNN)
	}
	return fmt.Sprintf("$%03X", i.NNN)
}

// formatMisc formats the FX family load variants.
func (i Instruction) formatMisc() string {
	switch i.Op {
	case OpLoadDelay:
		return fmt.Sprintf("V%X, DT", i.X)
	case OpWaitKey:
		return fmt.Sprintf("V%X, K", i.X)
	case OpSetDelay:
		return fmt.Sprintf("DT, V%X", i.X)
	case OpSetSound:
		return fmt.Sprintf("ST, V%X", i.X)
	case OpAddIndex:
		return fmt.Sprintf("I, V%X", i.X)
	case OpLoadFont:
		return fmt.Sprintf("F, V%X", i.X)
	case OpStoreBCD:
		return fmt.Sprintf("B, V%X", i.X)
	case OpStoreRegs:
		return fmt.Sprintf("[I], V%X", i.X)
	case OpLoadRegs:
		return fmt.Sprintf("V%X, [I]", i.X)
	}
	return ""
}
