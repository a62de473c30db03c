package disasm

import (
	"context"
	"fmt"

	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/log"
)

// followExecutionFlow parses all queued addresses and the addresses that
// their instructions can continue at.
func (dis *Disasm) followExecutionFlow(ctx context.Context) error {
	for len(dis.offsetsToParse) > 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("following execution flow: %w", err)
		}

		address := dis.offsetsToParse[0]
		dis.offsetsToParse = dis.offsetsToParse[1:]
		dis.pc = address
		dis.processOffset(address)
	}
	return nil
}

// processOffset parses the instruction at the address as code.
func (dis *Disasm) processOffset(address uint16) {
	index, ok := dis.index(address)
	if !ok {
		return
	}
	offsetInfo := &dis.offsets[index]

	switch {
	case offsetInfo.IsType(CodeOffset):
		return
	case offsetInfo.IsType(CodeOperand):
		dis.offsets[index-1].Comment = "branch into instruction detected"
		dis.logger.Debug("Branch into instruction", log.Hex("address", address))
		return
	case index+1 >= len(dis.offsets):
		dis.logger.Debug("Incomplete instruction at end of program", log.Hex("address", address))
		return
	}

	operand := &dis.offsets[index+1]
	if operand.IsType(CodeOffset) {
		offsetInfo.Comment = "overlapping instruction detected"
		dis.logger.Debug("Overlapping instruction", log.Hex("address", address))
		return
	}

	raw := uint16(dis.data[index])<<8 | uint16(dis.data[index+1])
	instruction := lookupInstruction(raw)
	ins := vm.Decode(raw)
	if instruction == nil || ins.Op == vm.OpUnknown {
		// consider an unknown instruction as start of data
		dis.logger.Debug("Unknown opcode",
			log.Hex("address", address),
			log.Hex("opcode", raw))
		return
	}

	offsetInfo.SetType(CodeOffset)
	offsetInfo.Data = dis.data[index : index+vm.InstructionSize]
	offsetInfo.Instruction = ins
	operand.SetType(CodeOperand)

	dis.handleControlFlow(address, ins, instruction)
}

// lookupInstruction returns the instruction of the opcode table that matches
// the word or nil if the word is not a known instruction.
func lookupInstruction(w uint16) *chip8.Instruction {
	firstNibble := (w & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&w == op.Info.Value {
			return op.Instruction
		}
	}
	return nil
}

// handleControlFlow queues the addresses that execution can continue at after
// the instruction and records branch targets and data references.
func (dis *Disasm) handleControlFlow(address uint16, ins vm.Instruction, instruction *chip8.Instruction) {
	next := address + vm.InstructionSize

	switch {
	case ins.Op == vm.OpJump:
		dis.addBranchDestination(ins.NNN, JumpDestination)

	case ins.Op == vm.OpCall:
		dis.addBranchDestination(ins.NNN, CallDestination)
		dis.addAddressToParse(next)

	case ins.Op == vm.OpRet:
		// execution continues at the caller

	case ins.Op == vm.OpJumpV0:
		dis.offsets[address-vm.ProgramStart].Comment = "indirect jump"

	case chip8.SkipInstructions.Contains(instruction.Name):
		dis.addAddressToParse(next)
		dis.addAddressToParse(next + vm.InstructionSize)

	case ins.Op == vm.OpLoadIndex:
		if _, ok := dis.index(ins.NNN); ok {
			dis.dataReferences.Add(ins.NNN)
		}
		dis.addAddressToParse(next)

	default:
		dis.addAddressToParse(next)
	}
}

// addBranchDestination records a branch target inside the program and queues
// it for parsing.
func (dis *Disasm) addBranchDestination(target uint16, typ OffsetType) {
	index, ok := dis.index(target)
	if !ok {
		dis.logger.Debug("Branch target outside of program", log.Hex("target", target))
		return
	}

	dis.offsets[index].SetType(typ)
	dis.branchDestinations.Add(target)
	dis.addAddressToParse(target)
}
