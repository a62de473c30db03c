package vm

import (
	"github.com/retroenv/retrogolib/log"
)

// execute applies the instruction and updates the program counter. It returns
// false without changing any state when the instruction waits for a key press.
func (v *VM) execute(ins Instruction) (bool, error) {
	r := &v.regs
	next := r.PC + InstructionSize

	switch ins.Op {
	case OpCls:
		v.screen.clear()

	case OpRet:
		address, err := r.pop()
		if err != nil {
			return false, err
		}
		next = address + InstructionSize

	case OpJump:
		next = ins.NNN

	case OpCall:
		if err := r.push(r.PC); err != nil {
			return false, err
		}
		next = ins.NNN

	case OpSkipEqImm:
		if r.V[ins.X] == ins.NN {
			next += InstructionSize
		}

	case OpSkipNeImm:
		if r.V[ins.X] != ins.NN {
			next += InstructionSize
		}

	case OpSkipEqReg:
		if r.V[ins.X] == r.V[ins.Y] {
			next += InstructionSize
		}

	case OpSkipNeReg:
		if r.V[ins.X] != r.V[ins.Y] {
			next += InstructionSize
		}

	case OpLoadImm:
		r.V[ins.X] = ins.NN

	case OpAddImm:
		r.V[ins.X] += ins.NN

	case OpMove, OpOr, OpAnd, OpXor, OpAddReg, OpSub, OpShr, OpSubn, OpShl:
		v.executeALU(ins)

	case OpLoadIndex:
		r.I = ins.NNN

	case OpJumpV0:
		next = ins.NNN + uint16(r.V[0])

	case OpRandom:
		r.V[ins.X] = uint8(v.rnd.Intn(256)) & ins.NN

	case OpDraw:
		if err := v.draw(ins); err != nil {
			return false, err
		}

	case OpSkipKey:
		if v.keys.Pressed(r.V[ins.X]) {
			next += InstructionSize
		}

	case OpSkipNoKey:
		if !v.keys.Pressed(r.V[ins.X]) {
			next += InstructionSize
		}

	case OpWaitKey:
		key, ok := v.keys.firstPressed()
		if !ok {
			return false, nil
		}
		r.V[ins.X] = key

	case OpLoadDelay, OpSetDelay, OpSetSound, OpAddIndex, OpLoadFont:
		v.executeMisc(ins)

	case OpStoreBCD, OpStoreRegs, OpLoadRegs:
		if err := v.executeMemory(ins); err != nil {
			return false, err
		}

	case OpSys:
		v.logger.Debug("Ignoring machine code routine call",
			log.Hex("pc", r.PC),
			log.Hex("address", ins.NNN))

	default:
		v.logger.Warn("Unknown opcode",
			log.Hex("pc", r.PC),
			log.Hex("opcode", ins.Raw))
	}

	r.PC = next
	return true, nil
}

// executeALU executes the 8XYN register arithmetic family. The addition sets
// the carry after storing the sum, all other flag setting operations store the
// flag first.
func (v *VM) executeALU(ins Instruction) {
	r := &v.regs

	switch ins.Op {
	case OpMove:
		r.V[ins.X] = r.V[ins.Y]

	case OpOr:
		r.V[ins.X] |= r.V[ins.Y]

	case OpAnd:
		r.V[ins.X] &= r.V[ins.Y]

	case OpXor:
		r.V[ins.X] ^= r.V[ins.Y]

	case OpAddReg:
		sum := uint16(r.V[ins.X]) + uint16(r.V[ins.Y])
		r.V[ins.X] = uint8(sum)
		r.V[FlagRegister] = flag(sum > 0xFF)

	case OpSub:
		r.V[FlagRegister] = flag(r.V[ins.X] >= r.V[ins.Y])
		r.V[ins.X] -= r.V[ins.Y]

	case OpShr:
		r.V[FlagRegister] = r.V[ins.X] & 0x01
		r.V[ins.X] >>= 1

	case OpSubn:
		r.V[FlagRegister] = flag(r.V[ins.Y] >= r.V[ins.X])
		r.V[ins.X] = r.V[ins.Y] - r.V[ins.X]

	case OpShl:
		r.V[FlagRegister] = r.V[ins.X] >> 7
		r.V[ins.X] <<= 1
	}
}

// executeMisc executes the FX family instructions that only touch registers and timers.
func (v *VM) executeMisc(ins Instruction) {
	r := &v.regs

	switch ins.Op {
	case OpLoadDelay:
		r.V[ins.X] = v.timers.Delay

	case OpSetDelay:
		v.timers.Delay = r.V[ins.X]

	case OpSetSound:
		v.timers.Sound = r.V[ins.X]

	case OpAddIndex:
		r.I += uint16(r.V[ins.X])
		r.V[FlagRegister] = flag(r.I > MemorySize-1)

	case OpLoadFont:
		r.I = glyphAddress(r.V[ins.X])
	}
}

// executeMemory executes the FX family instructions that access memory at I.
func (v *VM) executeMemory(ins Instruction) error {
	r := &v.regs

	switch ins.Op {
	case OpStoreBCD:
		value := r.V[ins.X]
		digits := [3]uint8{value / 100, value / 10 % 10, value % 10}
		for i, digit := range digits {
			if err := v.memory.WriteByte(r.I+uint16(i), digit); err != nil {
				return err
			}
		}

	case OpStoreRegs:
		for i := uint16(0); i <= uint16(ins.X); i++ {
			if err := v.memory.WriteByte(r.I+i, r.V[i]); err != nil {
				return err
			}
		}
		r.I += uint16(ins.X) + 1

	case OpLoadRegs:
		for i := uint16(0); i <= uint16(ins.X); i++ {
			value, err := v.memory.ReadByte(r.I + i)
			if err != nil {
				return err
			}
			r.V[i] = value
		}
		r.I += uint16(ins.X) + 1
	}
	return nil
}

// draw XORs an N row sprite from memory at I onto the screen at VX, VY and
// sets VF when any set pixel was erased.
func (v *VM) draw(ins Instruction) error {
	r := &v.regs
	x := int(r.V[ins.X])
	y := int(r.V[ins.Y])
	r.V[FlagRegister] = 0

	for row := 0; row < int(ins.N); row++ {
		sprite, err := v.memory.ReadByte(r.I + uint16(row))
		if err != nil {
			return err
		}
		if v.screen.drawRow(x, y+row, sprite) {
			r.V[FlagRegister] = 1
		}
	}

	v.screen.redraw = true
	return nil
}
