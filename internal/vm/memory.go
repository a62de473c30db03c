package vm

import "fmt"

// CHIP-8 memory layout constants.
//
//	0x000-0x04F: font glyphs
//	0x050-0x1FF: unused interpreter area
//	0x200-0xFFF: program space
const (
	// MemorySize is the size of the address space in bytes.
	MemorySize = 0x1000

	// FontStart is the address of the first font glyph.
	FontStart = 0x000

	// ProgramStart is the address programs are loaded at and execution begins.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart
)

// Memory is the 4KB address space of the machine.
type Memory struct {
	data [MemorySize]byte
}

// reset clears the memory and writes the font glyphs.
func (m *Memory) reset() {
	m.data = [MemorySize]byte{}
	copy(m.data[FontStart:], fontSet[:])
}

// ReadByte returns the byte at the given address.
func (m *Memory) ReadByte(address uint16) (byte, error) {
	if int(address) >= MemorySize {
		return 0, fmt.Errorf("reading $%04X: %w", address, ErrAddressOutOfRange)
	}
	return m.data[address], nil
}

// WriteByte sets the byte at the given address.
func (m *Memory) WriteByte(address uint16, value byte) error {
	if int(address) >= MemorySize {
		return fmt.Errorf("writing $%04X: %w", address, ErrAddressOutOfRange)
	}
	m.data[address] = value
	return nil
}

// ReadWord returns the big-endian 16 bit word at the given address.
func (m *Memory) ReadWord(address uint16) (uint16, error) {
	hi, err := m.ReadByte(address)
	if err != nil {
		return 0, err
	}
	lo, err := m.ReadByte(address + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// load copies the program into the program space.
func (m *Memory) load(program []byte) error {
	if err := checkProgramSize(program); err != nil {
		return err
	}
	copy(m.data[ProgramStart:], program)
	return nil
}

func checkProgramSize(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%d bytes exceed the %d byte limit: %w", len(program), MaxProgramSize, ErrProgramTooLarge)
	}
	return nil
}
