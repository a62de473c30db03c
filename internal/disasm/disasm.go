// Package disasm implements a CHIP-8 program disassembler. It follows the
// execution flow from the program start to separate code from data and
// writes an assembly listing with labels for all branch destinations.
package disasm

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// Disasm implements a disassembler.
type Disasm struct {
	logger  *log.Logger
	options options.Disassembler

	pc uint16 // program counter

	data    []byte
	offsets []Offset // offsets of the program, indexed from vm.ProgramStart

	branchDestinations set.Set[uint16] // set of all addresses that are branched to
	dataReferences     set.Set[uint16] // set of all addresses that are loaded into I

	offsetsToParse      []uint16
	offsetsToParseAdded set.Set[uint16]
}

// New creates a new disassembler for the program image.
func New(logger *log.Logger, data []byte, options options.Disassembler) (*Disasm, error) {
	if len(data) > vm.MaxProgramSize {
		return nil, fmt.Errorf("%d bytes exceed the %d byte limit: %w", len(data), vm.MaxProgramSize, vm.ErrProgramTooLarge)
	}

	dis := &Disasm{
		logger:              logger,
		options:             options,
		data:                data,
		offsets:             make([]Offset, len(data)),
		branchDestinations:  set.New[uint16](),
		dataReferences:      set.New[uint16](),
		offsetsToParseAdded: set.New[uint16](),
	}
	for i := range dis.offsets {
		dis.offsets[i].Data = data[i : i+1]
	}
	return dis, nil
}

// Process disassembles the program and writes the listing.
func (dis *Disasm) Process(ctx context.Context, w io.Writer) error {
	if len(dis.data) > 0 {
		dis.offsets[0].Label = startLabel
		dis.addAddressToParse(vm.ProgramStart)
	}

	if err := dis.followExecutionFlow(ctx); err != nil {
		return err
	}
	dis.processJumpDestinations()
	dis.processDataReferences()

	buf := bufio.NewWriter(w)
	dis.writeListing(buf)
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}

// OffsetInfo returns the offset information for the given address or nil if
// the address is outside of the program.
func (dis *Disasm) OffsetInfo(address uint16) *Offset {
	index, ok := dis.index(address)
	if !ok {
		return nil
	}
	return &dis.offsets[index]
}

func (dis *Disasm) index(address uint16) (int, bool) {
	if address < vm.ProgramStart {
		return 0, false
	}
	index := int(address - vm.ProgramStart)
	if index >= len(dis.offsets) {
		return 0, false
	}
	return index, true
}

// addAddressToParse queues an address for parsing if it was not queued already.
func (dis *Disasm) addAddressToParse(address uint16) {
	if dis.offsetsToParseAdded.Contains(address) {
		return
	}
	dis.offsetsToParseAdded.Add(address)
	dis.offsetsToParse = append(dis.offsetsToParse, address)
}
