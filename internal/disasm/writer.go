package disasm

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/chip8vm/internal/vm"
)

const dataBytesPerLine = 8

// writeListing writes the header and all offsets. Write errors are reported
// by the buffered writer on flush.
func (dis *Disasm) writeListing(w io.Writer) {
	_, _ = fmt.Fprintf(w, "; CHIP-8 program disassembly\n")
	_, _ = fmt.Fprintf(w, "; Program size: %d bytes\n", len(dis.data))
	_, _ = fmt.Fprintf(w, "; Code base address: $%04X\n\n", vm.ProgramStart)
	_, _ = fmt.Fprintf(w, ".org $%03X\n\n", vm.ProgramStart)

	endIndex := dis.endIndex()
	var previousLineWasCode bool

	for i := 0; i < endIndex; {
		offsetInfo := &dis.offsets[i]

		if offsetInfo.Label != "" {
			if i > 0 {
				_, _ = fmt.Fprintln(w)
			}
			_, _ = fmt.Fprintf(w, "%s:\n", offsetInfo.Label)
		} else if i > 0 && offsetInfo.IsType(CodeOffset) != previousLineWasCode {
			// print an empty line in case of data after code and vice versa
			_, _ = fmt.Fprintln(w)
		}
		previousLineWasCode = offsetInfo.IsType(CodeOffset)

		if offsetInfo.IsType(CodeOffset) {
			dis.writeCode(w, i)
			i += vm.InstructionSize
			continue
		}
		i += dis.writeData(w, i, endIndex)
	}
}

func (dis *Disasm) writeCode(w io.Writer, index int) {
	offsetInfo := &dis.offsets[index]
	address := vm.ProgramStart + uint16(index)

	line := "    " + dis.formatCode(offsetInfo.Instruction)

	var comments []string
	if dis.options.OffsetComments {
		comments = append(comments, fmt.Sprintf("$%04X", address))
	}
	if dis.options.HexComments {
		comments = append(comments, fmt.Sprintf("%02X %02X", offsetInfo.Data[0], offsetInfo.Data[1]))
	}
	if offsetInfo.Comment != "" {
		comments = append(comments, offsetInfo.Comment)
	}
	writeLine(w, line, comments)
}

// writeData writes the data bytes starting at index as one line and returns
// the number of bytes written. A line ends before the next label or code.
func (dis *Disasm) writeData(w io.Writer, index, endIndex int) int {
	count := 0
	for i := index; i < endIndex && count < dataBytesPerLine; i++ {
		offsetInfo := &dis.offsets[i]
		if count > 0 && (offsetInfo.Label != "" || offsetInfo.Comment != "") {
			break
		}
		if offsetInfo.IsType(CodeOffset) {
			break
		}
		count++
	}

	values := make([]string, 0, count)
	for _, b := range dis.data[index : index+count] {
		values = append(values, fmt.Sprintf("$%02X", b))
	}
	line := "    .byte " + strings.Join(values, ", ")

	var comments []string
	if dis.options.OffsetComments {
		comments = append(comments, fmt.Sprintf("$%04X", vm.ProgramStart+uint16(index)))
	}
	if comment := dis.offsets[index].Comment; comment != "" {
		comments = append(comments, comment)
	}
	writeLine(w, line, comments)
	return count
}

func writeLine(w io.Writer, line string, comments []string) {
	if len(comments) == 0 {
		_, _ = fmt.Fprintf(w, "%s\n", line)
		return
	}
	_, _ = fmt.Fprintf(w, "%-32s ; %s\n", line, strings.Join(comments, " "))
}

// formatCode returns the instruction in assembler syntax and references
// branch targets and data by their label.
func (dis *Disasm) formatCode(ins vm.Instruction) string {
	switch ins.Op {
	case vm.OpJump, vm.OpCall:
		if label := dis.label(ins.NNN); label != "" {
			return fmt.Sprintf("%s %s", ins.Op.Mnemonic(), label)
		}
	case vm.OpLoadIndex:
		if label := dis.label(ins.NNN); label != "" {
			return fmt.Sprintf("%s I, %s", ins.Op.Mnemonic(), label)
		}
	}
	return ins.String()
}

func (dis *Disasm) label(address uint16) string {
	offsetInfo := dis.OffsetInfo(address)
	if offsetInfo == nil {
		return ""
	}
	return offsetInfo.Label
}

// endIndex returns the index after the last meaningful byte of the program.
// Trailing zero bytes are only included if requested.
func (dis *Disasm) endIndex() int {
	if dis.options.ZeroBytes {
		return len(dis.offsets)
	}

	for i := len(dis.offsets) - 1; i >= 0; i-- {
		offsetInfo := &dis.offsets[i]
		if dis.data[i] != 0 || offsetInfo.Label != "" || offsetInfo.Type != UnknownOffset {
			if offsetInfo.IsType(CodeOffset) {
				return i + vm.InstructionSize
			}
			return i + 1
		}
	}
	return 0
}
