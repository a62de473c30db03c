package disasm

import (
	"fmt"
	"sort"

	"github.com/retroenv/retrogolib/set"
)

const (
	startLabel  = "Start"
	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"
	dataNaming  = "_data_%04x"
)

// processJumpDestinations names all branch destinations that are not named yet.
func (dis *Disasm) processJumpDestinations() {
	for _, address := range sortedAddresses(dis.branchDestinations) {
		offsetInfo := dis.OffsetInfo(address)
		// destinations inside of an instruction are referenced by address
		if offsetInfo.Label != "" || offsetInfo.IsType(CodeOperand) {
			continue
		}

		if offsetInfo.IsType(CallDestination) {
			offsetInfo.Label = fmt.Sprintf(funcNaming, address)
		} else {
			offsetInfo.Label = fmt.Sprintf(labelNaming, address)
		}
	}
}

// processDataReferences marks all addresses that are loaded into I and not
// part of the code as data and names them.
func (dis *Disasm) processDataReferences() {
	for _, address := range sortedAddresses(dis.dataReferences) {
		offsetInfo := dis.OffsetInfo(address)
		if offsetInfo.IsType(CodeOffset | CodeOperand) {
			continue
		}

		offsetInfo.SetType(DataOffset)
		if offsetInfo.Label == "" {
			offsetInfo.Label = fmt.Sprintf(dataNaming, address)
		}
	}
}

func sortedAddresses(addresses set.Set[uint16]) []uint16 {
	sorted := make([]uint16, 0, len(addresses))
	for address := range addresses {
		sorted = append(sorted, address)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted
}
