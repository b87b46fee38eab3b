// Package trace renders Machine state for human consumption between
// Step calls. It never mutates a Machine and never calls core.Step
// itself; it is a pure observer.
package trace

import (
	"fmt"
	"strings"

	"rv32i/pkg/core"
	"rv32i/pkg/disasm"
)

// DumpRegisters renders the 32 GPRs and PC in a fixed four-column
// layout, eight rows by four columns, using ABI register names, with PC
// on its own line below the grid.
func DumpRegisters(m *core.Machine) string {
	var b strings.Builder
	for row := 0; row < 8; row++ {
		for col := 0; col < 4; col++ {
			i := row + col*8
			fmt.Fprintf(&b, "%-4s 0x%08x  ", core.ABINames[i], m.Reg(uint32(i)))
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "pc  0x%08x\n", m.Regs[core.PC])
	return b.String()
}

// DumpInstruction renders a single trace line for the instruction word
// fetched at pc: its address, raw encoding, and disassembly.
func DumpInstruction(pc, word uint32) string {
	return fmt.Sprintf("%08x: %08x  %s", pc, word, disasm.Format(word))
}
