// Package disasm renders a raw RV32I instruction word as one line of
// assembly-like text, using the same decoder the step engine dispatches
// on so disassembly and execution never disagree about what a word
// means.
package disasm

import (
	"fmt"

	"rv32i/internal/decode"
	"rv32i/pkg/core"
)

func reg(i uint32) string {
	return core.ABINames[i]
}

// Format decodes word and renders it as assembly text. A word that does
// not decode to a recognized instruction renders as a fallback string
// rather than propagating the decode error: disassembly is a display
// aid and must never abort a trace over a corrupted image.
func Format(word uint32) string {
	inst, err := decode.Decode(word)
	if err != nil {
		return fmt.Sprintf("<unknown: 0x%08x>", word)
	}
	return FormatInstruction(inst)
}

// FormatInstruction renders an already-decoded instruction.
func FormatInstruction(inst decode.Instruction) string {
	switch inst.Op {
	case decode.LUI:
		u := inst.U()
		return fmt.Sprintf("lui %s, 0x%x", reg(u.Rd()), u.Imm()>>12)
	case decode.AUIPC:
		u := inst.U()
		return fmt.Sprintf("auipc %s, 0x%x", reg(u.Rd()), u.Imm()>>12)
	case decode.JAL:
		j := inst.J()
		return fmt.Sprintf("jal %s, %d", reg(j.Rd()), int32(j.Imm()))
	case decode.JALR:
		i := inst.I()
		return fmt.Sprintf("jalr %s, %s, %d", reg(i.Rd()), reg(i.Rs1()), int32(i.Imm()))

	case decode.BEQ, decode.BNE, decode.BLT, decode.BGE, decode.BLTU, decode.BGEU:
		b := inst.B()
		return fmt.Sprintf("%s %s, %s, %d", mnemonic(inst.Op), reg(b.Rs1()), reg(b.Rs2()), int32(b.Imm()))

	case decode.LB, decode.LH, decode.LW, decode.LBU, decode.LHU:
		i := inst.I()
		return fmt.Sprintf("%s %s, %d(%s)", mnemonic(inst.Op), reg(i.Rd()), int32(i.Imm()), reg(i.Rs1()))

	case decode.SB, decode.SH, decode.SW:
		s := inst.S()
		return fmt.Sprintf("%s %s, %d(%s)", mnemonic(inst.Op), reg(s.Rs2()), int32(s.Imm()), reg(s.Rs1()))

	case decode.ADDI, decode.SLTI, decode.SLTIU, decode.XORI, decode.ORI, decode.ANDI:
		i := inst.I()
		return fmt.Sprintf("%s %s, %s, %d", mnemonic(inst.Op), reg(i.Rd()), reg(i.Rs1()), int32(i.Imm()))
	case decode.SLLI, decode.SRLI, decode.SRAI:
		i := inst.I()
		return fmt.Sprintf("%s %s, %s, %d", mnemonic(inst.Op), reg(i.Rd()), reg(i.Rs1()), i.Imm()&0x1F)

	case decode.ADD, decode.SUB, decode.SLL, decode.SLT, decode.SLTU,
		decode.XOR, decode.SRL, decode.SRA, decode.OR, decode.AND:
		r := inst.R()
		return fmt.Sprintf("%s %s, %s, %s", mnemonic(inst.Op), reg(r.Rd()), reg(r.Rs1()), reg(r.Rs2()))

	case decode.FENCE:
		return "fence"
	case decode.ECALL:
		return "ecall"
	case decode.EBREAK:
		return "ebreak"
	case decode.URET:
		return "uret"
	case decode.SRET:
		return "sret"
	case decode.MRET:
		return "mret"
	case decode.WFI:
		return "wfi"
	case decode.CSRRW, decode.CSRRS, decode.CSRRC, decode.CSRRWI, decode.CSRRSI, decode.CSRRCI:
		return fmt.Sprintf("%s 0x%x", mnemonic(inst.Op), decode.CSRAddress(inst.Word))
	default:
		return fmt.Sprintf("<unknown: 0x%08x>", inst.Word)
	}
}

func mnemonic(op decode.Op) string {
	switch op {
	case decode.BEQ:
		return "beq"
	case decode.BNE:
		return "bne"
	case decode.BLT:
		return "blt"
	case decode.BGE:
		return "bge"
	case decode.BLTU:
		return "bltu"
	case decode.BGEU:
		return "bgeu"
	case decode.LB:
		return "lb"
	case decode.LH:
		return "lh"
	case decode.LW:
		return "lw"
	case decode.LBU:
		return "lbu"
	case decode.LHU:
		return "lhu"
	case decode.SB:
		return "sb"
	case decode.SH:
		return "sh"
	case decode.SW:
		return "sw"
	case decode.ADDI:
		return "addi"
	case decode.SLTI:
		return "slti"
	case decode.SLTIU:
		return "sltiu"
	case decode.XORI:
		return "xori"
	case decode.ORI:
		return "ori"
	case decode.ANDI:
		return "andi"
	case decode.SLLI:
		return "slli"
	case decode.SRLI:
		return "srli"
	case decode.SRAI:
		return "srai"
	case decode.ADD:
		return "add"
	case decode.SUB:
		return "sub"
	case decode.SLL:
		return "sll"
	case decode.SLT:
		return "slt"
	case decode.SLTU:
		return "sltu"
	case decode.XOR:
		return "xor"
	case decode.SRL:
		return "srl"
	case decode.SRA:
		return "sra"
	case decode.OR:
		return "or"
	case decode.AND:
		return "and"
	case decode.CSRRW:
		return "csrrw"
	case decode.CSRRS:
		return "csrrs"
	case decode.CSRRC:
		return "csrrc"
	case decode.CSRRWI:
		return "csrrwi"
	case decode.CSRRSI:
		return "csrrsi"
	case decode.CSRRCI:
		return "csrrci"
	default:
		return op.String()
	}
}
