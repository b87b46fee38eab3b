// Package core implements the RV32I (unprivileged, user-mode tests
// profile) fetch/decode/execute state transition. A Machine owns its
// register file and memory image; Step advances it by exactly one
// architectural instruction per call and is not goroutine-safe — a
// single caller owns a Machine for the duration of a Step.
//
// Register x0 always reads as zero and discards writes. Memory
// addresses are architectural: they are translated to image offsets by
// subtracting the machine's base address, and any access whose range
// falls outside [base, base+len(Memory)) is a memory fault.
//
// This core implements the RV32I base integer instruction set: LUI,
// AUIPC, JAL, JALR, the six branches, the five loads, the three
// stores, the nine OP-IMM instructions and their ten OP
// register-register counterparts. FENCE, EBREAK, the trap-return
// instructions (URET/SRET/MRET), WFI and the Zicsr CSRR{S,C,WI,SI,CI}
// instructions are decoded but have no architectural effect. ECALL
// raises a fatal FaultTestFailure when x3 > 1 (the convention the
// rv32ui-p-* conformance binaries use to report a failed test case);
// otherwise it is a no-op. CSRRW whose encoded CSR address equals
// 0xC00 is the halt sentinel: it terminates Step with Halt instead of
// writing any register.
//
// All arithmetic wraps modulo 2^32; nothing in RV32I traps on
// overflow. Shift amounts use only their low 5 bits. Step advances PC
// exactly once per call, whether by falling through to PC+4, by a
// taken branch, or by a jump/JALR target.
package core

import (
	"fmt"

	"rv32i/internal/decode"
	"rv32i/internal/memio"
)

const (
	// PC is the register-file index holding the program counter.
	PC = 32

	// NumRegisters is the number of entries in the register file,
	// including the program counter at index PC.
	NumRegisters = 33

	// DefaultMemorySize is the reference memory image size in bytes.
	DefaultMemorySize = 0x10000

	// DefaultMemoryStart is the reference architectural base address.
	DefaultMemoryStart = 0x8000_0000
)

// Machine is the externally owned architectural state a Step call
// mutates: the register file (GPRs plus PC at index PC) and the memory
// image. The zero Machine is not usable; construct one with NewMachine.
type Machine struct {
	Regs   [NumRegisters]uint32
	Memory []byte
	base   uint32
}

// NewMachine returns a Machine with a zeroed memory image of size bytes
// mapped starting at architectural address base, and PC initialized to
// base.
func NewMachine(size, base uint32) *Machine {
	m := &Machine{
		Memory: make([]byte, size),
		base:   base,
	}
	m.Regs[PC] = base
	return m
}

// NewDefaultMachine returns a Machine using DefaultMemorySize and
// DefaultMemoryStart.
func NewDefaultMachine() *Machine {
	return NewMachine(DefaultMemorySize, DefaultMemoryStart)
}

// Base returns the architectural address this machine's memory image is
// mapped at.
func (m *Machine) Base() uint32 { return m.base }

// Reg reads register i; register 0 always reads as zero.
func (m *Machine) Reg(i uint32) uint32 {
	if i == 0 {
		return 0
	}
	return m.Regs[i]
}

// SetReg writes value to register i; writes to register 0 are silently
// discarded.
func (m *Machine) SetReg(i, value uint32) {
	if i == 0 {
		return
	}
	m.Regs[i] = value
}

// Outcome is the result of a successful Step call.
type Outcome int

const (
	// Continue indicates the machine is still running.
	Continue Outcome = iota
	// Halt indicates the program reached its conventional termination
	// point (the CSRRW halt sentinel).
	Halt
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "Continue"
	case Halt:
		return "Halt"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// FaultKind discriminates the cause of a Fault.
type FaultKind int

const (
	// FaultMemory indicates an address computed during fetch, load or
	// store fell outside the machine's valid memory window.
	FaultMemory FaultKind = iota
	// FaultDecode indicates the fetched word is not a recognized RV32I
	// encoding.
	FaultDecode
	// FaultTestFailure indicates ECALL observed x[3] > 1, the
	// convention the rv32ui-p-* self-test binaries use to signal a
	// failed test case.
	FaultTestFailure
)

func (k FaultKind) String() string {
	switch k {
	case FaultMemory:
		return "memory fault"
	case FaultDecode:
		return "decode fault"
	case FaultTestFailure:
		return "test failure"
	default:
		return fmt.Sprintf("FaultKind(%d)", int(k))
	}
}

// Fault is the single error type Step returns. Kind discriminates the
// cause; Address and Word carry kind-specific detail and are zero when
// not applicable.
type Fault struct {
	Kind    FaultKind
	Address uint32 // valid when Kind == FaultMemory
	Word    uint32 // valid when Kind == FaultDecode
	X3      uint32 // valid when Kind == FaultTestFailure
}

func (f *Fault) Error() string {
	switch f.Kind {
	case FaultMemory:
		return fmt.Sprintf("core: %s at address 0x%08x", f.Kind, f.Address)
	case FaultDecode:
		return fmt.Sprintf("core: %s for word 0x%08x", f.Kind, f.Word)
	case FaultTestFailure:
		return fmt.Sprintf("core: %s (x3=0x%08x)", f.Kind, f.X3)
	default:
		return fmt.Sprintf("core: fault kind %d", int(f.Kind))
	}
}

// haltSentinelCSR is the CSR address a CSRRW instruction must target to
// signal "program halted normally".
const haltSentinelCSR = 0xC00

// Step advances m by exactly one architectural instruction. It returns
// Continue or Halt on success. On failure it returns a non-nil *Fault
// and a Continue Outcome that must be ignored; PC is left unadvanced and
// no register is written when the fault originates in fetch, decode, or
// an out-of-range load/store.
func Step(m *Machine) (Outcome, error) {
	pc := m.Regs[PC]

	code, err := memio.LoadWord(m.Memory, m.base, pc)
	if err != nil {
		return Continue, &Fault{Kind: FaultMemory, Address: addressOf(err)}
	}

	inst, err := decode.Decode(code)
	if err != nil {
		return Continue, &Fault{Kind: FaultDecode, Word: code}
	}

	nextPC := pc + 4
	var rd uint32
	var rdValue uint32
	haveRd := false
	halted := false

	switch inst.Op {
	case decode.LUI:
		u := inst.U()
		rd, rdValue, haveRd = u.Rd(), u.Imm(), true

	case decode.AUIPC:
		u := inst.U()
		rd, rdValue, haveRd = u.Rd(), pc+u.Imm(), true

	case decode.JAL:
		j := inst.J()
		nextPC = pc + j.Imm()
		rd, rdValue, haveRd = j.Rd(), pc+4, true

	case decode.JALR:
		i := inst.I()
		nextPC = (m.Reg(i.Rs1()) + i.Imm()) &^ 1
		rd, rdValue, haveRd = i.Rd(), pc+4, true

	case decode.BEQ:
		b := inst.B()
		if m.Reg(b.Rs1()) == m.Reg(b.Rs2()) {
			nextPC = pc + b.Imm()
		}
	case decode.BNE:
		b := inst.B()
		if m.Reg(b.Rs1()) != m.Reg(b.Rs2()) {
			nextPC = pc + b.Imm()
		}
	case decode.BLT:
		b := inst.B()
		if int32(m.Reg(b.Rs1())) < int32(m.Reg(b.Rs2())) {
			nextPC = pc + b.Imm()
		}
	case decode.BGE:
		b := inst.B()
		if int32(m.Reg(b.Rs1())) >= int32(m.Reg(b.Rs2())) {
			nextPC = pc + b.Imm()
		}
	case decode.BLTU:
		b := inst.B()
		if m.Reg(b.Rs1()) < m.Reg(b.Rs2()) {
			nextPC = pc + b.Imm()
		}
	case decode.BGEU:
		b := inst.B()
		if m.Reg(b.Rs1()) >= m.Reg(b.Rs2()) {
			nextPC = pc + b.Imm()
		}

	case decode.LB:
		i := inst.I()
		addr := m.Reg(i.Rs1()) + i.Imm()
		word, err := memio.LoadWord(m.Memory, m.base, addr)
		if err != nil {
			return Continue, &Fault{Kind: FaultMemory, Address: addressOf(err)}
		}
		rd, rdValue, haveRd = i.Rd(), signExtendByte(word&0xFF), true
	case decode.LH:
		i := inst.I()
		addr := m.Reg(i.Rs1()) + i.Imm()
		word, err := memio.LoadWord(m.Memory, m.base, addr)
		if err != nil {
			return Continue, &Fault{Kind: FaultMemory, Address: addressOf(err)}
		}
		rd, rdValue, haveRd = i.Rd(), signExtendHalf(word&0xFFFF), true
	case decode.LW:
		i := inst.I()
		addr := m.Reg(i.Rs1()) + i.Imm()
		word, err := memio.LoadWord(m.Memory, m.base, addr)
		if err != nil {
			return Continue, &Fault{Kind: FaultMemory, Address: addressOf(err)}
		}
		rd, rdValue, haveRd = i.Rd(), word, true
	case decode.LBU:
		i := inst.I()
		addr := m.Reg(i.Rs1()) + i.Imm()
		word, err := memio.LoadWord(m.Memory, m.base, addr)
		if err != nil {
			return Continue, &Fault{Kind: FaultMemory, Address: addressOf(err)}
		}
		rd, rdValue, haveRd = i.Rd(), word&0xFF, true
	case decode.LHU:
		i := inst.I()
		addr := m.Reg(i.Rs1()) + i.Imm()
		word, err := memio.LoadWord(m.Memory, m.base, addr)
		if err != nil {
			return Continue, &Fault{Kind: FaultMemory, Address: addressOf(err)}
		}
		rd, rdValue, haveRd = i.Rd(), word&0xFFFF, true

	case decode.SB:
		s := inst.S()
		addr := m.Reg(s.Rs1()) + s.Imm()
		if err := memio.StoreByte(m.Memory, m.base, addr, uint8(m.Reg(s.Rs2()))); err != nil {
			return Continue, &Fault{Kind: FaultMemory, Address: addressOf(err)}
		}
	case decode.SH:
		s := inst.S()
		addr := m.Reg(s.Rs1()) + s.Imm()
		if err := memio.StoreHalf(m.Memory, m.base, addr, uint16(m.Reg(s.Rs2()))); err != nil {
			return Continue, &Fault{Kind: FaultMemory, Address: addressOf(err)}
		}
	case decode.SW:
		s := inst.S()
		addr := m.Reg(s.Rs1()) + s.Imm()
		if err := memio.StoreWord(m.Memory, m.base, addr, m.Reg(s.Rs2())); err != nil {
			return Continue, &Fault{Kind: FaultMemory, Address: addressOf(err)}
		}

	case decode.ADDI:
		i := inst.I()
		rd, rdValue, haveRd = i.Rd(), m.Reg(i.Rs1())+i.Imm(), true
	case decode.SLTI:
		i := inst.I()
		rd, haveRd = i.Rd(), true
		rdValue = boolToWord(int32(m.Reg(i.Rs1())) < int32(i.Imm()))
	case decode.SLTIU:
		i := inst.I()
		rd, haveRd = i.Rd(), true
		rdValue = boolToWord(m.Reg(i.Rs1()) < i.Imm())
	case decode.XORI:
		i := inst.I()
		rd, rdValue, haveRd = i.Rd(), m.Reg(i.Rs1())^i.Imm(), true
	case decode.ORI:
		i := inst.I()
		rd, rdValue, haveRd = i.Rd(), m.Reg(i.Rs1())|i.Imm(), true
	case decode.ANDI:
		i := inst.I()
		rd, rdValue, haveRd = i.Rd(), m.Reg(i.Rs1())&i.Imm(), true
	case decode.SLLI:
		i := inst.I()
		rd, rdValue, haveRd = i.Rd(), m.Reg(i.Rs1())<<(i.Imm()&0x1F), true
	case decode.SRLI:
		i := inst.I()
		rd, rdValue, haveRd = i.Rd(), m.Reg(i.Rs1())>>(i.Imm()&0x1F), true
	case decode.SRAI:
		i := inst.I()
		rd, haveRd = i.Rd(), true
		rdValue = uint32(int32(m.Reg(i.Rs1())) >> (i.Imm() & 0x1F))

	case decode.ADD:
		r := inst.R()
		rd, rdValue, haveRd = r.Rd(), m.Reg(r.Rs1())+m.Reg(r.Rs2()), true
	case decode.SUB:
		r := inst.R()
		rd, rdValue, haveRd = r.Rd(), m.Reg(r.Rs1())-m.Reg(r.Rs2()), true
	case decode.SLL:
		r := inst.R()
		rd, rdValue, haveRd = r.Rd(), m.Reg(r.Rs1())<<(m.Reg(r.Rs2())&0x1F), true
	case decode.SLT:
		r := inst.R()
		rd, haveRd = r.Rd(), true
		rdValue = boolToWord(int32(m.Reg(r.Rs1())) < int32(m.Reg(r.Rs2())))
	case decode.SLTU:
		r := inst.R()
		rd, haveRd = r.Rd(), true
		rdValue = boolToWord(m.Reg(r.Rs1()) < m.Reg(r.Rs2()))
	case decode.XOR:
		r := inst.R()
		rd, rdValue, haveRd = r.Rd(), m.Reg(r.Rs1())^m.Reg(r.Rs2()), true
	case decode.SRL:
		r := inst.R()
		rd, rdValue, haveRd = r.Rd(), m.Reg(r.Rs1())>>(m.Reg(r.Rs2())&0x1F), true
	case decode.SRA:
		r := inst.R()
		rd, haveRd = r.Rd(), true
		rdValue = uint32(int32(m.Reg(r.Rs1())) >> (m.Reg(r.Rs2()) & 0x1F))
	case decode.OR:
		r := inst.R()
		rd, rdValue, haveRd = r.Rd(), m.Reg(r.Rs1())|m.Reg(r.Rs2()), true
	case decode.AND:
		r := inst.R()
		rd, rdValue, haveRd = r.Rd(), m.Reg(r.Rs1())&m.Reg(r.Rs2()), true

	case decode.FENCE, decode.EBREAK, decode.URET, decode.SRET, decode.MRET, decode.WFI,
		decode.CSRRS, decode.CSRRC, decode.CSRRWI, decode.CSRRSI, decode.CSRRCI:
		// No architectural effect in this core.

	case decode.ECALL:
		if x3 := m.Reg(3); x3 > 1 {
			return Continue, &Fault{Kind: FaultTestFailure, X3: x3}
		}

	case decode.CSRRW:
		if decode.CSRAddress(code) == haltSentinelCSR {
			halted = true
		}
	}

	m.Regs[PC] = nextPC
	if haveRd {
		m.SetReg(rd, rdValue)
	}

	if halted {
		return Halt, nil
	}
	return Continue, nil
}

func boolToWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func signExtendByte(v uint32) uint32 {
	return (v ^ 0x80) - 0x80
}

func signExtendHalf(v uint32) uint32 {
	return (v ^ 0x8000) - 0x8000
}

func addressOf(err error) uint32 {
	if oor, ok := err.(*memio.OutOfRangeError); ok {
		return oor.Address
	}
	return 0
}
