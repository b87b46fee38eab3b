package decode

import "testing"

func encodeR(opcode, funct3, funct7, rd, rs1, rs2 uint32) uint32 {
	return funct7<<25 | rs2<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

func encodeI(opcode, funct3, rd, rs1, imm uint32) uint32 {
	return imm<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

func TestDecodeLUI(t *testing.T) {
	inst, err := Decode(0xABCDE<<12 | 1<<7 | 0b0110111)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.Op != LUI {
		t.Fatalf("Op = %v, want LUI", inst.Op)
	}
}

func TestDecodeBranches(t *testing.T) {
	cases := []struct {
		funct3 uint32
		want   Op
	}{
		{0b000, BEQ}, {0b001, BNE}, {0b100, BLT},
		{0b101, BGE}, {0b110, BLTU}, {0b111, BGEU},
	}
	for _, c := range cases {
		word := encodeR(0b1100011, c.funct3, 0, 0, 1, 2)
		inst, err := Decode(word)
		if err != nil {
			t.Fatalf("funct3=%03b: unexpected error: %v", c.funct3, err)
		}
		if inst.Op != c.want {
			t.Fatalf("funct3=%03b: Op = %v, want %v", c.funct3, inst.Op, c.want)
		}
	}
}

func TestDecodeBranchBadFunct3(t *testing.T) {
	word := encodeR(0b1100011, 0b010, 0, 0, 1, 2)
	if _, err := Decode(word); err == nil {
		t.Fatal("expected decode error for unused branch funct3")
	}
}

func TestDecodeOpImmShifts(t *testing.T) {
	srli := encodeR(0b0010011, 0b101, 0b0000000, 1, 2, 5)
	inst, err := Decode(srli)
	if err != nil || inst.Op != SRLI {
		t.Fatalf("SRLI: Op=%v err=%v", inst.Op, err)
	}

	srai := encodeR(0b0010011, 0b101, 0b0100000, 1, 2, 5)
	inst, err = Decode(srai)
	if err != nil || inst.Op != SRAI {
		t.Fatalf("SRAI: Op=%v err=%v", inst.Op, err)
	}
}

func TestDecodeOpAddSub(t *testing.T) {
	add := encodeR(0b0110011, 0b000, 0b0000000, 1, 2, 3)
	inst, err := Decode(add)
	if err != nil || inst.Op != ADD {
		t.Fatalf("ADD: Op=%v err=%v", inst.Op, err)
	}

	sub := encodeR(0b0110011, 0b000, 0b0100000, 1, 2, 3)
	inst, err = Decode(sub)
	if err != nil || inst.Op != SUB {
		t.Fatalf("SUB: Op=%v err=%v", inst.Op, err)
	}
}

func TestDecodeSystem(t *testing.T) {
	cases := []struct {
		imm12 uint32
		want  Op
	}{
		{0x000, ECALL}, {0x001, EBREAK}, {0x002, URET},
		{0x102, SRET}, {0x302, MRET}, {0x105, WFI},
	}
	for _, c := range cases {
		word := encodeI(0b1110011, 0b000, 0, 0, c.imm12)
		inst, err := Decode(word)
		if err != nil {
			t.Fatalf("imm12=0x%x: unexpected error: %v", c.imm12, err)
		}
		if inst.Op != c.want {
			t.Fatalf("imm12=0x%x: Op = %v, want %v", c.imm12, inst.Op, c.want)
		}
	}
}

func TestDecodeCSR(t *testing.T) {
	cases := []struct {
		funct3 uint32
		want   Op
	}{
		{0b001, CSRRW}, {0b010, CSRRS}, {0b011, CSRRC},
		{0b101, CSRRWI}, {0b110, CSRRSI}, {0b111, CSRRCI},
	}
	for _, c := range cases {
		word := encodeI(0b1110011, c.funct3, 1, 2, 0xC00)
		inst, err := Decode(word)
		if err != nil {
			t.Fatalf("funct3=%03b: unexpected error: %v", c.funct3, err)
		}
		if inst.Op != c.want {
			t.Fatalf("funct3=%03b: Op = %v, want %v", c.funct3, inst.Op, c.want)
		}
	}
}

func TestDecodeUnrecognizedOpcode(t *testing.T) {
	_, err := Decode(0b1111111)
	if err == nil {
		t.Fatal("expected decode error for unrecognized opcode")
	}
	var decodeErr *Error
	if _, ok := err.(*Error); !ok {
		t.Fatalf("error type = %T, want *Error", err)
	}
	_ = decodeErr
}

func TestCSRAddress(t *testing.T) {
	word := encodeI(0b1110011, 0b001, 1, 2, 0xC00)
	if got := CSRAddress(word); got != 0xC00 {
		t.Fatalf("CSRAddress() = 0x%x, want 0xC00", got)
	}
}

func TestOpString(t *testing.T) {
	if LUI.String() != "LUI" {
		t.Fatalf("LUI.String() = %q, want %q", LUI.String(), "LUI")
	}
	if got := Op(-1).String(); got != "Op(-1)" {
		t.Fatalf("Op(-1).String() = %q, want %q", got, "Op(-1)")
	}
}
