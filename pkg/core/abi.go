package core

// ABINames are the conventional RISC-V ABI mnemonic register names for
// x0..x31, followed by "pc" for the program counter held at index PC.
var ABINames = [NumRegisters]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2", "s0", "s1",
	"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7",
	"s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9", "s10", "s11",
	"t3", "t4", "t5", "t6", "pc",
}
