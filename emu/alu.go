package emu

import "github.com/MarcoCallari/gba-mu/insts"

// Flags holds the condition-flag outcome of one ALU computation. The
// flags are always fully computed; the caller decides whether and how
// to apply them.
type Flags struct {
	N bool // bit 31 of the result
	Z bool // result is zero
	C bool // carry out / no borrow (arithmetic forms only)
	V bool // signed overflow (arithmetic forms only)
}

// ALUResult describes one data-processing computation.
type ALUResult struct {
	Value uint32
	Flags Flags

	// WritesRd is false for the test and compare forms, which discard
	// the result and exist only for their flags.
	WritesRd bool

	// Logical marks the bitwise and move forms: their carry comes from
	// the barrel shifter and they never touch the overflow flag.
	Logical bool
}

// ALU implements the sixteen ARM data-processing operations. It reads
// the incoming carry flag for the with-carry forms but never writes
// processor state; applying flags is the caller's job.
type ALU struct {
	status *StatusFile
}

// NewALU creates an ALU reading the incoming carry from status.
func NewALU(status *StatusFile) *ALU {
	return &ALU{status: status}
}

// Execute performs one data-processing operation on the two operands
// and returns the result with its fully computed flags.
func (a *ALU) Execute(op insts.Opcode, op1, op2 uint32) ALUResult {
	switch op {
	case insts.OpAND:
		return logical(op1 & op2)
	case insts.OpEOR:
		return logical(op1 ^ op2)
	case insts.OpSUB:
		return sub(op1, op2)
	case insts.OpRSB:
		return sub(op2, op1)
	case insts.OpADD:
		return add(op1, op2)
	case insts.OpADC:
		return a.addWithCarry(op1, op2)
	case insts.OpSBC:
		return a.subWithCarry(op1, op2)
	case insts.OpRSC:
		return a.subWithCarry(op2, op1)
	case insts.OpTST:
		return discardResult(logical(op1 & op2))
	case insts.OpTEQ:
		return discardResult(logical(op1 ^ op2))
	case insts.OpCMP:
		return discardResult(sub(op1, op2))
	case insts.OpCMN:
		return discardResult(add(op1, op2))
	case insts.OpORR:
		return logical(op1 | op2)
	case insts.OpMOV:
		return logical(op2)
	case insts.OpBIC:
		return logical(op1 &^ op2)
	default: // MVN
		return logical(^op2)
	}
}

func discardResult(r ALUResult) ALUResult {
	r.WritesRd = false
	return r
}

// logical computes the flags of a bitwise or move result. Carry and
// overflow are not meaningful here: C is supplied by the shifter and V
// is preserved by the caller.
func logical(v uint32) ALUResult {
	return ALUResult{
		Value:    v,
		Flags:    Flags{N: v>>31 != 0, Z: v == 0},
		WritesRd: true,
		Logical:  true,
	}
}

// add computes op1 + op2. Carry is unsigned overflow; V follows the
// two's-complement rule: both operands share a sign and the result has
// the opposite one.
func add(op1, op2 uint32) ALUResult {
	r := op1 + op2
	return ALUResult{
		Value: r,
		Flags: Flags{
			N: r>>31 != 0,
			Z: r == 0,
			C: r < op1,
			V: (^(op1 ^ op2) & (op1 ^ r) & 0x80000000) != 0,
		},
		WritesRd: true,
	}
}

// sub computes op1 - op2. Carry means no borrow: op1 >= op2 unsigned.
func sub(op1, op2 uint32) ALUResult {
	r := op1 - op2
	return ALUResult{
		Value: r,
		Flags: Flags{
			N: r>>31 != 0,
			Z: r == 0,
			C: op1 >= op2,
			V: ((op1 ^ op2) & (op1 ^ r) & 0x80000000) != 0,
		},
		WritesRd: true,
	}
}

// addWithCarry folds the incoming carry into a 64-bit intermediate;
// carry and overflow derive from the composed addition, not from a
// second pass of the plain rules.
func (a *ALU) addWithCarry(op1, op2 uint32) ALUResult {
	wide := uint64(op1) + uint64(op2) + uint64(carryBit(a.status.CPSR.C()))
	r := uint32(wide)
	return ALUResult{
		Value: r,
		Flags: Flags{
			N: r>>31 != 0,
			Z: r == 0,
			C: wide>>32 != 0,
			V: (^(op1 ^ op2) & (op1 ^ r) & 0x80000000) != 0,
		},
		WritesRd: true,
	}
}

// subWithCarry computes op1 - op2 - 1 + C as op1 + NOT(op2) + C in a
// 64-bit intermediate. Carry set means no borrow occurred.
func (a *ALU) subWithCarry(op1, op2 uint32) ALUResult {
	wide := uint64(op1) + uint64(^op2) + uint64(carryBit(a.status.CPSR.C()))
	r := uint32(wide)
	return ALUResult{
		Value: r,
		Flags: Flags{
			N: r>>31 != 0,
			Z: r == 0,
			C: wide>>32 != 0,
			V: ((op1 ^ op2) & (op1 ^ r) & 0x80000000) != 0,
		},
		WritesRd: true,
	}
}

func carryBit(c bool) uint32 {
	if c {
		return 1
	}
	return 0
}
