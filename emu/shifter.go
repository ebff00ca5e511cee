package emu

import (
	"errors"

	"github.com/MarcoCallari/gba-mu/insts"
)

// ErrShiftSourcePC reports the illegal encoding that names R15 as the
// shift-amount source register. The instruction degrades to a no-op.
var ErrShiftSourcePC = errors.New("R15 is not a valid shift-amount source")

// ShiftResult is the barrel shifter output: the second ALU operand and
// the shifter carry-out. The carry-out conditionally becomes the C flag
// for logical operations and is otherwise discarded.
type ShiftResult struct {
	Value uint32
	Carry bool
}

// BarrelShifter computes operand2 for data-processing instructions and
// the shifted register offset of single data transfers.
type BarrelShifter struct {
	regFile *RegFile
	status  *StatusFile
}

// NewBarrelShifter creates a shifter reading registers and the incoming
// carry from the given register and status files.
func NewBarrelShifter(regFile *RegFile, status *StatusFile) *BarrelShifter {
	return &BarrelShifter{regFile: regFile, status: status}
}

// pcReadAhead is the program-counter operand offset: the PC reads as the
// instruction address plus 8, or plus 12 when a register supplies the
// shift amount (decode has advanced one further stage by then).
func pcReadAhead(immediate, registerShift bool) uint32 {
	if !immediate && registerShift {
		return 12
	}
	return 8
}

// Operand computes operand2 for a data-processing word, in either the
// rotated-immediate or the shifted-register form.
func (b *BarrelShifter) Operand(word uint32) (ShiftResult, error) {
	carryIn := b.status.CPSR.C()

	if insts.ImmediateOperand(word) {
		// 8-bit immediate rotated right by twice the rotate field.
		// A zero rotation leaves the carry untouched; otherwise the
		// carry-out is the last bit rotated out, which lands in bit 31.
		imm := insts.Imm8(word)
		rot := insts.RotateField(word) * 2
		if rot == 0 {
			return ShiftResult{Value: imm, Carry: carryIn}, nil
		}
		v := ror32(imm, rot)
		return ShiftResult{Value: v, Carry: v>>31 != 0}, nil
	}

	mode := b.status.CPSR.Mode()
	registerShift := insts.RegisterShiftAmount(word)
	rm := b.regFile.ReadOperand(mode, insts.Rm(word), pcReadAhead(false, registerShift))

	if registerShift {
		rs := insts.Rs(word)
		if rs == RegPC {
			return ShiftResult{}, ErrShiftSourcePC
		}
		amount := b.regFile.Read(mode, rs) & 0xFF
		if amount == 0 {
			// a register-sourced amount of zero is a plain no-op,
			// unlike the immediate-field zero encodings
			return ShiftResult{Value: rm, Carry: carryIn}, nil
		}
		return shiftByAmount(rm, insts.ShiftTypeOf(word), amount), nil
	}

	return b.shiftImmediate(rm, insts.ShiftTypeOf(word), insts.ShiftAmount(word), carryIn), nil
}

// TransferOffset computes the shifted register offset of a single data
// transfer. The encoding only permits immediate shift amounts; the
// shifter carry-out is not architecturally visible here.
func (b *BarrelShifter) TransferOffset(word uint32) uint32 {
	mode := b.status.CPSR.Mode()
	rm := b.regFile.ReadOperand(mode, insts.Rm(word), 8)
	res := b.shiftImmediate(rm, insts.ShiftTypeOf(word), insts.ShiftAmount(word), b.status.CPSR.C())
	return res.Value
}

// shiftImmediate applies an immediate-field shift, where an amount of
// zero encodes a special function per shift type rather than a no-op.
func (b *BarrelShifter) shiftImmediate(rm uint32, typ insts.ShiftType, amount uint32, carryIn bool) ShiftResult {
	if amount != 0 {
		return shiftByAmount(rm, typ, amount)
	}

	switch typ {
	case insts.ShiftLSL:
		// LSL #0: value and carry pass through unchanged
		return ShiftResult{Value: rm, Carry: carryIn}
	case insts.ShiftLSR:
		// LSR #0 encodes LSR #32: zero result, carry from bit 31
		return ShiftResult{Value: 0, Carry: rm>>31 != 0}
	case insts.ShiftASR:
		// ASR #0 encodes ASR #32: every bit equals bit 31
		return ShiftResult{Value: uint32(int32(rm) >> 31), Carry: rm>>31 != 0}
	default:
		// ROR #0 encodes RRX: one-bit rotation of the 33-bit quantity
		// formed by the carry flag and the register
		v := rm >> 1
		if carryIn {
			v |= 1 << 31
		}
		return ShiftResult{Value: v, Carry: rm&1 != 0}
	}
}

// shiftByAmount applies a shift with a non-zero effective amount, which
// may exceed 31 when the amount comes from a register.
func shiftByAmount(rm uint32, typ insts.ShiftType, amount uint32) ShiftResult {
	switch typ {
	case insts.ShiftLSL:
		switch {
		case amount < 32:
			return ShiftResult{Value: rm << amount, Carry: (rm>>(32-amount))&1 != 0}
		case amount == 32:
			return ShiftResult{Value: 0, Carry: rm&1 != 0}
		default:
			return ShiftResult{Value: 0, Carry: false}
		}
	case insts.ShiftLSR:
		switch {
		case amount < 32:
			return ShiftResult{Value: rm >> amount, Carry: (rm>>(amount-1))&1 != 0}
		case amount == 32:
			return ShiftResult{Value: 0, Carry: rm>>31 != 0}
		default:
			return ShiftResult{Value: 0, Carry: false}
		}
	case insts.ShiftASR:
		if amount >= 32 {
			return ShiftResult{Value: uint32(int32(rm) >> 31), Carry: rm>>31 != 0}
		}
		return ShiftResult{Value: uint32(int32(rm) >> amount), Carry: (rm>>(amount-1))&1 != 0}
	default: // ROR
		eff := amount & 31
		if eff == 0 {
			// a multiple of 32 leaves the value unchanged with the
			// carry taken from bit 31
			return ShiftResult{Value: rm, Carry: rm>>31 != 0}
		}
		return ShiftResult{Value: ror32(rm, eff), Carry: (rm>>(eff-1))&1 != 0}
	}
}

// ror32 rotates v right by n bit positions, n in 1..31.
func ror32(v, n uint32) uint32 {
	return v>>n | v<<(32-n)
}
