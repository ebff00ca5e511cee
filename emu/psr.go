package emu

import (
	"github.com/MarcoCallari/gba-mu/insts"
)

// psrFieldMask expands the four MSR field-select bits into a byte mask
// over the status word.
func psrFieldMask(fields uint8) uint32 {
	var mask uint32
	if fields&0x8 != 0 {
		mask |= 0xFF000000
	}
	if fields&0x4 != 0 {
		mask |= 0x00FF0000
	}
	if fields&0x2 != 0 {
		mask |= 0x0000FF00
	}
	if fields&0x1 != 0 {
		mask |= 0x000000FF
	}
	return mask
}

// stepPSRTransfer executes MRS and MSR.
func (c *CPU) stepPSRTransfer(word uint32) StepResult {
	mode := c.mode()
	useSPSR := insts.SPSRBit(word)

	// Bit 21 separates MSR from MRS within the class.
	if word&0x00200000 == 0 {
		var v uint32
		if useSPSR {
			v = uint32(*c.status.Saved(mode))
		} else {
			v = uint32(c.status.CPSR)
		}
		c.regFile.Write(mode, insts.Rd(word), v)

		c.advancePC()
		return StepResult{Cycles: c.cycles.PSRTransfer}
	}

	var value uint32
	if insts.ImmediateOperand(word) {
		value = ror32(insts.Imm8(word), 2*insts.RotateField(word))
	} else {
		value = c.regFile.ReadOperand(mode, insts.Rm(word), 8)
	}

	mask := psrFieldMask(insts.PSRFields(word))

	if useSPSR {
		if spsrSlot(mode) >= 0 {
			saved := c.status.Saved(mode)
			*saved = PSR(uint32(*saved)&^mask | value&mask)
		}
		// Modes without a saved status ignore the write.
	} else {
		if mode == ModeUser {
			// User mode may only touch the flags field.
			mask &= 0xFF000000
		}
		c.status.CPSR = PSR(uint32(c.status.CPSR)&^mask | value&mask)
	}

	c.advancePC()
	return StepResult{Cycles: c.cycles.PSRTransfer}
}
