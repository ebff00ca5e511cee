package emu

import (
	"github.com/MarcoCallari/gba-mu/insts"
)

// stepMultiply executes MUL and MLA. The carry and overflow flags are
// left unchanged by the S bit.
func (c *CPU) stepMultiply(word uint32) StepResult {
	mode := c.mode()

	rm := c.regFile.ReadOperand(mode, insts.Rm(word), 8)
	rs := c.regFile.ReadOperand(mode, insts.Rs(word), 8)

	result := rm * rs
	if insts.AccumulateBit(word) {
		result += c.regFile.ReadOperand(mode, insts.MulRn(word), 8)
	}

	c.regFile.Write(mode, insts.MulRd(word), result)

	if insts.SBit(word) {
		c.status.CPSR.SetN(result&0x80000000 != 0)
		c.status.CPSR.SetZ(result == 0)
	}

	c.advancePC()

	return StepResult{Cycles: c.cycles.Multiply}
}

// stepMultiplyLong executes UMULL, UMLAL, SMULL and SMLAL, producing a
// 64-bit result split across RdHi and RdLo.
func (c *CPU) stepMultiplyLong(word uint32) StepResult {
	mode := c.mode()

	rm := c.regFile.ReadOperand(mode, insts.Rm(word), 8)
	rs := c.regFile.ReadOperand(mode, insts.Rs(word), 8)

	var product uint64
	if insts.SignedMultiplyBit(word) {
		product = uint64(int64(int32(rm)) * int64(int32(rs)))
	} else {
		product = uint64(rm) * uint64(rs)
	}

	rdHi := insts.RdHi(word)
	rdLo := insts.RdLo(word)

	if insts.AccumulateBit(word) {
		acc := uint64(c.regFile.Read(mode, rdHi))<<32 |
			uint64(c.regFile.Read(mode, rdLo))
		product += acc
	}

	c.regFile.Write(mode, rdHi, uint32(product>>32))
	c.regFile.Write(mode, rdLo, uint32(product))

	if insts.SBit(word) {
		c.status.CPSR.SetN(product&0x8000000000000000 != 0)
		c.status.CPSR.SetZ(product == 0)
	}

	c.advancePC()

	return StepResult{Cycles: c.cycles.MultiplyLong}
}
