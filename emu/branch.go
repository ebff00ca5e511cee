package emu

import (
	"github.com/MarcoCallari/gba-mu/insts"
)

// stepBranch executes B and BL. The offset is relative to the current
// instruction address plus the fetch read-ahead.
func (c *CPU) stepBranch(word uint32) StepResult {
	pc := c.pc()
	target := uint32(int32(pc+8) + insts.BranchOffset(word))

	if insts.LinkBit(word) {
		c.regFile.Write(c.mode(), RegLR, pc+4)
	}

	c.setPC(target)

	return StepResult{Cycles: c.cycles.Branch}
}

// stepBranchExchange executes BX. Bit 0 of the target selects the
// Thumb state for the next fetch.
func (c *CPU) stepBranchExchange(word uint32) StepResult {
	target := c.regFile.ReadOperand(c.mode(), insts.Rm(word), 8)

	if target&0x1 != 0 {
		c.status.CPSR.SetThumb(true)
		c.regFile.Write(c.mode(), RegPC, target&^0x1)
	} else {
		c.setPC(target)
	}

	return StepResult{Cycles: c.cycles.BranchExchange}
}
