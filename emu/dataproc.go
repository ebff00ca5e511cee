package emu

import (
	"fmt"

	"github.com/MarcoCallari/gba-mu/insts"
)

// stepDataProcessing executes the common ALU instruction form: barrel
// shifter on operand 2, sixteen opcodes, optional flag update.
func (c *CPU) stepDataProcessing(word uint32) StepResult {
	shifted, err := c.shifter.Operand(word)
	if err != nil {
		return c.degrade(c.cycles.DataProcessing,
			fmt.Errorf("data processing at %08x: %w", c.pc(), err))
	}

	immediate := insts.ImmediateOperand(word)
	registerShift := !immediate && insts.RegisterShiftAmount(word)
	mode := c.mode()

	op1 := c.regFile.ReadOperand(
		mode, insts.Rn(word), pcReadAhead(immediate, registerShift))

	op := insts.ALUOpcode(word)
	res := c.alu.Execute(op, op1, shifted.Value)

	rd := insts.Rd(word)
	setFlags := insts.SBit(word)

	if res.WritesRd {
		c.regFile.Write(mode, rd, res.Value)
	}

	switch {
	case setFlags && rd == RegPC && res.WritesRd:
		// S-bit with a PC destination restores the saved status
		// instead of writing flags.
		c.status.RestoreFromSaved()
	case setFlags || !res.WritesRd:
		if res.Logical {
			c.status.CPSR.SetNZCV(
				res.Flags.N, res.Flags.Z, shifted.Carry, c.status.CPSR.V())
		} else {
			c.status.CPSR.SetNZCV(
				res.Flags.N, res.Flags.Z, res.Flags.C, res.Flags.V)
		}
	}

	cycles := c.cycles.DataProcessing
	if registerShift {
		cycles += c.cycles.RegisterShift
	}

	if res.WritesRd && rd == RegPC {
		// The written value is the next fetch address.
		c.setPC(res.Value)
		cycles += c.cycles.PCWrite
	} else {
		c.advancePC()
	}

	return StepResult{Cycles: cycles}
}
