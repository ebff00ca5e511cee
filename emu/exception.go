package emu

// enterException switches to the exception mode, saving the current
// status into the mode's SPSR and the return address into its LR.
func (c *CPU) enterException(mode Mode, vector, ret uint32) {
	*c.status.Saved(mode) = c.status.CPSR

	c.status.CPSR.SetMode(mode)
	c.status.CPSR.SetThumb(false)
	c.status.CPSR.SetIRQDisabled(true)
	if mode == ModeFIQ {
		c.status.CPSR.SetFIQDisabled(true)
	}

	c.regFile.Write(mode, RegLR, ret)
	c.regFile.Write(mode, RegPC, vector)
}

// stepSoftwareInterrupt executes SWI, entering Supervisor mode.
func (c *CPU) stepSoftwareInterrupt(word uint32) StepResult {
	c.enterException(ModeSupervisor, VectorSoftwareInterrupt, c.pc()+4)

	return StepResult{Cycles: c.cycles.SoftwareInterrupt}
}

// RaiseIRQ requests a normal interrupt between steps. It reports
// whether the interrupt was taken; a set I bit masks it.
func (c *CPU) RaiseIRQ() bool {
	if c.status.CPSR.IRQDisabled() {
		return false
	}
	c.enterException(ModeIRQ, VectorIRQ, c.pc()+4)
	return true
}

// RaiseFIQ requests a fast interrupt between steps. It reports whether
// the interrupt was taken; a set F bit masks it.
func (c *CPU) RaiseFIQ() bool {
	if c.status.CPSR.FIQDisabled() {
		return false
	}
	c.enterException(ModeFIQ, VectorFIQ, c.pc()+4)
	return true
}

// Reset returns the CPU to its boot state. Register contents other
// than the program counter are preserved, as after a hardware reset
// their values are unpredictable anyway.
func (c *CPU) Reset() {
	c.bootState()
}
