package emu

// Register indices with architectural roles. R13 and R14 are the stack
// pointer and link register by convention only; nothing here enforces
// their use.
const (
	RegSP uint8 = 13
	RegLR uint8 = 14
	RegPC uint8 = 15
)

// Cell offsets for the banked register copies. The user cells double as
// the System-mode bank.
const (
	cellFIQ = 16 // R8_fiq .. R14_fiq
	cellIRQ = 23 // R13_irq, R14_irq
	cellSVC = 25
	cellABT = 27
	cellUND = 29

	numCells = 31
)

// RegFile is the banked ARM7TDMI register file: 16 logical registers
// backed by 31 storage cells. A pure mapping from (mode, register) to a
// cell index selects the backing cell, so there is no aliasing and no
// bank-switch bookkeeping; a mode switch is simply a different mode
// value on the next access.
type RegFile struct {
	cells [numCells]uint32
}

// cellIndex maps a logical register as seen from mode to its backing
// cell. Exactly one cell backs each (mode, register) pair.
func cellIndex(mode Mode, reg uint8) int {
	switch mode {
	case ModeFIQ:
		if reg >= 8 && reg <= 14 {
			return cellFIQ + int(reg) - 8
		}
	case ModeIRQ:
		if reg == 13 || reg == 14 {
			return cellIRQ + int(reg) - 13
		}
	case ModeSupervisor:
		if reg == 13 || reg == 14 {
			return cellSVC + int(reg) - 13
		}
	case ModeAbort:
		if reg == 13 || reg == 14 {
			return cellABT + int(reg) - 13
		}
	case ModeUndefined:
		if reg == 13 || reg == 14 {
			return cellUND + int(reg) - 13
		}
	}
	return int(reg)
}

// Read returns the value of a register as seen from mode.
func (r *RegFile) Read(mode Mode, reg uint8) uint32 {
	return r.cells[cellIndex(mode, reg)]
}

// Write sets the value of a register as seen from mode.
func (r *RegFile) Write(mode Mode, reg uint8, v uint32) {
	r.cells[cellIndex(mode, reg)] = v
}

// ReadOperand reads a register as an instruction operand. The program
// counter reads ahead of the instruction being executed, so pcOffset is
// added when the register is R15; other registers read their stored
// value.
func (r *RegFile) ReadOperand(mode Mode, reg uint8, pcOffset uint32) uint32 {
	v := r.Read(mode, reg)
	if reg == RegPC {
		v += pcOffset
	}
	return v
}

// ReadUser returns the value of a register in the User-mode bank,
// regardless of the current mode. Privileged code paths and external
// inspection tools need this view.
func (r *RegFile) ReadUser(reg uint8) uint32 {
	return r.cells[reg]
}

// WriteUser sets the value of a register in the User-mode bank.
func (r *RegFile) WriteUser(reg uint8, v uint32) {
	r.cells[reg] = v
}
