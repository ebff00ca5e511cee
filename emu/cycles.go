package emu

// CycleTable holds the approximate cost of one step per instruction
// group, plus the surcharges that depend on operand form. The values
// are advisory bookkeeping for the caller's peripheral scheduling and
// have no effect on execution; they approximate the ARM7TDMI's summed
// sequential, non-sequential and internal cycles without modelling wait
// states.
type CycleTable struct {
	DataProcessing    uint64
	RegisterShift     uint64 // surcharge when a register supplies the shift amount
	PCWrite           uint64 // surcharge for the pipeline refill after a PC write
	Multiply          uint64
	MultiplyLong      uint64
	Branch            uint64
	BranchExchange    uint64
	SingleTransfer    uint64
	HalfwordTransfer  uint64
	BlockBase         uint64
	BlockPerRegister  uint64
	Swap              uint64
	PSRTransfer       uint64
	SoftwareInterrupt uint64
	Undefined         uint64
	ConditionFailed   uint64
}

// DefaultCycleTable returns the stock approximation.
func DefaultCycleTable() CycleTable {
	return CycleTable{
		DataProcessing:    1,
		RegisterShift:     1,
		PCWrite:           2,
		Multiply:          2,
		MultiplyLong:      3,
		Branch:            3,
		BranchExchange:    3,
		SingleTransfer:    3,
		HalfwordTransfer:  3,
		BlockBase:         2,
		BlockPerRegister:  1,
		Swap:              4,
		PSRTransfer:       1,
		SoftwareInterrupt: 3,
		Undefined:         1,
		ConditionFailed:   1,
	}
}
