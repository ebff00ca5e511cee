package emu

import (
	"errors"
	"fmt"
	"io"

	"github.com/MarcoCallari/gba-mu/insts"
)

// Exception vector addresses.
const (
	VectorReset             uint32 = 0x00
	VectorUndefined         uint32 = 0x04
	VectorSoftwareInterrupt uint32 = 0x08
	VectorIRQ               uint32 = 0x18
	VectorFIQ               uint32 = 0x1C
)

// BootVector is the reset entry point the program counter starts at.
const BootVector = VectorReset

// Defined degradations of a single step. The step completes inertly and
// execution may continue; reporting is the caller's responsibility.
var (
	// ErrUndefinedInstruction reports a word matching no defined
	// encoding. No register or flag changed.
	ErrUndefinedInstruction = errors.New("undefined instruction")

	// ErrThumbState reports a step attempted while the state bit
	// selects Thumb, which this core does not execute.
	ErrThumbState = errors.New("thumb state is not supported")
)

// StepResult reports the outcome of executing a single instruction.
type StepResult struct {
	// Cycles is the approximate cost of the step for the caller's
	// scheduling of peripheral components. It has no effect on the
	// correctness of the next step.
	Cycles uint64

	// Err reports a defined degradation (undefined instruction,
	// invalid shift encoding, Thumb entry). State is unchanged apart
	// from the program counter advancing past the offending word.
	Err error
}

// CPU is the ARM7TDMI instruction decode/execute engine. One call to
// Step fetches, decodes and fully executes exactly one instruction;
// there is no concurrency and no partial execution.
type CPU struct {
	regFile *RegFile
	status  *StatusFile
	decoder *insts.Decoder
	shifter *BarrelShifter
	alu     *ALU
	bus     Bus

	cycles CycleTable
	diag   io.Writer
}

// CPUOption is a functional option for configuring the CPU.
type CPUOption func(*CPU)

// WithCycleTable replaces the default approximate cycle costs.
func WithCycleTable(t CycleTable) CPUOption {
	return func(c *CPU) {
		c.cycles = t
	}
}

// WithDiagnostics sets a writer that receives one line per degraded
// step. Nil (the default) keeps the core silent.
func WithDiagnostics(w io.Writer) CPUOption {
	return func(c *CPU) {
		c.diag = w
	}
}

// NewCPU creates a CPU attached to the given bus, in the boot state:
// program counter at the boot vector, Supervisor mode, ARM state, both
// interrupt sources disabled.
func NewCPU(bus Bus, opts ...CPUOption) *CPU {
	regFile := &RegFile{}
	status := &StatusFile{}

	c := &CPU{
		regFile: regFile,
		status:  status,
		decoder: insts.NewDecoder(),
		shifter: NewBarrelShifter(regFile, status),
		alu:     NewALU(status),
		bus:     bus,
		cycles:  DefaultCycleTable(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.bootState()

	return c
}

func (c *CPU) bootState() {
	c.status.CPSR = 0
	c.status.CPSR.SetMode(ModeSupervisor)
	c.status.CPSR.SetIRQDisabled(true)
	c.status.CPSR.SetFIQDisabled(true)
	c.regFile.Write(ModeSupervisor, RegPC, BootVector)
}

// RegFile returns the CPU's register file.
func (c *CPU) RegFile() *RegFile {
	return c.regFile
}

// Status returns the CPU's status register file.
func (c *CPU) Status() *StatusFile {
	return c.status
}

// ReadRegister returns a register value as seen from the current mode.
func (c *CPU) ReadRegister(reg uint8) uint32 {
	return c.regFile.Read(c.status.CPSR.Mode(), reg)
}

// ReadUserRegister returns a register value from the User-mode bank
// regardless of the current mode.
func (c *CPU) ReadUserRegister(reg uint8) uint32 {
	return c.regFile.ReadUser(reg)
}

// mode returns the current processor mode.
func (c *CPU) mode() Mode {
	return c.status.CPSR.Mode()
}

// pc returns the stored program counter, the address of the word the
// next fetch reads.
func (c *CPU) pc() uint32 {
	return c.regFile.Read(c.mode(), RegPC)
}

func (c *CPU) setPC(v uint32) {
	c.regFile.Write(c.mode(), RegPC, v&^0x3)
}

func (c *CPU) advancePC() {
	c.regFile.Write(c.mode(), RegPC, c.pc()+4)
}

// degrade completes a step inertly, advancing past the offending word.
func (c *CPU) degrade(cycles uint64, err error) StepResult {
	if c.diag != nil {
		fmt.Fprintf(c.diag, "gba-mu: %v\n", err)
	}
	c.advancePC()
	return StepResult{Cycles: cycles, Err: err}
}

// Step fetches, decodes and executes exactly one instruction and
// returns its approximate cycle cost. A failed condition consumes the
// fixed minimal cost and changes no state. Defined invalid encodings
// degrade to inert steps carrying a typed error; they never abort
// execution.
func (c *CPU) Step() StepResult {
	if c.status.CPSR.Thumb() {
		if c.diag != nil {
			fmt.Fprintf(c.diag, "gba-mu: %v at %08x\n", ErrThumbState, c.pc())
		}
		return StepResult{Cycles: c.cycles.Undefined, Err: ErrThumbState}
	}

	pc := c.pc()
	word := c.bus.Read32(pc)

	if !CondPasses(insts.CondOf(word), c.status.CPSR) {
		c.advancePC()
		return StepResult{Cycles: c.cycles.ConditionFailed}
	}

	switch c.decoder.Classify(word) {
	case insts.ClassDataProcessing:
		return c.stepDataProcessing(word)
	case insts.ClassPSRTransfer:
		return c.stepPSRTransfer(word)
	case insts.ClassMultiply:
		return c.stepMultiply(word)
	case insts.ClassMultiplyLong:
		return c.stepMultiplyLong(word)
	case insts.ClassSingleDataSwap:
		return c.stepSwap(word)
	case insts.ClassBranchExchange:
		return c.stepBranchExchange(word)
	case insts.ClassHalfwordTransfer:
		return c.stepHalfwordTransfer(word)
	case insts.ClassSingleDataTransfer:
		return c.stepSingleTransfer(word)
	case insts.ClassBlockDataTransfer:
		return c.stepBlockTransfer(word)
	case insts.ClassBranch:
		return c.stepBranch(word)
	case insts.ClassSoftwareInterrupt:
		return c.stepSoftwareInterrupt(word)
	default:
		return c.degrade(c.cycles.Undefined,
			fmt.Errorf("%w: %08x at %08x", ErrUndefinedInstruction, word, pc))
	}
}
