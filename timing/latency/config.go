// Package latency provides configurable instruction cycle costs for
// approximate timing of the execution core.
//
// The costs follow ARM7TDMI sequential-access estimates and can be
// overridden via TimingConfig; CycleTable converts a configuration into
// the table the core consumes.
package latency

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/MarcoCallari/gba-mu/emu"
)

// TimingConfig holds approximate cycle costs per instruction class.
// Values follow ARM7TDMI sequential-access estimates; they scale
// peripheral scheduling and have no effect on execution results.
type TimingConfig struct {
	// DataProcessing is the base cost of an ALU instruction.
	// Default: 1 cycle.
	DataProcessing uint64 `json:"data_processing"`

	// RegisterShift is the surcharge when the shift amount comes from
	// a register. Default: 1 cycle.
	RegisterShift uint64 `json:"register_shift"`

	// PCWrite is the surcharge for any instruction writing the program
	// counter, covering the pipeline refill. Default: 2 cycles.
	PCWrite uint64 `json:"pc_write"`

	// Multiply is the cost of MUL and MLA. Default: 2 cycles.
	Multiply uint64 `json:"multiply"`

	// MultiplyLong is the cost of the 64-bit multiplies.
	// Default: 3 cycles.
	MultiplyLong uint64 `json:"multiply_long"`

	// Branch is the cost of B and BL. Default: 3 cycles.
	Branch uint64 `json:"branch"`

	// BranchExchange is the cost of BX. Default: 3 cycles.
	BranchExchange uint64 `json:"branch_exchange"`

	// SingleTransfer is the cost of LDR, STR and the byte forms.
	// Default: 3 cycles.
	SingleTransfer uint64 `json:"single_transfer"`

	// HalfwordTransfer is the cost of the halfword and signed loads.
	// Default: 3 cycles.
	HalfwordTransfer uint64 `json:"halfword_transfer"`

	// BlockBase is the fixed part of an LDM or STM.
	// Default: 2 cycles.
	BlockBase uint64 `json:"block_base"`

	// BlockPerRegister is the per-register part of an LDM or STM.
	// Default: 1 cycle.
	BlockPerRegister uint64 `json:"block_per_register"`

	// Swap is the cost of SWP and SWPB. Default: 4 cycles.
	Swap uint64 `json:"swap"`

	// PSRTransfer is the cost of MRS and MSR. Default: 1 cycle.
	PSRTransfer uint64 `json:"psr_transfer"`

	// SoftwareInterrupt is the cost of SWI including the exception
	// entry. Default: 3 cycles.
	SoftwareInterrupt uint64 `json:"software_interrupt"`

	// Undefined is the cost of an inert undefined step.
	// Default: 1 cycle.
	Undefined uint64 `json:"undefined"`

	// ConditionFailed is the cost of a skipped instruction.
	// Default: 1 cycle.
	ConditionFailed uint64 `json:"condition_failed"`
}

// DefaultTimingConfig returns a TimingConfig with the default values.
func DefaultTimingConfig() *TimingConfig {
	return &TimingConfig{
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

// LoadConfig loads a TimingConfig from a JSON file. Fields absent from
// the file keep their default values.
func LoadConfig(path string) (*TimingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timing config file: %w", err)
	}

	config := DefaultTimingConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse timing config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a TimingConfig to a JSON file.
func (c *TimingConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize timing config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timing config file: %w", err)
	}

	return nil
}

// Validate checks that all base costs are valid (> 0). Surcharge
// fields may be zero.
func (c *TimingConfig) Validate() error {
	if c.DataProcessing == 0 {
		return fmt.Errorf("data_processing must be > 0")
	}
	if c.Multiply == 0 {
		return fmt.Errorf("multiply must be > 0")
	}
	if c.MultiplyLong == 0 {
		return fmt.Errorf("multiply_long must be > 0")
	}
	if c.Branch == 0 {
		return fmt.Errorf("branch must be > 0")
	}
	if c.BranchExchange == 0 {
		return fmt.Errorf("branch_exchange must be > 0")
	}
	if c.SingleTransfer == 0 {
		return fmt.Errorf("single_transfer must be > 0")
	}
	if c.HalfwordTransfer == 0 {
		return fmt.Errorf("halfword_transfer must be > 0")
	}
	if c.BlockBase == 0 {
		return fmt.Errorf("block_base must be > 0")
	}
	if c.Swap == 0 {
		return fmt.Errorf("swap must be > 0")
	}
	if c.PSRTransfer == 0 {
		return fmt.Errorf("psr_transfer must be > 0")
	}
	if c.SoftwareInterrupt == 0 {
		return fmt.Errorf("software_interrupt must be > 0")
	}
	if c.Undefined == 0 {
		return fmt.Errorf("undefined must be > 0")
	}
	if c.ConditionFailed == 0 {
		return fmt.Errorf("condition_failed must be > 0")
	}
	return nil
}

// Clone returns a copy of the TimingConfig.
func (c *TimingConfig) Clone() *TimingConfig {
	clone := *c
	return &clone
}

// CycleTable converts the configuration into the table the execution
// core consumes.
func (c *TimingConfig) CycleTable() emu.CycleTable {
	return emu.CycleTable{
		DataProcessing:    c.DataProcessing,
		RegisterShift:     c.RegisterShift,
		PCWrite:           c.PCWrite,
		Multiply:          c.Multiply,
		MultiplyLong:      c.MultiplyLong,
		Branch:            c.Branch,
		BranchExchange:    c.BranchExchange,
		SingleTransfer:    c.SingleTransfer,
		HalfwordTransfer:  c.HalfwordTransfer,
		BlockBase:         c.BlockBase,
		BlockPerRegister:  c.BlockPerRegister,
		Swap:              c.Swap,
		PSRTransfer:       c.PSRTransfer,
		SoftwareInterrupt: c.SoftwareInterrupt,
		Undefined:         c.Undefined,
		ConditionFailed:   c.ConditionFailed,
	}
}
