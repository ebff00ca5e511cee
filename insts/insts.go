// Package insts provides ARM-state (ARMv4T) instruction classification
// and bit-field extraction.
//
// Classification is table driven: an ordered list of (mask, pattern)
// rules is checked most-specific-first, because several instruction
// groups share their high bits and differ only in narrower fields.
// Field extraction is purely derived from the raw 32-bit word; no
// decoded-instruction object is ever retained.
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	class := decoder.Classify(0xE0812003) // ADD R2, R1, R3
package insts

// Class identifies the instruction group a 32-bit ARM word belongs to.
type Class uint8

// Instruction classes. A word matching no defined encoding classifies as
// ClassUndefined, which is also the zero value.
const (
	ClassUndefined Class = iota
	ClassDataProcessing
	ClassPSRTransfer
	ClassMultiply
	ClassMultiplyLong
	ClassSingleDataSwap
	ClassBranchExchange
	ClassHalfwordTransfer
	ClassSingleDataTransfer
	ClassBlockDataTransfer
	ClassBranch
	ClassSoftwareInterrupt
)

// String returns a short name for the class.
func (c Class) String() string {
	switch c {
	case ClassDataProcessing:
		return "DataProcessing"
	case ClassPSRTransfer:
		return "PSRTransfer"
	case ClassMultiply:
		return "Multiply"
	case ClassMultiplyLong:
		return "MultiplyLong"
	case ClassSingleDataSwap:
		return "SingleDataSwap"
	case ClassBranchExchange:
		return "BranchExchange"
	case ClassHalfwordTransfer:
		return "HalfwordTransfer"
	case ClassSingleDataTransfer:
		return "SingleDataTransfer"
	case ClassBlockDataTransfer:
		return "BlockDataTransfer"
	case ClassBranch:
		return "Branch"
	case ClassSoftwareInterrupt:
		return "SoftwareInterrupt"
	default:
		return "Undefined"
	}
}
