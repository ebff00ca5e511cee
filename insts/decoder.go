package insts

// Cond represents an ARM condition code (bits 31-28 of every instruction).
type Cond uint8

// ARM condition codes.
const (
	CondEQ Cond = 0b0000 // Equal (Z == 1)
	CondNE Cond = 0b0001 // Not Equal (Z == 0)
	CondCS Cond = 0b0010 // Carry Set / Unsigned higher or same (C == 1)
	CondCC Cond = 0b0011 // Carry Clear / Unsigned lower (C == 0)
	CondMI Cond = 0b0100 // Minus / Negative (N == 1)
	CondPL Cond = 0b0101 // Plus / Positive or zero (N == 0)
	CondVS Cond = 0b0110 // Overflow (V == 1)
	CondVC Cond = 0b0111 // No overflow (V == 0)
	CondHI Cond = 0b1000 // Unsigned higher (C == 1 && Z == 0)
	CondLS Cond = 0b1001 // Unsigned lower or same (C == 0 || Z == 1)
	CondGE Cond = 0b1010 // Signed greater than or equal (N == V)
	CondLT Cond = 0b1011 // Signed less than (N != V)
	CondGT Cond = 0b1100 // Signed greater than (Z == 0 && N == V)
	CondLE Cond = 0b1101 // Signed less than or equal (Z == 1 || N != V)
	CondAL Cond = 0b1110 // Always
	CondNV Cond = 0b1111 // Never (reserved since ARMv3)
)

// Opcode represents a data-processing operation (bits 24-21).
type Opcode uint8

// Data-processing opcodes.
const (
	OpAND Opcode = 0x0 // Rd = Rn AND Op2
	OpEOR Opcode = 0x1 // Rd = Rn XOR Op2
	OpSUB Opcode = 0x2 // Rd = Rn - Op2
	OpRSB Opcode = 0x3 // Rd = Op2 - Rn
	OpADD Opcode = 0x4 // Rd = Rn + Op2
	OpADC Opcode = 0x5 // Rd = Rn + Op2 + C
	OpSBC Opcode = 0x6 // Rd = Rn - Op2 + C - 1
	OpRSC Opcode = 0x7 // Rd = Op2 - Rn + C - 1
	OpTST Opcode = 0x8 // flags of Rn AND Op2
	OpTEQ Opcode = 0x9 // flags of Rn XOR Op2
	OpCMP Opcode = 0xA // flags of Rn - Op2
	OpCMN Opcode = 0xB // flags of Rn + Op2
	OpORR Opcode = 0xC // Rd = Rn OR Op2
	OpMOV Opcode = 0xD // Rd = Op2
	OpBIC Opcode = 0xE // Rd = Rn AND NOT Op2
	OpMVN Opcode = 0xF // Rd = NOT Op2
)

// ShiftType represents a barrel-shifter operation (bits 6-5 of a
// register-form operand).
type ShiftType uint8

// Shift types.
const (
	ShiftLSL ShiftType = 0b00 // Logical shift left
	ShiftLSR ShiftType = 0b01 // Logical shift right
	ShiftASR ShiftType = 0b10 // Arithmetic shift right
	ShiftROR ShiftType = 0b11 // Rotate right
)

// rule maps a masked bit pattern to an instruction class.
type rule struct {
	mask    uint32
	pattern uint32
	class   Class
}

// Decoder classifies raw ARM instruction words.
type Decoder struct {
	rules []rule
}

// NewDecoder builds the classification table. Rule order matters: the
// multiply, swap and halfword groups all live inside the bit space of
// the data-processing group and are told apart by bits 7-4, so they are
// listed first.
func NewDecoder() *Decoder {
	return &Decoder{
		rules: []rule{
			{0x0FFFFFF0, 0x012FFF10, ClassBranchExchange},
			{0x0F000000, 0x0F000000, ClassSoftwareInterrupt},
			{0x0FC000F0, 0x00000090, ClassMultiply},
			{0x0F8000F0, 0x00800090, ClassMultiplyLong},
			{0x0FB00FF0, 0x01000090, ClassSingleDataSwap},
			{0x0E400F90, 0x00000090, ClassHalfwordTransfer}, // register offset
			{0x0E400090, 0x00400090, ClassHalfwordTransfer}, // immediate offset
			{0x0FBF0FFF, 0x010F0000, ClassPSRTransfer},      // MRS
			{0x0FB0FFF0, 0x0120F000, ClassPSRTransfer},      // MSR, register
			{0x0FB0F000, 0x0320F000, ClassPSRTransfer},      // MSR, immediate
			{0x0C000000, 0x00000000, ClassDataProcessing},
			{0x0E000010, 0x06000010, ClassUndefined}, // architecturally undefined space
			{0x0C000000, 0x04000000, ClassSingleDataTransfer},
			{0x0E000000, 0x08000000, ClassBlockDataTransfer},
			{0x0E000000, 0x0A000000, ClassBranch},
		},
	}
}

// Classify maps an instruction word to its class. Words matching no rule
// classify as ClassUndefined.
func (d *Decoder) Classify(word uint32) Class {
	for _, r := range d.rules {
		if word&r.mask == r.pattern {
			return r.class
		}
	}
	return ClassUndefined
}

// CondOf returns the condition field of an instruction word.
func CondOf(word uint32) Cond {
	return Cond(word >> 28)
}

// ALUOpcode returns the data-processing opcode field (bits 24-21).
func ALUOpcode(word uint32) Opcode {
	return Opcode((word >> 21) & 0xF)
}

// Rn returns the first-operand register field (bits 19-16).
func Rn(word uint32) uint8 {
	return uint8((word >> 16) & 0xF)
}

// Rd returns the destination register field (bits 15-12).
func Rd(word uint32) uint8 {
	return uint8((word >> 12) & 0xF)
}

// Rs returns the shift-amount register field (bits 11-8).
func Rs(word uint32) uint8 {
	return uint8((word >> 8) & 0xF)
}

// Rm returns the second-operand register field (bits 3-0).
func Rm(word uint32) uint8 {
	return uint8(word & 0xF)
}

// Multiply encodings place the destination in bits 19-16 and the
// accumulator in bits 15-12, swapped relative to data processing.

// MulRd returns the multiply destination register.
func MulRd(word uint32) uint8 {
	return uint8((word >> 16) & 0xF)
}

// MulRn returns the multiply accumulator register.
func MulRn(word uint32) uint8 {
	return uint8((word >> 12) & 0xF)
}

// RdHi returns the high destination of a long multiply.
func RdHi(word uint32) uint8 {
	return uint8((word >> 16) & 0xF)
}

// RdLo returns the low destination of a long multiply.
func RdLo(word uint32) uint8 {
	return uint8((word >> 12) & 0xF)
}

// SBit reports the flag-update bit (bit 20). For memory transfers the
// same bit is the load/store selector; see LoadBit.
func SBit(word uint32) bool {
	return word&(1<<20) != 0
}

// ImmediateOperand reports bit 25, the immediate-operand2 selector for
// data processing and the register-offset selector for single data
// transfers.
func ImmediateOperand(word uint32) bool {
	return word&(1<<25) != 0
}

// RegisterShiftAmount reports bit 4, set when a register-form operand2
// takes its shift amount from a register instead of an immediate field.
func RegisterShiftAmount(word uint32) bool {
	return word&(1<<4) != 0
}

// ShiftTypeOf returns the shift type field of a register-form operand.
func ShiftTypeOf(word uint32) ShiftType {
	return ShiftType((word >> 5) & 0x3)
}

// ShiftAmount returns the 5-bit immediate shift amount (bits 11-7).
func ShiftAmount(word uint32) uint32 {
	return (word >> 7) & 0x1F
}

// RotateField returns the 4-bit rotate field of an immediate operand2
// (bits 11-8). The applied rotation is twice this value.
func RotateField(word uint32) uint32 {
	return (word >> 8) & 0xF
}

// Imm8 returns the 8-bit immediate of an immediate operand2.
func Imm8(word uint32) uint32 {
	return word & 0xFF
}

// Imm12 returns the 12-bit offset of a single data transfer.
func Imm12(word uint32) uint32 {
	return word & 0xFFF
}

// BranchOffset returns the sign-extended, word-scaled branch offset.
func BranchOffset(word uint32) int32 {
	// shift the 24-bit field to the top so the sign extends on the way
	// back down, then scale to bytes
	return int32(word<<8) >> 6
}

// LinkBit reports bit 24 of a branch, set for branch-with-link.
func LinkBit(word uint32) bool {
	return word&(1<<24) != 0
}

// PreIndexBit reports the P bit (bit 24) of a memory transfer.
func PreIndexBit(word uint32) bool {
	return word&(1<<24) != 0
}

// UpBit reports the U bit (bit 23): offset added when set, subtracted
// when clear.
func UpBit(word uint32) bool {
	return word&(1<<23) != 0
}

// ByteBit reports the B bit (bit 22) of a single data transfer or swap.
func ByteBit(word uint32) bool {
	return word&(1<<22) != 0
}

// WritebackBit reports the W bit (bit 21) of a memory transfer.
func WritebackBit(word uint32) bool {
	return word&(1<<21) != 0
}

// LoadBit reports the L bit (bit 20): load when set, store when clear.
func LoadBit(word uint32) bool {
	return word&(1<<20) != 0
}

// RegisterList returns the 16-bit register list of a block transfer.
func RegisterList(word uint32) uint16 {
	return uint16(word)
}

// AccumulateBit reports the A bit (bit 21) of a multiply.
func AccumulateBit(word uint32) bool {
	return word&(1<<21) != 0
}

// SignedMultiplyBit reports the U bit (bit 22) of a long multiply, set
// for the signed variants.
func SignedMultiplyBit(word uint32) bool {
	return word&(1<<22) != 0
}

// ForceUserBit reports the S bit (bit 22) of a block transfer, set to
// transfer the User bank or, when an LDM loads the PC, to restore the
// CPSR from the saved status. Block transfers keep their flag-setting
// bit here because bit 20 is their load/store selector.
func ForceUserBit(word uint32) bool {
	return word&(1<<22) != 0
}

// HalfwordImmOffset reports bit 22 of a halfword transfer, set when the
// offset is the split 8-bit immediate rather than a register.
func HalfwordImmOffset(word uint32) bool {
	return word&(1<<22) != 0
}

// HalfwordOffset returns the split immediate offset of a halfword
// transfer: bits 11-8 form the high nibble, bits 3-0 the low nibble.
func HalfwordOffset(word uint32) uint32 {
	return (word>>4)&0xF0 | word&0xF
}

// TransferSH returns the SH field (bits 6-5) selecting the halfword or
// signed transfer variant.
func TransferSH(word uint32) uint8 {
	return uint8((word >> 5) & 0x3)
}

// SPSRBit reports bit 22 of a PSR transfer, set when the saved status
// register is the source or destination instead of the current one.
func SPSRBit(word uint32) bool {
	return word&(1<<22) != 0
}

// PSRFields returns the write-enable field mask of an MSR (bits 19-16,
// one bit per 8-bit quarter of the status word, flags field highest).
func PSRFields(word uint32) uint8 {
	return uint8((word >> 16) & 0xF)
}
