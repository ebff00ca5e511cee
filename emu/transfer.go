package emu

import (
	"math/bits"

	"github.com/MarcoCallari/gba-mu/insts"
)

// transferAddress applies pre-indexing to the base address.
func transferAddress(base, offset uint32, pre, up bool) uint32 {
	if !pre {
		return base
	}
	if up {
		return base + offset
	}
	return base - offset
}

// indexedBase is the base after the offset is applied, the value a
// post-indexed transfer or an enabled writeback leaves in the base
// register.
func indexedBase(base, offset uint32, up bool) uint32 {
	if up {
		return base + offset
	}
	return base - offset
}

// rotatedWord reproduces the bus behavior of a word load from a
// misaligned address: the aligned word rotated so the addressed byte
// lands in the low position.
func rotatedWord(v, addr uint32) uint32 {
	return ror32(v, 8*(addr&0x3))
}

// stepSingleTransfer executes LDR, LDRB, STR and STRB.
func (c *CPU) stepSingleTransfer(word uint32) StepResult {
	mode := c.mode()

	// For this class the immediate bit selects a register offset.
	var offset uint32
	if insts.ImmediateOperand(word) {
		offset = c.shifter.TransferOffset(word)
	} else {
		offset = insts.Imm12(word)
	}

	pre := insts.PreIndexBit(word)
	up := insts.UpBit(word)
	base := c.regFile.ReadOperand(mode, insts.Rn(word), 8)
	addr := transferAddress(base, offset, pre, up)

	rd := insts.Rd(word)
	load := insts.LoadBit(word)
	byteWide := insts.ByteBit(word)

	writeback := !pre || insts.WritebackBit(word)
	if writeback {
		c.regFile.Write(mode, insts.Rn(word), indexedBase(base, offset, up))
	}

	pcWritten := false
	if load {
		var v uint32
		if byteWide {
			v = uint32(c.bus.Read8(addr))
		} else {
			v = rotatedWord(c.bus.Read32(addr&^0x3), addr)
		}
		// A loaded value wins over a same-register writeback.
		c.regFile.Write(mode, rd, v)
		pcWritten = rd == RegPC
	} else {
		// A stored program counter reads ahead by twelve.
		v := c.regFile.ReadOperand(mode, rd, 12)
		if byteWide {
			c.bus.Write8(addr, uint8(v))
		} else {
			c.bus.Write32(addr&^0x3, v)
		}
	}

	cycles := c.cycles.SingleTransfer
	if pcWritten {
		c.setPC(c.regFile.Read(mode, RegPC))
		cycles += c.cycles.PCWrite
	} else {
		c.advancePC()
	}

	return StepResult{Cycles: cycles}
}

// stepHalfwordTransfer executes LDRH, STRH, LDRSB and LDRSH.
func (c *CPU) stepHalfwordTransfer(word uint32) StepResult {
	mode := c.mode()

	var offset uint32
	if insts.HalfwordImmOffset(word) {
		offset = insts.HalfwordOffset(word)
	} else {
		offset = c.regFile.ReadOperand(mode, insts.Rm(word), 8)
	}

	pre := insts.PreIndexBit(word)
	up := insts.UpBit(word)
	base := c.regFile.ReadOperand(mode, insts.Rn(word), 8)
	addr := transferAddress(base, offset, pre, up)

	rd := insts.Rd(word)
	load := insts.LoadBit(word)

	writeback := !pre || insts.WritebackBit(word)
	if writeback {
		c.regFile.Write(mode, insts.Rn(word), indexedBase(base, offset, up))
	}

	pcWritten := false
	if load {
		var v uint32
		switch insts.TransferSH(word) {
		case 0b01:
			v = uint32(c.bus.Read16(addr &^ 0x1))
		case 0b10:
			v = uint32(int32(int8(c.bus.Read8(addr))))
		case 0b11:
			v = uint32(int32(int16(c.bus.Read16(addr &^ 0x1))))
		}
		c.regFile.Write(mode, rd, v)
		pcWritten = rd == RegPC
	} else {
		v := c.regFile.ReadOperand(mode, rd, 12)
		c.bus.Write16(addr&^0x1, uint16(v))
	}

	cycles := c.cycles.HalfwordTransfer
	if pcWritten {
		c.setPC(c.regFile.Read(mode, RegPC))
		cycles += c.cycles.PCWrite
	} else {
		c.advancePC()
	}

	return StepResult{Cycles: cycles}
}

// stepBlockTransfer executes LDM and STM. The lowest-numbered register
// always occupies the lowest address in the block.
func (c *CPU) stepBlockTransfer(word uint32) StepResult {
	mode := c.mode()

	list := insts.RegisterList(word)
	count := uint32(bits.OnesCount16(list))

	pre := insts.PreIndexBit(word)
	up := insts.UpBit(word)
	base := c.regFile.Read(mode, insts.Rn(word))
	load := insts.LoadBit(word)
	pcInList := list&0x8000 != 0

	var start, final uint32
	if up {
		final = base + 4*count
		start = base
		if pre {
			start += 4
		}
	} else {
		final = base - 4*count
		start = final
		if !pre {
			start += 4
		}
	}

	// The S bit selects the User bank, except for an LDM that loads
	// the program counter, where it restores the saved status.
	userBank := insts.ForceUserBit(word) && !(load && pcInList)

	read := func(reg uint8) uint32 {
		if userBank {
			return c.regFile.ReadUser(reg)
		}
		return c.regFile.Read(mode, reg)
	}
	write := func(reg uint8, v uint32) {
		if userBank {
			c.regFile.WriteUser(reg, v)
			return
		}
		c.regFile.Write(mode, reg, v)
	}

	writeback := insts.WritebackBit(word)
	// An LDM including the base keeps the loaded value.
	if writeback && !(load && list&(1<<insts.Rn(word)) != 0) {
		c.regFile.Write(mode, insts.Rn(word), final)
	}

	addr := start
	for reg := uint8(0); reg < 16; reg++ {
		if list&(1<<reg) == 0 {
			continue
		}
		if load {
			write(reg, c.bus.Read32(addr&^0x3))
		} else {
			v := read(reg)
			if reg == RegPC {
				v = c.regFile.Read(mode, RegPC) + 12
			}
			c.bus.Write32(addr&^0x3, v)
		}
		addr += 4
	}

	cycles := c.cycles.BlockBase + uint64(count)*c.cycles.BlockPerRegister

	if load && pcInList {
		if insts.ForceUserBit(word) {
			c.status.RestoreFromSaved()
		}
		c.setPC(c.regFile.Read(c.mode(), RegPC))
		cycles += c.cycles.PCWrite
	} else {
		c.advancePC()
	}

	return StepResult{Cycles: cycles}
}

// stepSwap executes SWP and SWPB, an atomic read-then-write of one
// memory location.
func (c *CPU) stepSwap(word uint32) StepResult {
	mode := c.mode()

	addr := c.regFile.ReadOperand(mode, insts.Rn(word), 8)
	src := c.regFile.ReadOperand(mode, insts.Rm(word), 8)

	var loaded uint32
	if insts.ByteBit(word) {
		loaded = uint32(c.bus.Read8(addr))
		c.bus.Write8(addr, uint8(src))
	} else {
		loaded = rotatedWord(c.bus.Read32(addr&^0x3), addr)
		c.bus.Write32(addr&^0x3, src)
	}

	c.regFile.Write(mode, insts.Rd(word), loaded)

	c.advancePC()

	return StepResult{Cycles: c.cycles.Swap}
}
