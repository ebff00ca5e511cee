// Package emu provides functional ARM7TDMI (ARM-state) emulation.
package emu

// Mode is a processor privilege mode, the 5-bit mode field of a PSR.
type Mode uint8

// ARM7TDMI processor modes.
const (
	ModeUser       Mode = 0b10000
	ModeFIQ        Mode = 0b10001
	ModeIRQ        Mode = 0b10010
	ModeSupervisor Mode = 0b10011
	ModeAbort      Mode = 0b10111
	ModeUndefined  Mode = 0b11011
	ModeSystem     Mode = 0b11111
)

// String returns the conventional short name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeUser:
		return "usr"
	case ModeFIQ:
		return "fiq"
	case ModeIRQ:
		return "irq"
	case ModeSupervisor:
		return "svc"
	case ModeAbort:
		return "abt"
	case ModeUndefined:
		return "und"
	case ModeSystem:
		return "sys"
	default:
		return "invalid"
	}
}

// PSR bit assignments.
const (
	psrModeMask uint32 = 0x1F
	psrT        uint32 = 1 << 5  // state bit, 0=ARM 1=Thumb
	psrF        uint32 = 1 << 6  // FIQ disable
	psrI        uint32 = 1 << 7  // IRQ disable
	psrV        uint32 = 1 << 28 // overflow
	psrC        uint32 = 1 << 29 // carry / no borrow
	psrZ        uint32 = 1 << 30 // zero
	psrN        uint32 = 1 << 31 // sign
)

// PSR is a program status register held as a plain word. All field
// access goes through the named-bit accessors below so behaviour never
// depends on a host compiler's struct layout.
type PSR uint32

// Mode returns the mode field.
func (p PSR) Mode() Mode {
	return Mode(uint32(p) & psrModeMask)
}

// SetMode replaces the mode field.
func (p *PSR) SetMode(m Mode) {
	*p = PSR(uint32(*p)&^psrModeMask | uint32(m)&psrModeMask)
}

// Thumb reports the state bit. This core only executes ARM state; the
// bit is tracked so a BX into Thumb state is observable.
func (p PSR) Thumb() bool { return uint32(p)&psrT != 0 }

// IRQDisabled reports the I bit.
func (p PSR) IRQDisabled() bool { return uint32(p)&psrI != 0 }

// FIQDisabled reports the F bit.
func (p PSR) FIQDisabled() bool { return uint32(p)&psrF != 0 }

// N reports the sign flag.
func (p PSR) N() bool { return uint32(p)&psrN != 0 }

// Z reports the zero flag.
func (p PSR) Z() bool { return uint32(p)&psrZ != 0 }

// C reports the carry flag.
func (p PSR) C() bool { return uint32(p)&psrC != 0 }

// V reports the overflow flag.
func (p PSR) V() bool { return uint32(p)&psrV != 0 }

func (p *PSR) setBit(bit uint32, v bool) {
	if v {
		*p = PSR(uint32(*p) | bit)
	} else {
		*p = PSR(uint32(*p) &^ bit)
	}
}

// SetThumb sets or clears the state bit.
func (p *PSR) SetThumb(v bool) { p.setBit(psrT, v) }

// SetIRQDisabled sets or clears the I bit.
func (p *PSR) SetIRQDisabled(v bool) { p.setBit(psrI, v) }

// SetFIQDisabled sets or clears the F bit.
func (p *PSR) SetFIQDisabled(v bool) { p.setBit(psrF, v) }

// SetN sets or clears the sign flag.
func (p *PSR) SetN(v bool) { p.setBit(psrN, v) }

// SetZ sets or clears the zero flag.
func (p *PSR) SetZ(v bool) { p.setBit(psrZ, v) }

// SetC sets or clears the carry flag.
func (p *PSR) SetC(v bool) { p.setBit(psrC, v) }

// SetV sets or clears the overflow flag.
func (p *PSR) SetV(v bool) { p.setBit(psrV, v) }

// SetNZCV replaces all four condition flags at once.
func (p *PSR) SetNZCV(n, z, c, v bool) {
	p.SetN(n)
	p.SetZ(z)
	p.SetC(c)
	p.SetV(v)
}

// spsrSlot maps a mode to its saved-status slot, or -1 for modes that
// have no saved copy.
func spsrSlot(m Mode) int {
	switch m {
	case ModeFIQ:
		return 0
	case ModeIRQ:
		return 1
	case ModeSupervisor:
		return 2
	case ModeAbort:
		return 3
	case ModeUndefined:
		return 4
	default:
		return -1
	}
}

// StatusFile holds the current program status register and the five
// saved copies, one per privileged exception mode.
type StatusFile struct {
	CPSR PSR

	spsr [5]PSR
}

// Saved returns the saved status register for mode. User and System
// mode have no saved copy; reading their saved status yields the CPSR
// itself, as the hardware does.
func (s *StatusFile) Saved(m Mode) *PSR {
	slot := spsrSlot(m)
	if slot < 0 {
		return &s.CPSR
	}
	return &s.spsr[slot]
}

// RestoreFromSaved copies the saved status of the current mode into the
// CPSR, which may itself change the mode field. This is the implicit
// return-from-exception idiom triggered by a flag-setting write to the
// program counter.
func (s *StatusFile) RestoreFromSaved() {
	s.CPSR = *s.Saved(s.CPSR.Mode())
}
