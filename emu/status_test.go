package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/MarcoCallari/gba-mu/emu"
)

var _ = Describe("StatusFile", func() {
	var status *emu.StatusFile

	BeforeEach(func() {
		status = &emu.StatusFile{}
	})

	Describe("PSR fields", func() {
		It("should round-trip the mode field", func() {
			status.CPSR.SetMode(emu.ModeIRQ)
			Expect(status.CPSR.Mode()).To(Equal(emu.ModeIRQ))

			status.CPSR.SetMode(emu.ModeUser)
			Expect(status.CPSR.Mode()).To(Equal(emu.ModeUser))
		})

		It("should keep the flags independent of the control bits", func() {
			status.CPSR.SetMode(emu.ModeSupervisor)
			status.CPSR.SetIRQDisabled(true)
			status.CPSR.SetNZCV(true, false, true, false)

			Expect(status.CPSR.N()).To(BeTrue())
			Expect(status.CPSR.Z()).To(BeFalse())
			Expect(status.CPSR.C()).To(BeTrue())
			Expect(status.CPSR.V()).To(BeFalse())
			Expect(status.CPSR.Mode()).To(Equal(emu.ModeSupervisor))
			Expect(status.CPSR.IRQDisabled()).To(BeTrue())
		})

		It("should track the state bit", func() {
			Expect(status.CPSR.Thumb()).To(BeFalse())
			status.CPSR.SetThumb(true)
			Expect(status.CPSR.Thumb()).To(BeTrue())
		})

		It("should place each field at its architectural bit position", func() {
			status.CPSR = emu.PSR(0xF0000000)

			Expect(status.CPSR.N()).To(BeTrue())
			Expect(status.CPSR.Z()).To(BeTrue())
			Expect(status.CPSR.C()).To(BeTrue())
			Expect(status.CPSR.V()).To(BeTrue())
		})
	})

	Describe("Saved status registers", func() {
		It("should keep one saved copy per exception mode", func() {
			*status.Saved(emu.ModeIRQ) = emu.PSR(0x11)
			*status.Saved(emu.ModeSupervisor) = emu.PSR(0x22)
			*status.Saved(emu.ModeFIQ) = emu.PSR(0x33)

			Expect(*status.Saved(emu.ModeIRQ)).To(Equal(emu.PSR(0x11)))
			Expect(*status.Saved(emu.ModeSupervisor)).To(Equal(emu.PSR(0x22)))
			Expect(*status.Saved(emu.ModeFIQ)).To(Equal(emu.PSR(0x33)))
		})

		It("should alias User and System saved status to the CPSR", func() {
			status.CPSR = emu.PSR(0xAB)

			Expect(*status.Saved(emu.ModeUser)).To(Equal(emu.PSR(0xAB)))
			Expect(*status.Saved(emu.ModeSystem)).To(Equal(emu.PSR(0xAB)))
		})

		It("should restore the CPSR from the current mode's saved copy", func() {
			var old emu.PSR
			old.SetMode(emu.ModeUser)
			old.SetNZCV(false, true, false, false)

			status.CPSR.SetMode(emu.ModeIRQ)
			*status.Saved(emu.ModeIRQ) = old

			status.RestoreFromSaved()

			Expect(status.CPSR.Mode()).To(Equal(emu.ModeUser))
			Expect(status.CPSR.Z()).To(BeTrue())
		})
	})
})
