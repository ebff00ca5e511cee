package emu

import "github.com/MarcoCallari/gba-mu/insts"

// CondPasses reports whether an instruction with the given condition
// code executes under the flags in psr. The reserved 0b1111 encoding
// never executes.
func CondPasses(cond insts.Cond, psr PSR) bool {
	switch cond {
	case insts.CondEQ:
		return psr.Z()
	case insts.CondNE:
		return !psr.Z()
	case insts.CondCS:
		return psr.C()
	case insts.CondCC:
		return !psr.C()
	case insts.CondMI:
		return psr.N()
	case insts.CondPL:
		return !psr.N()
	case insts.CondVS:
		return psr.V()
	case insts.CondVC:
		return !psr.V()
	case insts.CondHI:
		return psr.C() && !psr.Z()
	case insts.CondLS:
		return !psr.C() || psr.Z()
	case insts.CondGE:
		return psr.N() == psr.V()
	case insts.CondLT:
		return psr.N() != psr.V()
	case insts.CondGT:
		return !psr.Z() && psr.N() == psr.V()
	case insts.CondLE:
		return psr.Z() || psr.N() != psr.V()
	case insts.CondAL:
		return true
	default: // CondNV
		return false
	}
}
