package emulator

// Divider semantics and the HI/LO move instructions. This core
// implements only DIV/DIVU — MULT/MULTU never appear on any BIOS path
// this core targets.

func (cpu *CPU) opDIV(instr Instruction) error {
	rs := int32(cpu.Reg(instr.Rs()))
	rt := int32(cpu.Reg(instr.Rt()))

	switch {
	case rt == 0:
		if rs < 0 {
			cpu.lo = 1
		} else {
			cpu.lo = 0xffffffff
		}
		cpu.hi = uint32(rs)
		return fault(FaultDivideByZero, uint32(instr))
	case rs == -0x80000000 && rt == -1:
		cpu.lo = 0x80000000
		cpu.hi = 0
	default:
		cpu.lo = uint32(rs / rt)
		cpu.hi = uint32(rs % rt)
	}
	return nil
}

func (cpu *CPU) opDIVU(instr Instruction) error {
	rs := cpu.Reg(instr.Rs())
	rt := cpu.Reg(instr.Rt())

	if rt == 0 {
		cpu.lo = 0xffffffff
		cpu.hi = rs
		return fault(FaultDivideByZero, uint32(instr))
	}
	cpu.lo = rs / rt
	cpu.hi = rs % rt
	return nil
}

func (cpu *CPU) opMFHI(instr Instruction) {
	cpu.setReg(instr.Rd(), cpu.hi)
}

func (cpu *CPU) opMFLO(instr Instruction) {
	cpu.setReg(instr.Rd(), cpu.lo)
}
