package emulator

// COP0 move instruction semantics.

func (cpu *CPU) opMTC0(instr Instruction) error {
	return cpu.cop0.MTC0(instr.Rd(), cpu.Reg(instr.Rt()))
}

// opMFC0 copies a COP0 register to a general-purpose register under the
// same load-delay discipline as LW/LB/LBU.
func (cpu *CPU) opMFC0(instr Instruction) error {
	val, err := cpu.cop0.MFC0(instr.Rd())
	if err != nil {
		return err
	}
	cpu.setRegDelayed(instr.Rt(), val)
	return nil
}
