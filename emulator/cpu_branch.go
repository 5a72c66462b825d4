package emulator

// Branch and jump instruction semantics. Taking a branch or jump
// only ever assigns cpu.pc; the branch-delay-slot behaviour documented
// on CPU.branchTo and CPU.Tick follows automatically from when that
// assignment lands in the prefetch pipeline.

func (cpu *CPU) opBEQ(instr Instruction) {
	if cpu.Reg(instr.Rs()) == cpu.Reg(instr.Rt()) {
		cpu.branchTo(instr)
	}
}

func (cpu *CPU) opBNE(instr Instruction) {
	if cpu.Reg(instr.Rs()) != cpu.Reg(instr.Rt()) {
		cpu.branchTo(instr)
	}
}

func (cpu *CPU) opBGTZ(instr Instruction) {
	if int32(cpu.Reg(instr.Rs())) > 0 {
		cpu.branchTo(instr)
	}
}

func (cpu *CPU) opBLEZ(instr Instruction) {
	if int32(cpu.Reg(instr.Rs())) <= 0 {
		cpu.branchTo(instr)
	}
}

// opJ keeps the upper four bits of the jump instruction's own address
// and substitutes the shifted 26-bit target for the rest.
func (cpu *CPU) opJ(instr Instruction) {
	cpu.pc = (cpu.currentPC & 0xf0000000) | (instr.Address() << 2)
}

// opJAL behaves as opJ, additionally linking $31 to the return address —
// the instruction following the delay slot.
func (cpu *CPU) opJAL(instr Instruction) {
	cpu.opJ(instr)
	cpu.setReg(31, cpu.currentPC+8)
}

func (cpu *CPU) opJR(instr Instruction) {
	cpu.pc = cpu.Reg(instr.Rs())
}

func (cpu *CPU) opJALR(instr Instruction) {
	target := cpu.Reg(instr.Rs())
	cpu.setReg(instr.Rd(), cpu.currentPC+8)
	cpu.pc = target
}
