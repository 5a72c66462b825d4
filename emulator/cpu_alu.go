package emulator

// Arithmetic, logical, immediate and shift instruction semantics.
// All arithmetic is 32-bit modulo 2^32 unless a case documents otherwise.

func (cpu *CPU) opADD(instr Instruction) error {
	rs := int32(cpu.Reg(instr.Rs()))
	rt := int32(cpu.Reg(instr.Rt()))
	if addOverflows(rs, rt) {
		return fault(FaultSignedOverflow, uint32(instr))
	}
	cpu.setReg(instr.Rd(), uint32(rs+rt))
	return nil
}

func (cpu *CPU) opADDU(instr Instruction) {
	cpu.setReg(instr.Rd(), cpu.Reg(instr.Rs())+cpu.Reg(instr.Rt()))
}

func (cpu *CPU) opSUBU(instr Instruction) {
	cpu.setReg(instr.Rd(), cpu.Reg(instr.Rs())-cpu.Reg(instr.Rt()))
}

func (cpu *CPU) opAND(instr Instruction) {
	cpu.setReg(instr.Rd(), cpu.Reg(instr.Rs())&cpu.Reg(instr.Rt()))
}

func (cpu *CPU) opOR(instr Instruction) {
	cpu.setReg(instr.Rd(), cpu.Reg(instr.Rs())|cpu.Reg(instr.Rt()))
}

func (cpu *CPU) opSLT(instr Instruction) {
	rs := int32(cpu.Reg(instr.Rs()))
	rt := int32(cpu.Reg(instr.Rt()))
	cpu.setReg(instr.Rd(), oneIfTrue(rs < rt))
}

func (cpu *CPU) opSLTU(instr Instruction) {
	cpu.setReg(instr.Rd(), oneIfTrue(cpu.Reg(instr.Rs()) < cpu.Reg(instr.Rt())))
}

func (cpu *CPU) opADDI(instr Instruction) error {
	rs := int32(cpu.Reg(instr.Rs()))
	imm := int32(instr.ImmSigned())
	if addOverflows(rs, imm) {
		return fault(FaultSignedOverflow, uint32(instr))
	}
	cpu.setReg(instr.Rt(), uint32(rs+imm))
	return nil
}

// opADDIU wraps: the "U" is a misnomer, the immediate is still
// sign-extended, only the overflow trap is dropped.
func (cpu *CPU) opADDIU(instr Instruction) {
	cpu.setReg(instr.Rt(), cpu.Reg(instr.Rs())+instr.ImmSigned())
}

func (cpu *CPU) opANDI(instr Instruction) {
	cpu.setReg(instr.Rt(), cpu.Reg(instr.Rs())&instr.Imm())
}

func (cpu *CPU) opORI(instr Instruction) {
	cpu.setReg(instr.Rt(), cpu.Reg(instr.Rs())|instr.Imm())
}

func (cpu *CPU) opLUI(instr Instruction) {
	cpu.setReg(instr.Rt(), instr.Imm()<<16)
}

func (cpu *CPU) opSLTI(instr Instruction) {
	rs := int32(cpu.Reg(instr.Rs()))
	imm := int32(instr.ImmSigned())
	cpu.setReg(instr.Rt(), oneIfTrue(rs < imm))
}

// opSLTIU compares unsigned, but the immediate is still sign-extended
// first, per architecture.
func (cpu *CPU) opSLTIU(instr Instruction) {
	cpu.setReg(instr.Rt(), oneIfTrue(cpu.Reg(instr.Rs()) < instr.ImmSigned()))
}

func (cpu *CPU) opSLL(instr Instruction) {
	cpu.setReg(instr.Rd(), cpu.Reg(instr.Rt())<<instr.Shamt())
}

func (cpu *CPU) opSRL(instr Instruction) {
	cpu.setReg(instr.Rd(), cpu.Reg(instr.Rt())>>instr.Shamt())
}

func (cpu *CPU) opSRA(instr Instruction) {
	v := int32(cpu.Reg(instr.Rt()))
	cpu.setReg(instr.Rd(), uint32(v>>instr.Shamt()))
}
