package emulator

// Load and store instruction semantics. Every effective address
// is rs + sign-extended(imm).

func (cpu *CPU) effectiveAddr(instr Instruction) uint32 {
	return cpu.Reg(instr.Rs()) + instr.ImmSigned()
}

func (cpu *CPU) opLW(instr Instruction) error {
	addr := cpu.effectiveAddr(instr)
	cpu.watchRead(addr, instr.Rt())
	val, err := cpu.bus.Load32(addr)
	if err != nil {
		return err
	}
	cpu.setRegDelayed(instr.Rt(), val)
	return nil
}

func (cpu *CPU) opLB(instr Instruction) error {
	addr := cpu.effectiveAddr(instr)
	cpu.watchRead(addr, instr.Rt())
	val, err := cpu.bus.Load8(addr)
	if err != nil {
		return err
	}
	cpu.setRegDelayed(instr.Rt(), uint32(int32(int8(val))))
	return nil
}

func (cpu *CPU) opLBU(instr Instruction) error {
	addr := cpu.effectiveAddr(instr)
	cpu.watchRead(addr, instr.Rt())
	val, err := cpu.bus.Load8(addr)
	if err != nil {
		return err
	}
	cpu.setRegDelayed(instr.Rt(), uint32(val))
	return nil
}

// opSW, opSH and opSB all silently drop the store when COP0 status bit
// 16 (Isolate-Cache) is set, instead of forwarding it to the bus — the
// cache acts as a write-only buffer the BIOS uses to initialize it
// without touching real memory.

func (cpu *CPU) opSW(instr Instruction) error {
	addr := cpu.effectiveAddr(instr)
	cpu.watchWrite(addr, instr.Rt())
	if cpu.cop0.CacheIsolated() {
		return nil
	}
	return cpu.bus.Store32(addr, cpu.Reg(instr.Rt()))
}

func (cpu *CPU) opSH(instr Instruction) error {
	addr := cpu.effectiveAddr(instr)
	cpu.watchWrite(addr, instr.Rt())
	if cpu.cop0.CacheIsolated() {
		return nil
	}
	return cpu.bus.Store16(addr, uint16(cpu.Reg(instr.Rt())))
}

func (cpu *CPU) opSB(instr Instruction) error {
	addr := cpu.effectiveAddr(instr)
	cpu.watchWrite(addr, instr.Rt())
	if cpu.cop0.CacheIsolated() {
		return nil
	}
	return cpu.bus.Store8(addr, byte(cpu.Reg(instr.Rt())))
}

func (cpu *CPU) watchRead(addr, reg uint32) {
	if cpu.debugger != nil {
		cpu.debugger.memoryRead(addr, reg)
	}
}

func (cpu *CPU) watchWrite(addr, reg uint32) {
	if cpu.debugger != nil {
		cpu.debugger.memoryWrite(addr, reg)
	}
}
