package emulator

// CPU is the MIPS R3000A interpreter core (component C6): the register
// file, program counter, prefetch pair, HI/LO latches and COP0 file,
// plus the fetch/decode/dispatch loop that drives them. The CPU reaches
// memory only through its Bus; nothing here touches RAM or the BIOS
// directly.
type CPU struct {
	regs [32]uint32
	hi   uint32
	lo   uint32

	cop0      *Cop0
	bus       *Bus
	icache    *ICache
	loadQueue *LoadQueue

	// pc is the address of the word this core will fetch next — the
	// literal "PC" register. At any instant it runs two
	// instructions ahead of the one currently dispatching, because that
	// instruction's own word, and its delay slot's word, were both
	// fetched on earlier ticks.
	pc uint32

	// pending/pendingPC is the one-instruction prefetch buffer: the word
	// already fetched but not yet dispatched, and the address it came
	// from. primed is false only before the very first Tick call, when
	// there is nothing in pending yet.
	pending   Instruction
	pendingPC uint32
	primed    bool

	// currentPC is the address of the instruction presently dispatching,
	// valid only during that dispatch. Branch/jump handlers read it to
	// compute targets and return addresses.
	currentPC uint32

	// debugger is consulted on every dispatch and memory access once
	// attached; nil (the default) costs one nil check per Tick.
	debugger *Debugger
}

// AttachDebugger wires a Debugger into the fetch/dispatch loop and every
// load/store so its breakpoints and watchpoints actually fire. Pass nil to
// detach.
func (cpu *CPU) AttachDebugger(d *Debugger) {
	cpu.debugger = d
}

// NewCPU returns a CPU reset to the PSX BIOS entry point, wired to bus.
func NewCPU(bus *Bus) *CPU {
	cpu := &CPU{
		pc:        0xbfc00000,
		bus:       bus,
		cop0:      NewCop0(),
		icache:    NewICache(),
		loadQueue: NewLoadQueue(),
		hi:        0xdeaddeed,
		lo:        0xdeaddeed,
	}
	for i := range cpu.regs {
		cpu.regs[i] = uint32(i)
	}
	return cpu
}

// PC returns the address of the word this core will fetch next.
func (cpu *CPU) PC() uint32 {
	return cpu.pc
}

// Reg returns the committed value of general-purpose register i. It
// never observes a write still sitting in the load queue.
func (cpu *CPU) Reg(i uint32) uint32 {
	return cpu.regs[i]
}

// Cop0 exposes the COP0 register file for tests and debugging.
func (cpu *CPU) Cop0() *Cop0 {
	return cpu.cop0
}

// HiLo returns the current HI/LO latch values.
func (cpu *CPU) HiLo() (hi, lo uint32) {
	return cpu.hi, cpu.lo
}

// ICache exposes the instruction cache for diagnostics (hit/miss counts).
// Its enable bit is not set through here: it is read from the bus's
// cache-control register on every fetch.
func (cpu *CPU) ICache() *ICache {
	return cpu.icache
}

// setReg enqueues an ordinary register write, committed at the end of
// this tick.
func (cpu *CPU) setReg(reg, val uint32) {
	cpu.loadQueue.Enqueue(reg, val, 0)
}

// setRegDelayed enqueues a load-delayed register write: not visible to
// the very next instruction (the load-delay slot), only the one after.
// Used by LW/LB/LBU and MFC0.
func (cpu *CPU) setRegDelayed(reg, val uint32) {
	cpu.loadQueue.Enqueue(reg, val, 1)
}

// fetchInstruction reads the instruction word at the given virtual
// address, through the instruction cache.
func (cpu *CPU) fetchInstruction(vaddr uint32) (Instruction, error) {
	if vaddr%4 != 0 {
		return 0, unalignedFault(AccessWord, vaddr, false)
	}
	phys := regionMask(vaddr)
	return cpu.icache.Fetch(phys, cpu.bus.CacheControl.ICacheEnabled(), cpu.bus.Load32)
}

// Tick retires exactly one instruction: prefetch+fetch, decode,
// dispatch, then advance the load queue.
// Once Tick returns a non-nil error the core has faulted; the caller
// must not call Tick again.
func (cpu *CPU) Tick() error {
	if !cpu.primed {
		word, err := cpu.fetchInstruction(cpu.pc)
		if err != nil {
			return err
		}
		cpu.pending, cpu.pendingPC = word, cpu.pc
		cpu.pc += 4
		cpu.primed = true
	}

	current, currentPC := cpu.pending, cpu.pendingPC

	word, err := cpu.fetchInstruction(cpu.pc)
	if err != nil {
		return err
	}
	cpu.pending, cpu.pendingPC = word, cpu.pc
	cpu.pc += 4

	cpu.currentPC = currentPC
	if cpu.debugger != nil {
		cpu.debugger.changedPc(currentPC)
	}
	if err := cpu.dispatch(current); err != nil {
		return err
	}

	cpu.loadQueue.Advance(&cpu.regs)
	return nil
}

// dispatch is the primary two-level opcode dispatch: SPECIAL and
// REGIMM fan out further below; the coprocessor groups fan out on rs.
func (cpu *CPU) dispatch(instr Instruction) error {
	switch instr.Opcode() {
	case 0b000000:
		return cpu.special(instr)
	case 0b000001:
		return cpu.regimm(instr)
	case 0b000010:
		cpu.opJ(instr)
	case 0b000011:
		cpu.opJAL(instr)
	case 0b000100:
		cpu.opBEQ(instr)
	case 0b000101:
		cpu.opBNE(instr)
	case 0b000110:
		cpu.opBLEZ(instr)
	case 0b000111:
		cpu.opBGTZ(instr)
	case 0b001000:
		return cpu.opADDI(instr)
	case 0b001001:
		cpu.opADDIU(instr)
	case 0b001010:
		cpu.opSLTI(instr)
	case 0b001011:
		cpu.opSLTIU(instr)
	case 0b001100:
		cpu.opANDI(instr)
	case 0b001101:
		cpu.opORI(instr)
	case 0b001111:
		cpu.opLUI(instr)
	case 0b010000:
		return cpu.cop0Dispatch(instr)
	case 0b010001, 0b010010, 0b010011:
		// COP1/COP2(GTE)/COP3: unimplemented coprocessor groups.
		return fault(FaultUnhandledInstruction, uint32(instr))
	case 0b100000:
		return cpu.opLB(instr)
	case 0b100011:
		return cpu.opLW(instr)
	case 0b100100:
		return cpu.opLBU(instr)
	case 0b101000:
		return cpu.opSB(instr)
	case 0b101001:
		return cpu.opSH(instr)
	case 0b101011:
		return cpu.opSW(instr)
	default:
		return fault(FaultUnhandledInstruction, uint32(instr))
	}
	return nil
}

// special dispatches the SPECIAL primary opcode (0) on funct.
func (cpu *CPU) special(instr Instruction) error {
	switch instr.Funct() {
	case 0b000000:
		cpu.opSLL(instr)
	case 0b000010:
		cpu.opSRL(instr)
	case 0b000011:
		cpu.opSRA(instr)
	case 0b001000:
		cpu.opJR(instr)
	case 0b001001:
		cpu.opJALR(instr)
	case 0b010000:
		cpu.opMFHI(instr)
	case 0b010010:
		cpu.opMFLO(instr)
	case 0b011010:
		return cpu.opDIV(instr)
	case 0b011011:
		return cpu.opDIVU(instr)
	case 0b100000:
		return cpu.opADD(instr)
	case 0b100001:
		cpu.opADDU(instr)
	case 0b100011:
		cpu.opSUBU(instr)
	case 0b100100:
		cpu.opAND(instr)
	case 0b100101:
		cpu.opOR(instr)
	case 0b101010:
		cpu.opSLT(instr)
	case 0b101011:
		cpu.opSLTU(instr)
	default:
		return fault(FaultUnhandledInstructionSpecial, uint32(instr))
	}
	return nil
}

// regimm dispatches the REGIMM primary opcode (1) on the condition and
// link bits decoded by Instruction: bit 16 selects LTZ/GEZ, bit 20
// selects link.
func (cpu *CPU) regimm(instr Instruction) error {
	rsv := int32(cpu.Reg(instr.Rs()))

	var taken bool
	if instr.RegimmIsGEZ() {
		taken = rsv >= 0
	} else {
		taken = rsv < 0
	}

	if instr.RegimmLink() {
		cpu.setReg(31, cpu.currentPC+8)
	}
	if taken {
		cpu.branchTo(instr)
	}
	return nil
}

// cop0Dispatch dispatches the COP0 primary opcode (0b010000) on rs.
func (cpu *CPU) cop0Dispatch(instr Instruction) error {
	switch instr.Rs() {
	case 0b00000:
		return cpu.opMFC0(instr)
	case 0b00100:
		return cpu.opMTC0(instr)
	default:
		return fault(FaultUnhandledInstructionCop0, uint32(instr))
	}
}

// branchTo redirects the fetch pipeline to a branch/jump target computed
// from the instruction dispatching right now. Because cpu.pc has already
// been advanced twice past currentPC by the time this runs (once for
// currentPC's own prefetch, once for this tick's), overwriting it here
// only changes what the next tick fetches, so the target dispatches two
// ticks from now — the already-fetched delay-slot instruction is
// unaffected and dispatches in between. The target adds
// to the address of the delay slot (currentPC+4), not past it.
func (cpu *CPU) branchTo(instr Instruction) {
	cpu.pc = cpu.currentPC + 4 + (instr.ImmSigned() << 2)
}
