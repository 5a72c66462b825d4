package emulator

// Instruction encoders used only by tests, matching the CPU's bit layout for R/I/J-type words.

func encodeR(opcode, rs, rt, rd, shamt, funct uint32) uint32 {
	return (opcode << 26) | (rs << 21) | (rt << 16) | (rd << 11) | (shamt << 6) | funct
}

func encodeI(opcode, rs, rt, imm uint32) uint32 {
	return (opcode << 26) | (rs << 21) | (rt << 16) | (imm & 0xffff)
}

func encodeJ(opcode, target uint32) uint32 {
	return (opcode << 26) | (target & 0x3ffffff)
}

const (
	opSPECIAL = 0
	opREGIMM  = 1
	opJ       = 2
	opJAL     = 3
	opBEQ     = 4
	opBNE     = 5
	opBLEZ    = 6
	opBGTZ    = 7
	opADDI    = 8
	opADDIU   = 9
	opSLTI    = 10
	opSLTIU   = 11
	opANDI    = 12
	opORI     = 13
	opLUI     = 15
	opCOP0    = 16
	opLB      = 32
	opLW      = 35
	opLBU     = 36
	opSB      = 40
	opSH      = 41
	opSW      = 43
)

const (
	fnSLL  = 0
	fnSRL  = 2
	fnSRA  = 3
	fnJR   = 8
	fnJALR = 9
	fnMFHI = 16
	fnMFLO = 18
	fnDIV  = 26
	fnDIVU = 27
	fnADD  = 32
	fnADDU = 33
	fnSUBU = 35
	fnAND  = 36
	fnOR   = 37
	fnSLT  = 42
	fnSLTU = 43
)

const (
	cop0MFC0 = 0
	cop0MTC0 = 4
)

// newTestCPU builds a CPU whose BIOS image (and therefore its reset
// fetch stream starting at 0xBFC00000) holds words verbatim at offset 0.
// Unfilled words decode as SLL $0,$0,0 (the all-zero word), an
// unconditional no-op.
func newTestCPU(words []uint32) *CPU {
	bios := &BIOS{}
	for i, w := range words {
		off := i * 4
		bios.data[off+0] = byte(w)
		bios.data[off+1] = byte(w >> 8)
		bios.data[off+2] = byte(w >> 16)
		bios.data[off+3] = byte(w >> 24)
	}
	bus := NewBus(bios, nil)
	return NewCPU(bus)
}

// tickN runs n ticks, stopping at and returning the first fault.
func tickN(cpu *CPU, n int) error {
	for i := 0; i < n; i++ {
		if err := cpu.Tick(); err != nil {
			return err
		}
	}
	return nil
}
