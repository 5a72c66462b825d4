package emulator

// COP0 register indices. Only Status carries live semantics; Cause and
// the breakpoint/debug registers are never exercised by this core, so
// they accept only the value zero.
const (
	Cop0Bpc    = 3
	Cop0Bda    = 5
	Cop0Status = 12
	Cop0Cause  = 13
	Cop0Dcic   = 7
	Cop0Bdam   = 9
	Cop0Bpcm   = 11
)

// Cop0 is the System Control Coprocessor register file: seven named
// 32-bit registers.
type Cop0 struct {
	Status StatusRegister
	Cause  uint32
	Bpc    uint32
	Bda    uint32
	Dcic   uint32
	Bdam   uint32
	Bpcm   uint32
}

func NewCop0() *Cop0 {
	return &Cop0{}
}

// CacheIsolated reports whether the Isolate-Cache bit of Status is set.
func (cop *Cop0) CacheIsolated() bool {
	return cop.Status.CacheIsolated()
}

// MTC0 writes val to COP0 register rd. Status accepts any value. Cause and
// the five breakpoint registers (Bpc/Bda/Dcic/Bdam/Bpcm) accept only zero;
// a non-zero write to any of them is unimplemented and fatal. An
// unrecognized register index is also fatal.
func (cop *Cop0) MTC0(rd, val uint32) error {
	switch rd {
	case Cop0Status:
		cop.Status = StatusRegister(val)
		return nil
	case Cop0Cause:
		if val != 0 {
			return fault(FaultUnhandledCop0Register, rd)
		}
		cop.Cause = 0
		return nil
	case Cop0Bpc:
		if val != 0 {
			return fault(FaultUnhandledCop0Register, rd)
		}
		cop.Bpc = 0
		return nil
	case Cop0Bda:
		if val != 0 {
			return fault(FaultUnhandledCop0Register, rd)
		}
		cop.Bda = 0
		return nil
	case Cop0Dcic:
		if val != 0 {
			return fault(FaultUnhandledCop0Register, rd)
		}
		cop.Dcic = 0
		return nil
	case Cop0Bdam:
		if val != 0 {
			return fault(FaultUnhandledCop0Register, rd)
		}
		cop.Bdam = 0
		return nil
	case Cop0Bpcm:
		if val != 0 {
			return fault(FaultUnhandledCop0Register, rd)
		}
		cop.Bpcm = 0
		return nil
	default:
		return fault(FaultUnhandledCop0Register, rd)
	}
}

// MFC0 reads COP0 register rd. An unrecognized register index is fatal.
func (cop *Cop0) MFC0(rd uint32) (uint32, error) {
	switch rd {
	case Cop0Status:
		return uint32(cop.Status), nil
	case Cop0Cause:
		return cop.Cause, nil
	case Cop0Bpc:
		return cop.Bpc, nil
	case Cop0Bda:
		return cop.Bda, nil
	case Cop0Dcic:
		return cop.Dcic, nil
	case Cop0Bdam:
		return cop.Bdam, nil
	case Cop0Bpcm:
		return cop.Bpcm, nil
	default:
		return 0, fault(FaultUnhandledCop0Register, rd)
	}
}
