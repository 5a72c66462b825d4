package emulator

import "fmt"

// FaultKind names one of the fatal conditions documented in the error
// taxonomy: bus faults, decode faults, arithmetic traps, and unimplemented-
// peripheral faults all surface through the same CoreFault shape.
type FaultKind string

const (
	FaultUnalignedRead8   FaultKind = "Unaligned read8"
	FaultUnalignedRead16  FaultKind = "Unaligned read16"
	FaultUnalignedRead32  FaultKind = "Unaligned read32"
	FaultUnalignedWrite8  FaultKind = "Unaligned write8"
	FaultUnalignedWrite16 FaultKind = "Unaligned write16"
	FaultUnalignedWrite32 FaultKind = "Unaligned write32"

	FaultUnmappedRead8   FaultKind = "Unmapped address for read8"
	FaultUnmappedRead16  FaultKind = "Unmapped address for read16"
	FaultUnmappedRead32  FaultKind = "Unmapped address for read32"
	FaultUnmappedWrite8  FaultKind = "Unmapped address for write8"
	FaultUnmappedWrite16 FaultKind = "Unmapped address for write16"
	FaultUnmappedWrite32 FaultKind = "Unmapped address for write32"

	FaultUnhandledInstruction        FaultKind = "Unhandled instruction"
	FaultUnhandledInstructionSpecial FaultKind = "Unhandled instruction (SPECIAL)"
	FaultUnhandledInstructionCop0    FaultKind = "Unhandled instruction (COP0)"
	FaultUnhandledCop0Register       FaultKind = "Unhandled COP0 register (MTC0/MFC0)"

	FaultSignedOverflow FaultKind = "Signed overflow in ADD/ADDI"
	FaultDivideByZero   FaultKind = "Division by zero in DIV/DIVU"

	FaultBadExpansionBaseWrite FaultKind = "Bad Expansion N Base Address write"
	FaultInvalidBiosSize       FaultKind = "Invalid BIOS size"
)

// CoreFault is the single error type the CPU and bus raise. Every fault is
// fatal: once Tick returns one, the caller must not call Tick again.
type CoreFault struct {
	Kind FaultKind
	// Addr is the offending address for bus faults, or the raw instruction
	// word for decode faults. Value carries an accompanying data word
	// (e.g. the bad expansion-base value) when Kind needs one; zero
	// otherwise.
	Addr  uint32
	Value uint32
	// Detail overrides the plain "<kind>: 0x<hex>" rendering when a fault
	// needs to report more than one number (Bad Expansion N Base Address
	// write names which expansion base register was written in addition
	// to the bad value).
	Detail string
}

func (f *CoreFault) Error() string {
	if f.Detail != "" {
		return f.Detail
	}
	return fmt.Sprintf("%s: 0x%x", f.Kind, f.Addr)
}

func fault(kind FaultKind, addr uint32) *CoreFault {
	return &CoreFault{Kind: kind, Addr: addr}
}

func faultDetail(kind FaultKind, detail string) *CoreFault {
	return &CoreFault{Kind: kind, Detail: detail}
}

func unalignedFault(size AccessSize, addr uint32, write bool) *CoreFault {
	switch {
	case write && size == AccessByte:
		return fault(FaultUnalignedWrite8, addr)
	case write && size == AccessHalfword:
		return fault(FaultUnalignedWrite16, addr)
	case write && size == AccessWord:
		return fault(FaultUnalignedWrite32, addr)
	case !write && size == AccessByte:
		return fault(FaultUnalignedRead8, addr)
	case !write && size == AccessHalfword:
		return fault(FaultUnalignedRead16, addr)
	default:
		return fault(FaultUnalignedRead32, addr)
	}
}

func unmappedFault(size AccessSize, addr uint32, write bool) *CoreFault {
	switch {
	case write && size == AccessByte:
		return fault(FaultUnmappedWrite8, addr)
	case write && size == AccessHalfword:
		return fault(FaultUnmappedWrite16, addr)
	case write && size == AccessWord:
		return fault(FaultUnmappedWrite32, addr)
	case !write && size == AccessByte:
		return fault(FaultUnmappedRead8, addr)
	case !write && size == AccessHalfword:
		return fault(FaultUnmappedRead16, addr)
	default:
		return fault(FaultUnmappedRead32, addr)
	}
}
