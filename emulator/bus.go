package emulator

import "fmt"

// Logger is the single method this core needs from a logger, injected
// rather than reached for as a package-level singleton. *log.Logger
// satisfies it directly.
type Logger interface {
	Printf(format string, args ...interface{})
}

// PeripheralWrite is one entry in Bus's ordered log of writes to a
// peripheral stub: a region that accepts the access but has no
// modeled side effect.
type PeripheralWrite struct {
	Width AccessSize
	Addr  uint32
	Value uint32
}

// address ranges making up the physical map. Exactly one of these
// matches any legally-addressed access.
var (
	memControlRange  = NewRange(0x1f801000, 36)
	ramSizeRange     = NewRange(0x1f801060, 4)
	interruptRange   = NewRange(0x1f801070, 8)
	spuRange         = NewRange(0x1f801c00, 0x400)
	expansion2Range  = NewRange(0x1f802000, 0x1000)
	expansion1Range  = NewRange(0x1f000000, 0x800000)
	cacheControlRange = NewRange(0xfffe0130, 4)
	scratchpadRange  = NewRange(0x1f800000, ScratchpadSize)
	ramRange         = NewRange(0x00000000, RamSize)
	biosRange        = NewRange(0x1fc00000, BiosSize)
)

// Bus is the address map / MMU (component C3): region-mask address
// translation, range dispatch, peripheral stubs, and the alignment gate.
// It is the sole arbiter of the physical address space — the CPU never
// reaches RAM, the BIOS or a peripheral except through Bus.
type Bus struct {
	Bios       *BIOS
	Ram        *RAM
	Scratchpad *ScratchPad
	Irq        IrqController

	// CacheControl mirrors the 0xFFFE_0130 MMIO register. The instruction
	// cache reads this (via ICacheEnabled) every fetch; the base address
	// map otherwise treats the register as accept-and-ignore.
	CacheControl CacheControl

	log    Logger
	writes []PeripheralWrite
}

// NewBus wires a BIOS image into a fresh bus with fresh RAM and
// scratchpad. logger may be nil, in which case peripheral-stub writes are
// still recorded (see Writes) but nothing is printed.
func NewBus(bios *BIOS, logger Logger) *Bus {
	return &Bus{
		Bios:       bios,
		Ram:        NewRAM(),
		Scratchpad: NewScratchPad(),
		Irq:        NullIrqController{},
		log:        logger,
	}
}

// Writes returns the ordered log of peripheral-stub writes observed so
// far, for tests to assert against.
func (bus *Bus) Writes() []PeripheralWrite {
	return bus.writes
}

func (bus *Bus) recordWrite(width AccessSize, addr, value uint32) {
	bus.writes = append(bus.writes, PeripheralWrite{Width: width, Addr: addr, Value: value})
	if bus.log != nil {
		bus.log.Printf("bus: peripheral stub write width=%d addr=0x%08x value=0x%08x", width, addr, value)
	}
}

// regionMask translates a virtual address into its physical equivalent:
// KUSEG/KSEG0/KSEG1 (everything below 0xC000_0000) mirror the low 512
// MiB, KSEG2 passes through untouched.
func regionMask(addr uint32) uint32 {
	if addr >= 0xc0000000 {
		return addr
	}
	return addr & 0x1fffffff
}

// Load32 reads a 32-bit word at the given virtual address.
func (bus *Bus) Load32(addr uint32) (uint32, error) {
	if addr%4 != 0 {
		return 0, unalignedFault(AccessWord, addr, false)
	}
	phys := regionMask(addr)

	switch {
	case biosRange.Contains(phys):
		return bus.Bios.Load32(biosRange.Offset(phys)), nil
	case ramRange.Contains(phys):
		return bus.Ram.Load32(ramRange.Offset(phys)), nil
	case scratchpadRange.Contains(phys):
		return bus.Scratchpad.Load32(scratchpadRange.Offset(phys)), nil
	case interruptRange.Contains(phys):
		return 0, nil
	case ramSizeRange.Contains(phys):
		return 0, nil
	case cacheControlRange.Contains(phys):
		return uint32(bus.CacheControl), nil
	default:
		return 0, unmappedFault(AccessWord, addr, false)
	}
}

// Store32 writes a 32-bit word at the given virtual address.
func (bus *Bus) Store32(addr, val uint32) error {
	if addr%4 != 0 {
		return unalignedFault(AccessWord, addr, true)
	}
	phys := regionMask(addr)

	switch {
	case memControlRange.Contains(phys):
		return bus.storeMemControl(memControlRange.Offset(phys), val)
	case ramSizeRange.Contains(phys):
		bus.recordWrite(AccessWord, addr, val)
		return nil
	case cacheControlRange.Contains(phys):
		bus.CacheControl = CacheControl(val)
		bus.recordWrite(AccessWord, addr, val)
		return nil
	case interruptRange.Contains(phys):
		bus.recordWrite(AccessWord, addr, val)
		return nil
	case ramRange.Contains(phys):
		bus.Ram.Store32(ramRange.Offset(phys), val)
		return nil
	case scratchpadRange.Contains(phys):
		bus.Scratchpad.Store32(scratchpadRange.Offset(phys), val)
		return nil
	case spuRange.Contains(phys):
		bus.recordWrite(AccessWord, addr, val)
		return nil
	case expansion2Range.Contains(phys):
		bus.recordWrite(AccessWord, addr, val)
		return nil
	default:
		return unmappedFault(AccessWord, addr, true)
	}
}

func (bus *Bus) storeMemControl(offset, val uint32) error {
	switch offset {
	case 0:
		if val != 0x1f000000 {
			f := faultDetail(FaultBadExpansionBaseWrite, fmt.Sprintf("Bad Expansion 1 Base Address write: 0x%x", val))
			f.Addr, f.Value = memControlRange.Start+offset, val
			return f
		}
		return nil
	case 4:
		if val != 0x1f802000 {
			f := faultDetail(FaultBadExpansionBaseWrite, fmt.Sprintf("Bad Expansion 2 Base Address write: 0x%x", val))
			f.Addr, f.Value = memControlRange.Start+offset, val
			return f
		}
		return nil
	default:
		bus.recordWrite(AccessWord, memControlRange.Start+offset, val)
		return nil
	}
}

// Load16 reads a 16-bit halfword at the given virtual address.
func (bus *Bus) Load16(addr uint32) (uint16, error) {
	if addr%2 != 0 {
		return 0, unalignedFault(AccessHalfword, addr, false)
	}
	phys := regionMask(addr)

	switch {
	case ramRange.Contains(phys):
		return bus.Ram.Load16(ramRange.Offset(phys)), nil
	case scratchpadRange.Contains(phys):
		return bus.Scratchpad.Load16(scratchpadRange.Offset(phys)), nil
	case spuRange.Contains(phys):
		return 0, nil
	default:
		return 0, unmappedFault(AccessHalfword, addr, false)
	}
}

// Store16 writes a 16-bit halfword at the given virtual address.
func (bus *Bus) Store16(addr uint32, val uint16) error {
	if addr%2 != 0 {
		return unalignedFault(AccessHalfword, addr, true)
	}
	phys := regionMask(addr)

	switch {
	case ramRange.Contains(phys):
		bus.Ram.Store16(ramRange.Offset(phys), val)
		return nil
	case scratchpadRange.Contains(phys):
		bus.Scratchpad.Store16(scratchpadRange.Offset(phys), val)
		return nil
	case spuRange.Contains(phys):
		bus.recordWrite(AccessHalfword, addr, uint32(val))
		return nil
	default:
		return unmappedFault(AccessHalfword, addr, true)
	}
}

// Load8 reads a single byte at the given virtual address. 8-bit accesses
// have no alignment constraint.
func (bus *Bus) Load8(addr uint32) (byte, error) {
	phys := regionMask(addr)

	switch {
	case biosRange.Contains(phys):
		return bus.Bios.Load8(biosRange.Offset(phys)), nil
	case ramRange.Contains(phys):
		return bus.Ram.Load8(ramRange.Offset(phys)), nil
	case scratchpadRange.Contains(phys):
		return bus.Scratchpad.Load8(scratchpadRange.Offset(phys)), nil
	case expansion1Range.Contains(phys):
		return 0xff, nil
	default:
		return 0, unmappedFault(AccessByte, addr, false)
	}
}

// Store8 writes a single byte at the given virtual address.
func (bus *Bus) Store8(addr uint32, val byte) error {
	phys := regionMask(addr)

	switch {
	case ramRange.Contains(phys):
		bus.Ram.Store8(ramRange.Offset(phys), val)
		return nil
	case scratchpadRange.Contains(phys):
		bus.Scratchpad.Store8(scratchpadRange.Offset(phys), val)
		return nil
	case expansion2Range.Contains(phys):
		bus.recordWrite(AccessByte, addr, uint32(val))
		return nil
	default:
		return unmappedFault(AccessByte, addr, true)
	}
}
