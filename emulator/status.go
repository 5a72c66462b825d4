package emulator

// StatusRegister is COP0 register 12. Only the Isolate-Cache bit (16)
// carries live semantics in this core; the rest of the bits are stored
// and returned verbatim but have no observable effect (full exception
// delivery, and therefore the interrupt-enable/kernel-mode stack these
// other bits would drive, is an explicit non-goal).
type StatusRegister uint32

// CacheIsolated reports whether bit 16 (Isolate-Cache) is set. While set,
// CPU stores are swallowed before they reach the bus.
func (sr StatusRegister) CacheIsolated() bool {
	return uint32(sr)&0x10000 != 0
}
