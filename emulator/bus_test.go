package emulator

import "testing"

func newTestBus() *Bus {
	return NewBus(&BIOS{}, nil)
}

func TestRamRoundTrip32(t *testing.T) {
	bus := newTestBus()
	if err := bus.Store32(0x100, 0xdeadbeef); err != nil {
		t.Fatalf("Store32: %s", err)
	}
	v, err := bus.Load32(0x100)
	if err != nil {
		t.Fatalf("Load32: %s", err)
	}
	if v != 0xdeadbeef {
		t.Errorf("Load32 = 0x%x, want 0xdeadbeef", v)
	}
}

func TestRamRoundTrip16(t *testing.T) {
	bus := newTestBus()
	if err := bus.Store16(0x100, 0xbeef); err != nil {
		t.Fatalf("Store16: %s", err)
	}
	v, err := bus.Load16(0x100)
	if err != nil {
		t.Fatalf("Load16: %s", err)
	}
	if v != 0xbeef {
		t.Errorf("Load16 = 0x%x, want 0xbeef", v)
	}
}

func TestRamRoundTrip8(t *testing.T) {
	bus := newTestBus()
	if err := bus.Store8(0x100, 0xab); err != nil {
		t.Fatalf("Store8: %s", err)
	}
	v, err := bus.Load8(0x100)
	if err != nil {
		t.Fatalf("Load8: %s", err)
	}
	if v != 0xab {
		t.Errorf("Load8 = 0x%x, want 0xab", v)
	}
}

// TestRegionMirroring exercises the mirroring property: a store through
// one KUSEG/KSEG0/KSEG1 mirror must be visible through the others.
func TestRegionMirroring(t *testing.T) {
	bus := newTestBus()
	const a = 0x200

	if err := bus.Store32(a, 0x01020304); err != nil {
		t.Fatalf("Store32: %s", err)
	}

	mirrors := []uint32{a, a | 0x80000000, a | 0xa0000000}
	for _, mirror := range mirrors {
		v, err := bus.Load32(mirror)
		if err != nil {
			t.Fatalf("Load32(0x%x): %s", mirror, err)
		}
		if v != 0x01020304 {
			t.Errorf("Load32(0x%x) = 0x%x, want 0x01020304", mirror, v)
		}
	}
}

func TestUnalignedAccessIsFatal(t *testing.T) {
	bus := newTestBus()

	if _, err := bus.Load32(0x101); err == nil {
		t.Error("Load32 at an unaligned address should fault")
	}
	if err := bus.Store32(0x101, 0); err == nil {
		t.Error("Store32 at an unaligned address should fault")
	}
	if _, err := bus.Load16(0x101); err == nil {
		t.Error("Load16 at an unaligned address should fault")
	}
}

func TestUnmappedAccessIsFatal(t *testing.T) {
	bus := newTestBus()
	if _, err := bus.Load32(0x1f801080); err == nil {
		t.Error("Load32 at an unmapped address should fault")
	}
}

func TestCacheIsolationDropsRamStore(t *testing.T) {
	bus := newTestBus()
	bus.Ram.Store32(0, 0xcacacaca)

	// simulates what CPU.opSW does when COP0 status bit 16 is set: the
	// store never reaches Bus at all.
	v, err := bus.Load32(0)
	if err != nil {
		t.Fatalf("Load32: %s", err)
	}
	if v != 0xcacacaca {
		t.Errorf("Load32 = 0x%x, want the untouched init pattern 0xcacacaca", v)
	}
}

func TestPeripheralStubWritesAreLogged(t *testing.T) {
	bus := newTestBus()

	if err := bus.Store32(0x1f801c00, 0x1); err != nil { // SPU
		t.Fatalf("Store32: %s", err)
	}
	if err := bus.Store32(0x1f801070, 0x2); err != nil { // interrupt control
		t.Fatalf("Store32: %s", err)
	}
	if err := bus.Store32(0x1f802000, 0x3); err != nil { // expansion 2
		t.Fatalf("Store32: %s", err)
	}

	writes := bus.Writes()
	if len(writes) != 3 {
		t.Fatalf("got %d logged writes, want 3", len(writes))
	}
	for i, want := range []uint32{0x1, 0x2, 0x3} {
		if writes[i].Value != want {
			t.Errorf("writes[%d].Value = 0x%x, want 0x%x", i, writes[i].Value, want)
		}
	}
}

func TestMemControlValidation(t *testing.T) {
	bus := newTestBus()

	if err := bus.Store32(0x1f801000, 0x1f000000); err != nil {
		t.Errorf("expected the canonical Expansion 1 base to be accepted, got %s", err)
	}
	if err := bus.Store32(0x1f801000, 0xbadc0de); err == nil {
		t.Error("a non-canonical Expansion 1 base write should be fatal")
	}
	if err := bus.Store32(0x1f801004, 0x1f802000); err != nil {
		t.Errorf("expected the canonical Expansion 2 base to be accepted, got %s", err)
	}
	if err := bus.Store32(0x1f801004, 0xbadc0de); err == nil {
		t.Error("a non-canonical Expansion 2 base write should be fatal")
	}
}

func TestCacheControlRegisterRoundTrip(t *testing.T) {
	bus := newTestBus()
	if err := bus.Store32(0xfffe0130, 0x800); err != nil {
		t.Fatalf("Store32: %s", err)
	}
	v, err := bus.Load32(0xfffe0130)
	if err != nil {
		t.Fatalf("Load32: %s", err)
	}
	if v != 0x800 {
		t.Errorf("Load32 = 0x%x, want 0x800", v)
	}
	if !bus.CacheControl.ICacheEnabled() {
		t.Error("expected the I-cache enable bit to be observable on Bus.CacheControl")
	}
}

func TestScratchpadRoundTrip(t *testing.T) {
	bus := newTestBus()
	if err := bus.Store32(0x1f800000, 0xfeedface); err != nil {
		t.Fatalf("Store32: %s", err)
	}
	v, err := bus.Load32(0x1f800000)
	if err != nil {
		t.Fatalf("Load32: %s", err)
	}
	if v != 0xfeedface {
		t.Errorf("Load32 = 0x%x, want 0xfeedface", v)
	}
}

func TestExpansion1ReadsReturnFF(t *testing.T) {
	bus := newTestBus()
	v, err := bus.Load8(0x1f000000)
	if err != nil {
		t.Fatalf("Load8: %s", err)
	}
	if v != 0xff {
		t.Errorf("Load8 = 0x%x, want 0xff", v)
	}
}
