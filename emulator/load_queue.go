package emulator

// pendingWrite is one entry of a LoadQueue (component C5): a register
// write that hasn't committed to the register file yet, waiting out its
// delay.
type pendingWrite struct {
	Reg   uint32
	Value uint32
	Delay int
}

// LoadQueue is the ordered queue of pending register writes that models
// the MIPS load-delay slot. Register reads always go through
// the committed register file directly and never consult this queue;
// the queue only ever pushes values *into* that file, once per Advance.
//
// A fixed-capacity table of two entries would suffice for this core, but
// a plain slice keeps the commit-order invariant obviously correct
// without hand-rolling a ring buffer.
type LoadQueue struct {
	entries []pendingWrite
}

func NewLoadQueue() *LoadQueue {
	return &LoadQueue{}
}

// Enqueue pushes a new pending write. Ordinary register writes use
// delay 0, so the very next Advance call commits them (matching "enter
// with delay 0, commit at end of the same tick"). LW/LB/LBU and MFC0 use
// delay 1: this tick's Advance only ticks the delay down to 0 without
// committing, so the write isn't visible until the tick after next —
// exactly skipping the load-delay slot. Enqueueing a write to register 0
// is accepted but always a no-op, since Advance re-forces register 0 to
// zero after every commit pass.
func (q *LoadQueue) Enqueue(reg, value uint32, delay int) {
	q.entries = append(q.entries, pendingWrite{Reg: reg, Value: value, Delay: delay})
}

// Advance is the per-tick "advance the load queue" step, called exactly
// once after an instruction has been dispatched (and so
// has had its chance to enqueue new entries of its own).
//
// Every entry already at delay 0 — whether it was enqueued on an earlier
// tick and has since ticked down, or was just enqueued this tick by a
// non-load instruction — commits to regs right now and leaves the queue.
// Entries still carrying delay merely tick down by one and stay queued;
// they are never committed within the tick that reduces them to zero,
// only on a later Advance call once they are already sitting at zero.
// Entries are visited in queue (insertion) order, so if two commit in the
// same pass and target the same register, the later one wins.
func (q *LoadQueue) Advance(regs *[32]uint32) {
	remaining := q.entries[:0]
	for _, e := range q.entries {
		if e.Delay == 0 {
			regs[e.Reg] = e.Value
		} else {
			e.Delay--
			remaining = append(remaining, e)
		}
	}
	q.entries = remaining

	regs[0] = 0
}
