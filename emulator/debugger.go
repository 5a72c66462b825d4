package emulator

import "fmt"

// Debugger tracks breakpoints and watchpoints and is consulted by CPU on
// every instruction dispatch and memory access once attached via
// CPU.AttachDebugger. It never reads from a terminal: every hit is printed
// as one line on standard output, and OnBreak, if set, is invoked
// synchronously, so the CLI's -debug mode decides how (or whether) to
// actually pause.
type Debugger struct {
	Breakpoints      []uint32 // All breakpoint addresses
	ReadWatchpoints  []uint32 // All read watchpoints
	WriteWatchpoints []uint32 // All write watchpoints

	// OnBreak is called whenever a breakpoint or watchpoint fires, with a
	// short description and the triggering address. A nil OnBreak means
	// hits are logged but otherwise ignored.
	OnBreak func(reason string, addr uint32)
}

func NewDebugger() *Debugger {
	return &Debugger{}
}

// Adds a breakpoint when the instruction at `addr` is about to be executed
func (debugger *Debugger) AddBreakpoint(addr uint32) {
	// check if that breakpoint already exists
	for _, breakpoint := range debugger.Breakpoints {
		if breakpoint == addr {
			return
		}
	}
	debugger.Breakpoints = append(debugger.Breakpoints, addr)
}

// Deletes a breakpoint at `addr`. Does nothing if it doesn't exist
func (debugger *Debugger) DeleteBreakpoint(addr uint32) {
	for idx, breakpoint := range debugger.Breakpoints {
		if breakpoint == addr {
			// remove this breakpoint
			debugger.Breakpoints = append(debugger.Breakpoints[:idx], debugger.Breakpoints[idx+1:]...)
			return
		}
	}
}

// Adds a memory read watchpoint for `addr`
func (debugger *Debugger) AddReadWatchpoint(addr uint32) {
	for _, watchpoint := range debugger.ReadWatchpoints {
		if watchpoint == addr {
			return
		}
	}
	debugger.ReadWatchpoints = append(debugger.ReadWatchpoints, addr)
}

// Adds a memory write watchpoint for `addr`
func (debugger *Debugger) AddWriteWatchpoint(addr uint32) {
	for _, watchpoint := range debugger.WriteWatchpoints {
		if watchpoint == addr {
			return
		}
	}
	debugger.WriteWatchpoints = append(debugger.WriteWatchpoints, addr)
}

// Deletes a memory read watchpoint at `addr`. Does nothing if it doesn't exist
func (debugger *Debugger) DeleteReadWatchpoint(addr uint32) {
	for idx, breakpoint := range debugger.ReadWatchpoints {
		if breakpoint == addr {
			// remove this breakpoint
			debugger.ReadWatchpoints = append(
				debugger.ReadWatchpoints[:idx],
				debugger.ReadWatchpoints[idx+1:]...,
			)
			return
		}
	}
}

// Deletes a memory write watchpoint at `addr`. Does nothing if it doesn't exist
func (debugger *Debugger) DeleteWriteWatchpoint(addr uint32) {
	for idx, breakpoint := range debugger.WriteWatchpoints {
		if breakpoint == addr {
			// remove this breakpoint
			debugger.WriteWatchpoints = append(
				debugger.WriteWatchpoints[:idx],
				debugger.WriteWatchpoints[idx+1:]...,
			)
			return
		}
	}
}

// changedPc is called by CPU.Tick just before dispatching the instruction
// at pc.
func (debugger *Debugger) changedPc(pc uint32) {
	for _, breakpoint := range debugger.Breakpoints {
		if breakpoint == pc {
			debugger.Debug("breakpoint", pc)
			return
		}
	}
}

// memoryRead is called by CPU load instructions before issuing the bus
// access, with the register the load will land in.
func (debugger *Debugger) memoryRead(addr, reg uint32) {
	for _, watchpoint := range debugger.ReadWatchpoints {
		if watchpoint == addr {
			debugger.Debug(fmt.Sprintf("read watchpoint ($%s)", GetRegisterName(reg)), addr)
			return
		}
	}
}

// memoryWrite is called by CPU store instructions before issuing the bus
// access, with the register being stored.
func (debugger *Debugger) memoryWrite(addr, reg uint32) {
	for _, watchpoint := range debugger.WriteWatchpoints {
		if watchpoint == addr {
			debugger.Debug(fmt.Sprintf("write watchpoint ($%s)", GetRegisterName(reg)), addr)
			return
		}
	}
}

// Debug reports a hit to OnBreak, if set. addr is the PC for a breakpoint
// hit, or the accessed address for a watchpoint hit.
func (debugger *Debugger) Debug(reason string, addr uint32) {
	fmt.Printf("debugger: %s at 0x%08x\r\n", reason, addr)
	if debugger.OnBreak != nil {
		debugger.OnBreak(reason, addr)
	}
}
