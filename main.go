package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/retrocore/psxcore/emulator"
)

func main() {
	debug := flag.Bool("debug", false, "break into an interactive single-step monitor")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-debug] <bios-path>\n", os.Args[0])
	}
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		flag.Usage()
		os.Exit(1)
	}

	bios := loadBios(args[0])
	logger := log.New(os.Stderr, "", log.LstdFlags)
	bus := emulator.NewBus(bios, logger)
	cpu := emulator.NewCPU(bus)

	if *debug {
		runDebug(cpu)
		return
	}
	run(cpu)
}

func loadBios(path string) *emulator.BIOS {
	log.Printf("loading bios \"%s\"", path)
	start := time.Now()

	file, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer file.Close()

	bios, err := emulator.LoadBIOS(file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log.Printf("loaded bios in %s", time.Since(start))
	return bios
}

// run advances the machine until Tick reports a fatal error: one
// diagnostic line on the error stream, non-zero exit.
func run(cpu *emulator.CPU) {
	for {
		if err := cpu.Tick(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

// runDebug is the -debug monitor: a Debugger is attached to cpu so its
// breakpoints/watchpoints actually fire, and the terminal is put in raw
// mode so a single keystroke steers the run loop without waiting on
// Enter — n steps one instruction, c runs until the next breakpoint or
// watchpoint, q exits. b/B and w/W/r/R add and remove breakpoints and
// watchpoints by prompting for a hex address; p prints a register by its
// assembler name.
func runDebug(cpu *emulator.CPU) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "debug: cannot enter raw terminal mode: %s\n", err)
		os.Exit(1)
	}
	defer term.Restore(fd, oldState)

	dbg := emulator.NewDebugger()
	hit := false
	dbg.OnBreak = func(reason string, addr uint32) {
		hit = true
	}
	cpu.AttachDebugger(dbg)

	stdin := bufio.NewReader(os.Stdin)
	continuous := false

	for {
		if !continuous || hit {
			continuous, hit = false, false
			fmt.Printf("\r\npc=0x%08x  [n]step [c]ontinue [q]uit [b/B]reakpoint add/del [r/R]ead-watch [w/W]rite-watch [p]rint-reg\r\n", cpu.PC())
			b, err := stdin.ReadByte()
			if err != nil {
				return
			}
			switch b {
			case 'q':
				return
			case 'c':
				continuous = true
				continue
			case 'n':
				// fall through to step once
			case 'b':
				if addr, ok := promptAddr(stdin, "breakpoint addr"); ok {
					dbg.AddBreakpoint(addr)
				}
				continue
			case 'B':
				if addr, ok := promptAddr(stdin, "delete breakpoint addr"); ok {
					dbg.DeleteBreakpoint(addr)
				}
				continue
			case 'r':
				if addr, ok := promptAddr(stdin, "read watchpoint addr"); ok {
					dbg.AddReadWatchpoint(addr)
				}
				continue
			case 'R':
				if addr, ok := promptAddr(stdin, "delete read watchpoint addr"); ok {
					dbg.DeleteReadWatchpoint(addr)
				}
				continue
			case 'w':
				if addr, ok := promptAddr(stdin, "write watchpoint addr"); ok {
					dbg.AddWriteWatchpoint(addr)
				}
				continue
			case 'W':
				if addr, ok := promptAddr(stdin, "delete write watchpoint addr"); ok {
					dbg.DeleteWriteWatchpoint(addr)
				}
				continue
			case 'p':
				printRegister(cpu, stdin)
				continue
			default:
				continue
			}
		}

		if err := cpu.Tick(); err != nil {
			term.Restore(fd, oldState)
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

// promptAddr reads a hex address (an optional "0x" prefix is accepted)
// from stdin, echoing each keystroke since the terminal is in raw mode.
func promptAddr(stdin *bufio.Reader, prompt string) (uint32, bool) {
	fmt.Printf("%s (hex): ", prompt)
	line := readLine(stdin)
	addr, err := strconv.ParseUint(strings.TrimPrefix(line, "0x"), 16, 32)
	if err != nil {
		fmt.Printf("not a hex address: %q\r\n", line)
		return 0, false
	}
	return uint32(addr), true
}

// printRegister reads a register's assembler name from stdin and prints
// its committed value.
func printRegister(cpu *emulator.CPU, stdin *bufio.Reader) {
	fmt.Print("register name: ")
	name := readLine(stdin)
	idx := emulator.GetRegisterIndexByName(name)
	fmt.Printf("$%s = 0x%08x\r\n", emulator.GetRegisterName(idx), cpu.Reg(idx))
}

// readLine reads bytes until a carriage return or newline, echoing and
// honoring backspace, since raw terminal mode echoes nothing on its own.
func readLine(stdin *bufio.Reader) string {
	var buf []byte
	for {
		b, err := stdin.ReadByte()
		if err != nil || b == '\r' || b == '\n' {
			break
		}
		if b == 127 || b == 8 {
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
				fmt.Print("\b \b")
			}
			continue
		}
		buf = append(buf, b)
		fmt.Printf("%c", b)
	}
	fmt.Print("\r\n")
	return string(buf)
}
