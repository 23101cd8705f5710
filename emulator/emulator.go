// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"io/fs"
	"log"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/io"
)

// Process exit codes.
const (
	EXIT_OK        = 0 // Halted normally.
	EXIT_FAULT     = 1 // Usage, invalid literal, or runtime fault.
	EXIT_NOT_FOUND = 2 // Program image could not be read.
)

// Emulator state. CPU + program listing + console.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	Trace    bool         // If set, logs a trace line before every tick.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program listing.

	Console io.Console // PRN output channel.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Program: &cpu.Program{},
	}

	emu.Cpu = cpu.NewCpu(&emu.Console)

	return
}

// LoadFile parses the image name from fsys, and resets the emulator to run it.
func (emu *Emulator) LoadFile(fsys fs.FS, name string) (err error) {
	prog, err := io.LoadImage(fsys, name)
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: %v: %d cells", name, len(prog.Cells))
	}

	emu.Program = prog
	err = emu.Reset()

	return
}

// LoadImage resets the emulator to run a raw memory image.
func (emu *Emulator) LoadImage(image []uint8) (err error) {
	prog := &cpu.Program{}
	for addr, value := range image {
		prog.Cells = append(prog.Cells, cpu.Cell{Addr: addr, Value: value})
	}

	emu.Program = prog
	err = emu.Reset()

	return
}

// Reset the CPU, and reload the current program.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Console.Rewind()

	err = emu.Cpu.Load(emu.Program.Binary())

	return
}

// Ticks returns the total instructions retired since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Pc returns the current program counter.
func (emu *Emulator) Pc() int {
	return int(emu.Cpu.Pc)
}

// LineNo returns the image line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	return emu.Program.LineNo(emu.Cpu.Pc)
}

// Tick performs a single instruction of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}
		}
	}()

	if emu.Trace {
		log.Print(emu.Cpu.Trace())
	}

	state, err := emu.Cpu.Step()
	if err != nil {
		return
	}

	done = state == cpu.STATE_HALTED

	return
}

// Run ticks the emulator until it halts or faults.
func (emu *Emulator) Run() (err error) {
	for done, err := emu.Tick(); !done; done, err = emu.Tick() {
		if err != nil {
			return err
		}
	}

	if emu.Verbose {
		log.Printf("emulator: halted after %d ticks", emu.Ticks())
	}

	return
}

// ExitCode maps a load or run error to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return EXIT_OK
	case errors.Is(err, io.ErrFile):
		return EXIT_NOT_FOUND
	default:
		return EXIT_FAULT
	}
}
