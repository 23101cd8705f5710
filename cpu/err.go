package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Machine faults
	ErrUnknownInstruction = errors.New(f("unknown instruction"))
	ErrMemoryBounds       = errors.New(f("memory address out of range"))
	ErrRegisterBounds     = errors.New(f("register index out of range"))
	ErrPcOverflow         = errors.New(f("program counter overflow"))
	ErrConsole            = errors.New(f("console output failed"))

	// Load errors
	ErrImageTooLarge = errors.New(f("image exceeds memory"))
)

// FaultKind classifies a machine fault.
type FaultKind int

const (
	FAULT_UNKNOWN_INSTRUCTION = FaultKind(iota + 1) // unknown instruction
	FAULT_MEMORY_BOUNDS                             // memory bounds
	FAULT_REGISTER_BOUNDS                           // register bounds
	FAULT_CONSOLE                                   // console
)

func (fk FaultKind) String() string {
	switch fk {
	case FAULT_UNKNOWN_INSTRUCTION:
		return "unknown instruction"
	case FAULT_MEMORY_BOUNDS:
		return "memory bounds"
	case FAULT_REGISTER_BOUNDS:
		return "register bounds"
	case FAULT_CONSOLE:
		return "console"
	}
	return "unknown fault"
}

// ErrAddress reports an out-of-range memory address.
type ErrAddress int

func (ea ErrAddress) Error() string {
	return f("address %d (0x%x) outside 0..255", int(ea), int(ea))
}

func (ea ErrAddress) Unwrap() error {
	return ErrMemoryBounds
}

// ErrRegister reports an out-of-range register index.
type ErrRegister int

func (er ErrRegister) Error() string {
	return f("register %d outside r0..r7", int(er))
}

func (er ErrRegister) Unwrap() error {
	return ErrRegisterBounds
}

// ErrOpcode reports an opcode byte not in the instruction set.
type ErrOpcode Opcode

func (eo ErrOpcode) Error() string {
	return f("instruction %08b not recognized", uint8(eo))
}

func (eo ErrOpcode) Unwrap() error {
	return ErrUnknownInstruction
}

// Fault is the terminal error of a Step. The machine cannot continue.
type Fault struct {
	Kind        FaultKind
	Pc          uint8       // PC of the faulting instruction.
	Instruction Instruction // As much of the instruction as was fetched.
	Err         error
}

func (err *Fault) Error() string {
	return f("pc 0x%02x: %v: %v", err.Pc, err.Kind.String(), err.Err)
}

func (err *Fault) Unwrap() error {
	return err.Err
}

// newFault classifies err and records where it happened.
func newFault(pc uint8, in Instruction, err error) *Fault {
	fault := &Fault{Pc: pc, Instruction: in, Err: err}
	switch {
	case errors.Is(err, ErrUnknownInstruction):
		fault.Kind = FAULT_UNKNOWN_INSTRUCTION
	case errors.Is(err, ErrRegisterBounds):
		fault.Kind = FAULT_REGISTER_BOUNDS
	case errors.Is(err, ErrConsole):
		fault.Kind = FAULT_CONSOLE
	default:
		fault.Kind = FAULT_MEMORY_BOUNDS
	}
	return fault
}
