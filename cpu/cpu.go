package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"
)

const (
	MEMORY_SIZE    = 256 // Bytes of addressable memory.
	REGISTER_COUNT = 8   // General-purpose registers.
)

// Console is the output side-channel used by PRN.
type Console interface {
	Print(value uint8) error
}

// State is the run state of the machine.
type State int

const (
	STATE_RUNNING = State(0) // running
	STATE_HALTED  = State(1) // halted
)

func (st State) String() string {
	if st == STATE_HALTED {
		return "halted"
	}
	return "running"
}

var _cpu_defines = map[string]int{
	"SP_INIT":      SP_INIT,
	"REG_SP":       REG_SP,
	"MEMORY_SIZE":  MEMORY_SIZE,
	"FLAG_EQUAL":   int(FLAG_EQUAL),
	"FLAG_GREATER": int(FLAG_GREATER),
	"FLAG_LESS":    int(FLAG_LESS),
}

func init() {
	for op, info := range _opcode_info {
		_cpu_defines[strings.ToUpper(info.Name)] = int(op)
	}
}

// Cpu is the simulation context for the LS-8.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory   [MEMORY_SIZE]uint8    // Shared code and data memory.
	Register [REGISTER_COUNT]uint8 // Register bank; r7 is SP.
	Pc       uint8                 // Current program counter.
	Flags    Flags                 // Result of the last CMP.
	State    State                 // Running or halted.

	Ticks int // Instructions retired since reset.

	console Console
}

// NewCpu creates a new CPU, in reset state, printing to console.
func NewCpu(console Console) (cpu *Cpu) {
	cpu = &Cpu{
		console: console,
	}

	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, int] {
	return maps.All(_cpu_defines)
}

// SetConsole replaces the PRN output side-channel.
func (cpu *Cpu) SetConsole(console Console) {
	cpu.console = console
}

// Reset the CPU state.
// - Clears memory, registers, and flags.
// - Sets PC to 0, and SP to SP_INIT.
// - Zeros statistics counters.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Memory[:])
	clear(cpu.Register[:])
	cpu.Register[REG_SP] = SP_INIT
	cpu.Pc = 0
	cpu.Flags = 0
	cpu.State = STATE_RUNNING
	cpu.Ticks = 0
}

// Load resets the CPU, then copies image into memory from address 0.
func (cpu *Cpu) Load(image []uint8) (err error) {
	cpu.Reset()

	if len(image) > len(cpu.Memory) {
		err = errors.Join(ErrImageTooLarge, ErrAddress(len(image)-1))
		return
	}

	copy(cpu.Memory[:], image)

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes", len(image))
	}

	return
}

// ReadMemory returns memory[addr].
func (cpu *Cpu) ReadMemory(addr int) (value uint8, err error) {
	if addr < 0 || addr >= len(cpu.Memory) {
		err = ErrAddress(addr)
		return
	}
	value = cpu.Memory[addr]
	return
}

// WriteMemory sets memory[addr] to value.
func (cpu *Cpu) WriteMemory(addr int, value uint8) (err error) {
	if addr < 0 || addr >= len(cpu.Memory) {
		err = ErrAddress(addr)
		return
	}
	cpu.Memory[addr] = value
	return
}

// ReadRegister returns register[index].
func (cpu *Cpu) ReadRegister(index int) (value uint8, err error) {
	if index < 0 || index >= len(cpu.Register) {
		err = ErrRegister(index)
		return
	}
	value = cpu.Register[index]
	return
}

// WriteRegister sets register[index] to value.
func (cpu *Cpu) WriteRegister(index int, value uint8) (err error) {
	if index < 0 || index >= len(cpu.Register) {
		err = ErrRegister(index)
		return
	}
	cpu.Register[index] = value
	return
}

// Fetch reads the instruction at PC, and the two bytes following it.
//
// Both operand bytes are read regardless of the opcode's operand count, so an
// instruction in the last two cells of memory faults.
func (cpu *Cpu) Fetch() (in Instruction, err error) {
	pc := int(cpu.Pc)

	var ir uint8
	ir, err = cpu.ReadMemory(pc)
	if err != nil {
		return
	}
	in.Opcode = Opcode(ir)

	in.OperandA, err = cpu.ReadMemory(pc + 1)
	if err != nil {
		return
	}

	in.OperandB, err = cpu.ReadMemory(pc + 2)
	if err != nil {
		return
	}

	if !in.Opcode.Valid() {
		err = ErrOpcode(in.Opcode)
		return
	}

	return
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(in Instruction) (err error) {
	if cpu.Verbose {
		log.Printf("%02x: %v", cpu.Pc, in)
	}

	info, ok := in.Opcode.Info()
	if !ok {
		err = ErrOpcode(in.Opcode)
		return
	}

	seq_pc := int(cpu.Pc) + 1 + info.Operands
	next_pc := seq_pc
	reg_a := int(in.OperandA)
	reg_b := int(in.OperandB)

	// jump sets next_pc to the value held in register reg.
	jump := func(reg int) (err error) {
		var target uint8
		target, err = cpu.ReadRegister(reg)
		if err == nil {
			next_pc = int(target)
		}
		return
	}

	switch in.Opcode {
	case OP_HLT:
		cpu.State = STATE_HALTED
	case OP_LDI:
		err = cpu.WriteRegister(reg_a, in.OperandB)
	case OP_PRN:
		var value uint8
		value, err = cpu.ReadRegister(reg_a)
		if err == nil && cpu.console != nil {
			err = cpu.console.Print(value)
			if err != nil {
				err = errors.Join(ErrConsole, err)
			}
		}
	case OP_MUL:
		err = cpu.alu(ALU_OP_MUL, reg_a, reg_b)
	case OP_ADD:
		err = cpu.alu(ALU_OP_ADD, reg_a, reg_b)
	case OP_CMP:
		err = cpu.alu(ALU_OP_CMP, reg_a, reg_b)
	case OP_PUSH:
		err = cpu.pushRegister(reg_a)
	case OP_POP:
		err = cpu.popRegister(reg_a)
	case OP_CALL:
		// Check the target first, so a bad register leaves SP alone.
		_, err = cpu.ReadRegister(reg_a)
		if err != nil {
			break
		}
		err = cpu.Push(uint8(next_pc))
		if err == nil {
			err = jump(reg_a)
		}
	case OP_RET:
		var value uint8
		value, err = cpu.Pop()
		if err == nil {
			next_pc = int(value)
		}
	case OP_JMP:
		err = jump(reg_a)
	case OP_JEQ:
		if cpu.Flags.Equal() {
			err = jump(reg_a)
		}
	case OP_JNE:
		if !cpu.Flags.Equal() {
			err = jump(reg_a)
		}
	default:
		// Every entry of _opcode_info must be handled above.
		panic("unhandled opcode " + in.Opcode.String())
	}

	if err != nil {
		return
	}

	if next_pc != seq_pc && !info.SetsPc {
		panic("opcode " + in.Opcode.String() + " changed pc")
	}

	if next_pc >= len(cpu.Memory) {
		err = errors.Join(ErrPcOverflow, ErrAddress(next_pc))
		return
	}

	cpu.Pc = uint8(next_pc)
	cpu.Ticks++

	return
}

// Step executes exactly one instruction.
//
// Stepping a halted CPU does nothing. Any error is a *Fault, after which
// the CPU must not be stepped again.
func (cpu *Cpu) Step() (state State, err error) {
	if cpu.State == STATE_HALTED {
		state = STATE_HALTED
		return
	}

	pc := cpu.Pc

	in, err := cpu.Fetch()
	if err != nil {
		err = newFault(pc, in, err)
		state = cpu.State
		return
	}

	err = cpu.Execute(in)
	if err != nil {
		err = newFault(pc, in, err)
	}

	state = cpu.State
	return
}

// Run steps the CPU until it halts or faults.
func (cpu *Cpu) Run() (err error) {
	for {
		var state State
		state, err = cpu.Step()
		if err != nil || state == STATE_HALTED {
			return
		}
	}
}

// peekHex renders memory[addr] as two hex digits, or "--" past the end.
func (cpu *Cpu) peekHex(addr int) string {
	value, err := cpu.ReadMemory(addr)
	if err != nil {
		return "--"
	}
	return fmt.Sprintf("%02X", value)
}

// Trace returns a single line with PC, the next three memory bytes,
// and all registers.
func (cpu *Cpu) Trace() string {
	pc := int(cpu.Pc)

	var text strings.Builder
	fmt.Fprintf(&text, "TRACE: %02X | %s %s %s |", pc,
		cpu.peekHex(pc), cpu.peekHex(pc+1), cpu.peekHex(pc+2))
	for _, reg := range cpu.Register {
		fmt.Fprintf(&text, " %02X", reg)
	}

	return text.String()
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc",
		"fl",
		"r0", "r1", "r2", "r3", "r4", "r5", "r6", "sp",
		"state",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%02X", cpu.Pc)
		case "fl":
			strval = cpu.Flags.String()
		case "r0", "r1", "r2", "r3", "r4", "r5", "r6":
			strval = fmt.Sprintf("%02X", cpu.Register[byte(reg[1]-'0')])
		case "sp":
			strval = fmt.Sprintf("%02X", cpu.Register[REG_SP])
		case "state":
			strval = cpu.State.String()
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}
