package cpu

import (
	"fmt"
)

// Opcode is an LS-8 instruction byte.
type Opcode uint8

const (
	OP_HLT  = Opcode(0b0000_0001) // hlt
	OP_LDI  = Opcode(0b1000_0010) // ldi
	OP_PRN  = Opcode(0b0100_0111) // prn
	OP_MUL  = Opcode(0b1010_0010) // mul
	OP_ADD  = Opcode(0b1010_0000) // add
	OP_CMP  = Opcode(0b1010_0111) // cmp
	OP_PUSH = Opcode(0b0100_0101) // push
	OP_POP  = Opcode(0b0100_0110) // pop
	OP_CALL = Opcode(0b0101_0000) // call
	OP_RET  = Opcode(0b0001_0001) // ret
	OP_JMP  = Opcode(0b0101_0100) // jmp
	OP_JEQ  = Opcode(0b0101_0101) // jeq
	OP_JNE  = Opcode(0b0101_0110) // jne
)

// OpcodeInfo describes a recognized opcode.
type OpcodeInfo struct {
	Name     string
	Operands int  // Number of operand bytes following the opcode.
	SetsPc   bool // If set, the instruction may set PC itself.
}

var _opcode_info = map[Opcode]OpcodeInfo{
	OP_HLT:  {Name: "hlt", Operands: 0},
	OP_LDI:  {Name: "ldi", Operands: 2},
	OP_PRN:  {Name: "prn", Operands: 1},
	OP_MUL:  {Name: "mul", Operands: 2},
	OP_ADD:  {Name: "add", Operands: 2},
	OP_CMP:  {Name: "cmp", Operands: 2},
	OP_PUSH: {Name: "push", Operands: 1},
	OP_POP:  {Name: "pop", Operands: 1},
	OP_CALL: {Name: "call", Operands: 1, SetsPc: true},
	OP_RET:  {Name: "ret", Operands: 0, SetsPc: true},
	OP_JMP:  {Name: "jmp", Operands: 1, SetsPc: true},
	OP_JEQ:  {Name: "jeq", Operands: 1, SetsPc: true},
	OP_JNE:  {Name: "jne", Operands: 1, SetsPc: true},
}

// Info returns the decode information for the opcode.
func (op Opcode) Info() (info OpcodeInfo, ok bool) {
	info, ok = _opcode_info[op]
	return
}

// Valid returns true if the opcode is in the instruction set.
func (op Opcode) Valid() bool {
	_, ok := _opcode_info[op]
	return ok
}

// Operands returns the number of operand bytes encoded in the high bits.
func (op Opcode) Operands() int {
	return int(op >> 6)
}

// String returns the mnemonic, or the binary value for unknown opcodes.
func (op Opcode) String() string {
	info, ok := _opcode_info[op]
	if !ok {
		return fmt.Sprintf("0b%08b", uint8(op))
	}
	return info.Name
}

// Instruction is a fetched opcode with its operand bytes.
//
// Operands past the opcode's operand count are fetched but unused.
type Instruction struct {
	Opcode   Opcode
	OperandA uint8
	OperandB uint8
}

// Size returns the number of memory cells the instruction occupies.
func (in Instruction) Size() int {
	info, ok := in.Opcode.Info()
	if !ok {
		return 1
	}
	return 1 + info.Operands
}

// String returns the assembly language representation of this instruction.
func (in Instruction) String() (out string) {
	info, ok := in.Opcode.Info()
	if !ok {
		return in.Opcode.String()
	}

	out = info.Name
	switch in.Opcode {
	case OP_LDI:
		out += fmt.Sprintf(" r%d %d", in.OperandA, in.OperandB)
	default:
		if info.Operands > 0 {
			out += fmt.Sprintf(" r%d", in.OperandA)
		}
		if info.Operands > 1 {
			out += fmt.Sprintf(" r%d", in.OperandB)
		}
	}

	return
}
