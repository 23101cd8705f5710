package cpu

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcode_Operands(t *testing.T) {
	assert := assert.New(t)

	// The table must agree with the encoding's operand-count bits.
	for op, info := range _opcode_info {
		assert.Equal(op.Operands(), info.Operands, op.String())
		assert.True(op.Valid(), op.String())
	}

	assert.Len(_opcode_info, 13)
}

func TestOpcode_Valid(t *testing.T) {
	assert := assert.New(t)

	count := 0
	for n := range 256 {
		if Opcode(n).Valid() {
			count++
		}
	}
	assert.Equal(len(_opcode_info), count)
	assert.False(Opcode(0).Valid())
}

func TestOpcode_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("hlt", OP_HLT.String())
	assert.Equal("jne", OP_JNE.String())
	assert.Equal("0b11111111", Opcode(0xff).String())
}

func TestOpcode_SetsPc(t *testing.T) {
	assert := assert.New(t)

	for op, info := range _opcode_info {
		switch op {
		case OP_CALL, OP_RET, OP_JMP, OP_JEQ, OP_JNE:
			assert.True(info.SetsPc, op.String())
		default:
			assert.False(info.SetsPc, op.String())
		}
	}
}

func TestInstruction_String(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		in   Instruction
		text string
		size int
	}){
		{Instruction{OP_HLT, 0, 0}, "hlt", 1},
		{Instruction{OP_RET, 3, 4}, "ret", 1},
		{Instruction{OP_LDI, 1, 72}, "ldi r1 72", 3},
		{Instruction{OP_PRN, 2, 9}, "prn r2", 2},
		{Instruction{OP_MUL, 0, 1}, "mul r0 r1", 3},
		{Instruction{OP_CALL, 5, 0}, "call r5", 2},
		{Instruction{Opcode(0b11), 0, 0}, "0b00000011", 1},
	}

	for _, entry := range table {
		name := fmt.Sprintf("%#v", entry.in)
		assert.Equal(entry.text, entry.in.String(), name)
		assert.Equal(entry.size, entry.in.Size(), name)
	}
}

func TestFlags_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("---", Flags(0).String())
	assert.Equal("--E", FLAG_EQUAL.String())
	assert.Equal("-G-", FLAG_GREATER.String())
	assert.Equal("L--", FLAG_LESS.String())
	assert.Equal("LGE", FLAG_MASK.String())
}
