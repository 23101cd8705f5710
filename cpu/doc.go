// Package cpu implements the LS-8 microprocessor.
//
// The CPU consists of a program counter (PC), 256 bytes of memory shared by
// code and data, eight 8-bit general-purpose registers (r0-r7, with r7 used
// as the stack pointer), an ALU, and a flags register set by comparisons.
//
// Each instruction is one opcode byte followed by zero, one, or two operand
// bytes. The two high bits of the opcode give the operand count.
package cpu
