package io

import (
	"io"
	"strconv"

	"github.com/ezrec/ls8/cpu"
)

// Console is the PRN output side-channel. Each printed value is
// written to Output as a decimal number on its own line.
type Console struct {
	Output  io.Writer
	Printed []uint8 // Every value printed since the last Rewind.

	line []byte
}

var _ cpu.Console = (*Console)(nil)

// Rewind forgets the printed values.
func (cc *Console) Rewind() {
	cc.Printed = nil
}

// Print writes value to the output, if any.
func (cc *Console) Print(value uint8) (err error) {
	cc.Printed = append(cc.Printed, value)

	if cc.Output == nil {
		return
	}

	cc.line = strconv.AppendUint(cc.line[:0], uint64(value), 10)
	cc.line = append(cc.line, '\n')
	_, err = cc.Output.Write(cc.line)

	return
}
