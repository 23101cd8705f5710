package cpu

import (
	"iter"
)

// Cell is one memory cell of a program image with its source location.
type Cell struct {
	LineNo int    // Source line number, starting at 1.
	Addr   int    // Memory address of the cell.
	Text   string // Literal text the value was parsed from.
	Value  uint8
}

// Program is a loaded program listing.
type Program struct {
	Cells []Cell
}

// Debug returns the cell at address pc, or nil if pc is past the image.
func (prog *Program) Debug(pc uint8) (cell *Cell) {
	for n, c := range prog.Cells {
		if c.Addr == int(pc) {
			cell = &prog.Cells[n]
			break
		}
	}

	return
}

// LineNo returns the source line for address pc, or 0 if unknown.
func (prog *Program) LineNo(pc uint8) int {
	cell := prog.Debug(pc)
	if cell == nil {
		return 0
	}
	return cell.LineNo
}

// Binary returns the memory image of the program.
func (prog *Program) Binary() (bins []uint8) {
	for _, value := range prog.Values() {
		bins = append(bins, value)
	}

	return
}

// Values iterates over the program's address and value pairs.
func (prog *Program) Values() iter.Seq2[int, uint8] {
	return func(yield func(addr int, value uint8) bool) {
		for _, cell := range prog.Cells {
			if !yield(cell.Addr, cell.Value) {
				return
			}
		}
	}
}
