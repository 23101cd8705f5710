package io

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/ezrec/ls8/cpu"
)

// ParseImage reads a program image, one memory cell per literal line.
//
// Loading is all-or-nothing: on any error no program is returned.
func ParseImage(in io.Reader) (prog *cpu.Program, err error) {
	scanner := bufio.NewScanner(in)

	var cells []cpu.Cell
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		text, _, _ := strings.Cut(line, "#")
		text = strings.TrimSpace(text)

		var value uint64
		value, err = strconv.ParseUint(text, 2, 8)
		if err != nil {
			err = &ErrInvalidLiteral{LineNo: lineno, Text: text}
			return
		}

		if len(cells) == cpu.MEMORY_SIZE {
			err = errors.Join(cpu.ErrImageTooLarge, cpu.ErrAddress(len(cells)))
			return
		}

		cells = append(cells, cpu.Cell{
			LineNo: lineno,
			Addr:   len(cells),
			Text:   text,
			Value:  uint8(value),
		})
	}

	err = scanner.Err()
	if err != nil {
		err = errors.Join(ErrRead, err)
		return
	}

	prog = &cpu.Program{Cells: cells}
	return
}

// LoadImage opens name in fsys and parses it as a program image.
func LoadImage(fsys fs.FS, name string) (prog *cpu.Program, err error) {
	inf, err := fsys.Open(name)
	if err != nil {
		err = &ErrFileNotFound{Name: name, Err: err}
		return
	}
	defer inf.Close()

	prog, err = ParseImage(inf)
	if errors.Is(err, ErrRead) {
		// Read failures after open are still an unreadable file.
		err = &ErrFileNotFound{Name: name, Err: err}
	}

	return
}
