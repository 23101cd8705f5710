// Package script drives an LS-8 emulator from a Starlark program.
//
// The host calls into the machine one instruction at a time with step(),
// and can inspect or patch registers and memory between steps.
package script

import (
	"log"
	"maps"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/emulator"
	"github.com/ezrec/ls8/internal"
	"github.com/ezrec/ls8/translate"
)

var f = translate.From

// host binds Starlark builtins to one emulator.
type host struct {
	emu *emulator.Emulator
}

// Predeclared returns the Starlark environment for emu: the machine
// builtins plus every cpu define as an int.
func Predeclared(emu *emulator.Emulator) starlark.StringDict {
	hs := &host{emu: emu}

	defines := internal.IterSeq2Map(emu.Cpu.Defines(), func(value int) starlark.Value {
		return starlark.MakeInt(value)
	})

	return maps.Collect(internal.IterSeq2Concat(maps.All(hs.builtins()), defines))
}

// Run executes the Starlark program src against emu, and returns its globals.
func Run(emu *emulator.Emulator, filename string, src any) (globals starlark.StringDict, err error) {
	thread := &starlark.Thread{
		Name: "ls8",
		Print: func(_ *starlark.Thread, msg string) {
			log.Printf("script: %v", msg)
		},
	}

	// Scripts are sequential drivers; allow loops at the top level.
	opts := syntax.FileOptions{
		While:           true,
		TopLevelControl: true,
		GlobalReassign:  true,
	}
	globals, err = starlark.ExecFileOptions(&opts, thread, filename, src, Predeclared(emu))

	return
}

func (hs *host) builtins() starlark.StringDict {
	dict := starlark.StringDict{}
	for name, fn := range map[string]func(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error){
		"step":    hs.step,
		"run":     hs.run,
		"reset":   hs.reset,
		"reg":     hs.reg,
		"set_reg": hs.setReg,
		"mem":     hs.mem,
		"set_mem": hs.setMem,
		"pc":      hs.pc,
		"flags":   hs.flags,
		"ticks":   hs.ticks,
		"trace":   hs.trace,
		"printed": hs.printed,
	} {
		dict[name] = starlark.NewBuiltin(name, func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			value, err := fn(args, kwargs)
			if err != nil {
				return nil, &ErrBuiltin{Name: b.Name(), Err: err}
			}
			return value, nil
		})
	}
	return dict
}

// noArgs rejects any arguments to name.
func noArgs(name string, args starlark.Tuple, kwargs []starlark.Tuple) error {
	return starlark.UnpackPositionalArgs(name, args, kwargs, 0)
}

func (hs *host) step(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	err = noArgs("step", args, kwargs)
	if err != nil {
		return
	}
	done, err := hs.emu.Tick()
	if err != nil {
		return
	}
	state := cpu.STATE_RUNNING
	if done {
		state = cpu.STATE_HALTED
	}
	value = starlark.String(state.String())
	return
}

func (hs *host) run(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	err = noArgs("run", args, kwargs)
	if err != nil {
		return
	}
	err = hs.emu.Run()
	value = starlark.None
	return
}

func (hs *host) reset(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	err = noArgs("reset", args, kwargs)
	if err != nil {
		return
	}
	err = hs.emu.Reset()
	value = starlark.None
	return
}

// byteArg checks that value fits in a memory cell or register.
func byteArg(value int) (b uint8, err error) {
	if value < 0 || value > 0xff {
		err = ErrValue(value)
		return
	}
	b = uint8(value)
	return
}

func (hs *host) reg(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var index int
	err = starlark.UnpackPositionalArgs("reg", args, kwargs, 1, &index)
	if err != nil {
		return
	}
	reg, err := hs.emu.Cpu.ReadRegister(index)
	if err != nil {
		return
	}
	value = starlark.MakeInt(int(reg))
	return
}

func (hs *host) setReg(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var index, v int
	err = starlark.UnpackPositionalArgs("set_reg", args, kwargs, 2, &index, &v)
	if err != nil {
		return
	}
	b, err := byteArg(v)
	if err != nil {
		return
	}
	err = hs.emu.Cpu.WriteRegister(index, b)
	value = starlark.None
	return
}

func (hs *host) mem(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var addr int
	err = starlark.UnpackPositionalArgs("mem", args, kwargs, 1, &addr)
	if err != nil {
		return
	}
	cell, err := hs.emu.Cpu.ReadMemory(addr)
	if err != nil {
		return
	}
	value = starlark.MakeInt(int(cell))
	return
}

func (hs *host) setMem(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var addr, v int
	err = starlark.UnpackPositionalArgs("set_mem", args, kwargs, 2, &addr, &v)
	if err != nil {
		return
	}
	b, err := byteArg(v)
	if err != nil {
		return
	}
	err = hs.emu.Cpu.WriteMemory(addr, b)
	value = starlark.None
	return
}

func (hs *host) pc(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	err = noArgs("pc", args, kwargs)
	value = starlark.MakeInt(hs.emu.Pc())
	return
}

func (hs *host) flags(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	err = noArgs("flags", args, kwargs)
	value = starlark.MakeInt(int(hs.emu.Cpu.Flags))
	return
}

func (hs *host) ticks(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	err = noArgs("ticks", args, kwargs)
	value = starlark.MakeInt(hs.emu.Ticks())
	return
}

func (hs *host) trace(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	err = noArgs("trace", args, kwargs)
	value = starlark.String(hs.emu.Cpu.Trace())
	return
}

func (hs *host) printed(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	err = noArgs("printed", args, kwargs)
	var elems []starlark.Value
	for _, v := range hs.emu.Console.Printed {
		elems = append(elems, starlark.MakeInt(int(v)))
	}
	value = starlark.NewList(elems)
	return
}
