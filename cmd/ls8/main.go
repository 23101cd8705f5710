// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/k0kubun/pp/v3"

	"github.com/ezrec/ls8/emulator"
	"github.com/ezrec/ls8/script"
)

func main() {
	os.Exit(run(os.Args[0], os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line args, and returns the process exit code.
func run(prog string, args []string, stdout io.Writer, stderr io.Writer) int {
	var verbose bool
	var trace bool
	var dump bool
	var starfile string

	logger := log.New(stderr, "", 0)

	flags := flag.NewFlagSet(prog, flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.BoolVar(&verbose, "v", false, "Verbose mode")
	flags.BoolVar(&trace, "t", false, "Trace every instruction")
	flags.BoolVar(&dump, "d", false, "Dump machine state on exit")
	flags.StringVar(&starfile, "s", "", ".star script to drive the machine")

	err := flags.Parse(args)
	if err != nil || flags.NArg() != 1 {
		logger.Printf("Proper usage: %v progname", filepath.Base(prog))
		return emulator.EXIT_FAULT
	}

	image := flags.Arg(0)
	dir, name := filepath.Split(filepath.Clean(image))
	if len(dir) == 0 {
		dir = "."
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Trace = trace
	emu.Console.Output = stdout

	if dump {
		defer func() {
			pp.Fprintln(stderr, emu.Cpu)
		}()
	}

	err = emu.LoadFile(os.DirFS(dir), name)
	if err != nil {
		logger.Printf("%v: %v", image, err)
		return emulator.ExitCode(err)
	}

	if len(starfile) != 0 {
		var src []byte
		src, err = os.ReadFile(starfile)
		if err != nil {
			logger.Printf("%v: %v", starfile, err)
			return emulator.EXIT_FAULT
		}
		_, err = script.Run(emu, starfile, src)
	} else {
		err = emu.Run()
	}

	if err != nil {
		logger.Printf("%v: %v", image, err)
		return emulator.ExitCode(err)
	}

	return emulator.EXIT_OK
}
