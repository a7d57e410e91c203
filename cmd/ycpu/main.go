// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/tebeka/atexit"
	"golang.org/x/term"

	"github.com/ezrec/ycpu/cpu"
	"github.com/ezrec/ycpu/emulator"
	"github.com/ezrec/ycpu/io"
)

// fatalf logs, runs the exit handlers, and exits.
func fatalf(format string, args ...any) {
	log.Printf(format, args...)
	atexit.Exit(1)
}

// scriptFlag collects ADDR=FILE.lua scripted devices.
type scriptFlag []string

func (sf *scriptFlag) String() string {
	return strings.Join(*sf, ",")
}

func (sf *scriptFlag) Set(value string) error {
	*sf = append(*sf, value)
	return nil
}

// loadScript creates a scripted device from an ADDR=FILE.lua argument.
func loadScript(arg string) (script *io.Script, err error) {
	addr_text, path, ok := strings.Cut(arg, "=")
	if !ok {
		err = fmt.Errorf("%v: expected ADDR=FILE", arg)
		return
	}

	addr, err := strconv.ParseUint(addr_text, 0, 8)
	if err != nil {
		return
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return
	}

	script, err = io.NewScript(uint8(addr), path, string(source))
	return
}

func main() {
	var compile string
	var binary string
	var rom string
	var save bool
	var input string
	var output string
	var limit int
	var verbose bool
	var scripts scriptFlag

	flag.StringVar(&compile, "c", "", ".ysm file to assemble")
	flag.StringVar(&binary, "b", "", ".bin file to run")
	flag.StringVar(&rom, "r", "", "File to load into the ROM device")
	flag.BoolVar(&save, "s", false, "Save assembled .bin, do not execute")
	flag.StringVar(&input, "i", "-", "Tape input")
	flag.StringVar(&output, "o", "-", "Tape output")
	flag.IntVar(&limit, "n", 0, "Maximum ticks to execute (0 is unlimited)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Var(&scripts, "l", "ADDR=FILE.lua scripted device (repeatable)")

	flag.Parse()

	if flag.NArg() != 0 {
		fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Limit = limit

	var prog *cpu.Program

	// Assemble a new instruction stream.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			fatalf("%v: %v", compile, err)
		}
		atexit.Register(func() { inf.Close() })

		asm := &cpu.Assembler{Verbose: verbose}
		asm.PredefineAll(emu.Defines())
		prog, err = asm.Parse(inf)
		if err != nil {
			fatalf("%v: %v", compile, err)
		}

		if save {
			bin, err := prog.Binary()
			if err != nil {
				fatalf("%v: %v", compile, err)
			}
			path := strings.TrimSuffix(compile, ".ysm") + ".bin"
			err = os.WriteFile(path, bin, 0o644)
			if err != nil {
				fatalf("%v: %v", path, err)
			}
			atexit.Exit(0)
		}
	} else if len(binary) != 0 {
		bin, err := os.ReadFile(binary)
		if err != nil {
			fatalf("%v: %v", binary, err)
		}
		prog, err = cpu.LoadBinary(bin)
		if err != nil {
			fatalf("%v: %v", binary, err)
		}
	} else {
		fatalf("%v: one of -c or -b is required", os.Args[0])
	}

	emu.Program = prog

	if len(rom) != 0 {
		data, err := os.ReadFile(rom)
		if err != nil {
			fatalf("%v: %v", rom, err)
		}
		emu.Rom.Data = data
	}

	for _, arg := range scripts {
		script, err := loadScript(arg)
		if err != nil {
			fatalf("%v: %v", arg, err)
		}
		script.Verbose = verbose
		atexit.Register(script.Close)
		emu.Attach(script)
	}

	if input == "-" {
		emu.Tape.Input = os.Stdin
		fd := int(os.Stdin.Fd())
		if term.IsTerminal(fd) {
			state, err := term.MakeRaw(fd)
			if err != nil {
				fatalf("stdin: %v", err)
			}
			atexit.Register(func() { term.Restore(fd, state) })
		}
	} else {
		inf, err := os.Open(input)
		if err != nil {
			fatalf("%v: %v", input, err)
		}
		atexit.Register(func() { inf.Close() })
		emu.Tape.Input = inf
	}

	if output == "-" {
		emu.Tape.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			fatalf("%v: %v", output, err)
		}
		atexit.Register(func() { ouf.Close() })
		emu.Tape.Output = ouf
	}

	err := emu.Reset()
	if err != nil {
		fatalf("%v", err)
	}

	err = emu.Run()
	if err != nil {
		fatalf("%v", err)
	}

	if verbose {
		log.Printf("%v", emu.Halt())
		log.Printf("ticks: %d\n%v", emu.Cpu.Ticks, emu.Cpu.String())
	}

	atexit.Exit(0)
}
