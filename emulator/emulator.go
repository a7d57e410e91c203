// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"iter"
	"log"
	"maps"

	"github.com/ezrec/ycpu/cpu"
	"github.com/ezrec/ycpu/internal"
	"github.com/ezrec/ycpu/io"
)

// Device slots of the standard device set.
const (
	TAPE_ADDRESS = cpu.ADDR_DEVICE + 0 // Tape byte stream.
	ROM_ADDRESS  = cpu.ADDR_DEVICE + 1 // Read-only table.
	RING_ADDRESS = cpu.ADDR_DEVICE + 2 // FIFO byte queue.
	TEMP_ADDRESS = cpu.ADDR_DEVICE + 3 // LIFO scratch stack.

	RING_CAPACITY = 64
	TEMP_CAPACITY = 64
)

var _emulator_defines = map[string]uint8{
	"TAPE": TAPE_ADDRESS,
	"ROM":  ROM_ADDRESS,
	"RING": RING_ADDRESS,
	"TEMP": TEMP_ADDRESS,
}

// Emulator state. CPU + standard devices + program listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.
	Limit    int          // Maximum ticks after a reset; zero is unlimited.

	Tape      io.Tape      // Tape IO device.
	Rom       io.Rom       // ROM device.
	Ring      io.Ring      // Ring queue device.
	Temporary io.Temporary // Temporary stack device.

	extra []io.Device
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Program: &cpu.Program{},
	}

	emu.Tape.Addr = TAPE_ADDRESS
	emu.Rom.Addr = ROM_ADDRESS
	emu.Ring.Addr = RING_ADDRESS
	emu.Ring.Capacity = RING_CAPACITY
	emu.Temporary.Addr = TEMP_ADDRESS
	emu.Temporary.Capacity = TEMP_CAPACITY

	return
}

// Attach adds a device to the emulator. It is placed on the bus at the
// next Reset.
func (emu *Emulator) Attach(dev io.Device) {
	emu.extra = append(emu.extra, dev)
}

// Devices iterates over all devices of the emulator.
func (emu *Emulator) Devices() iter.Seq[io.Device] {
	return func(yield func(io.Device) bool) {
		for _, dev := range []io.Device{&emu.Tape, &emu.Rom, &emu.Ring, &emu.Temporary} {
			if !yield(dev) {
				return
			}
		}
		for _, dev := range emu.extra {
			if !yield(dev) {
				return
			}
		}
	}
}

// Defines returns an iterator over all of the predefined symbols.
func (emu *Emulator) Defines() iter.Seq2[string, uint8] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines), (&cpu.Cpu{}).Defines())
}

// Reset the emulator state, rebuilding the CPU from the program.
func (emu *Emulator) Reset() (err error) {
	image, err := emu.Program.Binary()
	if err != nil {
		return
	}

	var devices []cpu.Device
	for dev := range emu.Devices() {
		if rw, ok := dev.(io.Rewinder); ok {
			rw.Rewind()
		}
		devices = append(devices, dev)
	}

	emu.Cpu, err = cpu.NewCpu(image, devices...)
	if err != nil {
		return
	}

	emu.Cpu.Verbose = emu.Verbose

	return
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	if emu.Cpu == nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Cpu.RegZero)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Cpu == nil {
		err = ErrNotReset
		return
	}

	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	if emu.Limit > 0 && emu.Cpu.Ticks >= emu.Limit {
		err = ErrTickLimit
		return
	}

	inst := emu.Cpu.Fetch()
	if emu.Verbose && inst.Options.DebugInfo() {
		log.Printf("line %d: %v\n%v", lineno, inst, emu.Cpu.String())
	}

	state := emu.Cpu.Tick()
	if state == cpu.HALTED {
		done = true
		if emu.Verbose {
			log.Printf("line %d: %v", lineno, emu.Cpu.Fault)
		}
	}

	return
}

// Run ticks the emulator until the CPU halts, or an error occurs.
func (emu *Emulator) Run() (err error) {
	for {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}

// Halt reports why the CPU halted, or nil if it is still running.
func (emu *Emulator) Halt() (err error) {
	if emu.Cpu == nil || !emu.Cpu.Halted {
		return
	}

	err = &ErrRuntime{LineNo: emu.LineNo(), Err: emu.Cpu.Fault}

	return
}
