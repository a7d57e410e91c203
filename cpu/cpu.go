package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/ycpu/io"
)

// Device is a memory-mapped device interface.
type Device = io.Device

// Address space layout.
const (
	ADDR_REG_ZERO  = 0x00 // Register zero, the program counter.
	ADDR_INST      = 0x01 // Instruction memory, selected bank.
	ADDR_DATA      = 0x80 // Data memory, selected bank.
	ADDR_INST_BANK = 0xc0 // Instruction memory bank select.
	ADDR_DATA_BANK = 0xc1 // Data memory bank select.
	ADDR_DEVICE    = 0xc2 // First device slot.

	INST_SIZE    = 127 // Bytes per instruction memory bank.
	DATA_SIZE    = 64  // Bytes per data memory bank.
	DEVICE_SLOTS = 62  // Number of device slots.
)

var _cpu_defines = map[string]uint8{
	"REG_ZERO":  ADDR_REG_ZERO,
	"INST":      ADDR_INST,
	"DATA":      ADDR_DATA,
	"INST_BANK": ADDR_INST_BANK,
	"DATA_BANK": ADDR_DATA_BANK,
	"DEVICE":    ADDR_DEVICE,
}

// State is the execution state reported by Tick.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	RUNNING = State(0) // running
	HALTED  = State(1) // halted
)

// Cpu is the simulation context for the Y-CPU.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	RegZero uint8       // Register zero; also the program counter.
	Inst    *Bank[byte] // Banked instruction memory.
	Data    *Bank[byte] // Banked data memory.

	Fault  Fault // Result code of the last executed instruction.
	Halted bool  // Set once a halt-on-error instruction faults.
	Ticks  int   // CPU ticks counter.

	device [DEVICE_SLOTS]Device // Device slots.
}

// NewCpu creates a CPU whose every instruction bank holds the program
// image. Devices are placed at their addresses; an address outside the
// device range, or two devices at one address, is an error.
func NewCpu(image []byte, devices ...Device) (cpu *Cpu, err error) {
	if len(image) > INST_SIZE {
		err = fmt.Errorf("%w: %d > %d", ErrImageSize, len(image), INST_SIZE)
		return
	}

	cp := &Cpu{
		Inst: NewBank(INST_SIZE, image),
		Data: NewBank[byte](DATA_SIZE, nil),
	}

	for _, dev := range devices {
		addr := dev.Address()
		if addr < ADDR_DEVICE {
			err = ErrDeviceAddress(addr)
			return
		}
		slot := int(addr - ADDR_DEVICE)
		if cp.device[slot] != nil {
			err = fmt.Errorf("%w: 0x%02x", ErrDeviceDuplicate, addr)
			return
		}
		cp.device[slot] = dev
	}

	cpu = cp

	return
}

// Defines for the cpu address space.
func (cpu *Cpu) Defines() iter.Seq2[string, uint8] {
	return maps.All(_cpu_defines)
}

// Device returns the device at a bus address.
func (cpu *Cpu) Device(addr uint8) (dev Device, ok bool) {
	if addr < ADDR_DEVICE {
		return
	}

	dev = cpu.device[addr-ADDR_DEVICE]
	ok = dev != nil
	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 9s: %02x\n", "reg_zero", cpu.RegZero)
	text += fmt.Sprintf("% 9s: %02x\n", "inst_bank", cpu.Inst.Selected())
	text += fmt.Sprintf("% 9s: %02x\n", "data_bank", cpu.Data.Selected())
	text += fmt.Sprintf("% 9s: %v\n", "halted", cpu.Halted)
	if cpu.Fault != 0 {
		text += fmt.Sprintf("% 9s: %v\n", "fault", cpu.Fault)
	}

	data, _ := cpu.Data.Slice(0, DATA_SIZE)
	for n := 0; n < len(data); n += 16 {
		text += fmt.Sprintf("% 9s: % x\n", fmt.Sprintf("%02x", ADDR_DATA+n), data[n:n+16])
	}

	return
}

// Load reads a byte from the address space.
func (cpu *Cpu) Load(addr uint8) (value uint8, err error) {
	var ok bool

	switch {
	case addr == ADDR_REG_ZERO:
		value, ok = cpu.RegZero, true
	case addr < ADDR_DATA:
		value, ok = cpu.Inst.Get(int(addr))
	case addr < ADDR_INST_BANK:
		value, ok = cpu.Data.Get(int(addr - ADDR_DATA))
	case addr == ADDR_INST_BANK:
		value, ok = cpu.Inst.Selected(), true
	case addr == ADDR_DATA_BANK:
		value, ok = cpu.Data.Selected(), true
	default:
		var dev Device
		dev, ok = cpu.Device(addr)
		if ok {
			value = dev.Load(addr - dev.Address())
		}
	}

	if !ok {
		err = fmt.Errorf("%w: 0x%02x", ErrAddressInvalid, addr)
	}

	return
}

// Push writes a byte to the address space.
func (cpu *Cpu) Push(addr uint8, value uint8) (err error) {
	var ok bool

	switch {
	case addr == ADDR_REG_ZERO:
		cpu.RegZero, ok = value, true
	case addr < ADDR_DATA:
		ok = cpu.Inst.Set(int(addr), value)
	case addr < ADDR_INST_BANK:
		ok = cpu.Data.Set(int(addr-ADDR_DATA), value)
	case addr == ADDR_INST_BANK:
		cpu.Inst.Select(value)
		ok = true
	case addr == ADDR_DATA_BANK:
		cpu.Data.Select(value)
		ok = true
	default:
		var dev Device
		dev, ok = cpu.Device(addr)
		if ok {
			dev.Store(addr-dev.Address(), value)
		}
	}

	if !ok {
		err = fmt.Errorf("%w: 0x%02x", ErrAddressInvalid, addr)
	}

	return
}

// Fetch fetches the instruction at register zero from the selected
// instruction bank. Bytes past the end of the bank read as zero.
func (cpu *Cpu) Fetch() (inst Instruction) {
	var bytes [INSTRUCTION_SIZE]byte
	for n := range bytes {
		bytes[n], _ = cpu.Inst.Get(int(cpu.RegZero + uint8(n)))
	}

	inst = Decode(bytes)

	return
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (state State) {
	if cpu.Halted {
		return HALTED
	}

	inst := cpu.Fetch()

	return cpu.Execute(inst)
}

// Execute executes a single decoded instruction, and advances register
// zero past it unless the instruction halts the CPU.
func (cpu *Cpu) Execute(inst Instruction) (state State) {
	if cpu.Verbose {
		log.Printf("%02x: %v", cpu.RegZero, inst)
	}

	var fault Fault
	step := uint8(INSTRUCTION_SIZE)

	arg1 := inst.Arg1.Address
	arg2 := inst.Arg2.Address
	opts := inst.Options

	load := func(addr uint8, bit Fault) (value uint8) {
		value, err := cpu.Load(addr)
		if err != nil {
			fault |= bit
		}
		return
	}

	push := func(addr uint8, bit Fault, value uint8) {
		err := cpu.Push(addr, value)
		if err != nil {
			fault |= bit
		}
	}

	switch inst.Code {
	case OP_NOOP:
		// pass
	case OP_AND:
		a := load(arg1, FAULT_ARG1)
		b := load(arg2, FAULT_ARG2)
		push(arg1, FAULT_ARG1, a&b)
	case OP_OR:
		a := load(arg1, FAULT_ARG1)
		b := load(arg2, FAULT_ARG2)
		push(arg1, FAULT_ARG1, a|b)
	case OP_NOT:
		a := load(arg1, FAULT_ARG1)
		push(arg1, FAULT_ARG1, ^a)
	case OP_ADD, OP_SUB, OP_MUL, OP_DIV:
		a := widen(load(arg1, FAULT_ARG1), opts.Arg1Signed())
		b := widen(load(arg2, FAULT_ARG2), opts.Arg2Signed())
		var result int16
		switch inst.Code {
		case OP_ADD:
			result = a + b
		case OP_SUB:
			result = a - b
		case OP_MUL:
			result = a * b
		case OP_DIV:
			if b == 0 {
				fault |= FAULT_DIVIDE
				break
			}
			result = a / b
		}
		if fault&FAULT_DIVIDE == 0 {
			push(arg1, FAULT_ARG1, uint8(result))
		}
	case OP_SL:
		a := load(arg1, FAULT_ARG1)
		push(arg1, FAULT_ARG1, a<<1)
	case OP_SR:
		a := load(arg1, FAULT_ARG1)
		push(arg1, FAULT_ARG1, a>>1)
	case OP_RL:
		a := load(arg1, FAULT_ARG1)
		push(arg1, FAULT_ARG1, a<<1|a>>7)
	case OP_RR:
		a := load(arg1, FAULT_ARG1)
		push(arg1, FAULT_ARG1, a>>1|a<<7)
	case OP_COPY:
		a := load(arg1, FAULT_ARG1)
		push(arg2, FAULT_ARG2, a)
	case OP_COMPEQ, OP_COMPGT, OP_COMPLT:
		a := widen(load(arg1, FAULT_ARG1), opts.Arg1Signed())
		b := widen(load(arg2, FAULT_ARG2), opts.Arg2Signed())
		var cond bool
		switch inst.Code {
		case OP_COMPEQ:
			cond = a == b
		case OP_COMPGT:
			cond = a > b
		case OP_COMPLT:
			cond = a < b
		}
		// A false comparison skips the next instruction.
		if !cond {
			step += INSTRUCTION_SIZE
		}
	}

	cpu.Fault = fault
	cpu.Ticks++

	if fault != 0 && opts.HaltOnError() {
		if cpu.Verbose {
			log.Printf("%02x: halted, %v", cpu.RegZero, fault)
		}
		cpu.Halted = true
		return HALTED
	}

	cpu.RegZero += step

	return RUNNING
}

// widen converts an operand to the 16-bit accumulator domain.
func widen(value uint8, signed bool) int16 {
	if signed {
		return int16(int8(value))
	}
	return int16(value)
}
