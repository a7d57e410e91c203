package cpu

import (
	"errors"
	"strings"

	"github.com/ezrec/ycpu/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrAddressInvalid  = errors.New(f("address invalid"))
	ErrDeviceDuplicate = errors.New(f("device slot duplicated"))
	ErrImageSize       = errors.New(f("program image too large"))

	// Codec errors
	ErrSymbolUnresolved = errors.New(f("symbol unresolved"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrOffsetOrphan    = errors.New(f("offset without symbol"))
	ErrOffsetResolved  = errors.New(f("offset applied to literal"))
	ErrOpcodeExtraArgs = errors.New(f("excessive arguments"))
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrOpcodeMissing   = errors.New(f("opcode missing"))
	ErrOperandMissing  = errors.New(f("operand missing"))
	ErrProgramSize     = errors.New(f("program exceeds instruction bank"))
)

// Fault is the per-instruction result code. Each addressing or
// arithmetic failure sets a bit.
type Fault uint8

const (
	FAULT_ARG1   = Fault(1 << 0) // Operand 1 address invalid.
	FAULT_ARG2   = Fault(1 << 1) // Operand 2 address invalid.
	FAULT_DIVIDE = Fault(1 << 2) // Division by zero.
)

func (ft Fault) Error() string {
	if ft == 0 {
		return f("no fault")
	}

	var names []string
	if ft&FAULT_ARG1 != 0 {
		names = append(names, f("arg1"))
	}
	if ft&FAULT_ARG2 != 0 {
		names = append(names, f("arg2"))
	}
	if ft&FAULT_DIVIDE != 0 {
		names = append(names, f("divide"))
	}
	return f("fault %v", strings.Join(names, ","))
}

// Is matches if all the bits of the target fault are set.
func (ft Fault) Is(err error) bool {
	target, ok := err.(Fault)
	return ok && target != 0 && (ft&target) == target
}

type ErrDeviceAddress uint8

func (err ErrDeviceAddress) Error() string {
	return f("device address 0x%02x outside 0x%02x-0x%02x", uint8(err), ADDR_DEVICE, ADDR_DEVICE+DEVICE_SLOTS-1)
}

type ErrBinarySize int

func (err ErrBinarySize) Error() string {
	return f("binary size %d is not a multiple of %d", int(err), INSTRUCTION_SIZE)
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrLabelSyntax string

func (el ErrLabelSyntax) Error() string {
	return f("'%v' is not a label", string(el))
}

type ErrOptionSyntax string

func (err ErrOptionSyntax) Error() string {
	return f("':%v' is not an option field", string(err))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' is not a value or label", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f(".equ %v is not a valid expression", string(err))
}
