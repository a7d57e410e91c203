package cpu

import (
	"fmt"
	"strconv"
	"strings"
)

// INSTRUCTION_SIZE is the size in bytes of every encoded instruction.
const INSTRUCTION_SIZE = 3

// OpCode is the operation selected by the low nibble of an instruction.
type OpCode int

//go:generate go tool stringer -linecomment -type=OpCode
const (
	OP_NOOP   = OpCode(0)  // NOOP
	OP_AND    = OpCode(1)  // AND
	OP_OR     = OpCode(2)  // OR
	OP_NOT    = OpCode(3)  // NOT
	OP_ADD    = OpCode(4)  // ADD
	OP_SUB    = OpCode(5)  // SUB
	OP_MUL    = OpCode(6)  // MUL
	OP_DIV    = OpCode(7)  // DIV
	OP_SL     = OpCode(8)  // SL
	OP_SR     = OpCode(9)  // SR
	OP_RL     = OpCode(10) // RL
	OP_RR     = OpCode(11) // RR
	OP_COPY   = OpCode(12) // COPY
	OP_COMPEQ = OpCode(13) // COMPEQ
	OP_COMPGT = OpCode(14) // COMPGT
	OP_COMPLT = OpCode(15) // COMPLT
)

// OP_COUNT is the number of opcodes; it exactly fills the 4-bit field.
const OP_COUNT = 16

// mnemonicMap maps assembly mnemonics to opcodes.
var mnemonicMap = func() map[string]OpCode {
	mnemonics := make(map[string]OpCode, OP_COUNT)
	for code := range OpCode(OP_COUNT) {
		mnemonics[code.String()] = code
	}
	return mnemonics
}()

// OpOptions are the four option flags held in the high nibble of an
// instruction. Bit 3 is the first character of a ':' option field.
type OpOptions uint8

const (
	OPT_HALT_ON_ERROR = OpOptions(1 << 3) // Halt if the instruction faults.
	OPT_DEBUG_INFO    = OpOptions(1 << 2) // Reserved for tooling.
	OPT_ARG1_SIGNED   = OpOptions(1 << 1) // Operand 1 is two's-complement.
	OPT_ARG2_SIGNED   = OpOptions(1 << 0) // Operand 2 is two's-complement.

	OPT_MASK  = OpOptions(0xf)
	OPT_WIDTH = 4
)

// HaltOnError returns true if a faulting instruction should halt the CPU.
func (opt OpOptions) HaltOnError() bool {
	return (opt & OPT_HALT_ON_ERROR) != 0
}

// DebugInfo returns true if the store-debug-info flag is set.
func (opt OpOptions) DebugInfo() bool {
	return (opt & OPT_DEBUG_INFO) != 0
}

// Arg1Signed returns true if operand 1 is treated as signed.
func (opt OpOptions) Arg1Signed() bool {
	return (opt & OPT_ARG1_SIGNED) != 0
}

// Arg2Signed returns true if operand 2 is treated as signed.
func (opt OpOptions) Arg2Signed() bool {
	return (opt & OPT_ARG2_SIGNED) != 0
}

// String returns the positional ':' option field, ie ":1010".
func (opt OpOptions) String() string {
	var field [1 + OPT_WIDTH]byte
	field[0] = ':'
	for n := range OPT_WIDTH {
		field[1+n] = '0'
		if opt&(1<<(OPT_WIDTH-1-n)) != 0 {
			field[1+n] = '1'
		}
	}
	return string(field[:])
}

// parseOptions parses the digits of a ':' option field.
func parseOptions(field string) (opt OpOptions, err error) {
	if len(field) == 0 || len(field) > OPT_WIDTH {
		err = ErrOptionSyntax(field)
		return
	}

	for n, ch := range []byte(field) {
		switch ch {
		case '1':
			opt |= 1 << (OPT_WIDTH - 1 - n)
		case '0':
		default:
			err = ErrOptionSyntax(field)
			return
		}
	}

	return
}

// parseOffsets sums signed hexadecimal offsets, ie "+05" "-1f".
func parseOffsets(words []string) (offset int8, err error) {
	for _, word := range words {
		var value int64
		value, err = strconv.ParseInt(word, 16, 8)
		if err != nil {
			err = ErrParseNumber(word)
			return
		}
		offset += int8(value)
	}

	return
}

// Instruction is a decoded or assembled instruction. All instructions
// carry two operands; unary operations ignore the second.
type Instruction struct {
	Code    OpCode
	Options OpOptions
	Arg1    Symbol
	Arg2    Symbol
}

// Decode decodes a 3 byte instruction. Every input decodes.
func Decode(bytes [INSTRUCTION_SIZE]byte) (inst Instruction) {
	inst = Instruction{
		Code:    OpCode(bytes[0] & 0xf),
		Options: OpOptions(bytes[0]>>4) & OPT_MASK,
		Arg1:    Resolved(bytes[1]),
		Arg2:    Resolved(bytes[2]),
	}

	return
}

// DecodeAll decodes a binary image into instructions.
func DecodeAll(bin []byte) (insts []Instruction, err error) {
	if len(bin)%INSTRUCTION_SIZE != 0 {
		err = ErrBinarySize(len(bin))
		return
	}

	for n := 0; n < len(bin); n += INSTRUCTION_SIZE {
		insts = append(insts, Decode([INSTRUCTION_SIZE]byte(bin[n:n+INSTRUCTION_SIZE])))
	}

	return
}

// Encode encodes the instruction. Both operands must be resolved.
func (inst Instruction) Encode() (bytes [INSTRUCTION_SIZE]byte, err error) {
	for _, arg := range []Symbol{inst.Arg1, inst.Arg2} {
		if !arg.IsResolved() {
			err = fmt.Errorf("%w: %v", ErrSymbolUnresolved, arg.Name)
			return
		}
	}

	bytes[0] = byte(inst.Options&OPT_MASK)<<4 | byte(inst.Code&0xf)
	bytes[1] = inst.Arg1.Address
	bytes[2] = inst.Arg2.Address

	return
}

// String returns the assembly text of the instruction.
func (inst Instruction) String() string {
	words := []string{inst.Code.String()}
	if inst.Options != 0 {
		words = append(words, inst.Options.String())
	}
	words = append(words, inst.Arg1.String(), inst.Arg2.String())

	return strings.Join(words, " ")
}

// ParseText parses a single line of assembly text into an instruction.
//
// The first word is the mnemonic. Following words are typed by prefix:
//
//	:FLAGS  up to four '0'/'1' option flags, positional
//	#HEX    literal address
//	$NAME   label reference, optionally followed by +HEX or -HEX offsets
//	+HEX    offset added to the preceding label reference
//	-HEX    offset subtracted from the preceding label reference
//
// Exactly two operands must be present.
func ParseText(line string) (inst Instruction, err error) {
	words := strings.Fields(line)
	if len(words) == 0 {
		err = ErrOpcodeMissing
		return
	}

	code, ok := mnemonicMap[words[0]]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	var opts OpOptions
	var args []Symbol

	for _, word := range words[1:] {
		prefix, value := word[0], word[1:]
		switch prefix {
		case ':':
			var opt OpOptions
			opt, err = parseOptions(value)
			if err != nil {
				return
			}
			opts |= opt
		case '#':
			var addr uint64
			addr, err = strconv.ParseUint(value, 16, 8)
			if err != nil {
				err = ErrParseNumber(word)
				return
			}
			args = append(args, Resolved(uint8(addr)))
		case '$':
			name, offsets, _ := strings.Cut(strings.NewReplacer("+", " +", "-", " -").Replace(value), " ")
			if len(name) == 0 {
				err = ErrLabelSyntax(word)
				return
			}
			var offset int8
			offset, err = parseOffsets(strings.Fields(offsets))
			if err != nil {
				return
			}
			args = append(args, Unresolved(name, offset))
		case '+', '-':
			if len(args) == 0 {
				err = ErrOffsetOrphan
				return
			}
			last := &args[len(args)-1]
			if last.IsResolved() {
				err = ErrOffsetResolved
				return
			}
			var offset int8
			offset, err = parseOffsets([]string{word})
			if err != nil {
				return
			}
			last.Offset += offset
		default:
			err = ErrParseValue(word)
			return
		}
	}

	switch {
	case len(args) < 2:
		err = ErrOperandMissing
		return
	case len(args) > 2:
		err = ErrOpcodeExtraArgs
		return
	}

	inst = Instruction{
		Code:    code,
		Options: opts,
		Arg1:    args[0],
		Arg2:    args[1],
	}

	return
}
