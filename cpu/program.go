package cpu

import (
	"iter"
	"strings"
)

// Opcode represents a line of assembled code with its source location.
type Opcode struct {
	LineNo      int
	Ip          int
	Words       []string
	Instruction Instruction
}

type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int
}

// LoadBinary decodes a binary image into a program listing. Line numbers
// are instruction indexes, counted from 1.
func LoadBinary(bin []byte) (prog *Program, err error) {
	insts, err := DecodeAll(bin)
	if err != nil {
		return
	}

	prog = &Program{}
	for n, inst := range insts {
		prog.Opcodes = append(prog.Opcodes, Opcode{
			LineNo:      n + 1,
			Ip:          n * INSTRUCTION_SIZE,
			Words:       strings.Fields(inst.String()),
			Instruction: inst,
		})
	}

	return
}

// Debug finds the opcode containing an instruction memory address.
func (prog *Program) Debug(ip uint8) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if int(ip) >= op.Ip && int(ip) < op.Ip+INSTRUCTION_SIZE {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(ip) - op.Ip,
			}
			break
		}
	}

	return
}

// Binary encodes the program. Every operand must be resolved.
func (prog *Program) Binary() (bin []byte, err error) {
	for _, op := range prog.Opcodes {
		var bytes [INSTRUCTION_SIZE]byte
		bytes, err = op.Instruction.Encode()
		if err != nil {
			err = &ErrSyntax{LineNo: op.LineNo, Line: strings.Join(op.Words, " "), Err: err}
			return
		}
		bin = append(bin, bytes[:]...)
	}

	return
}

// Instructions iterates over the program's instructions by address.
func (prog *Program) Instructions() iter.Seq2[int, Instruction] {
	return func(yield func(ip int, inst Instruction) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op.Ip, op.Instruction) {
				return
			}
		}
	}
}
