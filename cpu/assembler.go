// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"io"
	"iter"
	"log"
	"maps"
	"slices"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Assembler is a two pass assembler for the Y-CPU system.
//
// Pass one parses every line, recording the address of each label and
// the value of each equate. Pass two resolves every label reference.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine SymbolTable // Predefines
	Symbol    SymbolTable // Map of labels and equates to addresses.
}

// Predefine defines a symbol that is present before assembly begins.
func (asm *Assembler) Predefine(name string, value uint8) {
	if asm.predefine == nil {
		asm.predefine = SymbolTable{name: value}
	} else {
		asm.predefine[name] = value
	}
}

// PredefineAll predefines every symbol of a sequence.
func (asm *Assembler) PredefineAll(defines iter.Seq2[string, uint8]) {
	for name, value := range defines {
		asm.Predefine(name, value)
	}
}

// currentIp gets the address of the next instruction.
func (asm *Assembler) currentIp() int {
	if len(asm.Opcode) == 0 {
		return 0
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Ip + INSTRUCTION_SIZE
}

// define adds a new symbol.
func (asm *Assembler) define(name string, value uint8) (err error) {
	if len(name) == 0 || strings.ContainsAny(name, "+-") {
		err = ErrLabelSyntax(name)
		return
	}

	_, ok := asm.Symbol[name]
	if ok {
		err = ErrLabelDuplicate
		return
	}

	if asm.Verbose {
		log.Printf("  %v = 0x%02x", name, value)
	}

	asm.Symbol[name] = value

	return
}

// evaluate does compile-time .equ evaluations. All symbols defined so
// far are visible to the expression.
func (asm *Assembler) evaluate(expr string) (value uint8, err error) {
	thread := starlark.Thread{Name: "equ"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, addr := range asm.Symbol {
		pred[key] = starlark.MakeInt(int(addr))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < -128 || st_int64 > 255 {
		err = ErrParseExpression(expr)
		return
	}
	value = uint8(st_int64)
	return
}

// parseLine parses a single non-empty, non-comment line.
func (asm *Assembler) parseLine(line string, lineno int) (err error) {
	words := strings.Fields(line)

	// .equ NAME EXPR
	if words[0] == ".equ" {
		if len(words) < 3 {
			err = ErrEquateSyntax
			return
		}
		var value uint8
		value, err = asm.evaluate(strings.Join(words[2:], " "))
		if err != nil {
			return
		}
		err = asm.define(words[1], value)
		return
	}

	// $LABEL
	if strings.HasPrefix(words[0], "$") {
		if len(words) != 1 {
			err = ErrLabelSyntax(line)
			return
		}
		ip := asm.currentIp()
		if ip > INST_SIZE {
			err = ErrProgramSize
			return
		}
		err = asm.define(words[0][1:], uint8(ip))
		return
	}

	inst, err := ParseText(line)
	if err != nil {
		return
	}

	ip := asm.currentIp()
	if ip+INSTRUCTION_SIZE > INST_SIZE {
		err = ErrProgramSize
		return
	}

	asm.Opcode = append(asm.Opcode, Opcode{LineNo: lineno, Ip: ip, Words: words, Instruction: inst})

	return
}

// Parse parses an input stream into a Program with all operands resolved.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Opcode = asm.Opcode[:0]
	asm.Symbol = maps.Clone(asm.predefine)
	if asm.Symbol == nil {
		asm.Symbol = SymbolTable{}
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line = strings.TrimSpace(text)
		if len(line) == 0 || strings.HasPrefix(line, "//") {
			continue
		}

		err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Resolve every label reference.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]
		lineno = op.LineNo
		line = strings.Join(op.Words, " ")

		op.Instruction.Arg1, err = op.Instruction.Arg1.Resolve(asm.Symbol)
		if err != nil {
			return
		}
		op.Instruction.Arg2, err = op.Instruction.Arg2.Resolve(asm.Symbol)
		if err != nil {
			return
		}
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}
