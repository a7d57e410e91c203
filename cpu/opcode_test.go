package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpCode_String(t *testing.T) {
	assert := assert.New(t)

	table := map[OpCode]string{
		OP_NOOP:   "NOOP",
		OP_AND:    "AND",
		OP_OR:     "OR",
		OP_NOT:    "NOT",
		OP_ADD:    "ADD",
		OP_SUB:    "SUB",
		OP_MUL:    "MUL",
		OP_DIV:    "DIV",
		OP_SL:     "SL",
		OP_SR:     "SR",
		OP_RL:     "RL",
		OP_RR:     "RR",
		OP_COPY:   "COPY",
		OP_COMPEQ: "COMPEQ",
		OP_COMPGT: "COMPGT",
		OP_COMPLT: "COMPLT",
	}

	assert.Len(table, OP_COUNT)
	assert.Len(mnemonicMap, OP_COUNT)
	for code, name := range table {
		assert.Equal(name, code.String())
		assert.Equal(code, mnemonicMap[name])
	}
}

func TestOpOptions(t *testing.T) {
	assert := assert.New(t)

	table := [...]struct {
		field string
		opts  OpOptions
	}{
		{":0000", 0},
		{":1000", OPT_HALT_ON_ERROR},
		{":0100", OPT_DEBUG_INFO},
		{":0010", OPT_ARG1_SIGNED},
		{":0001", OPT_ARG2_SIGNED},
		{":1011", OPT_HALT_ON_ERROR | OPT_ARG1_SIGNED | OPT_ARG2_SIGNED},
	}

	for _, entry := range table {
		assert.Equal(entry.field, entry.opts.String())
		opts, err := parseOptions(entry.field[1:])
		assert.NoError(err)
		assert.Equal(entry.opts, opts, entry.field)
	}

	opts := OPT_HALT_ON_ERROR | OPT_ARG2_SIGNED
	assert.True(opts.HaltOnError())
	assert.False(opts.DebugInfo())
	assert.False(opts.Arg1Signed())
	assert.True(opts.Arg2Signed())

	// Short fields are positional from the left.
	opts, err := parseOptions("01")
	assert.NoError(err)
	assert.Equal(OPT_DEBUG_INFO, opts)
}

func TestInstruction_Encode(t *testing.T) {
	assert := assert.New(t)

	table := [...]struct {
		inst  Instruction
		bytes [INSTRUCTION_SIZE]byte
	}{
		{Instruction{Code: OP_NOOP, Arg1: Resolved(0), Arg2: Resolved(0)}, [3]byte{0x00, 0x00, 0x00}},
		{Instruction{Code: OP_COPY, Arg1: Resolved(0xc2), Arg2: Resolved(0xc2)}, [3]byte{0x0c, 0xc2, 0xc2}},
		{Instruction{Code: OP_SUB, Options: OPT_ARG1_SIGNED, Arg1: Resolved(0x80), Arg2: Resolved(0x81)}, [3]byte{0x25, 0x80, 0x81}},
		{Instruction{Code: OP_COMPLT, Options: OPT_MASK, Arg1: Resolved(0xff), Arg2: Resolved(0x01)}, [3]byte{0xff, 0xff, 0x01}},
	}

	for _, entry := range table {
		bytes, err := entry.inst.Encode()
		assert.NoError(err)
		assert.Equal(entry.bytes, bytes, entry.inst.String())
		assert.Equal(entry.inst, Decode(entry.bytes))
	}

	_, err := Instruction{Code: OP_COPY, Arg1: Unresolved("L", 0), Arg2: Resolved(0)}.Encode()
	assert.ErrorIs(err, ErrSymbolUnresolved)
}

func TestInstruction_DecodeAll(t *testing.T) {
	assert := assert.New(t)

	// Every leading byte decodes, and re-encodes to itself.
	for b0 := range 256 {
		bytes := [INSTRUCTION_SIZE]byte{byte(b0), 0x12, 0xfe}
		inst := Decode(bytes)
		assert.Equal(OpCode(b0&0xf), inst.Code)
		assert.Equal(OpOptions(b0>>4), inst.Options)

		again, err := inst.Encode()
		assert.NoError(err)
		assert.Equal(bytes, again)
	}

	insts, err := DecodeAll([]byte{0x0c, 0xc2, 0xc2, 0x84, 0x80, 0x81})
	assert.NoError(err)
	assert.Equal([]Instruction{
		{Code: OP_COPY, Arg1: Resolved(0xc2), Arg2: Resolved(0xc2)},
		{Code: OP_ADD, Options: OPT_HALT_ON_ERROR, Arg1: Resolved(0x80), Arg2: Resolved(0x81)},
	}, insts)

	_, err = DecodeAll([]byte{0x0c, 0xc2})
	assert.ErrorAs(err, new(ErrBinarySize))
}

func TestParseText(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	table := [...]struct {
		line string
		inst Instruction
	}{
		{"NOOP #00 #00", Instruction{Code: OP_NOOP, Arg1: Resolved(0), Arg2: Resolved(0)}},
		{"COPY #c2 #C2", Instruction{Code: OP_COPY, Arg1: Resolved(0xc2), Arg2: Resolved(0xc2)}},
		{"SUB :0010 #80 #81", Instruction{Code: OP_SUB, Options: OPT_ARG1_SIGNED, Arg1: Resolved(0x80), Arg2: Resolved(0x81)}},
		{"COPY #c2 :1 #c2", Instruction{Code: OP_COPY, Options: OPT_HALT_ON_ERROR, Arg1: Resolved(0xc2), Arg2: Resolved(0xc2)}},
		{"ADD $L #01", Instruction{Code: OP_ADD, Arg1: Unresolved("L", 0), Arg2: Resolved(1)}},
		{"ADD $L+05-01 #01", Instruction{Code: OP_ADD, Arg1: Unresolved("L", 4), Arg2: Resolved(1)}},
		{"COPY $L +05 $M -02 +01", Instruction{Code: OP_COPY, Arg1: Unresolved("L", 5), Arg2: Unresolved("M", -1)}},
	}

	for _, entry := range table {
		inst, err := ParseText(entry.line)
		require.NoError(err, entry.line)
		assert.Equal(entry.inst, inst, entry.line)

		// Text round trip.
		again, err := ParseText(inst.String())
		require.NoError(err, inst.String())
		assert.Equal(inst, again, inst.String())
	}
}

func TestParseText_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [...]struct {
		line string
		err  error
	}{
		{"", ErrOpcodeMissing},
		{"MOVE #00 #00", ErrOpcodeInvalid},
		{"copy #00 #00", ErrOpcodeInvalid},
		{"ADD #00", ErrOperandMissing},
		{"NOT #00", ErrOperandMissing},
		{"ADD #00 #01 #02", ErrOpcodeExtraArgs},
		{"ADD #00 +01 #02", ErrOffsetResolved},
		{"ADD +01 #00 #02", ErrOffsetOrphan},
	}

	for _, entry := range table {
		_, err := ParseText(entry.line)
		assert.ErrorIs(err, entry.err, entry.line)
	}

	_, err := ParseText("ADD #100 #00")
	assert.ErrorAs(err, new(ErrParseNumber))

	_, err = ParseText("ADD $L+zz #00")
	assert.ErrorAs(err, new(ErrParseNumber))

	_, err = ParseText("ADD %00 #00")
	assert.ErrorAs(err, new(ErrParseValue))

	_, err = ParseText("ADD $+01 #00")
	assert.ErrorAs(err, new(ErrLabelSyntax))

	_, err = ParseText("ADD :2 #00 #00")
	assert.ErrorAs(err, new(ErrOptionSyntax))

	_, err = ParseText("ADD :10000 #00 #00")
	assert.ErrorAs(err, new(ErrOptionSyntax))
}

func TestSymbol(t *testing.T) {
	assert := assert.New(t)

	table := SymbolTable{"L": 0x10, "END": 0xff}

	sym, err := Unresolved("L", 5).Resolve(table)
	assert.NoError(err)
	assert.Equal(Resolved(0x15), sym)
	assert.Equal("#15", sym.String())

	// Offsets wrap modulo 256.
	sym, err = Unresolved("END", 2).Resolve(table)
	assert.NoError(err)
	assert.Equal(Resolved(0x01), sym)

	sym, err = Unresolved("L", -0x11).Resolve(table)
	assert.NoError(err)
	assert.Equal(Resolved(0xff), sym)

	_, err = Unresolved("MISSING", 0).Resolve(table)
	assert.ErrorAs(err, new(ErrLabelMissing))

	assert.Equal("$L", Unresolved("L", 0).String())
	assert.Equal("$L+05", Unresolved("L", 5).String())
	assert.Equal("$L-80", Unresolved("L", -128).String())
}
