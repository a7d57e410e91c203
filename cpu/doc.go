// Package cpu implements the microprocessor and assembler for the Y-CPU system.
//
// The CPU is an 8-bit machine with no accumulator. Register zero is the only
// register, and doubles as the program counter. Every instruction is three
// bytes: an opcode and option nibble, then two operand addresses. Operands
// are always addresses in a single 256 byte address space holding register
// zero, banked instruction memory, banked data memory, the two bank select
// registers, and 62 memory-mapped device slots.
//
// The assembler is a two pass assembler: the first pass records labels and
// equates, the second resolves every label reference, plus constant offset,
// before any instruction is encoded.
package cpu
