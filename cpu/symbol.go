package cpu

import (
	"fmt"
)

// SymbolTable maps label and equate names to addresses.
type SymbolTable map[string]uint8

// Symbol is an operand: either a resolved address, or a named
// reference with a constant offset awaiting resolution.
type Symbol struct {
	Name    string // Label name. Empty when resolved.
	Offset  int8   // Offset applied to the label address.
	Address uint8  // Resolved address.
}

// Resolved returns a resolved symbol for an address.
func Resolved(addr uint8) Symbol {
	return Symbol{Address: addr}
}

// Unresolved returns a reference to a label, plus an offset.
func Unresolved(name string, offset int8) Symbol {
	return Symbol{Name: name, Offset: offset}
}

// IsResolved returns true if the symbol holds an address.
func (sym Symbol) IsResolved() bool {
	return len(sym.Name) == 0
}

// Resolve looks up an unresolved symbol in the table. The offset is
// applied modulo 256.
func (sym Symbol) Resolve(table SymbolTable) (resolved Symbol, err error) {
	if sym.IsResolved() {
		resolved = sym
		return
	}

	addr, ok := table[sym.Name]
	if !ok {
		err = ErrLabelMissing(sym.Name)
		return
	}

	resolved = Resolved(uint8(int16(addr) + int16(sym.Offset)))

	return
}

// String returns the assembly text of the symbol.
func (sym Symbol) String() string {
	if sym.IsResolved() {
		return fmt.Sprintf("#%02x", sym.Address)
	}

	switch {
	case sym.Offset > 0:
		return fmt.Sprintf("$%v+%02x", sym.Name, sym.Offset)
	case sym.Offset < 0:
		return fmt.Sprintf("$%v-%02x", sym.Name, -int16(sym.Offset))
	}

	return "$" + sym.Name
}
