package cpu

// BANK_COUNT is the number of banks in every banked memory.
const BANK_COUNT = 256

// Bank is a banked memory: BANK_COUNT independent arrays of Size()
// elements, held in one arena. Only the selected bank is visible.
// Selecting a bank never copies or clears content.
type Bank[T any] struct {
	size    int
	pointer uint8
	content []T
}

// NewBank creates a banked memory, filling every bank with initial.
// The initial content is truncated or zero-extended to size.
func NewBank[T any](size int, initial []T) (bank *Bank[T]) {
	bank = &Bank[T]{
		size:    size,
		content: make([]T, BANK_COUNT*size),
	}

	if len(initial) > size {
		initial = initial[:size]
	}

	for n := range BANK_COUNT {
		copy(bank.content[n*size:], initial)
	}

	return
}

// Size returns the number of elements in each bank.
func (bank *Bank[T]) Size() int {
	return bank.size
}

// Selected returns the selected bank.
func (bank *Bank[T]) Selected() uint8 {
	return bank.pointer
}

// Select selects the bank used by subsequent accesses.
func (bank *Bank[T]) Select(pointer uint8) {
	bank.pointer = pointer
}

// Get returns an element from the selected bank.
func (bank *Bank[T]) Get(index int) (value T, ok bool) {
	if index < 0 || index >= bank.size {
		return
	}

	value = bank.content[int(bank.pointer)*bank.size+index]
	ok = true
	return
}

// Set sets an element in the selected bank.
func (bank *Bank[T]) Set(index int, value T) (ok bool) {
	if index < 0 || index >= bank.size {
		return
	}

	bank.content[int(bank.pointer)*bank.size+index] = value
	ok = true
	return
}

// Slice returns the [lo, hi) range of the selected bank. The slice
// aliases the bank content.
func (bank *Bank[T]) Slice(lo, hi int) (values []T, ok bool) {
	if lo < 0 || hi > bank.size || lo > hi {
		return
	}

	base := int(bank.pointer) * bank.size
	values = bank.content[base+lo : base+hi : base+hi]
	ok = true
	return
}
