package io

// Temporary implements a bounded LIFO scratch stack. Stores push a byte,
// dropping the oldest entry when full; loads pop, returning 0 when empty.
type Temporary struct {
	Addr     uint8
	Capacity int // Capacity in bytes.

	Data []uint8
}

var _ Device = (*Temporary)(nil)

// Address of the temporary stack.
func (temp *Temporary) Address() uint8 {
	return temp.Addr
}

// Rewind empties the stack.
func (temp *Temporary) Rewind() {
	temp.Data = temp.Data[:0]
}

// Load pops the most recently stored byte.
func (temp *Temporary) Load(offset uint8) (value uint8) {
	if len(temp.Data) == 0 {
		return
	}

	value = temp.Data[len(temp.Data)-1]
	temp.Data = temp.Data[:len(temp.Data)-1]

	return
}

// Store pushes a byte onto the stack.
func (temp *Temporary) Store(offset uint8, value uint8) {
	if temp.Capacity > 0 && len(temp.Data) >= temp.Capacity {
		temp.Data = append(temp.Data[:0], temp.Data[1:]...)
	}

	temp.Data = append(temp.Data, value)
}
