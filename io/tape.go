package io

import (
	"io"
)

// Tape provides sequential byte I/O. Loads read the next byte from
// Input, or 0 once the input is exhausted. Stores write a byte to Output.
type Tape struct {
	Addr   uint8
	Input  io.Reader
	Output io.Writer

	eof bool
}

var _ Device = (*Tape)(nil)

// Address of the tape device.
func (tc *Tape) Address() uint8 {
	return tc.Addr
}

// Rewind is not possible on a tape; it only clears the end of input marker.
func (tc *Tape) Rewind() {
	tc.eof = false
}

// EOF returns true once a load has found the input exhausted.
func (tc *Tape) EOF() bool {
	return tc.eof
}

// Load reads the next input byte.
func (tc *Tape) Load(offset uint8) (value uint8) {
	if tc.Input == nil || tc.eof {
		return
	}

	var one [1]byte
	_, err := io.ReadFull(tc.Input, one[:])
	if err != nil {
		tc.eof = true
		return
	}

	value = one[0]
	return
}

// Store writes a byte to the output stream.
func (tc *Tape) Store(offset uint8, value uint8) {
	if tc.Output == nil {
		return
	}

	tc.Output.Write([]byte{value})
}
