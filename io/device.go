// Package io provides the memory-mapped device contract and device
// implementations for the Y-CPU. Each device occupies one address slot
// and exchanges single bytes with the CPU: sequential I/O (Tape),
// read-only tables (Rom), queues (Ring), scratch stacks (Temporary),
// and Lua scripted devices (Script).
package io

// Device defines the interface for all memory-mapped devices.
type Device interface {
	// Address returns the fixed bus address of the device.
	Address() uint8
	// Load reads a byte from the device. The offset is relative to
	// the device address.
	Load(offset uint8) uint8
	// Store writes a byte to the device.
	Store(offset uint8, value uint8)
}

// Rewinder is implemented by devices that can be reset to their initial state.
type Rewinder interface {
	Rewind()
}
