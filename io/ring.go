package io

const (
	// RING_DEFAULT_CAPACITY is the default capacity in bytes for a new ring.
	RING_DEFAULT_CAPACITY = 256
)

// Ring represents a circular FIFO byte queue. Stores append to the queue,
// and are dropped when the ring is full. Loads remove the oldest byte, or
// return 0 when the ring is empty.
type Ring struct {
	Addr     uint8
	Capacity int

	ReadIndex int
	Size      int
	Data      []uint8

	Dropped int // Count of stores lost to a full ring.
}

var _ Device = (*Ring)(nil)

// Address of the ring device.
func (ring *Ring) Address() uint8 {
	return ring.Addr
}

// Rewind empties the ring, allocating the data buffer if needed.
func (ring *Ring) Rewind() {
	if ring.Capacity == 0 {
		ring.Capacity = RING_DEFAULT_CAPACITY
	}
	if len(ring.Data) != ring.Capacity {
		ring.Data = make([]uint8, ring.Capacity)
	}

	ring.ReadIndex = 0
	ring.Size = 0
	ring.Dropped = 0
}

// Full returns true if no more bytes can be stored.
func (ring *Ring) Full() bool {
	return ring.Size >= len(ring.Data)
}

// Empty returns true if there are no bytes to load.
func (ring *Ring) Empty() bool {
	return ring.Size == 0
}

// Load removes and returns the oldest byte in the ring.
func (ring *Ring) Load(offset uint8) (value uint8) {
	if ring.Empty() {
		return
	}

	value = ring.Data[ring.ReadIndex]
	ring.ReadIndex = (ring.ReadIndex + 1) % len(ring.Data)
	ring.Size--

	return
}

// Store appends a byte to the ring.
func (ring *Ring) Store(offset uint8, value uint8) {
	if ring.Data == nil {
		ring.Rewind()
	}

	if ring.Full() {
		ring.Dropped++
		return
	}

	ring.Data[(ring.ReadIndex+ring.Size)%len(ring.Data)] = value
	ring.Size++
}
