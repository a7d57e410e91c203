package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRom_Load(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: []uint8{0x10, 0x20, 0x30}}

	assert.Equal(uint8(0x10), rom.Load(0))
	assert.Equal(uint8(0x20), rom.Load(0))
	assert.Equal(uint8(0x30), rom.Load(0))

	// Past the end reads as zero.
	assert.Equal(uint8(0), rom.Load(0))
	assert.Equal(uint8(4), rom.Cursor)
}

func TestRom_Seek(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: []uint8{0x10, 0x20, 0x30}}

	rom.Store(0, 2)
	assert.Equal(uint8(0x30), rom.Load(0))

	rom.Store(0, 0)
	assert.Equal(uint8(0x10), rom.Load(0))

	rom.Rewind()
	assert.Equal(uint8(0), rom.Cursor)

	// Data is never modified.
	assert.Equal([]uint8{0x10, 0x20, 0x30}, rom.Data)
}
