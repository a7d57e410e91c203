package io

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTape_Load(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: bytes.NewBuffer([]byte{0x55, 0xaa})}
	tape.Rewind()

	assert.Equal(uint8(0x55), tape.Load(0))
	assert.False(tape.EOF())
	assert.Equal(uint8(0xaa), tape.Load(0))
	assert.False(tape.EOF())

	assert.Equal(uint8(0), tape.Load(0))
	assert.True(tape.EOF())

	tape.Rewind()
	assert.False(tape.EOF())
}

func TestTape_Store(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	tape := &Tape{Output: output}

	for _, value := range []byte("hello") {
		tape.Store(0, value)
	}

	assert.Equal("hello", output.String())
}

func TestTape_Disconnected(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Addr: 0xc2}

	assert.Equal(uint8(0xc2), tape.Address())
	assert.Equal(uint8(0), tape.Load(0))
	assert.NotPanics(func() { tape.Store(0, 1) })
}
