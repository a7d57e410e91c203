package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBank_Initial(t *testing.T) {
	assert := assert.New(t)

	bank := NewBank(4, []byte{1, 2, 3, 4, 5, 6})
	assert.Equal(4, bank.Size())
	assert.Equal(uint8(0), bank.Selected())

	// Every bank starts with the truncated initial content.
	for _, sel := range []uint8{0, 1, 0x80, 0xff} {
		bank.Select(sel)
		values, ok := bank.Slice(0, 4)
		assert.True(ok)
		assert.Equal([]byte{1, 2, 3, 4}, values, "bank %d", sel)
	}

	short := NewBank(4, []byte{9})
	values, ok := short.Slice(0, 4)
	assert.True(ok)
	assert.Equal([]byte{9, 0, 0, 0}, values)
}

func TestBank_Isolation(t *testing.T) {
	assert := assert.New(t)

	bank := NewBank[byte](8, nil)

	bank.Select(3)
	assert.True(bank.Set(2, 0x33))

	bank.Select(4)
	value, ok := bank.Get(2)
	assert.True(ok)
	assert.Equal(byte(0), value)
	assert.True(bank.Set(2, 0x44))

	// Switching back finds the earlier write unchanged.
	bank.Select(3)
	value, ok = bank.Get(2)
	assert.True(ok)
	assert.Equal(byte(0x33), value)
	assert.Equal(uint8(3), bank.Selected())
}

func TestBank_Bounds(t *testing.T) {
	assert := assert.New(t)

	bank := NewBank[int](8, nil)

	_, ok := bank.Get(-1)
	assert.False(ok)
	_, ok = bank.Get(8)
	assert.False(ok)
	assert.False(bank.Set(8, 1))
	assert.False(bank.Set(-1, 1))

	_, ok = bank.Slice(4, 9)
	assert.False(ok)
	_, ok = bank.Slice(5, 4)
	assert.False(ok)

	// The last bank does not spill past the arena.
	bank.Select(0xff)
	assert.True(bank.Set(7, 42))
	value, ok := bank.Get(7)
	assert.True(ok)
	assert.Equal(42, value)
}
