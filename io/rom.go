package io

// Rom is a read-only byte table. Loads return the byte under the cursor
// and advance it; stores move the cursor.
type Rom struct {
	Addr   uint8
	Data   []uint8
	Cursor uint8
}

var _ Device = (*Rom)(nil)

func (rc *Rom) Address() uint8 {
	return rc.Addr
}

func (rc *Rom) Rewind() {
	rc.Cursor = 0
}

func (rc *Rom) Load(offset uint8) (value uint8) {
	if int(rc.Cursor) < len(rc.Data) {
		value = rc.Data[rc.Cursor]
	}
	rc.Cursor++
	return
}

func (rc *Rom) Store(offset uint8, value uint8) {
	rc.Cursor = value
}
