package io

import (
	"log"

	lua "github.com/yuin/gopher-lua"
)

// Script is a device whose behaviour is defined by a Lua chunk. The
// chunk must define two global functions:
//
//	function load(offset) return value end
//	function store(offset, value) end
//
// Script errors cannot be reported over the bus; they are logged and
// loads return 0.
type Script struct {
	Verbose bool
	Addr    uint8
	Name    string // Chunk name for diagnostics.

	state *lua.LState
}

var _ Device = (*Script)(nil)

// NewScript compiles and runs a Lua chunk, which must define the load
// and store functions.
func NewScript(addr uint8, name string, source string) (script *Script, err error) {
	state := lua.NewState()

	// The chunk must provide its own load, not the base library's.
	state.SetGlobal("load", lua.LNil)

	err = state.DoString(source)
	if err != nil {
		state.Close()
		return
	}

	for _, fn := range []string{"load", "store"} {
		if state.GetGlobal(fn).Type() != lua.LTFunction {
			state.Close()
			err = ErrScriptFunction
			return
		}
	}

	script = &Script{
		Addr:  addr,
		Name:  name,
		state: state,
	}

	return
}

// Close releases the Lua state.
func (sc *Script) Close() {
	if sc.state != nil {
		sc.state.Close()
		sc.state = nil
	}
}

// Address of the script device.
func (sc *Script) Address() uint8 {
	return sc.Addr
}

// Load calls the script's load(offset) function.
func (sc *Script) Load(offset uint8) (value uint8) {
	if sc.state == nil {
		return
	}

	err := sc.state.CallByParam(lua.P{
		Fn:      sc.state.GetGlobal("load"),
		NRet:    1,
		Protect: true,
	}, lua.LNumber(offset))
	if err != nil {
		log.Printf("%v: load: %v", sc.Name, err)
		return
	}

	ret := sc.state.Get(-1)
	sc.state.Pop(1)

	num, ok := ret.(lua.LNumber)
	if !ok {
		if sc.Verbose {
			log.Printf("%v: load: returned %v, not a number", sc.Name, ret.Type())
		}
		return
	}

	value = uint8(int64(num))

	return
}

// Store calls the script's store(offset, value) function.
func (sc *Script) Store(offset uint8, value uint8) {
	if sc.state == nil {
		return
	}

	err := sc.state.CallByParam(lua.P{
		Fn:      sc.state.GetGlobal("store"),
		NRet:    0,
		Protect: true,
	}, lua.LNumber(offset), lua.LNumber(value))
	if err != nil {
		log.Printf("%v: store: %v", sc.Name, err)
	}
}
