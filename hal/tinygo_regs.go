//go:build tinygo && baremetal

package hal

import (
	"runtime/interrupt"
	"runtime/volatile"
	"unsafe"
)

// mmioRegisters accesses the SoC registers directly.
//
// SetBits/ClearBits are read-modify-write on the bus, so they run with
// interrupts masked. GPIO output changes use the W1TS/W1TC registers through
// Store and need no masking.
type mmioRegisters struct{}

func reg32(addr uintptr) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(addr))
}

func (mmioRegisters) Load(addr uintptr) uint32 {
	return reg32(addr).Get()
}

func (mmioRegisters) Store(addr uintptr, v uint32) {
	reg32(addr).Set(v)
}

func (mmioRegisters) SetBits(addr uintptr, mask uint32) {
	state := interrupt.Disable()
	reg32(addr).SetBits(mask)
	interrupt.Restore(state)
}

func (mmioRegisters) ClearBits(addr uintptr, mask uint32) {
	state := interrupt.Disable()
	reg32(addr).ClearBits(mask)
	interrupt.Restore(state)
}
