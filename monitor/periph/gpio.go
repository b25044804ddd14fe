// Package periph drives the board's digital IO and LED PWM channel directly
// through SoC registers.
//
// Pin numbers outside the SoC's GPIO range are a programming error: the
// functions panic rather than return errors.
package periph

import (
	"fmt"

	"linkscope/hal"
)

// Pin is an SoC GPIO number.
type Pin uint8

// GPIO is register-level digital IO.
//
// Output level and direction changes are single stores to the write-1-to-set
// and write-1-to-clear registers, so they never race with an interrupt
// touching another pin.
type GPIO struct {
	regs hal.Registers
}

func NewGPIO(regs hal.Registers) GPIO {
	return GPIO{regs: regs}
}

func (p Pin) check() {
	if p >= hal.PadCount {
		panic(fmt.Sprintf("periph: invalid pin %d", p))
	}
}

func (p Pin) pad() uintptr {
	pad := hal.IOMuxPad(uint8(p))
	if pad == 0 {
		panic(fmt.Sprintf("periph: pin %d has no pad", p))
	}
	return pad
}

// bank returns the pin's bit and whether it lives in the high (32..39) bank.
func (p Pin) bank() (bit uint32, high bool) {
	p.check()
	return 1 << (p & 31), p >= 32
}

func (g GPIO) EnableOutput(pin Pin) {
	bit, high := pin.bank()
	if high {
		g.regs.Store(hal.GPIOEnable1W1TS, bit)
		return
	}
	g.regs.Store(hal.GPIOEnableW1TS, bit)
}

func (g GPIO) SetHigh(pin Pin) {
	bit, high := pin.bank()
	if high {
		g.regs.Store(hal.GPIOOut1W1TS, bit)
		return
	}
	g.regs.Store(hal.GPIOOutW1TS, bit)
}

func (g GPIO) SetLow(pin Pin) {
	bit, high := pin.bank()
	if high {
		g.regs.Store(hal.GPIOOut1W1TC, bit)
		return
	}
	g.regs.Store(hal.GPIOOutW1TC, bit)
}

// Toggle inverts the driven output level.
func (g GPIO) Toggle(pin Pin) {
	bit, high := pin.bank()
	out := hal.GPIOOut
	if high {
		out = hal.GPIOOut1
	}
	if g.regs.Load(out)&bit != 0 {
		g.SetLow(pin)
	} else {
		g.SetHigh(pin)
	}
}

// Read returns the sampled input level.
func (g GPIO) Read(pin Pin) bool {
	bit, high := pin.bank()
	in := hal.GPIOIn
	if high {
		in = hal.GPIOIn1
	}
	return g.regs.Load(in)&bit != 0
}

// ConfigureInput switches the pad to GPIO and makes it a pulled-up input.
// Pull-up, pull-down and input-enable are separate register operations.
func (g GPIO) ConfigureInput(pin Pin) {
	pad := pin.pad()
	g.selectGPIO(pad)
	g.regs.SetBits(pad, hal.IOMuxFunPU)
	g.regs.ClearBits(pad, hal.IOMuxFunPD)
	g.regs.SetBits(pad, hal.IOMuxFunIE)
}

// RouteOutput connects a peripheral output signal to the pad through the
// GPIO matrix.
func (g GPIO) RouteOutput(pin Pin, signal uint32) {
	g.selectGPIO(pin.pad())
	g.regs.Store(hal.GPIOFuncOutSel(uint8(pin)), signal)
}

func (g GPIO) selectGPIO(pad uintptr) {
	g.regs.ClearBits(pad, hal.IOMuxMCUSel)
	g.regs.SetBits(pad, hal.IOMuxFuncGPIO)
}
