package hal

import (
	"fmt"
	"sync/atomic"
)

// SimRegisters is an in-memory register file with the ESP32 write-1-to-set
// and write-1-to-clear side effects of the GPIO block.
//
// Accessing an address outside the register map panics.
type SimRegisters struct {
	words map[uintptr]*atomic.Uint32
}

// NewSimRegisters returns a register file with every mapped register at zero.
func NewSimRegisters() *SimRegisters {
	r := &SimRegisters{words: make(map[uintptr]*atomic.Uint32)}
	add := func(addr uintptr) { r.words[addr] = new(atomic.Uint32) }

	add(DPortPeriphClkEn)
	add(DPortPeriphRstEn)
	for addr := GPIOOut; addr <= GPIOIn1; addr += 4 {
		add(addr)
	}
	for pin := uint8(0); pin < PadCount; pin++ {
		add(GPIOFuncOutSel(pin))
		if pad := IOMuxPad(pin); pad != 0 {
			add(pad)
		}
	}
	add(LEDCHSCh0Conf0)
	add(LEDCHSCh0HPoint)
	add(LEDCHSCh0Duty)
	add(LEDCHSCh0Conf1)
	add(LEDCHSTimer0Conf)
	return r
}

func (r *SimRegisters) word(addr uintptr) *atomic.Uint32 {
	w, ok := r.words[addr]
	if !ok {
		panic(fmt.Sprintf("hal: register %#08x not mapped", addr))
	}
	return w
}

func (r *SimRegisters) Load(addr uintptr) uint32 {
	switch addr {
	case GPIOOutW1TS, GPIOOutW1TC, GPIOOut1W1TS, GPIOOut1W1TC,
		GPIOEnableW1TS, GPIOEnableW1TC, GPIOEnable1W1TS, GPIOEnable1W1TC:
		return 0
	}
	return r.word(addr).Load()
}

func (r *SimRegisters) Store(addr uintptr, v uint32) {
	switch addr {
	case GPIOOutW1TS:
		r.word(GPIOOut).Or(v)
	case GPIOOutW1TC:
		r.word(GPIOOut).And(^v)
	case GPIOOut1W1TS:
		r.word(GPIOOut1).Or(v)
	case GPIOOut1W1TC:
		r.word(GPIOOut1).And(^v)
	case GPIOEnableW1TS:
		r.word(GPIOEnable).Or(v)
	case GPIOEnableW1TC:
		r.word(GPIOEnable).And(^v)
	case GPIOEnable1W1TS:
		r.word(GPIOEnable1).Or(v)
	case GPIOEnable1W1TC:
		r.word(GPIOEnable1).And(^v)
	default:
		r.word(addr).Store(v)
	}
}

func (r *SimRegisters) SetBits(addr uintptr, mask uint32) {
	r.word(addr).Or(mask)
}

func (r *SimRegisters) ClearBits(addr uintptr, mask uint32) {
	r.word(addr).And(^mask)
}

// DriveInput sets the level an external source applies to an input pin.
func (r *SimRegisters) DriveInput(pin uint8, level bool) {
	reg, bit := GPIOIn, uint32(1)<<(pin&31)
	if pin >= 32 {
		reg = GPIOIn1
	}
	if level {
		r.word(reg).Or(bit)
	} else {
		r.word(reg).And(^bit)
	}
}

// LEDC returns the 8-bit duty of high-speed channel 0 and whether its output
// is enabled.
func (r *SimRegisters) LEDC() (duty uint8, on bool) {
	conf0 := r.word(LEDCHSCh0Conf0).Load()
	d := r.word(LEDCHSCh0Duty).Load() >> LEDCDutyFractionShift
	if d > 0xFF {
		d = 0xFF
	}
	return uint8(d), conf0&LEDCConf0SigOutEn != 0
}
