package hal

// ESP32 register map used by the peripheral layer.
//
// Addresses are from the ESP32 technical reference manual (DPORT, GPIO,
// IO_MUX and LEDC blocks). Only the registers the firmware touches are listed.
const (
	DPortPeriphClkEn uintptr = 0x3FF000C0
	DPortPeriphRstEn uintptr = 0x3FF000C4

	DPortLEDCClkEn uint32 = 1 << 11
	DPortLEDCRst   uint32 = 1 << 11
)

const (
	GPIOBase uintptr = 0x3FF44000

	GPIOOut         = GPIOBase + 0x04
	GPIOOutW1TS     = GPIOBase + 0x08
	GPIOOutW1TC     = GPIOBase + 0x0C
	GPIOOut1        = GPIOBase + 0x10
	GPIOOut1W1TS    = GPIOBase + 0x14
	GPIOOut1W1TC    = GPIOBase + 0x18
	GPIOEnable      = GPIOBase + 0x20
	GPIOEnableW1TS  = GPIOBase + 0x24
	GPIOEnableW1TC  = GPIOBase + 0x28
	GPIOEnable1     = GPIOBase + 0x2C
	GPIOEnable1W1TS = GPIOBase + 0x30
	GPIOEnable1W1TC = GPIOBase + 0x34
	GPIOIn          = GPIOBase + 0x3C
	GPIOIn1         = GPIOBase + 0x40

	gpioFuncOutSelBase = GPIOBase + 0x530
)

// GPIOFuncOutSel returns the GPIO matrix output select register for pin.
func GPIOFuncOutSel(pin uint8) uintptr {
	return gpioFuncOutSelBase + uintptr(pin)*4
}

const (
	IOMuxBase uintptr = 0x3FF49000

	// Pad register fields.
	IOMuxFunPD    uint32 = 1 << 7
	IOMuxFunPU    uint32 = 1 << 8
	IOMuxFunIE    uint32 = 1 << 9
	IOMuxMCUSel   uint32 = 0x7 << 12
	IOMuxFuncGPIO uint32 = 2 << 12
)

// Pad register offsets indexed by GPIO number. Zero means "no pad".
var ioMuxOffset = [40]uint16{
	0: 0x44, 1: 0x88, 2: 0x40, 3: 0x84, 4: 0x48, 5: 0x6C,
	6: 0x60, 7: 0x64, 8: 0x68, 9: 0x54, 10: 0x58, 11: 0x5C,
	12: 0x34, 13: 0x38, 14: 0x30, 15: 0x3C, 16: 0x4C, 17: 0x50,
	18: 0x70, 19: 0x74, 20: 0x78, 21: 0x7C, 22: 0x80, 23: 0x8C,
	25: 0x24, 26: 0x28, 27: 0x2C,
	32: 0x1C, 33: 0x20, 34: 0x14, 35: 0x18,
	36: 0x04, 37: 0x08, 38: 0x0C, 39: 0x10,
}

// IOMuxPad returns the pad configuration register for pin, or 0 if the pin
// has no pad.
func IOMuxPad(pin uint8) uintptr {
	if int(pin) >= len(ioMuxOffset) || ioMuxOffset[pin] == 0 {
		return 0
	}
	return IOMuxBase + uintptr(ioMuxOffset[pin])
}

const (
	LEDCBase uintptr = 0x3FF59000

	// High-speed channel 0.
	LEDCHSCh0Conf0  = LEDCBase + 0x00
	LEDCHSCh0HPoint = LEDCBase + 0x04
	LEDCHSCh0Duty   = LEDCBase + 0x08
	LEDCHSCh0Conf1  = LEDCBase + 0x0C

	// High-speed timer 0.
	LEDCHSTimer0Conf = LEDCBase + 0x140

	LEDCConf0TimerSel uint32 = 0x3
	LEDCConf0SigOutEn uint32 = 1 << 2
	LEDCConf0IdleLv   uint32 = 1 << 3

	LEDCConf1DutyStart uint32 = 1 << 31

	LEDCTimerDutyRes      uint32 = 0x1F
	LEDCTimerDivShift            = 5
	LEDCTimerDiv          uint32 = 0x3FFFF << LEDCTimerDivShift
	LEDCTimerPause        uint32 = 1 << 23
	LEDCTimerRst          uint32 = 1 << 24
	LEDCTimerTickSel      uint32 = 1 << 25
	LEDCDutyFractionShift        = 4

	// GPIO matrix signal index of high-speed channel 0.
	LEDCHSSigOut0 uint32 = 71
)

// PadCount is the number of GPIO numbers addressable by the register map.
const PadCount = 40
