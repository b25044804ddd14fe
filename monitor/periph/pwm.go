package periph

import (
	"linkscope/hal"
)

// LED PWM timing. The prescaler is derived from these at configure time;
// changing them needs a rebuild.
const (
	SourceClockHz  = 80_000_000 // APB clock
	PWMFrequencyHz = 5_000
	PWMResolution  = 8
)

// Prescaler returns the timer clock divider for a target frequency and duty
// resolution: src / (freq * 2^bits) - 1.
func Prescaler(sourceHz, freqHz uint32, resolutionBits uint8) uint32 {
	return sourceHz/(freqHz*(1<<resolutionBits)) - 1
}

// PWM is LEDC high-speed channel 0 clocked by high-speed timer 0.
type PWM struct {
	regs hal.Registers
	gpio GPIO

	prescaler  uint32
	resolution uint8
}

func NewPWM(regs hal.Registers) *PWM {
	return &PWM{regs: regs, gpio: NewGPIO(regs)}
}

// Configure brings up the LEDC block and attaches channel 0 to pin.
func (p *PWM) Configure(pin Pin, freqHz uint32, resolutionBits uint8) {
	pin.check()
	r := p.regs

	r.SetBits(hal.DPortPeriphClkEn, hal.DPortLEDCClkEn)
	r.ClearBits(hal.DPortPeriphRstEn, hal.DPortLEDCRst)

	p.prescaler = Prescaler(SourceClockHz, freqHz, resolutionBits)
	p.resolution = resolutionBits

	// Timer 0: divider, resolution, APB tick, running.
	r.ClearBits(hal.LEDCHSTimer0Conf, hal.LEDCTimerDiv|hal.LEDCTimerDutyRes|hal.LEDCTimerPause)
	r.SetBits(hal.LEDCHSTimer0Conf,
		(p.prescaler<<hal.LEDCTimerDivShift)&hal.LEDCTimerDiv|
			uint32(resolutionBits)&hal.LEDCTimerDutyRes|
			hal.LEDCTimerTickSel)
	r.SetBits(hal.LEDCHSTimer0Conf, hal.LEDCTimerRst)
	r.ClearBits(hal.LEDCHSTimer0Conf, hal.LEDCTimerRst)

	// Channel 0 on timer 0, idle low, phase 0.
	r.ClearBits(hal.LEDCHSCh0Conf0, hal.LEDCConf0TimerSel|hal.LEDCConf0IdleLv)
	r.Store(hal.LEDCHSCh0HPoint, 0)

	p.gpio.RouteOutput(pin, hal.LEDCHSSigOut0)
	p.gpio.EnableOutput(pin)
}

// SetDuty sets the 8-bit duty. Zero disables the output drive entirely
// instead of programming a zero duty.
func (p *PWM) SetDuty(duty uint8) {
	r := p.regs
	if duty == 0 {
		r.ClearBits(hal.LEDCHSCh0Conf0, hal.LEDCConf0SigOutEn)
		r.ClearBits(hal.LEDCHSCh0Conf1, hal.LEDCConf1DutyStart)
		return
	}
	r.SetBits(hal.LEDCHSCh0Conf0, hal.LEDCConf0SigOutEn)
	// The low four bits are the fractional duty and stay zero.
	r.Store(hal.LEDCHSCh0Duty, uint32(duty)<<hal.LEDCDutyFractionShift)
	r.SetBits(hal.LEDCHSCh0Conf1, hal.LEDCConf1DutyStart)
}

// Enabled reports whether the channel is driving its pin.
func (p *PWM) Enabled() bool {
	return p.regs.Load(hal.LEDCHSCh0Conf0)&hal.LEDCConf0SigOutEn != 0
}

// Duty reads back the programmed duty.
func (p *PWM) Duty() uint8 {
	return uint8(p.regs.Load(hal.LEDCHSCh0Duty) >> hal.LEDCDutyFractionShift)
}

func (p *PWM) Prescaler() uint32 { return p.prescaler }
