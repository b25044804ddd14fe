// Package led maps traffic load onto the LED brightness.
package led

import "linkscope/monitor/samples"

// MaxDuty is full brightness.
const MaxDuty = 255

// DutyWriter is the PWM channel driving the LED.
type DutyWriter interface {
	SetDuty(duty uint8)
}

// Ceiling reports the current full-scale value in bits per second.
type Ceiling interface {
	FullBps() uint64
}

// Duty maps combined traffic onto 0..255 relative to fullBps, truncating.
// Traffic at or above fullBps is full brightness.
func Duty(rx, tx uint32, fullBps uint64) uint8 {
	sum := uint64(rx) + uint64(tx)
	if sum >= fullBps {
		return MaxDuty
	}
	return uint8(sum * MaxDuty / fullBps)
}

// Indicator drives the LED from the latest sample, using the same ceiling
// as the graph.
type Indicator struct {
	out  DutyWriter
	last uint8
}

func NewIndicator(out DutyWriter) *Indicator {
	return &Indicator{out: out}
}

// Update writes the duty for s and returns it.
func (ind *Indicator) Update(s samples.Sample, c Ceiling) uint8 {
	d := Duty(s.RX, s.TX, c.FullBps())
	ind.out.SetDuty(d)
	ind.last = d
	return d
}

// Last returns the most recently written duty.
func (ind *Indicator) Last() uint8 { return ind.last }
