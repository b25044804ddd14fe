// Package scale keeps a smoothed full-scale ceiling per traffic direction.
package scale

import "linkscope/monitor/samples"

// Smoothing parameters, in Mbps where applicable.
const (
	Min   float32 = 0.1  // floor of the target ceiling
	Pad   float32 = 1.2  // headroom above the observed peak
	Alpha float32 = 0.15 // fraction of the gap closed per update

	Initial float32 = 1.0
)

// Axis is the ceiling of one direction in Mbps.
type Axis struct {
	ceiling float32
}

// Target is the ceiling an axis converges to for a peak of peakBps.
func Target(peakBps uint32) float32 {
	if peakBps < 1 {
		peakBps = 1
	}
	t := float32(peakBps) / 1e6 * Pad
	if t < Min {
		return Min
	}
	return t
}

// Step moves the ceiling a fixed fraction of the way to the target for
// peakBps. It never overshoots the target.
func (a *Axis) Step(peakBps uint32) {
	a.ceiling += Alpha * (Target(peakBps) - a.ceiling)
}

func (a *Axis) Mbps() float32 { return a.ceiling }

// Engine holds the rx and tx axes.
type Engine struct {
	rx Axis
	tx Axis
}

func New() *Engine {
	return &Engine{rx: Axis{ceiling: Initial}, tx: Axis{ceiling: Initial}}
}

// Update scans every retained sample and steps both axes toward their peaks.
func (e *Engine) Update(s *samples.Store) {
	var peakRX, peakTX uint32 = 1, 1
	for i := 0; i < s.Len(); i++ {
		v := s.At(i)
		if v.RX > peakRX {
			peakRX = v.RX
		}
		if v.TX > peakTX {
			peakTX = v.TX
		}
	}
	e.rx.Step(peakRX)
	e.tx.Step(peakTX)
}

// RX returns the receive ceiling in Mbps.
func (e *Engine) RX() float32 { return e.rx.ceiling }

// TX returns the transmit ceiling in Mbps.
func (e *Engine) TX() float32 { return e.tx.ceiling }

// FullBps is the larger ceiling in bits per second. A ceiling can pass
// 4294 Mbps, so the result is 64-bit.
func (e *Engine) FullBps() uint64 {
	c := e.rx.ceiling
	if e.tx.ceiling > c {
		c = e.tx.ceiling
	}
	return uint64(float64(c) * 1e6)
}
