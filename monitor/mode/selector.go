// Package mode holds the display mode selected by the push-button.
package mode

import "sync/atomic"

// Mode is the active display view.
type Mode uint8

const (
	Graph Mode = iota
	Clients
	Info

	// Count is the number of modes.
	Count
)

// Next returns the mode after m in the cycle Graph → Clients → Info → Graph.
func (m Mode) Next() Mode {
	return (m + 1) % Count
}

func (m Mode) String() string {
	switch m {
	case Graph:
		return "graph"
	case Clients:
		return "clients"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

// Debounce is the minimum interval between accepted presses, in milliseconds.
const Debounce = 250

// state packing: bits 0-7 mode, bit 8 "a press was accepted", bits 32-63 the
// millisecond timestamp of that press.
const (
	modeMask  = 0xFF
	seenFlag  = 1 << 8
	timeShift = 32
)

// Selector is the button-driven mode state machine.
//
// Press runs in interrupt context and Mode in the main loop. Mode and the
// last-transition time share one atomic word so neither side can observe a
// torn pair.
type Selector struct {
	state atomic.Uint64
}

// Mode returns the current mode.
func (s *Selector) Mode() Mode {
	return Mode(s.state.Load() & modeMask)
}

// Press handles a falling edge at nowMillis. It advances the mode and returns
// true unless the edge falls within Debounce of the last accepted one, in
// which case it is dropped. The first press is always accepted.
//
// Press does not block or allocate. It must have a single caller context.
func (s *Selector) Press(nowMillis uint32) bool {
	st := s.state.Load()
	if st&seenFlag != 0 {
		last := uint32(st >> timeShift)
		if nowMillis-last < Debounce {
			return false
		}
	}
	next := Mode(st & modeMask).Next()
	s.state.Store(uint64(nowMillis)<<timeShift | seenFlag | uint64(next))
	return true
}
