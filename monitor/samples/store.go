// Package samples keeps the recent traffic history in a fixed ring.
package samples

import "fmt"

// Capacity is the number of samples retained.
const Capacity = 128

// Sample is one instantaneous bitrate observation in bits per second.
type Sample struct {
	RX uint32
	TX uint32
}

// Store is a fixed-capacity ring of samples. Once full, each Push evicts the
// oldest sample. The zero value is an empty store.
type Store struct {
	buf   [Capacity]Sample
	head  uint16 // next write slot
	count uint16
}

// Push records s as the newest sample.
func (s *Store) Push(v Sample) {
	s.buf[s.head] = v
	s.head = (s.head + 1) % Capacity
	if s.count < Capacity {
		s.count++
	}
}

// At returns the sample i steps back in time; At(0) is the newest.
// It panics if i >= Len().
func (s *Store) At(i int) Sample {
	if i < 0 || i >= int(s.count) {
		panic(fmt.Sprintf("samples: index %d out of range [0,%d)", i, s.count))
	}
	idx := int(s.head) - 1 - i
	if idx < 0 {
		idx += Capacity
	}
	return s.buf[idx]
}

// Latest returns the newest sample, if any.
func (s *Store) Latest() (Sample, bool) {
	if s.count == 0 {
		return Sample{}, false
	}
	return s.At(0), true
}

func (s *Store) Len() int { return int(s.count) }
func (s *Store) Cap() int { return Capacity }
