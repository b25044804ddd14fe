// Package mailbox hands raw telemetry datagrams from the link reader to the
// ingest loop without allocating.
package mailbox

import "sync/atomic"

// MaxDatagramBytes is the largest datagram a slot holds.
const MaxDatagramBytes = 512

const slots = 4

// Datagram is one received payload.
type Datagram struct {
	Len  uint16
	Data [MaxDatagramBytes]byte
}

// Bytes returns the valid part of the payload.
func (d *Datagram) Bytes() []byte { return d.Data[:d.Len] }

// Mailbox is a fixed-size single-producer, single-consumer queue.
//
// The producer publishes a slot only after it is fully written, so the
// consumer never observes a partial datagram.
type Mailbox struct {
	_      [0]func() // prevent accidental copying.
	head   atomic.Uint32
	tail   atomic.Uint32
	slots  [slots]Datagram
	notify chan struct{}
	drops  atomic.Uint32
}

// New returns an empty mailbox.
func New() *Mailbox {
	return &Mailbox{notify: make(chan struct{}, 1)}
}

// TrySend copies b into a free slot. It returns false if the mailbox is full
// or b does not fit in a slot; the datagram is then dropped.
func (mb *Mailbox) TrySend(b []byte) bool {
	if len(b) > MaxDatagramBytes {
		mb.drops.Add(1)
		return false
	}
	head := mb.head.Load()
	tail := mb.tail.Load()
	if head-tail >= slots {
		mb.drops.Add(1)
		return false
	}

	slot := &mb.slots[head%slots]
	slot.Len = uint16(copy(slot.Data[:], b))
	mb.head.Store(head + 1)

	select {
	case mb.notify <- struct{}{}:
	default:
	}
	return true
}

// TryRecv copies the oldest datagram into dst, returning false if empty.
func (mb *Mailbox) TryRecv(dst *Datagram) bool {
	tail := mb.tail.Load()
	head := mb.head.Load()
	if tail == head {
		return false
	}

	src := &mb.slots[tail%slots]
	dst.Len = src.Len
	copy(dst.Data[:src.Len], src.Data[:src.Len])
	mb.tail.Store(tail + 1)
	return true
}

// Recv blocks until one datagram is available.
func (mb *Mailbox) Recv(dst *Datagram) {
	for !mb.TryRecv(dst) {
		<-mb.notify
	}
}

// Dropped returns how many datagrams were rejected since creation.
func (mb *Mailbox) Dropped() uint32 { return mb.drops.Load() }
