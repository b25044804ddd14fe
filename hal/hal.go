package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Registers is a bank of 32-bit memory-mapped registers.
//
// SetBits and ClearBits must be atomic with respect to interrupt delivery.
// Load and Store are plain word accesses.
type Registers interface {
	Load(addr uintptr) uint32
	Store(addr uintptr, v uint32)
	SetBits(addr uintptr, mask uint32)
	ClearBits(addr uintptr, mask uint32)
}

// Button delivers falling edges of the mode button line.
//
// The callback may run in interrupt context: it must not block or allocate.
type Button interface {
	OnFalling(fn func()) error
}

// Clock is a monotonic millisecond counter. It wraps after ~49 days.
type Clock interface {
	Millis() uint32
}

// Link receives telemetry datagrams. Recv blocks until one arrives.
type Link interface {
	Recv(pkt []byte) (int, error)
}

// HAL provides the only contact point between the firmware and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Registers() Registers
	Button() Button
	Clock() Clock
	Link() Link
}
