//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// HostConfig describes the simulated board.
type HostConfig struct {
	Width  int
	Height int
	// Listen is the UDP address telemetry datagrams arrive on. Empty disables the link.
	Listen string
}

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	regs   *SimRegisters
	button *hostButton
	clock  *hostClock
	link   Link
}

// New returns a host HAL implementation.
func New(cfg HostConfig) (HAL, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("hal: invalid display size %dx%d", cfg.Width, cfg.Height)
	}

	logger := &hostLogger{w: os.Stdout}
	regs := NewSimRegisters()

	var link Link = nullLink{}
	if cfg.Listen != "" {
		l, err := listenUDP(cfg.Listen)
		if err != nil {
			return nil, err
		}
		link = l
	}

	return &hostHAL{
		logger: logger,
		fb:     newHostFramebuffer(cfg.Width, cfg.Height),
		regs:   regs,
		button: newHostButton(regs, PinButton),
		clock:  newHostClock(),
		link:   link,
	}, nil
}

func (h *hostHAL) Logger() Logger       { return h.logger }
func (h *hostHAL) Display() Display     { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Registers() Registers { return h.regs }
func (h *hostHAL) Button() Button       { return h.button }
func (h *hostHAL) Clock() Clock         { return h.clock }
func (h *hostHAL) Link() Link           { return h.link }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostClock struct {
	t0 time.Time
}

func newHostClock() *hostClock { return &hostClock{t0: time.Now()} }

func (c *hostClock) Millis() uint32 {
	return uint32(time.Since(c.t0).Milliseconds())
}
