//go:build tinygo && baremetal

package hal

import (
	"machine"
	"time"
)

type tinyGoHAL struct {
	logger *uartLogger
	fb     Framebuffer
	regs   *mmioRegisters
	button *pinButton
	clock  *tinyGoClock
	link   Link
}

// New returns the ESP32 board HAL.
//
// Log UART: UART0, 115200 8N1. Telemetry UART: UART2 on GPIO16 (RX) /
// GPIO17 (TX), 115200 8N1, one JSON record per line.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{BaudRate: 115200})

	linkUART := machine.UART2
	linkUART.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GPIO17,
		RX:       machine.GPIO16,
	})

	var fb Framebuffer
	if tft, err := newTFTFramebuffer(); err == nil {
		fb = tft
	} else {
		fb = &stubFramebuffer{w: tftWidth, h: tftHeight, format: PixelFormatRGB565}
	}

	return &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		fb:     fb,
		regs:   &mmioRegisters{},
		button: &pinButton{pin: machine.Pin(PinButton)},
		clock:  newTinyGoClock(),
		link:   newUARTLink(linkUART),
	}
}

func (h *tinyGoHAL) Logger() Logger       { return h.logger }
func (h *tinyGoHAL) Display() Display     { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Registers() Registers { return h.regs }
func (h *tinyGoHAL) Button() Button       { return h.button }
func (h *tinyGoHAL) Clock() Clock         { return h.clock }
func (h *tinyGoHAL) Link() Link           { return h.link }

// pinButton attaches the falling-edge interrupt. Pad configuration (pull-up,
// input enable) is done by the peripheral layer through the registers.
type pinButton struct {
	pin machine.Pin
}

func (b *pinButton) OnFalling(fn func()) error {
	if fn == nil {
		return nil
	}
	return b.pin.SetInterrupt(machine.PinFalling, func(machine.Pin) { fn() })
}

type tinyGoClock struct {
	t0 time.Time
}

func newTinyGoClock() *tinyGoClock { return &tinyGoClock{t0: time.Now()} }

func (c *tinyGoClock) Millis() uint32 {
	return uint32(time.Since(c.t0) / time.Millisecond)
}
