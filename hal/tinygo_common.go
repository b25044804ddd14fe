//go:build tinygo && baremetal

package hal

import (
	"machine"
	"time"
)

type tinyGoDisplay struct {
	fb Framebuffer
}

func (d tinyGoDisplay) Framebuffer() Framebuffer { return d.fb }

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

// uartLink frames newline-terminated records arriving on a UART.
type uartLink struct {
	uart *machine.UART
}

func newUARTLink(uart *machine.UART) *uartLink { return &uartLink{uart: uart} }

func (l *uartLink) Recv(pkt []byte) (int, error) {
	if l.uart == nil {
		return 0, ErrNotImplemented
	}
	n := 0
	overflow := false
	for {
		if l.uart.Buffered() == 0 {
			time.Sleep(2 * time.Millisecond)
			continue
		}
		b, err := l.uart.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case '\r':
			continue
		case '\n':
			if n == 0 {
				continue
			}
			if overflow {
				// Oversized record: drop it and start over.
				n, overflow = 0, false
				continue
			}
			return n, nil
		}
		if n == len(pkt) {
			overflow = true
			continue
		}
		pkt[n] = b
		n++
	}
}
