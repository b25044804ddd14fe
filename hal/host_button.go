//go:build !tinygo

package hal

import "sync"

// hostButton simulates the pulled-up mode button: pressing pulls the input
// register bit low and fires the falling-edge callbacks.
type hostButton struct {
	mu   sync.Mutex
	regs *SimRegisters
	pin  uint8
	fns  []func()
	down bool
}

func newHostButton(regs *SimRegisters, pin uint8) *hostButton {
	regs.DriveInput(pin, true)
	return &hostButton{regs: regs, pin: pin}
}

func (b *hostButton) OnFalling(fn func()) error {
	if fn == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fns = append(b.fns, fn)
	return nil
}

func (b *hostButton) press() {
	b.mu.Lock()
	if b.down {
		b.mu.Unlock()
		return
	}
	b.down = true
	b.regs.DriveInput(b.pin, false)
	fns := b.fns
	b.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (b *hostButton) release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.down {
		return
	}
	b.down = false
	b.regs.DriveInput(b.pin, true)
}
