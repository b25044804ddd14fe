//go:build tinygo && bootdebug

package app

import (
	"sync"
	"time"

	"linkscope/hal"
)

var (
	bootDiagMu   sync.Mutex
	bootDiagStep string
)

func bootStep(msg string) {
	bootDiagMu.Lock()
	bootDiagStep = msg
	bootDiagMu.Unlock()
}

// bootDiagStart repeats the current init step on the UART until the board
// reaches "ready", so a hang during bring-up shows where it stopped.
func bootDiagStart(h hal.HAL) {
	l := h.Logger()
	if l == nil {
		return
	}

	go func() {
		for {
			bootDiagMu.Lock()
			step := bootDiagStep
			bootDiagMu.Unlock()

			if step == "" {
				step = "<empty>"
			}
			l.WriteLineString("bootdiag: " + step)
			if step == "ready" {
				return
			}
			time.Sleep(250 * time.Millisecond)
		}
	}()
}
