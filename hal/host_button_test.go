//go:build !tinygo

package hal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostButtonEdges(t *testing.T) {
	regs := NewSimRegisters()
	b := newHostButton(regs, PinButton)
	assert.Equal(t, uint32(1)<<PinButton, regs.Load(GPIOIn), "idle line is pulled up")

	var edges int
	require.NoError(t, b.OnFalling(func() { edges++ }))

	b.press()
	assert.Zero(t, regs.Load(GPIOIn))
	b.press() // held: no second edge
	assert.Equal(t, 1, edges)

	b.release()
	assert.Equal(t, uint32(1)<<PinButton, regs.Load(GPIOIn))
	b.press()
	assert.Equal(t, 2, edges)
}
