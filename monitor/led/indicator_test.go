package led

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"linkscope/hal"
	"linkscope/monitor/periph"
	"linkscope/monitor/samples"
	"linkscope/monitor/scale"
)

func TestDuty(t *testing.T) {
	tests := []struct {
		name   string
		rx, tx uint32
		full   uint64
		want   uint8
	}{
		{"idle", 0, 0, 1_000_000, 0},
		{"at full", 600_000, 400_000, 1_000_000, 255},
		{"over full", 5_000_000, 0, 1_000_000, 255},
		{"half", 250_000, 250_000, 1_000_000, 127},
		{"truncates", 1, 0, 255, 1},
		{"just below", 999_999, 0, 1_000_000, 254},
		{"no wrap", math.MaxUint32, math.MaxUint32, 120_000_000, 255},
		{"small full", 50_000, 0, 100_000, 127},
		{"full above 32 bits", 1_000_000_000, 0, 4_800_000_000, 53},
		{"max counters under 64-bit full", math.MaxUint32, 0, 2 * math.MaxUint32, 127},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Duty(tt.rx, tt.tx, tt.full))
		})
	}
}

func TestIndicatorDrivesPWM(t *testing.T) {
	regs := hal.NewSimRegisters()
	pwm := periph.NewPWM(regs)
	pwm.Configure(periph.Pin(hal.PinLEDR), periph.PWMFrequencyHz, periph.PWMResolution)

	ind := NewIndicator(pwm)
	e := scale.New() // 1 Mbps ceilings

	assert.Equal(t, uint8(255), ind.Update(samples.Sample{RX: 700_000, TX: 300_000}, e))
	assert.True(t, pwm.Enabled())
	assert.Equal(t, uint8(255), pwm.Duty())

	assert.Equal(t, uint8(0), ind.Update(samples.Sample{}, e))
	assert.False(t, pwm.Enabled(), "zero duty disables the output")
	assert.Equal(t, uint8(0), ind.Last())

	assert.Equal(t, uint8(63), ind.Update(samples.Sample{RX: 250_000}, e))
	assert.True(t, pwm.Enabled())
}

func TestIndicatorMultiGigabitCeiling(t *testing.T) {
	var s samples.Store
	s.Push(samples.Sample{RX: 4_000_000_000})
	e := scale.New()
	for i := 0; i < 60; i++ {
		e.Update(&s)
	}

	ind := NewIndicator(periph.NewPWM(hal.NewSimRegisters()))
	assert.Equal(t, uint8(53), ind.Update(samples.Sample{RX: 1_000_000_000}, e))
}
