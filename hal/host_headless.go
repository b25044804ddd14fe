//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Hz    int
	Ticks uint64
	// PressEvery simulates a button press at this interval (0 = never).
	PressEvery time.Duration
}

// RunHeadless runs the firmware without opening a window.
func RunHeadless(ctx context.Context, cfg HostConfig, hcfg HeadlessConfig, newApp func(HAL) func() error) error {
	if hcfg.Hz <= 0 {
		hcfg.Hz = 60
	}

	hh, err := New(cfg)
	if err != nil {
		return err
	}
	h := hh.(*hostHAL)
	step := newApp(h)

	d := time.Second / time.Duration(hcfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", hcfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	lastPress := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			if hcfg.PressEvery > 0 && now.Sub(lastPress) >= hcfg.PressEvery {
				lastPress = now
				h.button.press()
				h.button.release()
			}
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if hcfg.Ticks > 0 && tick >= hcfg.Ticks {
				return nil
			}
		}
	}
}
