// Package monitor runs the ingest cycle: each telemetry record becomes one
// sample, one scale step, one redraw and one LED update.
package monitor

import (
	"fmt"

	"linkscope/hal"
	"linkscope/monitor/led"
	"linkscope/monitor/mode"
	"linkscope/monitor/render"
	"linkscope/monitor/samples"
	"linkscope/monitor/scale"
	"linkscope/monitor/telemetry"
)

// Stats counts processed datagrams.
type Stats struct {
	Applied uint64
	Skipped uint64
}

// Monitor owns all display state. It is not safe for concurrent use; only
// the mode selector is shared with the button interrupt.
type Monitor struct {
	log hal.Logger

	store  samples.Store
	scale  *scale.Engine
	roster telemetry.Roster
	health render.Health

	sel      *mode.Selector
	led      *led.Indicator
	renderer *render.Renderer
	frame    render.Frame

	stats Stats
}

func New(log hal.Logger, sel *mode.Selector, r *render.Renderer, out led.DutyWriter) *Monitor {
	return &Monitor{
		log:      log,
		scale:    scale.New(),
		sel:      sel,
		led:      led.NewIndicator(out),
		renderer: r,
	}
}

// HandleDatagram decodes b and applies it. A datagram that fails to decode
// is logged and dropped with no state change.
func (m *Monitor) HandleDatagram(b []byte) error {
	rec, err := telemetry.Decode(b)
	if err != nil {
		m.stats.Skipped++
		m.log.WriteLineString(fmt.Sprintf("telemetry: skip: %v", err))
		return err
	}
	return m.Apply(rec)
}

// Apply runs one cycle for rec. The LED is updated even if presenting the
// frame fails.
func (m *Monitor) Apply(rec telemetry.Record) error {
	s := samples.Sample{RX: rec.RX, TX: rec.TX}
	m.store.Push(s)
	m.scale.Update(&m.store)
	if rec.HasClients {
		m.roster = rec.Clients
	}
	m.health = render.Health{
		TempC:      rec.TempC,
		UplinkRSSI: rec.UplinkRSSI,
		FreeMemMB:  rec.FreeMemMB,
	}
	m.stats.Applied++

	f := &m.frame
	f.Samples = &m.store
	f.RXScale = m.scale.RX()
	f.TXScale = m.scale.TX()
	f.Roster = &m.roster
	f.Health = m.health
	drawErr := m.renderer.Draw(m.sel.Mode(), f)
	m.led.Update(s, m.scale)

	if drawErr != nil {
		m.log.WriteLineString(drawErr.Error())
		return drawErr
	}
	return nil
}

func (m *Monitor) Samples() *samples.Store   { return &m.store }
func (m *Monitor) Scale() *scale.Engine      { return m.scale }
func (m *Monitor) Roster() *telemetry.Roster { return &m.roster }
func (m *Monitor) Health() render.Health     { return m.health }
func (m *Monitor) Duty() uint8               { return m.led.Last() }
func (m *Monitor) Stats() Stats              { return m.stats }
