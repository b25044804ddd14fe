package render

import (
	"linkscope/monitor/samples"
	"linkscope/monitor/telemetry"
)

// Health is the host status shown on the info view.
type Health struct {
	TempC      float32
	UplinkRSSI float32
	FreeMemMB  uint32
}

// Frame is everything one redraw reads. Views must not retain it.
//
// A Frame also keeps the text of its numeric labels; reusing one Frame
// across redraws means unchanged labels are not formatted into new strings.
type Frame struct {
	Samples *samples.Store
	RXScale float32 // Mbps
	TXScale float32 // Mbps
	Roster  *telemetry.Roster
	Health  Health

	labels struct {
		rxScale, txScale label
		temp, rssi, mem  label
	}
}

// View paints one full screen.
type View func(c Canvas, f *Frame)

// Graph draws the RX and TX panes stacked vertically, newest sample at the
// right edge.
func Graph(c Canvas, f *Frame) {
	w, h := c.Size()
	g := graphLayout(w, h)

	c.Fill(DarkCyan)
	c.Rect(g.left-2, g.rxTop-2, g.right-g.left+4, g.paneH+4, White)
	c.Rect(g.left-2, g.txTop-2, g.right-g.left+4, g.paneH+4, White)

	c.Text(g.right-2, g.rxTop+2, TopRight, f.labels.rxScale.decimal("", f.RXScale, " Mbps"), On(Cyan, DarkCyan))
	c.Text(g.right-2, g.txTop+2, TopRight, f.labels.txScale.decimal("", f.TXScale, " Mbps"), On(Orange, DarkCyan))

	g.ticks(c, f.RXScale, g.rxTop, Cyan)
	g.ticks(c, f.TXScale, g.txTop, Orange)

	c.Text(g.left, g.rxTop+2, TopLeft, "RX (Mbps)", Plain(Cyan))
	c.Text(g.left, g.txTop+2, TopLeft, "TX (Mbps)", Plain(Orange))

	totalH := g.txTop + g.paneH - g.rxTop
	for x := g.left; x <= g.right; x += 16 {
		c.VLine(x, g.rxTop, totalH, Grid)
	}
	step := g.paneH / 4
	if step < 1 {
		step = 1
	}
	for y := g.rxTop; y <= g.rxTop+g.paneH; y += step {
		c.HLine(g.left, y, g.right-g.left, Grid)
		c.HLine(g.left, y+g.paneH+g.gap, g.right-g.left, Grid)
	}

	s := f.Samples
	if s == nil || s.Len() < 2 {
		return
	}
	first := s.At(0)
	px := g.right - 1
	pyRX := g.mapY(first.RX, f.RXScale, g.rxTop)
	pyTX := g.mapY(first.TX, f.TXScale, g.txTop)
	for i := 1; i < s.Len(); i++ {
		x := g.right - 1 - (g.right-g.left-1)*i/(samples.Capacity-1)
		smp := s.At(i)
		yRX := g.mapY(smp.RX, f.RXScale, g.rxTop)
		yTX := g.mapY(smp.TX, f.TXScale, g.txTop)
		c.Line(px, pyRX, x, yRX, Green)
		c.Line(px, pyTX, x, yTX, Orange)
		px, pyRX, pyTX = x, yRX, yTX
	}
}

type graphGeometry struct {
	paneH, gap   int
	left, right  int
	rxTop, txTop int
}

func graphLayout(w, h int) graphGeometry {
	g := graphGeometry{
		paneH: (h - 12) / 2,
		gap:   4,
		left:  6,
		right: w - 2,
		rxTop: 4,
	}
	g.txTop = g.rxTop + g.paneH + g.gap
	return g
}

// mapY places bps inside the pane starting at top. Values above the ceiling
// pin to the top edge.
func (g graphGeometry) mapY(bps uint32, ceilingMbps float32, top int) int {
	frac := (float32(bps) / 1e6) / ceilingMbps
	if frac > 1 {
		frac = 1
	}
	return int(float32(top+g.paneH) - frac*float32(g.paneH))
}

// ticks marks every megabit (every second one above 2 Mbps) on the left
// edge of a pane.
func (g graphGeometry) ticks(c Canvas, ceilingMbps float32, top int, col Color) {
	step := 1
	if ceilingMbps > 2 {
		step = 2
	}
	for mb := 0; mb <= int(ceilingMbps+0.1); mb += step {
		y := g.mapY(uint32(mb)*1_000_000, ceilingMbps, top)
		c.Line(g.left-2, y, g.left, y, col)
	}
}

// Clients lists the associated stations: address, then hardware address
// indented beneath it.
func Clients(c Canvas, f *Frame) {
	c.Fill(GreenYellow)
	c.Text(6, 6, TopLeft, "CLIENTS", On(Brown, GreenYellow))

	ink := On(Black, GreenYellow)
	y := 20
	if f.Roster == nil || f.Roster.Len() == 0 {
		c.Text(6, y, TopLeft, "No clients connected", ink)
		return
	}
	for i := 0; i < f.Roster.Len(); i++ {
		cl := f.Roster.At(i)
		c.Text(6, y, TopLeft, cl.Addr, ink)
		y += 10
		c.Text(6+15, y, TopLeft, cl.HWAddr, ink)
		y += 16
	}
}

// Info shows the host health fields from the last record.
func Info(c Canvas, f *Frame) {
	c.Fill(Red)
	c.Text(6, 6, TopLeft, "INFO", Plain(Silver))

	ink := Plain(White)
	c.Text(6, 20, TopLeft, f.labels.temp.decimal("Pi CPU temp: ", f.Health.TempC, " C"), ink)
	c.Text(6, 30, TopLeft, f.labels.rssi.decimal("Uplink RSSI:", f.Health.UplinkRSSI, "dBm"), ink)
	c.Text(6, 40, TopLeft, f.labels.mem.integer("Free memory: ", f.Health.FreeMemMB, " MB"), ink)
}

// Waiting is shown until the first record arrives.
func Waiting(c Canvas) {
	w, h := c.Size()
	c.Fill(Navy)
	ink := On(White, Navy)
	c.Text(w/2, h/2-10, MiddleCenter, "Waiting for telemetry", ink)
	c.Text(w/2, h/2+10, MiddleCenter, "on the link...", ink)
}
