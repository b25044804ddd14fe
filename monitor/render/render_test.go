package render

import (
	"errors"
	"fmt"
	"testing"

	"linkscope/hal"
	"linkscope/monitor/mode"
	"linkscope/monitor/samples"
	"linkscope/monitor/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type op struct {
	kind string
	x, y int
	a, b int
	s    string
	d    Datum
	c    Color
}

// recorder is a Canvas that logs calls.
type recorder struct {
	w, h     int
	ops      []op
	presents int
	err      error
}

func newRecorder() *recorder { return &recorder{w: 160, h: 128} }

func (r *recorder) Size() (int, int) { return r.w, r.h }
func (r *recorder) Fill(c Color)     { r.ops = append(r.ops, op{kind: "fill", c: c}) }
func (r *recorder) Present() error   { r.presents++; return r.err }
func (r *recorder) HLine(x, y, w int, c Color) {
	r.ops = append(r.ops, op{kind: "hline", x: x, y: y, a: w, c: c})
}
func (r *recorder) VLine(x, y, h int, c Color) {
	r.ops = append(r.ops, op{kind: "vline", x: x, y: y, b: h, c: c})
}
func (r *recorder) Rect(x, y, w, h int, c Color) {
	r.ops = append(r.ops, op{kind: "rect", x: x, y: y, a: w, b: h, c: c})
}
func (r *recorder) Line(x0, y0, x1, y1 int, c Color) {
	r.ops = append(r.ops, op{kind: "line", x: x0, y: y0, a: x1, b: y1, c: c})
}
func (r *recorder) Text(x, y int, d Datum, s string, ink Ink) {
	r.ops = append(r.ops, op{kind: "text", x: x, y: y, d: d, s: s, c: ink.FG})
}

func (r *recorder) filter(kind string, c Color) []op {
	var out []op
	for _, o := range r.ops {
		if o.kind == kind && o.c == c {
			out = append(out, o)
		}
	}
	return out
}

func (r *recorder) texts() []string {
	var out []string
	for _, o := range r.ops {
		if o.kind == "text" {
			out = append(out, o.s)
		}
	}
	return out
}

func TestGraphNeedsTwoSamples(t *testing.T) {
	var s samples.Store
	s.Push(samples.Sample{RX: 500_000, TX: 100_000})

	r := newRecorder()
	Graph(r, &Frame{Samples: &s, RXScale: 1, TXScale: 1})

	assert.Equal(t, DarkCyan, r.ops[0].c)
	assert.Empty(t, r.filter("line", Green))
	assert.Len(t, r.filter("rect", White), 2)
}

func TestGraphTraces(t *testing.T) {
	var s samples.Store
	s.Push(samples.Sample{RX: 2_000_000, TX: 0})       // older
	s.Push(samples.Sample{RX: 500_000, TX: 1_000_000}) // newest

	r := newRecorder()
	Graph(r, &Frame{Samples: &s, RXScale: 1, TXScale: 1})

	rx := r.filter("line", Green)
	require.Len(t, rx, 1)
	// paneH = 58; newest at x = 157, next at 157 - 151/127 = 156.
	assert.Equal(t, op{kind: "line", x: 157, y: 33, a: 156, b: 4, c: Green}, rx[0])

	// TX pane starts at 66; ticks share the orange colour so pick the trace
	// by its start column.
	var tx []op
	for _, o := range r.filter("line", Orange) {
		if o.x == 157 {
			tx = append(tx, o)
		}
	}
	require.Len(t, tx, 1)
	assert.Equal(t, 66, tx[0].y)
	assert.Equal(t, 66+58, tx[0].b)
}

func TestGraphLabels(t *testing.T) {
	r := newRecorder()
	Graph(r, &Frame{Samples: new(samples.Store), RXScale: 1.21, TXScale: 0.94})

	var scaleTexts []op
	for _, o := range r.ops {
		if o.kind == "text" && o.d == TopRight {
			scaleTexts = append(scaleTexts, o)
		}
	}
	require.Len(t, scaleTexts, 2)
	assert.Equal(t, "1.2 Mbps", scaleTexts[0].s)
	assert.Equal(t, 156, scaleTexts[0].x)
	assert.Equal(t, 6, scaleTexts[0].y)
	assert.Equal(t, "0.9 Mbps", scaleTexts[1].s)
	assert.Equal(t, 68, scaleTexts[1].y)

	assert.Contains(t, r.texts(), "RX (Mbps)")
	assert.Contains(t, r.texts(), "TX (Mbps)")
}

func TestGraphTicks(t *testing.T) {
	tests := []struct {
		scale float32
		want  int
	}{
		{scale: 0.5, want: 1},  // 0
		{scale: 1.95, want: 3}, // 0 1 2
		{scale: 5.0, want: 3},  // 0 2 4
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.scale), func(t *testing.T) {
			r := newRecorder()
			Graph(r, &Frame{Samples: new(samples.Store), RXScale: tt.scale, TXScale: tt.scale})
			var n int
			for _, o := range r.filter("line", Cyan) {
				if o.x == 4 && o.a == 6 {
					n++
				}
			}
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestGraphTinyCanvas(t *testing.T) {
	r := &recorder{w: 20, h: 14}
	assert.NotPanics(t, func() {
		Graph(r, &Frame{Samples: new(samples.Store), RXScale: 1, TXScale: 1})
	})
}

func decodeRoster(t *testing.T, js string) *telemetry.Roster {
	t.Helper()
	rec, err := telemetry.Decode([]byte(js))
	require.NoError(t, err)
	return &rec.Clients
}

func TestClients(t *testing.T) {
	r := newRecorder()
	Clients(r, &Frame{Roster: decodeRoster(t, `{"clients":["192.168.4.2","unknown"],"macs":["aa:aa","bb:bb"]}`)})

	assert.Equal(t, GreenYellow, r.ops[0].c)
	var got []op
	for _, o := range r.ops {
		if o.kind == "text" {
			got = append(got, op{kind: "text", x: o.x, y: o.y, s: o.s})
		}
	}
	assert.Equal(t, []op{
		{kind: "text", x: 6, y: 6, s: "CLIENTS"},
		{kind: "text", x: 6, y: 20, s: "192.168.4.2"},
		{kind: "text", x: 21, y: 30, s: "aa:aa"},
		{kind: "text", x: 6, y: 46, s: "unknown"},
		{kind: "text", x: 21, y: 56, s: "bb:bb"},
	}, got)
}

func TestClientsEmpty(t *testing.T) {
	for _, roster := range []*telemetry.Roster{nil, new(telemetry.Roster)} {
		r := newRecorder()
		Clients(r, &Frame{Roster: roster})
		assert.Equal(t, []string{"CLIENTS", "No clients connected"}, r.texts())
	}
}

func TestInfo(t *testing.T) {
	r := newRecorder()
	Info(r, &Frame{Health: Health{TempC: 43.2, UplinkRSSI: -61.5, FreeMemMB: 812}})

	assert.Equal(t, Red, r.ops[0].c)
	assert.Equal(t, []string{
		"INFO",
		"Pi CPU temp: 43.2 C",
		"Uplink RSSI:-61.5dBm",
		"Free memory: 812 MB",
	}, r.texts())
}

// blank is a Canvas that draws nothing.
type blank struct{}

func (blank) Size() (int, int)                  { return 160, 128 }
func (blank) Fill(Color)                        {}
func (blank) Line(int, int, int, int, Color)    {}
func (blank) Rect(int, int, int, int, Color)    {}
func (blank) HLine(int, int, int, Color)        {}
func (blank) VLine(int, int, int, Color)        {}
func (blank) Text(int, int, Datum, string, Ink) {}
func (blank) Present() error                    { return nil }

func TestRedrawDoesNotAllocate(t *testing.T) {
	var s samples.Store
	for i := 0; i < samples.Capacity; i++ {
		s.Push(samples.Sample{RX: uint32(i) * 10_000, TX: 5_000})
	}
	roster := decodeRoster(t, `{"clients":["192.168.4.2"],"macs":["aa:bb:cc:dd:ee:ff"]}`)
	f := &Frame{
		Samples: &s,
		RXScale: 1.5,
		TXScale: 0.2,
		Roster:  roster,
		Health:  Health{TempC: 51.3, UplinkRSSI: -70, FreeMemMB: 640},
	}
	rd := NewRenderer(blank{})

	for _, m := range []mode.Mode{mode.Graph, mode.Clients, mode.Info} {
		t.Run(m.String(), func(t *testing.T) {
			allocs := testing.AllocsPerRun(20, func() {
				_ = rd.Draw(m, f)
			})
			assert.Zero(t, allocs)
		})
	}
}

func TestLabelsFollowValues(t *testing.T) {
	r := newRecorder()
	f := &Frame{Health: Health{TempC: 43.2, FreeMemMB: 812}}
	Info(r, f)

	f.Health.TempC = 44.06
	f.Health.FreeMemMB = 9
	r.ops = nil
	Info(r, f)
	assert.Contains(t, r.texts(), "Pi CPU temp: 44.1 C")
	assert.Contains(t, r.texts(), "Free memory: 9 MB")

	var l label
	assert.Equal(t, "-0.5 Mbps", l.decimal("", -0.5, " Mbps"))
	assert.Equal(t, "x4294967295y", l.integer("x", 4294967295, "y"))
}

func TestRendererDispatch(t *testing.T) {
	tests := []struct {
		m    mode.Mode
		fill Color
	}{
		{mode.Graph, DarkCyan},
		{mode.Clients, GreenYellow},
		{mode.Info, Red},
	}
	for _, tt := range tests {
		t.Run(tt.m.String(), func(t *testing.T) {
			r := newRecorder()
			require.NoError(t, NewRenderer(r).Draw(tt.m, &Frame{Samples: new(samples.Store), RXScale: 1, TXScale: 1}))
			assert.Equal(t, tt.fill, r.ops[0].c)
			assert.Equal(t, 1, r.presents)
		})
	}
}

func TestRendererErrors(t *testing.T) {
	r := newRecorder()
	rd := NewRenderer(r)
	assert.Error(t, rd.Draw(mode.Count, &Frame{}))
	assert.Zero(t, r.presents)

	r.err = errors.New("spi timeout")
	err := rd.Draw(mode.Info, &Frame{})
	assert.ErrorIs(t, err, r.err)
}

func TestWaiting(t *testing.T) {
	r := newRecorder()
	require.NoError(t, NewRenderer(r).DrawWaiting())
	assert.Equal(t, Navy, r.ops[0].c)
	assert.Len(t, r.texts(), 2)
	assert.Equal(t, 1, r.presents)
}

// memFramebuffer is an RGB565 framebuffer in memory.
type memFramebuffer struct {
	w, h     int
	buf      []byte
	presents int
}

func newMemFramebuffer(w, h int) *memFramebuffer {
	return &memFramebuffer{w: w, h: h, buf: make([]byte, w*h*2)}
}

func (f *memFramebuffer) Width() int              { return f.w }
func (f *memFramebuffer) Height() int             { return f.h }
func (f *memFramebuffer) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *memFramebuffer) StrideBytes() int        { return f.w * 2 }
func (f *memFramebuffer) Buffer() []byte          { return f.buf }
func (f *memFramebuffer) ClearRGB(r, g, b uint8)  {}
func (f *memFramebuffer) Present() error          { f.presents++; return nil }

func (f *memFramebuffer) at(x, y int) Color {
	off := y*f.w*2 + x*2
	return Color(uint16(f.buf[off]) | uint16(f.buf[off+1])<<8)
}

func (f *memFramebuffer) count(c Color) int {
	n := 0
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			if f.at(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestFrameCanvasPrimitives(t *testing.T) {
	fb := newMemFramebuffer(32, 16)
	c := NewFrameCanvas(fb)

	w, h := c.Size()
	assert.Equal(t, 32, w)
	assert.Equal(t, 16, h)

	c.Fill(Navy)
	assert.Equal(t, 32*16, fb.count(Navy))

	c.Rect(2, 2, 5, 4, White)
	assert.Equal(t, 2*5+2*2, fb.count(White))
	assert.Equal(t, Navy, fb.at(3, 3))

	c.Line(0, 15, 31, 0, Green)
	assert.Equal(t, Green, fb.at(0, 15))
	assert.Equal(t, Green, fb.at(31, 0))
	assert.Equal(t, 32, fb.count(Green))

	c.HLine(-10, 10, 100, Red)
	assert.Equal(t, 32, fb.count(Red))
	c.VLine(40, 0, 16, Cyan) // off-surface
	assert.Zero(t, fb.count(Cyan))

	require.NoError(t, c.Present())
	assert.Equal(t, 1, fb.presents)
}

func TestFrameCanvasText(t *testing.T) {
	fb := newMemFramebuffer(64, 20)
	c := NewFrameCanvas(fb)
	c.Fill(Black)

	c.Text(2, 2, TopLeft, "RX", On(White, Navy))
	assert.Positive(t, fb.count(White))
	assert.Positive(t, fb.count(Navy))
	assert.Equal(t, Navy, fb.at(2, 11))
	assert.Equal(t, Black, fb.at(40, 2))

	fb = newMemFramebuffer(64, 20)
	c = NewFrameCanvas(fb)
	c.Text(63, 2, TopRight, "8", Plain(Orange))
	found := false
	for x := 50; x < 64; x++ {
		for y := 0; y < 20; y++ {
			if fb.at(x, y) == Orange {
				found = true
			}
		}
	}
	assert.True(t, found)
	assert.Zero(t, fb.count(Navy))
}

func TestColorRoundTrip(t *testing.T) {
	for _, c := range []Color{Black, White, Navy, DarkCyan, Orange, Grid} {
		assert.Equal(t, c, colorFromRGBA(c.RGBA()))
	}
}

func TestConsole(t *testing.T) {
	fb := newMemFramebuffer(160, 128)
	k := NewConsole(NewFrameCanvas(fb))
	k.Printf("linkscope %s", "dev")
	k.Println("waiting for telemetry")
	require.NoError(t, k.Flush())

	assert.Equal(t, 1, fb.presents)
	assert.Less(t, fb.count(Black), 160*128)
}
