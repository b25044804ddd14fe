package render

import (
	"image/color"

	"linkscope/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

// Text metrics for proggy TinySZ8pt7b.
const (
	FontHeight = 10
	FontOffset = 6
)

// Font is the face used for every string on screen.
var Font tinyfont.Fonter = &proggy.TinySZ8pt7b

// FrameCanvas draws into an RGB565 framebuffer. Nothing reaches the panel
// until Present.
type FrameCanvas struct {
	d fbDisplay
}

func NewFrameCanvas(fb hal.Framebuffer) *FrameCanvas {
	return &FrameCanvas{d: fbDisplay{fb: fb}}
}

// Displayer exposes the canvas to tinyfont and tinyterm.
func (c *FrameCanvas) Displayer() tinyterm.Displayer { return &c.d }

func (c *FrameCanvas) Size() (w, h int) {
	x, y := c.d.Size()
	return int(x), int(y)
}

func (c *FrameCanvas) Fill(col Color) {
	w, h := c.Size()
	c.d.fill(0, 0, w, h, col)
}

// Line uses Bresenham; both endpoints are drawn.
func (c *FrameCanvas) Line(x0, y0, x1, y1 int, col Color) {
	dx := absInt(x1 - x0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	dy := -absInt(y1 - y0)
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.d.set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *FrameCanvas) HLine(x, y, w int, col Color) { c.d.fill(x, y, w, 1, col) }
func (c *FrameCanvas) VLine(x, y, h int, col Color) { c.d.fill(x, y, 1, h, col) }

// Rect draws a one pixel outline.
func (c *FrameCanvas) Rect(x, y, w, h int, col Color) {
	if w <= 0 || h <= 0 {
		return
	}
	c.HLine(x, y, w, col)
	c.HLine(x, y+h-1, w, col)
	c.VLine(x, y, h, col)
	c.VLine(x+w-1, y, h, col)
}

func (c *FrameCanvas) Text(x, y int, d Datum, s string, ink Ink) {
	x, y, w := textBox(x, y, d, s)
	if ink.Opaque {
		c.d.fill(x, y, w, FontHeight, ink.BG)
	}
	tinyfont.WriteLine(&c.d, Font, int16(x), int16(y+FontOffset), s, ink.FG.RGBA())
}

func (c *FrameCanvas) Present() error { return c.d.Display() }

// textBox returns the top-left corner and width of s placed at (x, y).
func textBox(x, y int, d Datum, s string) (int, int, int) {
	_, outbox := tinyfont.LineWidth(Font, s)
	w := int(outbox)
	switch d {
	case TopRight:
		x -= w
	case MiddleCenter:
		x -= w / 2
		y -= FontHeight / 2
	}
	return x, y, w
}

// fbDisplay adapts a hal.Framebuffer to drivers.Displayer.
type fbDisplay struct {
	fb hal.Framebuffer
}

func (d *fbDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.set(int(x), int(y), colorFromRGBA(c))
}

func (d *fbDisplay) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *fbDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	d.fill(int(x), int(y), int(width), int(height), colorFromRGBA(c))
	return nil
}

// SetScroll is a no-op: the console uses software scroll.
func (d *fbDisplay) SetScroll(line int16) {}

func (d *fbDisplay) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

func (d *fbDisplay) buffer() ([]byte, int, int, int) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return nil, 0, 0, 0
	}
	return d.fb.Buffer(), d.fb.Width(), d.fb.Height(), d.fb.StrideBytes()
}

func (d *fbDisplay) set(x, y int, c Color) {
	buf, w, h, stride := d.buffer()
	if buf == nil || x < 0 || x >= w || y < 0 || y >= h {
		return
	}
	off := y*stride + x*2
	if off+1 >= len(buf) {
		return
	}
	buf[off] = byte(c)
	buf[off+1] = byte(c >> 8)
}

func (d *fbDisplay) fill(x, y, width, height int, c Color) {
	buf, w, h, stride := d.buffer()
	if buf == nil {
		return
	}
	x0 := clampInt(x, 0, w)
	y0 := clampInt(y, 0, h)
	x1 := clampInt(x+width, 0, w)
	y1 := clampInt(y+height, 0, h)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	lo, hi := byte(c), byte(c>>8)
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
